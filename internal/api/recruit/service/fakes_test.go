package recruitsvc

import (
	"context"
	"sort"
	"sync"

	authmodels "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/auth/models"
	models "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/recruit/models"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/common"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/notification"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các store trong bộ nhớ có cùng ngữ nghĩa ghi có điều kiện với bản MongoDB

type memApplications struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]models.CandidateApplication
	clock int64
}

func newMemApplications() *memApplications {
	return &memApplications{items: map[primitive.ObjectID]models.CandidateApplication{}}
}

func (m *memApplications) Insert(ctx context.Context, app models.CandidateApplication) (*models.CandidateApplication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.items {
		if existing.IdentityID == app.IdentityID && existing.JobPostingID == app.JobPostingID {
			return nil, common.ErrAlreadyApplied
		}
	}
	m.clock++
	app.ID = primitive.NewObjectID()
	app.CreatedAt = m.clock
	app.UpdatedAt = m.clock
	if app.StageHistory == nil {
		app.StageHistory = []models.StageRecord{}
	}
	m.items[app.ID] = app
	return &app, nil
}

func (m *memApplications) FindByID(ctx context.Context, id primitive.ObjectID) (*models.CandidateApplication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	app, ok := m.items[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &app, nil
}

func (m *memApplications) FindByCandidateAndJob(ctx context.Context, identityID, jobID primitive.ObjectID) (*models.CandidateApplication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, app := range m.items {
		if app.IdentityID == identityID && app.JobPostingID == jobID {
			return &app, nil
		}
	}
	return nil, common.ErrNotFound
}

func (m *memApplications) ListByJob(ctx context.Context, jobID primitive.ObjectID, filter ApplicationFilter) ([]models.CandidateApplication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.CandidateApplication{}
	for _, app := range m.items {
		if app.JobPostingID != jobID {
			continue
		}
		if filter.EligibleForTest != nil && app.IsEligibleForTest != *filter.EligibleForTest {
			continue
		}
		if filter.EligibleForInterview != nil && app.IsEligibleForInterview != *filter.EligibleForInterview {
			continue
		}
		if filter.HasTestScore && app.TestScore == nil {
			continue
		}
		out = append(out, app)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt < out[j].CreatedAt
	})
	return out, nil
}

func (m *memApplications) CompareAndSwap(ctx context.Context, id primitive.ObjectID, cond ApplicationCondition, change ApplicationChange) (*models.CandidateApplication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	app, ok := m.items[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	if !cond.Holds(&app) {
		return nil, ErrConditionFailed
	}
	updated := change.Apply(app)
	m.clock++
	updated.UpdatedAt = m.clock
	m.items[id] = updated
	return &updated, nil
}

func (m *memApplications) get(id primitive.ObjectID) models.CandidateApplication {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items[id]
}

func (m *memApplications) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

type memJobs struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]models.JobPosting
	clock int64
}

func newMemJobs() *memJobs {
	return &memJobs{items: map[primitive.ObjectID]models.JobPosting{}}
}

func (m *memJobs) Insert(ctx context.Context, job models.JobPosting) (*models.JobPosting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clock++
	job.ID = primitive.NewObjectID()
	job.CreatedAt = m.clock
	if job.AppliedCandidateIDs == nil {
		job.AppliedCandidateIDs = []primitive.ObjectID{}
	}
	m.items[job.ID] = job
	return &job, nil
}

func (m *memJobs) FindByID(ctx context.Context, id primitive.ObjectID) (*models.JobPosting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.items[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	job.AppliedCandidateIDs = append([]primitive.ObjectID{}, job.AppliedCandidateIDs...)
	return &job, nil
}

func (m *memJobs) ListByHR(ctx context.Context, hrProfileID primitive.ObjectID) ([]models.JobPosting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.JobPosting{}
	for _, job := range m.items {
		if job.HRProfileID == hrProfileID {
			out = append(out, job)
		}
	}
	return out, nil
}

func (m *memJobs) ListAll(ctx context.Context) ([]models.JobPosting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.JobPosting{}
	for _, job := range m.items {
		out = append(out, job)
	}
	return out, nil
}

func (m *memJobs) AddApplicant(ctx context.Context, jobID, applicationID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.items[jobID]
	if !ok {
		return common.ErrNotFound
	}
	job.AppliedCandidateIDs = addToSet(job.AppliedCandidateIDs, applicationID)
	m.items[jobID] = job
	return nil
}

func (m *memJobs) JobOwner(ctx context.Context, jobID primitive.ObjectID) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.items[jobID]
	if !ok {
		return primitive.NilObjectID, common.ErrNotFound
	}
	return job.HRProfileID, nil
}

type memTests struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]models.TestInstance
}

func newMemTests() *memTests {
	return &memTests{items: map[primitive.ObjectID]models.TestInstance{}}
}

func (m *memTests) Insert(ctx context.Context, test models.TestInstance) (*models.TestInstance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.items {
		if existing.CandidateApplicationID == test.CandidateApplicationID {
			return nil, common.ErrDuplicate
		}
	}
	test.ID = primitive.NewObjectID()
	test.State = models.TestStateCreated
	test.Answers = models.Answers{MCQs: []string{}, Pseudocode: []string{}, Theory: []string{}}
	m.items[test.ID] = test
	return &test, nil
}

func (m *memTests) FindByApplication(ctx context.Context, applicationID primitive.ObjectID) (*models.TestInstance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, test := range m.items {
		if test.CandidateApplicationID == applicationID {
			return &test, nil
		}
	}
	return nil, common.ErrNotFound
}

func (m *memTests) FindManyByApplications(ctx context.Context, applicationIDs []primitive.ObjectID) ([]models.TestInstance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	wanted := map[primitive.ObjectID]bool{}
	for _, id := range applicationIDs {
		wanted[id] = true
	}
	out := []models.TestInstance{}
	for _, test := range m.items {
		if wanted[test.CandidateApplicationID] {
			out = append(out, test)
		}
	}
	return out, nil
}

func (m *memTests) update(id primitive.ObjectID, holds func(models.TestInstance) bool, apply func(*models.TestInstance)) (*models.TestInstance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	test, ok := m.items[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	if !holds(test) {
		return nil, ErrConditionFailed
	}
	apply(&test)
	m.items[id] = test
	return &test, nil
}

func (m *memTests) ExtendDeadline(ctx context.Context, id primitive.ObjectID, deadline int64) (*models.TestInstance, error) {
	return m.update(id,
		func(t models.TestInstance) bool { return t.State == models.TestStateCreated },
		func(t *models.TestInstance) { t.AccessDeadline = deadline },
	)
}

func (m *memTests) SubmitAnswers(ctx context.Context, id primitive.ObjectID, answers models.Answers, submittedAt int64) (*models.TestInstance, error) {
	return m.update(id,
		func(t models.TestInstance) bool { return t.State == models.TestStateCreated && t.Answers.IsEmpty() },
		func(t *models.TestInstance) {
			t.State = models.TestStateAnswersSubmitted
			t.Answers = answers
			t.SubmittedAt = submittedAt
		},
	)
}

func (m *memTests) ListPendingEvaluation(ctx context.Context, submittedBefore int64, limit int64) ([]models.TestInstance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.TestInstance{}
	for _, test := range m.items {
		if test.State == models.TestStateAnswersSubmitted && test.SubmittedAt <= submittedBefore {
			out = append(out, test)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubmittedAt < out[j].SubmittedAt })
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memTests) MarkEvaluated(ctx context.Context, id primitive.ObjectID) (*models.TestInstance, error) {
	return m.update(id,
		func(t models.TestInstance) bool { return t.State == models.TestStateAnswersSubmitted },
		func(t *models.TestInstance) { t.State = models.TestStateEvaluated },
	)
}

func (m *memTests) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

type memReports struct {
	mu    sync.Mutex
	items []models.TestReport
}

func (m *memReports) Insert(ctx context.Context, report models.TestReport) (*models.TestReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.items {
		if existing.TestInstanceID == report.TestInstanceID {
			return nil, common.ErrDuplicate
		}
	}
	report.ID = primitive.NewObjectID()
	report.CreatedAt = int64(len(m.items) + 1)
	m.items = append(m.items, report)
	return &report, nil
}

func (m *memReports) FindByApplication(ctx context.Context, applicationID primitive.ObjectID) (*models.TestReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, report := range m.items {
		if report.CandidateApplicationID == applicationID {
			return &report, nil
		}
	}
	return nil, common.ErrNotFound
}

func (m *memReports) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

type memIdentities struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]authmodels.Identity
}

func newMemIdentities() *memIdentities {
	return &memIdentities{items: map[primitive.ObjectID]authmodels.Identity{}}
}

func (m *memIdentities) Insert(ctx context.Context, identity authmodels.Identity) (*authmodels.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.items {
		if existing.Email == identity.Email {
			return nil, common.ErrEmailTaken
		}
	}
	identity.ID = primitive.NewObjectID()
	m.items[identity.ID] = identity
	return &identity, nil
}

func (m *memIdentities) FindByID(ctx context.Context, id primitive.ObjectID) (*authmodels.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	identity, ok := m.items[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &identity, nil
}

func (m *memIdentities) FindByEmail(ctx context.Context, email string) (*authmodels.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, identity := range m.items {
		if identity.Email == email {
			return &identity, nil
		}
	}
	return nil, common.ErrNotFound
}

func (m *memIdentities) FindManyByIDs(ctx context.Context, ids []primitive.ObjectID) ([]authmodels.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []authmodels.Identity{}
	for _, id := range ids {
		if identity, ok := m.items[id]; ok {
			out = append(out, identity)
		}
	}
	return out, nil
}

func (m *memIdentities) ExistsRole(ctx context.Context, role authmodels.Role) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, identity := range m.items {
		if identity.Role == role {
			return true, nil
		}
	}
	return false, nil
}

func (m *memIdentities) Delete(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

type memProfiles struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]authmodels.HRProfile
}

func newMemProfiles() *memProfiles {
	return &memProfiles{items: map[primitive.ObjectID]authmodels.HRProfile{}}
}

func (m *memProfiles) Insert(ctx context.Context, profile authmodels.HRProfile) (*authmodels.HRProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	profile.ID = primitive.NewObjectID()
	profile.CreatedJobIDs = []primitive.ObjectID{}
	profile.TestSelectedCandidateIDs = []primitive.ObjectID{}
	profile.InterviewSelectedCandidateIDs = []primitive.ObjectID{}
	m.items[profile.ID] = profile
	return &profile, nil
}

func (m *memProfiles) FindByIdentity(ctx context.Context, identityID primitive.ObjectID) (*authmodels.HRProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, profile := range m.items {
		if profile.IdentityID == identityID {
			return &profile, nil
		}
	}
	return nil, common.ErrNotFound
}

func (m *memProfiles) AddToList(ctx context.Context, profileID primitive.ObjectID, list authmodels.HRList, id primitive.ObjectID) error {
	return m.mutate(profileID, list, func(ids []primitive.ObjectID) []primitive.ObjectID { return addToSet(ids, id) })
}

func (m *memProfiles) RemoveFromList(ctx context.Context, profileID primitive.ObjectID, list authmodels.HRList, id primitive.ObjectID) error {
	return m.mutate(profileID, list, func(ids []primitive.ObjectID) []primitive.ObjectID {
		out := []primitive.ObjectID{}
		for _, existing := range ids {
			if existing != id {
				out = append(out, existing)
			}
		}
		return out
	})
}

func (m *memProfiles) mutate(profileID primitive.ObjectID, list authmodels.HRList, fn func([]primitive.ObjectID) []primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	profile, ok := m.items[profileID]
	if !ok {
		return common.ErrNotFound
	}
	switch list {
	case authmodels.HRListCreatedJobs:
		profile.CreatedJobIDs = fn(profile.CreatedJobIDs)
	case authmodels.HRListTestSelected:
		profile.TestSelectedCandidateIDs = fn(profile.TestSelectedCandidateIDs)
	case authmodels.HRListInterviewSelected:
		profile.InterviewSelectedCandidateIDs = fn(profile.InterviewSelectedCandidateIDs)
	}
	m.items[profileID] = profile
	return nil
}

func (m *memProfiles) get(profileID primitive.ObjectID) authmodels.HRProfile {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items[profileID]
}

type memAudits struct {
	mu      sync.Mutex
	records []notification.EmailAuditRecord
}

func (m *memAudits) Insert(ctx context.Context, record notification.EmailAuditRecord) (*notification.EmailAuditRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record.ID = primitive.NewObjectID()
	m.records = append(m.records, record)
	return &record, nil
}

func (m *memAudits) ListByApplication(ctx context.Context, applicationID primitive.ObjectID) ([]notification.EmailAuditRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []notification.EmailAuditRecord{}
	for _, record := range m.records {
		if record.CandidateApplicationID == applicationID {
			out = append(out, record)
		}
	}
	return out, nil
}

func (m *memAudits) ofType(kind notification.EmailType) []notification.EmailAuditRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []notification.EmailAuditRecord{}
	for _, record := range m.records {
		if record.Type == kind {
			out = append(out, record)
		}
	}
	return out
}

func addToSet(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(append([]primitive.ObjectID{}, ids...), id)
}
