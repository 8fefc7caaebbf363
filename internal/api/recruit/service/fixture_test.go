package recruitsvc

import (
	"context"
	"fmt"
	"testing"
	"time"

	authmodels "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/auth/models"
	recruitdto "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/recruit/dto"
	models "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/recruit/models"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/aiclient"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/metrics"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/notification"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	t          *testing.T
	ctx        context.Context
	svc        *Service
	apps       *memApplications
	jobs       *memJobs
	tests      *memTests
	reports    *memReports
	identities *memIdentities
	profiles   *memProfiles
	audits     *memAudits
	ai         *aiclient.MockClient
	metrics    *metrics.Metrics
	now        time.Time
	seq        int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		t:          t,
		ctx:        context.Background(),
		apps:       newMemApplications(),
		jobs:       newMemJobs(),
		tests:      newMemTests(),
		reports:    &memReports{},
		identities: newMemIdentities(),
		profiles:   newMemProfiles(),
		audits:     &memAudits{},
		ai:         aiclient.NewMockClient(ctrl),
		metrics:    metrics.New(),
		now:        time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	f.svc = NewService(Dependencies{
		Applications: f.apps,
		Jobs:         f.jobs,
		Tests:        f.tests,
		Reports:      f.reports,
		Identities:   f.identities,
		Profiles:     f.profiles,
		AI:           f.ai,
		Notifier:     notification.NewNotifier(f.audits, nil),
		Metrics:      f.metrics,
	}, Options{
		TestWindow:    time.Hour,
		BareLinks:     true,
		FrontendURL:   "http://front.test/",
		ResumePreview: 12,
		LinkSecret:    "link-secret",
	})
	f.svc.now = func() time.Time { return f.now }
	return f
}

func (f *fixture) identity(role authmodels.Role) authmodels.CallerContext {
	f.t.Helper()
	f.seq++
	identity, err := f.identities.Insert(f.ctx, authmodels.Identity{
		Name:  fmt.Sprintf("%s %d", role, f.seq),
		Email: fmt.Sprintf("%s%d@example.com", role, f.seq),
		Phone: fmt.Sprintf("0900%04d", f.seq),
		Role:  role,
	})
	require.NoError(f.t, err)
	if role == authmodels.RoleHR {
		_, err := f.profiles.Insert(f.ctx, authmodels.HRProfile{IdentityID: identity.ID})
		require.NoError(f.t, err)
	}
	return authmodels.CallerContext{IdentityID: identity.ID, Role: role}
}

func (f *fixture) profileOf(caller authmodels.CallerContext) authmodels.HRProfile {
	f.t.Helper()
	profile, err := f.profiles.FindByIdentity(f.ctx, caller.IdentityID)
	require.NoError(f.t, err)
	return f.profiles.get(profile.ID)
}

func (f *fixture) job(hr authmodels.CallerContext) *models.JobPosting {
	f.t.Helper()
	job, err := f.svc.CreateJob(f.ctx, hr, &recruitdto.JobCreateInput{
		Title:       "Backend Engineer",
		CompanyName: "Acme",
		Details:     "Go, MongoDB, distributed systems",
	})
	require.NoError(f.t, err)
	return job
}

// apply nộp CV với điểm chấm cho trước
func (f *fixture) apply(candidate authmodels.CallerContext, job *models.JobPosting, score float64) *models.CandidateApplication {
	f.t.Helper()
	f.ai.EXPECT().
		ScoreResume(gomock.Any(), []byte("%PDF-resume"), job.Description()).
		Return(&aiclient.ResumeScore{ExtractedText: "Seven years of Go and MongoDB", SimilarityScore: score}, nil)
	app, err := f.svc.Apply(f.ctx, candidate, job.ID, &recruitdto.ApplyInput{
		Resume:      []byte("%PDF-resume"),
		ContentType: "application/pdf",
		FileName:    "cv.pdf",
	})
	require.NoError(f.t, err)
	return app
}

func sampleQuestions() *aiclient.QuestionSet {
	return &aiclient.QuestionSet{
		MCQs: []aiclient.MCQ{
			{Question: "Zero value of a map?", Options: []string{"nil", "{}"}, Answer: "nil"},
			{Question: "Is a slice a reference type?", Options: []string{"yes", "no"}, Answer: "yes"},
		},
		Pseudocode: []string{"Reverse a linked list"},
		Theory:     []string{"Explain the CAP theorem"},
	}
}

func (f *fixture) expectGenerate(times int) {
	f.ai.EXPECT().GenerateTest(gomock.Any(), gomock.Any(), gomock.Any()).Return(sampleQuestions(), nil).Times(times)
}

// selected ứng viên đã nộp CV và được chọn test
func (f *fixture) selected(hr authmodels.CallerContext, job *models.JobPosting) (authmodels.CallerContext, *recruitdto.SelectionOutput) {
	f.t.Helper()
	candidate := f.identity(authmodels.RoleCandidate)
	app := f.apply(candidate, job, 0.7)
	f.expectGenerate(1)
	out, err := f.svc.SelectForTest(f.ctx, hr, job.ID, app.ID)
	require.NoError(f.t, err)
	return candidate, out
}

func sampleAnswers() *recruitdto.SubmitInput {
	return &recruitdto.SubmitInput{
		MCQs:       []string{"nil", "yes"},
		Pseudocode: []string{"walk and swap next pointers"},
		Theory:     []string{"pick two of three"},
	}
}

func (f *fixture) expectEvaluate(score float64) {
	f.ai.EXPECT().
		EvaluateTest(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&aiclient.Evaluation{FinalScore: score, TestReport: "Solid fundamentals", ReportPDF: []byte("%PDF-report")}, nil)
}
