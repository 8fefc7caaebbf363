// Package recruitsvc - pipeline tuyển dụng: job, hồ sơ ứng tuyển, sàng lọc CV, bài test, report, phỏng vấn.
package recruitsvc

import (
	"context"
	"errors"

	models "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/recruit/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrConditionFailed điều kiện tiền đề của một ghi có điều kiện không còn đúng tại thời điểm ghi
var ErrConditionFailed = errors.New("recruit: write precondition no longer holds")

// ApplicationCondition điều kiện tiền đề của một ghi có điều kiện, field nil là không ràng buộc
type ApplicationCondition struct {
	Stages               []models.Stage
	EligibleForTest      *bool
	EligibleForInterview *bool
}

// Holds kiểm tra điều kiện trên bản đọc hiện tại
func (c ApplicationCondition) Holds(app *models.CandidateApplication) bool {
	if len(c.Stages) > 0 {
		found := false
		for _, s := range c.Stages {
			if app.Stage == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if c.EligibleForTest != nil && app.IsEligibleForTest != *c.EligibleForTest {
		return false
	}
	if c.EligibleForInterview != nil && app.IsEligibleForInterview != *c.EligibleForInterview {
		return false
	}
	return true
}

// ApplicationChange các field được ghi khi điều kiện thỏa, field nil là giữ nguyên
type ApplicationChange struct {
	Stage                *models.Stage
	EligibleForTest      *bool
	EligibleForInterview *bool
	ResumeText           *string
	ResumeMatchScore     *float64
	TestScore            *float64
	TestReportText       *string
	History              *models.StageRecord
}

// Apply áp thay đổi lên một bản sao (store trong bộ nhớ và kết quả trả về dùng chung logic này)
func (ch ApplicationChange) Apply(app models.CandidateApplication) models.CandidateApplication {
	if ch.Stage != nil {
		app.Stage = *ch.Stage
	}
	if ch.EligibleForTest != nil {
		app.IsEligibleForTest = *ch.EligibleForTest
	}
	if ch.EligibleForInterview != nil {
		app.IsEligibleForInterview = *ch.EligibleForInterview
	}
	if ch.ResumeText != nil {
		app.ResumeText = *ch.ResumeText
	}
	if ch.ResumeMatchScore != nil {
		v := *ch.ResumeMatchScore
		app.ResumeMatchScore = &v
	}
	if ch.TestScore != nil {
		v := *ch.TestScore
		app.TestScore = &v
	}
	if ch.TestReportText != nil {
		app.TestReportText = *ch.TestReportText
	}
	if ch.History != nil {
		history := make([]models.StageRecord, len(app.StageHistory), len(app.StageHistory)+1)
		copy(history, app.StageHistory)
		app.StageHistory = append(history, *ch.History)
	}
	return app
}

// ApplicationFilter lọc danh sách hồ sơ của một job
type ApplicationFilter struct {
	EligibleForTest      *bool
	EligibleForInterview *bool
	HasTestScore         bool
}

// ApplicationStore truy cập hồ sơ ứng tuyển.
// CompareAndSwap trả ErrConditionFailed khi điều kiện không khớp, common.ErrNotFound khi không có hồ sơ.
type ApplicationStore interface {
	Insert(ctx context.Context, app models.CandidateApplication) (*models.CandidateApplication, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.CandidateApplication, error)
	FindByCandidateAndJob(ctx context.Context, identityID, jobID primitive.ObjectID) (*models.CandidateApplication, error)
	ListByJob(ctx context.Context, jobID primitive.ObjectID, filter ApplicationFilter) ([]models.CandidateApplication, error)
	CompareAndSwap(ctx context.Context, id primitive.ObjectID, cond ApplicationCondition, change ApplicationChange) (*models.CandidateApplication, error)
}

// JobStore truy cập tin tuyển dụng
type JobStore interface {
	Insert(ctx context.Context, job models.JobPosting) (*models.JobPosting, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.JobPosting, error)
	ListByHR(ctx context.Context, hrProfileID primitive.ObjectID) ([]models.JobPosting, error)
	ListAll(ctx context.Context) ([]models.JobPosting, error)
	AddApplicant(ctx context.Context, jobID, applicationID primitive.ObjectID) error
	JobOwner(ctx context.Context, jobID primitive.ObjectID) (primitive.ObjectID, error)
}

// TestStore truy cập bài test. Mỗi bước trạng thái là một ghi có điều kiện trên state.
type TestStore interface {
	Insert(ctx context.Context, test models.TestInstance) (*models.TestInstance, error)
	FindByApplication(ctx context.Context, applicationID primitive.ObjectID) (*models.TestInstance, error)
	FindManyByApplications(ctx context.Context, applicationIDs []primitive.ObjectID) ([]models.TestInstance, error)
	// ExtendDeadline chỉ áp dụng khi state còn created
	ExtendDeadline(ctx context.Context, id primitive.ObjectID, deadline int64) (*models.TestInstance, error)
	// SubmitAnswers created + chưa có câu trả lời -> answers_submitted
	SubmitAnswers(ctx context.Context, id primitive.ObjectID, answers models.Answers, submittedAt int64) (*models.TestInstance, error)
	// MarkEvaluated answers_submitted -> evaluated
	MarkEvaluated(ctx context.Context, id primitive.ObjectID) (*models.TestInstance, error)
	// ListPendingEvaluation bài answers_submitted nộp trước submittedBefore (ms), cũ nhất trước
	ListPendingEvaluation(ctx context.Context, submittedBefore int64, limit int64) ([]models.TestInstance, error)
}

// ReportStore truy cập kết quả chấm. Insert trùng testInstanceId trả common.ErrDuplicate.
type ReportStore interface {
	Insert(ctx context.Context, report models.TestReport) (*models.TestReport, error)
	FindByApplication(ctx context.Context, applicationID primitive.ObjectID) (*models.TestReport, error)
}
