package recruitsvc

import (
	"context"
	"errors"

	authmodels "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/auth/models"
	recruitdto "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/recruit/dto"
	models "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/recruit/models"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/aiclient"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/common"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/logger"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Ba cách xác định người làm bài: phiên đăng nhập, cặp id trần, token ký.

// applicationForCandidate hồ sơ của ứng viên đang đăng nhập cho job
func (s *Service) applicationForCandidate(ctx context.Context, caller authmodels.CallerContext, jobID primitive.ObjectID) (*models.CandidateApplication, error) {
	if _, err := s.guard.RequireCandidate(ctx, caller); err != nil {
		return nil, err
	}
	return s.applications.FindByCandidateAndJob(ctx, caller.IdentityID, jobID)
}

// applicationByIDs hồ sơ theo cặp id, hồ sơ phải thuộc job
func (s *Service) applicationByIDs(ctx context.Context, applicationID, jobID primitive.ObjectID) (*models.CandidateApplication, error) {
	app, err := s.applications.FindByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.JobPostingID != jobID {
		return nil, common.ErrNotFound
	}
	return app, nil
}

func (s *Service) applicationByToken(ctx context.Context, token string) (*models.CandidateApplication, error) {
	applicationID, jobID, err := s.invitations.Parse(token)
	if err != nil {
		return nil, err
	}
	return s.applicationByIDs(ctx, applicationID, jobID)
}

// ShowTest ứng viên đăng nhập xem bài test của job
func (s *Service) ShowTest(ctx context.Context, caller authmodels.CallerContext, jobID primitive.ObjectID) (*recruitdto.ShowTestOutput, error) {
	app, err := s.applicationForCandidate(ctx, caller, jobID)
	if err != nil {
		return nil, err
	}
	return s.showTest(ctx, app)
}

// ShowTestByIDs xem bài qua link id trần, chỉ khi TEST_LINK_BARE_IDS bật
func (s *Service) ShowTestByIDs(ctx context.Context, applicationID, jobID primitive.ObjectID) (*recruitdto.ShowTestOutput, error) {
	if !s.opts.BareLinks {
		return nil, common.ErrNotFound
	}
	app, err := s.applicationByIDs(ctx, applicationID, jobID)
	if err != nil {
		return nil, err
	}
	return s.showTest(ctx, app)
}

// ShowTestByToken xem bài qua link đã ký
func (s *Service) ShowTestByToken(ctx context.Context, token string) (*recruitdto.ShowTestOutput, error) {
	app, err := s.applicationByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.showTest(ctx, app)
}

func (s *Service) showTest(ctx context.Context, app *models.CandidateApplication) (*recruitdto.ShowTestOutput, error) {
	test, err := s.tests.FindByApplication(ctx, app.ID)
	if err != nil {
		return nil, err
	}
	if s.now().UnixMilli() > test.AccessDeadline {
		return nil, common.ErrTestExpired
	}
	return &recruitdto.ShowTestOutput{
		TestID:         test.ID.Hex(),
		JobID:          app.JobPostingID.Hex(),
		Questions:      test.Questions.WithoutAnswers(),
		AccessDeadline: test.AccessDeadline,
		State:          test.State,
	}, nil
}

// SubmitTest ứng viên đăng nhập nộp bài
func (s *Service) SubmitTest(ctx context.Context, caller authmodels.CallerContext, jobID primitive.ObjectID, input *recruitdto.SubmitInput) (*recruitdto.SubmitOutput, error) {
	app, err := s.applicationForCandidate(ctx, caller, jobID)
	if err != nil {
		return nil, err
	}
	return s.submitTest(ctx, app, input)
}

// SubmitTestByIDs nộp bài qua link id trần
func (s *Service) SubmitTestByIDs(ctx context.Context, applicationID, jobID primitive.ObjectID, input *recruitdto.SubmitInput) (*recruitdto.SubmitOutput, error) {
	if !s.opts.BareLinks {
		return nil, common.ErrNotFound
	}
	app, err := s.applicationByIDs(ctx, applicationID, jobID)
	if err != nil {
		return nil, err
	}
	return s.submitTest(ctx, app, input)
}

// SubmitTestByToken nộp bài qua link đã ký
func (s *Service) SubmitTestByToken(ctx context.Context, token string, input *recruitdto.SubmitInput) (*recruitdto.SubmitOutput, error) {
	app, err := s.applicationByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.submitTest(ctx, app, input)
}

// submitTest ghi câu trả lời đúng một lần rồi chấm.
// Chấm lỗi thì bài dừng ở answers_submitted, câu trả lời đã lưu không đổi.
func (s *Service) submitTest(ctx context.Context, app *models.CandidateApplication, input *recruitdto.SubmitInput) (*recruitdto.SubmitOutput, error) {
	test, err := s.tests.FindByApplication(ctx, app.ID)
	if err != nil {
		return nil, err
	}
	now := s.now().UnixMilli()
	if now > test.AccessDeadline {
		return nil, common.ErrTestExpired
	}
	if !app.IsEligibleForTest || app.Stage == models.StageRejectedAtScreening {
		return nil, common.ErrInvitationRevoked
	}

	answers := models.Answers{
		MCQs:       append([]string{}, input.MCQs...),
		Pseudocode: append([]string{}, input.Pseudocode...),
		Theory:     append([]string{}, input.Theory...),
	}
	submitted, err := s.tests.SubmitAnswers(ctx, test.ID, answers, now)
	if err != nil {
		if errors.Is(err, ErrConditionFailed) {
			return nil, common.ErrAlreadySubmitted
		}
		return nil, err
	}
	logger.Audit(ctx, "test_submitted", logrus.Fields{"application_id": app.ID.Hex(), "test_id": test.ID.Hex()})

	if _, _, err := s.transition(ctx, app.ID, transitionSpec{
		event:    models.EventTestSubmitted,
		cond:     ApplicationCondition{EligibleForTest: boolPtr(true)},
		conflict: common.ErrInvitationRevoked,
	}); err != nil {
		return nil, err
	}

	return s.evaluate(ctx, app, submitted)
}

// evaluate chấm bài đã nộp, lưu report rồi chép điểm sang hồ sơ
func (s *Service) evaluate(ctx context.Context, app *models.CandidateApplication, test *models.TestInstance) (*recruitdto.SubmitOutput, error) {
	log := logger.WithContext(ctx).WithFields(logrus.Fields{
		"module":         "recruit",
		"application_id": app.ID.Hex(),
		"test_id":        test.ID.Hex(),
	})

	name, _ := s.recipient(ctx, app.IdentityID)
	evaluation, err := s.ai.EvaluateTest(ctx, questionsToAI(test.Questions), answersToAI(test.Answers), name)
	if err != nil {
		log.WithError(err).Warn("❌ [AI] Evaluation failed, test stays at answers_submitted")
		return nil, err
	}

	if _, err := s.reports.Insert(ctx, models.TestReport{
		CandidateApplicationID: app.ID,
		TestInstanceID:         test.ID,
		IdentityID:             app.IdentityID,
		JobPostingID:           app.JobPostingID,
		ReportText:             evaluation.TestReport,
		ReportDocument:         evaluation.ReportPDF,
		Score:                  evaluation.FinalScore,
	}); err != nil {
		if errors.Is(err, common.ErrDuplicate) {
			return nil, common.ErrAlreadySubmitted
		}
		return nil, err
	}

	if err := s.finishEvaluation(ctx, app, test, evaluation.FinalScore, evaluation.TestReport); err != nil {
		return nil, err
	}
	return &recruitdto.SubmitOutput{
		Message:    "Test submitted and evaluated successfully",
		FinalScore: evaluation.FinalScore,
		Evaluation: evaluation.TestReport,
	}, nil
}

// finishEvaluation đóng bài test và chép điểm sang hồ sơ, report đã được lưu trước đó
func (s *Service) finishEvaluation(ctx context.Context, app *models.CandidateApplication, test *models.TestInstance, score float64, reportText string) error {
	log := logger.WithContext(ctx).WithFields(logrus.Fields{
		"module":         "recruit",
		"application_id": app.ID.Hex(),
		"test_id":        test.ID.Hex(),
	})
	if _, err := s.tests.MarkEvaluated(ctx, test.ID); err != nil {
		log.WithError(err).Warn("❌ [RECRUIT] Cannot mark test evaluated")
	}

	if _, _, err := s.transition(ctx, app.ID, transitionSpec{
		event: models.EventTestEvaluated,
		change: ApplicationChange{
			TestScore:      floatPtr(score),
			TestReportText: stringPtr(reportText),
		},
		lenient: true,
	}); err != nil {
		return err
	}

	log.WithField("final_score", score).Info("✅ [RECRUIT] Test evaluated")
	return nil
}

func questionsFromAI(q aiclient.QuestionSet) models.QuestionSet {
	mcqs := make([]models.MCQ, len(q.MCQs))
	for i, m := range q.MCQs {
		mcqs[i] = models.MCQ{Question: m.Question, Options: m.Options, Answer: m.Answer}
	}
	return models.QuestionSet{
		MCQs:       mcqs,
		Pseudocode: append([]string{}, q.Pseudocode...),
		Theory:     append([]string{}, q.Theory...),
	}
}

func questionsToAI(q models.QuestionSet) aiclient.QuestionSet {
	mcqs := make([]aiclient.MCQ, len(q.MCQs))
	for i, m := range q.MCQs {
		mcqs[i] = aiclient.MCQ{Question: m.Question, Options: m.Options, Answer: m.Answer}
	}
	return aiclient.QuestionSet{MCQs: mcqs, Pseudocode: q.Pseudocode, Theory: q.Theory}
}

func answersToAI(a models.Answers) aiclient.Answers {
	return aiclient.Answers{MCQs: a.MCQs, Pseudocode: a.Pseudocode, Theory: a.Theory}
}
