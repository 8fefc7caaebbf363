package recruitsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	authmodels "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/auth/models"
	recruitdto "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/recruit/dto"
	models "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/recruit/models"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/common"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/logger"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/metrics"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/notification"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SelectForTest HR chọn hồ sơ làm bài test.
// Cờ isEligibleForTest false -> true là điểm chốt: chỉ một request thắng, các request sau nhận ErrAlreadySelected.
// Sinh đề hoặc lưu đề lỗi thì hoàn tác về trạng thái trước khi chọn.
func (s *Service) SelectForTest(ctx context.Context, caller authmodels.CallerContext, jobID, applicationID primitive.ObjectID) (*recruitdto.SelectionOutput, error) {
	profile, app, err := s.ownedApplication(ctx, caller, jobID, applicationID)
	if err != nil {
		return nil, err
	}

	existing, err := s.tests.FindByApplication(ctx, app.ID)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		existing = nil
	}

	spec := transitionSpec{
		event:    models.EventTestSelected,
		cond:     ApplicationCondition{EligibleForTest: boolPtr(false)},
		change:   ApplicationChange{EligibleForTest: boolPtr(true)},
		conflict: common.ErrAlreadySelected,
	}
	if existing != nil {
		state := existing.State
		spec.target = func(current, next models.Stage) models.Stage {
			if current.IsInterviewStage() {
				return next
			}
			return models.StageForTestState(state)
		}
	}
	claimed, prev, err := s.transition(ctx, app.ID, spec)
	if err != nil {
		return nil, err
	}

	deadline := s.now().Add(s.opts.TestWindow)
	test := existing
	switch {
	case test == nil:
		test, err = s.createTest(ctx, claimed, deadline)
		if err != nil {
			s.revertSelection(ctx, claimed, prev)
			return nil, err
		}
	case test.State == models.TestStateCreated:
		extended, extErr := s.tests.ExtendDeadline(ctx, test.ID, deadline.UnixMilli())
		switch {
		case extErr == nil:
			test = extended
		case errors.Is(extErr, ErrConditionFailed):
			// bài đã được nộp trong lúc chọn lại, giữ hạn cũ
		default:
			s.revertSelection(ctx, claimed, prev)
			return nil, extErr
		}
	}

	if err := s.profiles.AddToList(ctx, profile.ID, authmodels.HRListTestSelected, app.ID); err != nil {
		logger.WithContext(ctx).WithError(err).WithField("application_id", app.ID.Hex()).Warn("❌ [RECRUIT] Cannot append to testSelectedCandidateIds")
	}

	out := &recruitdto.SelectionOutput{
		Application: claimed,
		Test:        recruitdto.TestHandle{ID: test.ID.Hex(), AccessDeadline: test.AccessDeadline},
	}
	token, err := s.invitations.Sign(app.ID, jobID, time.UnixMilli(test.AccessDeadline))
	if err != nil {
		return nil, err
	}
	out.InvitationLink = fmt.Sprintf("%s/test/link/%s", s.opts.FrontendURL, token)
	if s.opts.BareLinks {
		out.BareLink = fmt.Sprintf("%s/test/invite/%s/%s", s.opts.FrontendURL, app.ID.Hex(), jobID.Hex())
	}

	s.notify(ctx, claimed, notification.EmailTestSchedule, "Your assessment is ready",
		fmt.Sprintf("<p>You have been shortlisted. Please complete your assessment before %s.</p><p><a href=\"%s\">Start the test</a></p>",
			time.UnixMilli(test.AccessDeadline).UTC().Format(time.RFC1123), out.InvitationLink))

	logger.Audit(ctx, "test_selected", logrus.Fields{
		"application_id": app.ID.Hex(),
		"job_id":         jobID.Hex(),
		"test_id":        test.ID.Hex(),
		"reused_test":    existing != nil,
	})
	return out, nil
}

// createTest sinh đề từ CV và mô tả job rồi lưu ở state created
func (s *Service) createTest(ctx context.Context, app *models.CandidateApplication, deadline time.Time) (*models.TestInstance, error) {
	job, err := s.jobs.FindByID(ctx, app.JobPostingID)
	if err != nil {
		return nil, err
	}
	questions, err := s.ai.GenerateTest(ctx, app.ResumeText, job.Description())
	if err != nil {
		return nil, err
	}
	return s.tests.Insert(ctx, models.TestInstance{
		CandidateApplicationID: app.ID,
		IdentityID:             app.IdentityID,
		JobPostingID:           app.JobPostingID,
		Questions:              questionsFromAI(*questions),
		AccessDeadline:         deadline.UnixMilli(),
	})
}

// revertSelection trả hồ sơ về stage trước khi chọn và bỏ cờ isEligibleForTest
func (s *Service) revertSelection(ctx context.Context, claimed *models.CandidateApplication, prev models.Stage) {
	log := logger.WithContext(ctx).WithFields(logrus.Fields{
		"module":         "recruit",
		"application_id": claimed.ID.Hex(),
		"from_stage":     string(claimed.Stage),
		"to_stage":       string(prev),
	})
	change := ApplicationChange{EligibleForTest: boolPtr(false)}
	if prev != "" && prev != claimed.Stage {
		stage := prev
		change.Stage = &stage
		change.History = &models.StageRecord{
			From:  claimed.Stage,
			To:    prev,
			Event: models.EventSelectionReverted,
			At:    s.now().UnixMilli(),
		}
	}
	_, err := s.applications.CompareAndSwap(ctx, claimed.ID, ApplicationCondition{
		Stages:          []models.Stage{claimed.Stage},
		EligibleForTest: boolPtr(true),
	}, change)
	if err != nil {
		s.metrics.Transition(string(models.EventSelectionReverted), metrics.OutcomeError)
		log.WithError(err).Error("❌ [PIPELINE] Cannot revert test selection")
		return
	}
	s.metrics.Transition(string(models.EventSelectionReverted), metrics.OutcomeOK)
	log.Warn("[PIPELINE] Test selection reverted")
}

// RejectForTest HR loại hồ sơ khỏi vòng test. Gọi lại nhiều lần cho cùng kết quả.
func (s *Service) RejectForTest(ctx context.Context, caller authmodels.CallerContext, jobID, applicationID primitive.ObjectID) (*models.CandidateApplication, error) {
	profile, app, err := s.ownedApplication(ctx, caller, jobID, applicationID)
	if err != nil {
		return nil, err
	}

	updated, prev, err := s.transition(ctx, app.ID, transitionSpec{
		event:  models.EventTestRejected,
		change: ApplicationChange{EligibleForTest: boolPtr(false)},
	})
	if err != nil {
		return nil, err
	}

	if err := s.profiles.RemoveFromList(ctx, profile.ID, authmodels.HRListTestSelected, app.ID); err != nil {
		logger.WithContext(ctx).WithError(err).WithField("application_id", app.ID.Hex()).Warn("❌ [RECRUIT] Cannot remove from testSelectedCandidateIds")
	}

	if prev != updated.Stage || app.IsEligibleForTest {
		s.notify(ctx, updated, notification.EmailHRDecision, "Update on your application",
			"<p>Thank you for your interest. We will not be moving forward with your application at this time.</p>")
	}
	logger.Audit(ctx, "test_rejected", logrus.Fields{"application_id": app.ID.Hex(), "job_id": jobID.Hex()})
	return updated, nil
}
