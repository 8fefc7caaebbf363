package recruitsvc

import (
	"context"

	authmodels "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/auth/models"
	models "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/recruit/models"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/common"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/logger"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/notification"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SelectForInterview HR mời phỏng vấn. Không phụ thuộc kết quả vòng test.
func (s *Service) SelectForInterview(ctx context.Context, caller authmodels.CallerContext, jobID, applicationID primitive.ObjectID) (*models.CandidateApplication, error) {
	profile, app, err := s.ownedApplication(ctx, caller, jobID, applicationID)
	if err != nil {
		return nil, err
	}

	updated, _, err := s.transition(ctx, app.ID, transitionSpec{
		event:    models.EventInterviewSelected,
		cond:     ApplicationCondition{EligibleForInterview: boolPtr(false)},
		change:   ApplicationChange{EligibleForInterview: boolPtr(true)},
		conflict: common.ErrAlreadySelected,
	})
	if err != nil {
		return nil, err
	}

	if err := s.profiles.AddToList(ctx, profile.ID, authmodels.HRListInterviewSelected, app.ID); err != nil {
		logger.WithContext(ctx).WithError(err).WithField("application_id", app.ID.Hex()).Warn("❌ [RECRUIT] Cannot append to interviewSelectedCandidateIds")
	}
	s.notify(ctx, updated, notification.EmailHRDecision, "Interview invitation",
		"<p>Congratulations! You have been selected for an interview. Our team will contact you with the schedule.</p>")
	logger.Audit(ctx, "interview_selected", logrus.Fields{"application_id": app.ID.Hex(), "job_id": jobID.Hex()})
	return updated, nil
}

// RejectFromInterview HR loại sau phỏng vấn, chỉ áp dụng với hồ sơ đã được mời
func (s *Service) RejectFromInterview(ctx context.Context, caller authmodels.CallerContext, jobID, applicationID primitive.ObjectID) (*models.CandidateApplication, error) {
	_, app, err := s.ownedApplication(ctx, caller, jobID, applicationID)
	if err != nil {
		return nil, err
	}

	updated, _, err := s.transition(ctx, app.ID, transitionSpec{
		event:    models.EventInterviewRejected,
		cond:     ApplicationCondition{EligibleForInterview: boolPtr(true)},
		change:   ApplicationChange{EligibleForInterview: boolPtr(false)},
		conflict: common.ErrNotSelected,
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, updated, notification.EmailHRDecision, "Update on your interview",
		"<p>Thank you for interviewing with us. We have decided not to proceed with your application.</p>")
	logger.Audit(ctx, "interview_rejected", logrus.Fields{"application_id": app.ID.Hex(), "job_id": jobID.Hex()})
	return updated, nil
}
