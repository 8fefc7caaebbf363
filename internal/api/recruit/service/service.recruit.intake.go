package recruitsvc

import (
	"context"
	"errors"

	authmodels "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/auth/models"
	recruitdto "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/recruit/dto"
	models "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/recruit/models"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/common"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/logger"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Apply ứng viên nộp CV cho job rồi chấm CV bằng dịch vụ AI.
// Chấm lỗi thì hồ sơ vẫn được giữ ở applied, lỗi trả về kèm applicationId.
func (s *Service) Apply(ctx context.Context, caller authmodels.CallerContext, jobID primitive.ObjectID, input *recruitdto.ApplyInput) (*models.CandidateApplication, error) {
	identity, err := s.guard.RequireCandidate(ctx, caller)
	if err != nil {
		return nil, err
	}
	if len(input.Resume) == 0 {
		return nil, common.WithDetails(common.ErrInvalidInput, map[string]string{"resume": "required"})
	}

	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if _, err := s.applications.FindByCandidateAndJob(ctx, identity.ID, jobID); err == nil {
		return nil, common.ErrAlreadyApplied
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	contentType := input.ContentType
	if contentType == "" {
		contentType = "application/pdf"
	}
	app, err := s.applications.Insert(ctx, models.CandidateApplication{
		IdentityID:   identity.ID,
		JobPostingID: jobID,
		Resume: models.ResumeFile{
			Data:        input.Resume,
			ContentType: contentType,
			FileName:    input.FileName,
		},
		CoverLetter: input.CoverLetter,
		Stage:       models.StageApplied,
	})
	if err != nil {
		return nil, err
	}

	log := logger.WithContext(ctx).WithFields(logrus.Fields{
		"module":         "recruit",
		"application_id": app.ID.Hex(),
		"job_id":         jobID.Hex(),
	})
	if err := s.jobs.AddApplicant(ctx, jobID, app.ID); err != nil {
		log.WithError(err).Warn("❌ [RECRUIT] Cannot append application to job")
	}
	logger.Audit(ctx, "application_created", logrus.Fields{"application_id": app.ID.Hex(), "job_id": jobID.Hex()})

	score, err := s.ai.ScoreResume(ctx, input.Resume, job.Description())
	if err != nil {
		log.WithError(err).Warn("❌ [AI] Resume scoring failed, application stays at applied")
		return nil, withApplicationID(err, app.ID)
	}

	updated, _, err := s.transition(ctx, app.ID, transitionSpec{
		event: models.EventScored,
		change: ApplicationChange{
			ResumeText:       stringPtr(score.ExtractedText),
			ResumeMatchScore: floatPtr(score.SimilarityScore),
		},
		lenient: true,
	})
	if err != nil {
		return nil, withApplicationID(err, app.ID)
	}
	return updated, nil
}

// withApplicationID gắn id hồ sơ đã tạo vào details của lỗi
func withApplicationID(err error, applicationID primitive.ObjectID) error {
	var appErr *common.Error
	if !errors.As(err, &appErr) {
		return common.WithDetails(common.ErrInternal, map[string]interface{}{
			"applicationId": applicationID.Hex(),
			"upstream":      err.Error(),
		})
	}
	return common.WithDetails(err, map[string]interface{}{
		"applicationId": applicationID.Hex(),
		"upstream":      appErr.Details,
	})
}
