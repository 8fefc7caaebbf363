package recruitsvc

import (
	"context"
	"encoding/base64"

	authmodels "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/auth/models"
	recruitdto "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/recruit/dto"
	models "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/recruit/models"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/notification"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MyReport ứng viên xem kết quả bài test của mình
func (s *Service) MyReport(ctx context.Context, caller authmodels.CallerContext, jobID primitive.ObjectID) (*recruitdto.ReportOutput, error) {
	app, err := s.applicationForCandidate(ctx, caller, jobID)
	if err != nil {
		return nil, err
	}
	return s.reportOf(ctx, app)
}

// HRReport HR sở hữu job xem kết quả của một hồ sơ
func (s *Service) HRReport(ctx context.Context, caller authmodels.CallerContext, jobID, applicationID primitive.ObjectID) (*recruitdto.ReportOutput, error) {
	_, app, err := s.ownedApplication(ctx, caller, jobID, applicationID)
	if err != nil {
		return nil, err
	}
	return s.reportOf(ctx, app)
}

func (s *Service) reportOf(ctx context.Context, app *models.CandidateApplication) (*recruitdto.ReportOutput, error) {
	report, err := s.reports.FindByApplication(ctx, app.ID)
	if err != nil {
		return nil, err
	}
	return &recruitdto.ReportOutput{
		ReportText:      report.ReportText,
		ReportPDFBase64: base64.StdEncoding.EncodeToString(report.ReportDocument),
		GeneratedAt:     report.CreatedAt,
		TestScore:       report.Score,
	}, nil
}

// EmailHistory nhật ký thông báo của một hồ sơ, chỉ HR sở hữu job của hồ sơ
func (s *Service) EmailHistory(ctx context.Context, caller authmodels.CallerContext, applicationID primitive.ObjectID) ([]notification.EmailAuditRecord, error) {
	profile, err := s.guard.RequireHR(ctx, caller)
	if err != nil {
		return nil, err
	}
	app, err := s.applications.FindByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.RequireOwnership(ctx, profile.ID, app.JobPostingID); err != nil {
		return nil, err
	}
	if s.notifier == nil {
		return []notification.EmailAuditRecord{}, nil
	}
	return s.notifier.History(ctx, app.ID)
}
