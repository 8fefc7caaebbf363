package recruitsvc

import (
	"context"
	"errors"
	"strings"

	authmodels "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/auth/models"
	recruitdto "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/recruit/dto"
	models "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/recruit/models"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/common"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/logger"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateJob HR tạo tin tuyển dụng, id job được thêm vào createdJobIds của HR
func (s *Service) CreateJob(ctx context.Context, caller authmodels.CallerContext, input *recruitdto.JobCreateInput) (*models.JobPosting, error) {
	profile, err := s.guard.RequireHR(ctx, caller)
	if err != nil {
		return nil, err
	}

	job, err := s.jobs.Insert(ctx, models.JobPosting{
		Title:       strings.TrimSpace(input.Title),
		CompanyName: strings.TrimSpace(input.CompanyName),
		Details:     input.Details,
		HRProfileID: profile.ID,
	})
	if err != nil {
		return nil, err
	}

	if err := s.profiles.AddToList(ctx, profile.ID, authmodels.HRListCreatedJobs, job.ID); err != nil {
		logger.WithContext(ctx).WithError(err).WithField("job_id", job.ID.Hex()).Warn("❌ [RECRUIT] Cannot append job to hr profile")
	}
	logger.Audit(ctx, "job_created", logrus.Fields{"job_id": job.ID.Hex(), "hr_profile_id": profile.ID.Hex()})
	return job, nil
}

// ListMyJobs các job của HR đang gọi
func (s *Service) ListMyJobs(ctx context.Context, caller authmodels.CallerContext) ([]models.JobPosting, error) {
	profile, err := s.guard.RequireHR(ctx, caller)
	if err != nil {
		return nil, err
	}
	return s.jobs.ListByHR(ctx, profile.ID)
}

// ListAllJobs toàn bộ job cho ứng viên, không kèm danh sách ứng viên
func (s *Service) ListAllJobs(ctx context.Context, caller authmodels.CallerContext) ([]models.JobPosting, error) {
	if _, err := s.guard.RequireCandidate(ctx, caller); err != nil {
		return nil, err
	}
	jobs, err := s.jobs.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range jobs {
		jobs[i].AppliedCandidateIDs = nil
	}
	return jobs, nil
}

// CheckApplication ứng viên đã nộp hồ sơ cho job chưa
func (s *Service) CheckApplication(ctx context.Context, caller authmodels.CallerContext, jobID primitive.ObjectID) (*recruitdto.ApplicationStatusOutput, error) {
	if _, err := s.guard.RequireCandidate(ctx, caller); err != nil {
		return nil, err
	}
	app, err := s.applications.FindByCandidateAndJob(ctx, caller.IdentityID, jobID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return &recruitdto.ApplicationStatusOutput{Applied: false}, nil
		}
		return nil, err
	}
	return &recruitdto.ApplicationStatusOutput{
		Applied:       true,
		ApplicationID: app.ID.Hex(),
		Stage:         string(app.Stage),
	}, nil
}
