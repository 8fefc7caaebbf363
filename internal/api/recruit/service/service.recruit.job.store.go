package recruitsvc

import (
	"context"
	"fmt"

	basesvc "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/base/service"
	models "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/recruit/models"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/common"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// JobService lưu JobPosting trên MongoDB
type JobService struct {
	*basesvc.BaseServiceMongoImpl[models.JobPosting]
}

// NewJobService tạo mới JobService
func NewJobService() (*JobService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.JobPostings)
	if !exist {
		return nil, fmt.Errorf("failed to get job_postings collection: %v", common.ErrNotFound)
	}
	return &JobService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.JobPosting](collection),
	}, nil
}

// Insert tạo job
func (s *JobService) Insert(ctx context.Context, job models.JobPosting) (*models.JobPosting, error) {
	if job.AppliedCandidateIDs == nil {
		job.AppliedCandidateIDs = []primitive.ObjectID{}
	}
	created, err := s.BaseServiceMongoImpl.InsertOne(ctx, job)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// FindByID tìm job theo id
func (s *JobService) FindByID(ctx context.Context, id primitive.ObjectID) (*models.JobPosting, error) {
	job, err := s.BaseServiceMongoImpl.FindOneById(ctx, id)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// ListByHR các job do một HR tạo, mới nhất trước
func (s *JobService) ListByHR(ctx context.Context, hrProfileID primitive.ObjectID) ([]models.JobPosting, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.BaseServiceMongoImpl.Find(ctx, bson.M{"hrProfileId": hrProfileID}, opts)
}

// ListAll toàn bộ job, không kèm danh sách ứng viên
func (s *JobService) ListAll(ctx context.Context) ([]models.JobPosting, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetProjection(bson.M{"appliedCandidateIds": 0})
	return s.BaseServiceMongoImpl.Find(ctx, nil, opts)
}

// AddApplicant $addToSet id hồ sơ vào danh sách ứng viên của job
func (s *JobService) AddApplicant(ctx context.Context, jobID, applicationID primitive.ObjectID) error {
	_, err := s.BaseServiceMongoImpl.UpdateById(ctx, jobID, &basesvc.UpdateData{
		AddToSet: map[string]interface{}{"appliedCandidateIds": applicationID},
	})
	return err
}

// JobOwner id hồ sơ HR sở hữu job
func (s *JobService) JobOwner(ctx context.Context, jobID primitive.ObjectID) (primitive.ObjectID, error) {
	opts := options.FindOne().SetProjection(bson.M{"hrProfileId": 1})
	job, err := s.BaseServiceMongoImpl.FindOne(ctx, bson.M{"_id": jobID}, opts)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return job.HRProfileID, nil
}
