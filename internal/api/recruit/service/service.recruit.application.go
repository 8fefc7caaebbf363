package recruitsvc

import (
	"context"
	"errors"
	"fmt"

	basesvc "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/base/service"
	models "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/recruit/models"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/common"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ApplicationService lưu CandidateApplication trên MongoDB.
// Mọi chuyển giai đoạn đi qua CompareAndSwap (một FindOneAndUpdate có điều kiện trong filter).
type ApplicationService struct {
	*basesvc.BaseServiceMongoImpl[models.CandidateApplication]
}

// NewApplicationService tạo mới ApplicationService
func NewApplicationService() (*ApplicationService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.CandidateApplications)
	if !exist {
		return nil, fmt.Errorf("failed to get candidate_applications collection: %v", common.ErrNotFound)
	}
	return &ApplicationService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.CandidateApplication](collection),
	}, nil
}

// Insert tạo hồ sơ, vi phạm unique (identityId, jobPostingId) trả ErrAlreadyApplied
func (s *ApplicationService) Insert(ctx context.Context, app models.CandidateApplication) (*models.CandidateApplication, error) {
	if app.StageHistory == nil {
		app.StageHistory = []models.StageRecord{}
	}
	created, err := s.BaseServiceMongoImpl.InsertOne(ctx, app)
	if err != nil {
		if errors.Is(err, common.ErrDuplicate) {
			return nil, common.ErrAlreadyApplied
		}
		return nil, err
	}
	return &created, nil
}

// FindByID tìm hồ sơ theo id
func (s *ApplicationService) FindByID(ctx context.Context, id primitive.ObjectID) (*models.CandidateApplication, error) {
	app, err := s.BaseServiceMongoImpl.FindOneById(ctx, id)
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// FindByCandidateAndJob tìm hồ sơ của một ứng viên cho một job
func (s *ApplicationService) FindByCandidateAndJob(ctx context.Context, identityID, jobID primitive.ObjectID) (*models.CandidateApplication, error) {
	app, err := s.BaseServiceMongoImpl.FindOne(ctx, bson.M{"identityId": identityID, "jobPostingId": jobID}, nil)
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// ListByJob danh sách hồ sơ của job, điểm CV cao trước
func (s *ApplicationService) ListByJob(ctx context.Context, jobID primitive.ObjectID, filter ApplicationFilter) ([]models.CandidateApplication, error) {
	query := bson.M{"jobPostingId": jobID}
	if filter.EligibleForTest != nil {
		query["isEligibleForTest"] = *filter.EligibleForTest
	}
	if filter.EligibleForInterview != nil {
		query["isEligibleForInterview"] = *filter.EligibleForInterview
	}
	if filter.HasTestScore {
		query["testScore"] = bson.M{"$ne": nil}
	}
	opts := options.Find().SetSort(bson.D{{Key: "resumeMatchScore", Value: -1}, {Key: "createdAt", Value: 1}})
	return s.BaseServiceMongoImpl.Find(ctx, query, opts)
}

// CompareAndSwap ghi change khi hồ sơ còn thỏa cond
func (s *ApplicationService) CompareAndSwap(ctx context.Context, id primitive.ObjectID, cond ApplicationCondition, change ApplicationChange) (*models.CandidateApplication, error) {
	filter := bson.M{"_id": id}
	if len(cond.Stages) == 1 {
		filter["stage"] = cond.Stages[0]
	} else if len(cond.Stages) > 1 {
		filter["stage"] = bson.M{"$in": cond.Stages}
	}
	if cond.EligibleForTest != nil {
		filter["isEligibleForTest"] = *cond.EligibleForTest
	}
	if cond.EligibleForInterview != nil {
		filter["isEligibleForInterview"] = *cond.EligibleForInterview
	}

	updated, err := s.BaseServiceMongoImpl.FindOneAndUpdate(ctx, filter, applicationUpdate(change), nil)
	if err == nil {
		return &updated, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}
	return nil, casMiss(ctx, s.BaseServiceMongoImpl.DocumentExists, id)
}

func applicationUpdate(change ApplicationChange) *basesvc.UpdateData {
	set := map[string]interface{}{}
	if change.Stage != nil {
		set["stage"] = *change.Stage
	}
	if change.EligibleForTest != nil {
		set["isEligibleForTest"] = *change.EligibleForTest
	}
	if change.EligibleForInterview != nil {
		set["isEligibleForInterview"] = *change.EligibleForInterview
	}
	if change.ResumeText != nil {
		set["resumeText"] = *change.ResumeText
	}
	if change.ResumeMatchScore != nil {
		set["resumeMatchScore"] = *change.ResumeMatchScore
	}
	if change.TestScore != nil {
		set["testScore"] = *change.TestScore
	}
	if change.TestReportText != nil {
		set["testReportText"] = *change.TestReportText
	}
	update := &basesvc.UpdateData{Set: set}
	if change.History != nil {
		update.Push = map[string]interface{}{"stageHistory": *change.History}
	}
	return update
}

// casMiss phân biệt "không có document" với "điều kiện không khớp" sau một ghi có điều kiện trượt
func casMiss(ctx context.Context, exists func(context.Context, interface{}) (bool, error), id primitive.ObjectID) error {
	ok, err := exists(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if !ok {
		return common.ErrNotFound
	}
	return ErrConditionFailed
}
