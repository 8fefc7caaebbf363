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

// TestService lưu TestInstance trên MongoDB
type TestService struct {
	*basesvc.BaseServiceMongoImpl[models.TestInstance]
}

// NewTestService tạo mới TestService
func NewTestService() (*TestService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.TestInstances)
	if !exist {
		return nil, fmt.Errorf("failed to get test_instances collection: %v", common.ErrNotFound)
	}
	return &TestService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.TestInstance](collection),
	}, nil
}

// Insert tạo bài test ở state created với câu trả lời rỗng
func (s *TestService) Insert(ctx context.Context, test models.TestInstance) (*models.TestInstance, error) {
	test.State = models.TestStateCreated
	test.Answers = models.Answers{MCQs: []string{}, Pseudocode: []string{}, Theory: []string{}}
	created, err := s.BaseServiceMongoImpl.InsertOne(ctx, test)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// FindByApplication bài test của một hồ sơ
func (s *TestService) FindByApplication(ctx context.Context, applicationID primitive.ObjectID) (*models.TestInstance, error) {
	test, err := s.BaseServiceMongoImpl.FindOne(ctx, bson.M{"candidateApplicationId": applicationID}, nil)
	if err != nil {
		return nil, err
	}
	return &test, nil
}

// FindManyByApplications bài test của nhiều hồ sơ (một truy vấn $in)
func (s *TestService) FindManyByApplications(ctx context.Context, applicationIDs []primitive.ObjectID) ([]models.TestInstance, error) {
	if len(applicationIDs) == 0 {
		return []models.TestInstance{}, nil
	}
	return s.BaseServiceMongoImpl.Find(ctx, bson.M{"candidateApplicationId": bson.M{"$in": applicationIDs}}, nil)
}

// ExtendDeadline gia hạn truy cập, chỉ khi bài chưa nộp
func (s *TestService) ExtendDeadline(ctx context.Context, id primitive.ObjectID, deadline int64) (*models.TestInstance, error) {
	return s.cas(ctx, id,
		bson.M{"state": models.TestStateCreated},
		&basesvc.UpdateData{Set: map[string]interface{}{"accessDeadline": deadline}},
	)
}

// SubmitAnswers ghi câu trả lời một lần duy nhất
func (s *TestService) SubmitAnswers(ctx context.Context, id primitive.ObjectID, answers models.Answers, submittedAt int64) (*models.TestInstance, error) {
	return s.cas(ctx, id,
		bson.M{
			"state":                models.TestStateCreated,
			"answers.mcqs.0":       bson.M{"$exists": false},
			"answers.pseudocode.0": bson.M{"$exists": false},
			"answers.theory.0":     bson.M{"$exists": false},
		},
		&basesvc.UpdateData{Set: map[string]interface{}{
			"state":       models.TestStateAnswersSubmitted,
			"answers":     answers,
			"submittedAt": submittedAt,
		}},
	)
}

// MarkEvaluated answers_submitted -> evaluated
func (s *TestService) MarkEvaluated(ctx context.Context, id primitive.ObjectID) (*models.TestInstance, error) {
	return s.cas(ctx, id,
		bson.M{"state": models.TestStateAnswersSubmitted},
		&basesvc.UpdateData{Set: map[string]interface{}{"state": models.TestStateEvaluated}},
	)
}

// ListPendingEvaluation bài đã nộp nhưng chưa chấm xong
func (s *TestService) ListPendingEvaluation(ctx context.Context, submittedBefore int64, limit int64) ([]models.TestInstance, error) {
	opts := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return s.BaseServiceMongoImpl.Find(ctx, bson.M{
		"state":       models.TestStateAnswersSubmitted,
		"submittedAt": bson.M{"$lte": submittedBefore},
	}, opts)
}

func (s *TestService) cas(ctx context.Context, id primitive.ObjectID, cond bson.M, update *basesvc.UpdateData) (*models.TestInstance, error) {
	filter := bson.M{"_id": id}
	for k, v := range cond {
		filter[k] = v
	}
	updated, err := s.BaseServiceMongoImpl.FindOneAndUpdate(ctx, filter, update, nil)
	if err == nil {
		return &updated, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}
	return nil, casMiss(ctx, s.BaseServiceMongoImpl.DocumentExists, id)
}
