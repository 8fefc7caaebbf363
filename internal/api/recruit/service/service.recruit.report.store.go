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

// ReportService lưu TestReport trên MongoDB
type ReportService struct {
	*basesvc.BaseServiceMongoImpl[models.TestReport]
}

// NewReportService tạo mới ReportService
func NewReportService() (*ReportService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.TestReports)
	if !exist {
		return nil, fmt.Errorf("failed to get test_reports collection: %v", common.ErrNotFound)
	}
	return &ReportService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.TestReport](collection),
	}, nil
}

// Insert ghi report, unique index testInstanceId chặn report thứ hai
func (s *ReportService) Insert(ctx context.Context, report models.TestReport) (*models.TestReport, error) {
	created, err := s.BaseServiceMongoImpl.InsertOne(ctx, report)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// FindByApplication report của một hồ sơ
func (s *ReportService) FindByApplication(ctx context.Context, applicationID primitive.ObjectID) (*models.TestReport, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	report, err := s.BaseServiceMongoImpl.FindOne(ctx, bson.M{"candidateApplicationId": applicationID}, opts)
	if err != nil {
		return nil, err
	}
	return &report, nil
}
