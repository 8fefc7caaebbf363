package notification

import (
	"context"
	"fmt"

	basesvc "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/base/service"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/common"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AuditStore lưu nhật ký thông báo
type AuditStore interface {
	Insert(ctx context.Context, record EmailAuditRecord) (*EmailAuditRecord, error)
	ListByApplication(ctx context.Context, applicationID primitive.ObjectID) ([]EmailAuditRecord, error)
}

// AuditService lưu EmailAuditRecord trên MongoDB
type AuditService struct {
	*basesvc.BaseServiceMongoImpl[EmailAuditRecord]
}

// NewAuditService tạo mới AuditService
func NewAuditService() (*AuditService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.EmailAudits)
	if !exist {
		return nil, fmt.Errorf("failed to get email_audits collection: %v", common.ErrNotFound)
	}
	return &AuditService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[EmailAuditRecord](collection),
	}, nil
}

// Insert ghi một bản ghi
func (s *AuditService) Insert(ctx context.Context, record EmailAuditRecord) (*EmailAuditRecord, error) {
	created, err := s.BaseServiceMongoImpl.InsertOne(ctx, record)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// ListByApplication nhật ký của một hồ sơ, mới nhất trước
func (s *AuditService) ListByApplication(ctx context.Context, applicationID primitive.ObjectID) ([]EmailAuditRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.BaseServiceMongoImpl.Find(ctx, bson.M{"candidateApplicationId": applicationID}, opts)
}
