package authsvc

import (
	"context"
	"fmt"

	models "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/auth/models"
	basesvc "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/base/service"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/common"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HRProfileStore truy cập hồ sơ HR. Các danh sách chỉ được sửa bằng $addToSet / $pull.
type HRProfileStore interface {
	Insert(ctx context.Context, profile models.HRProfile) (*models.HRProfile, error)
	FindByIdentity(ctx context.Context, identityID primitive.ObjectID) (*models.HRProfile, error)
	AddToList(ctx context.Context, profileID primitive.ObjectID, list models.HRList, id primitive.ObjectID) error
	RemoveFromList(ctx context.Context, profileID primitive.ObjectID, list models.HRList, id primitive.ObjectID) error
}

// HRProfileService lưu HRProfile trên MongoDB
type HRProfileService struct {
	*basesvc.BaseServiceMongoImpl[models.HRProfile]
}

// NewHRProfileService tạo mới HRProfileService
func NewHRProfileService() (*HRProfileService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.HRProfiles)
	if !exist {
		return nil, fmt.Errorf("failed to get hr_profiles collection: %v", common.ErrNotFound)
	}
	return &HRProfileService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.HRProfile](collection),
	}, nil
}

// Insert tạo hồ sơ HR, các danh sách luôn khởi tạo rỗng
func (s *HRProfileService) Insert(ctx context.Context, profile models.HRProfile) (*models.HRProfile, error) {
	if profile.CreatedJobIDs == nil {
		profile.CreatedJobIDs = []primitive.ObjectID{}
	}
	if profile.TestSelectedCandidateIDs == nil {
		profile.TestSelectedCandidateIDs = []primitive.ObjectID{}
	}
	if profile.InterviewSelectedCandidateIDs == nil {
		profile.InterviewSelectedCandidateIDs = []primitive.ObjectID{}
	}
	created, err := s.BaseServiceMongoImpl.InsertOne(ctx, profile)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// FindByIdentity tìm hồ sơ HR của một tài khoản
func (s *HRProfileService) FindByIdentity(ctx context.Context, identityID primitive.ObjectID) (*models.HRProfile, error) {
	profile, err := s.BaseServiceMongoImpl.FindOne(ctx, bson.M{"identityId": identityID}, nil)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// AddToList $addToSet id vào danh sách, gọi lại nhiều lần không tạo bản sao
func (s *HRProfileService) AddToList(ctx context.Context, profileID primitive.ObjectID, list models.HRList, id primitive.ObjectID) error {
	_, err := s.BaseServiceMongoImpl.UpdateById(ctx, profileID, &basesvc.UpdateData{
		AddToSet: map[string]interface{}{string(list): id},
	})
	return err
}

// RemoveFromList $pull id khỏi danh sách
func (s *HRProfileService) RemoveFromList(ctx context.Context, profileID primitive.ObjectID, list models.HRList, id primitive.ObjectID) error {
	_, err := s.BaseServiceMongoImpl.UpdateById(ctx, profileID, &basesvc.UpdateData{
		Pull: map[string]interface{}{string(list): id},
	})
	return err
}
