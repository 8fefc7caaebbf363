// Package authsvc - tài khoản, hồ sơ HR, đăng nhập và kiểm tra quyền.
package authsvc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	models "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/auth/models"
	basesvc "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/base/service"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/common"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IdentityStore truy cập tài khoản người dùng
type IdentityStore interface {
	Insert(ctx context.Context, identity models.Identity) (*models.Identity, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Identity, error)
	FindByEmail(ctx context.Context, email string) (*models.Identity, error)
	FindManyByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Identity, error)
	ExistsRole(ctx context.Context, role models.Role) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// IdentityService lưu Identity trên MongoDB
type IdentityService struct {
	*basesvc.BaseServiceMongoImpl[models.Identity]
}

// NewIdentityService tạo mới IdentityService
func NewIdentityService() (*IdentityService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Identities)
	if !exist {
		return nil, fmt.Errorf("failed to get identities collection: %v", common.ErrNotFound)
	}
	return &IdentityService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Identity](collection),
	}, nil
}

// NormalizeEmail chuẩn hóa email trước khi lưu / tìm kiếm
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Insert tạo tài khoản mới, trùng email trả về ErrEmailTaken
func (s *IdentityService) Insert(ctx context.Context, identity models.Identity) (*models.Identity, error) {
	identity.Email = NormalizeEmail(identity.Email)
	created, err := s.BaseServiceMongoImpl.InsertOne(ctx, identity)
	if err != nil {
		if errors.Is(err, common.ErrDuplicate) {
			return nil, common.ErrEmailTaken
		}
		return nil, err
	}
	return &created, nil
}

// FindByID tìm tài khoản theo id
func (s *IdentityService) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Identity, error) {
	identity, err := s.BaseServiceMongoImpl.FindOneById(ctx, id)
	if err != nil {
		return nil, err
	}
	return &identity, nil
}

// FindByEmail tìm tài khoản theo email
func (s *IdentityService) FindByEmail(ctx context.Context, email string) (*models.Identity, error) {
	identity, err := s.BaseServiceMongoImpl.FindOne(ctx, bson.M{"email": NormalizeEmail(email)}, nil)
	if err != nil {
		return nil, err
	}
	return &identity, nil
}

// FindManyByIDs lấy nhiều tài khoản bằng một truy vấn $in
func (s *IdentityService) FindManyByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Identity, error) {
	return s.BaseServiceMongoImpl.FindManyByIds(ctx, ids)
}

// ExistsRole kiểm tra đã có tài khoản nào mang role này chưa
func (s *IdentityService) ExistsRole(ctx context.Context, role models.Role) (bool, error) {
	return s.BaseServiceMongoImpl.DocumentExists(ctx, bson.M{"role": role})
}

// Delete xóa tài khoản (dùng khi cần hoàn tác signup)
func (s *IdentityService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.BaseServiceMongoImpl.DeleteById(ctx, id)
}
