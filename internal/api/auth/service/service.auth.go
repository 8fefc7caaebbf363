package authsvc

import (
	"context"
	"errors"

	authdto "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/auth/dto"
	models "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/auth/models"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/common"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/logger"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// AuthService đăng ký, đăng nhập và đọc thông tin tài khoản
type AuthService struct {
	identities IdentityStore
	profiles   HRProfileStore
	tokens     *TokenIssuer
	cost       int
}

// NewAuthService tạo AuthService. cost là bcrypt cost (SALT_ROUNDS).
func NewAuthService(identities IdentityStore, profiles HRProfileStore, tokens *TokenIssuer, cost int) *AuthService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &AuthService{identities: identities, profiles: profiles, tokens: tokens, cost: cost}
}

// Tokens trả về TokenIssuer (middleware dùng để parse token)
func (s *AuthService) Tokens() *TokenIssuer {
	return s.tokens
}

// Signup tạo tài khoản. Chỉ cho phép một admin; role hr thì tạo luôn HRProfile.
func (s *AuthService) Signup(ctx context.Context, input *authdto.SignupInput) (*models.Identity, error) {
	role := models.Role(input.Role)
	if role == "" {
		role = models.RoleCandidate
	}
	if !role.Valid() {
		return nil, common.WithDetails(common.ErrInvalidInput, map[string]string{"role": "role"})
	}

	if role == models.RoleAdmin {
		exists, err := s.identities.ExistsRole(ctx, models.RoleAdmin)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, common.ErrAdminExists
		}
	}

	if _, err := s.identities.FindByEmail(ctx, input.Email); err == nil {
		return nil, common.ErrEmailTaken
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cost)
	if err != nil {
		return nil, common.NewError(common.ErrCodeInternalServer, "Cannot hash password", common.StatusInternalServerError, nil)
	}

	identity, err := s.identities.Insert(ctx, models.Identity{
		Name:         input.Name,
		Email:        NormalizeEmail(input.Email),
		Phone:        input.Phone,
		PasswordHash: string(hash),
		Role:         role,
	})
	if err != nil {
		return nil, err
	}

	if role == models.RoleHR {
		if _, err := s.profiles.Insert(ctx, models.HRProfile{IdentityID: identity.ID}); err != nil {
			// Không để lại tài khoản hr thiếu hồ sơ
			if delErr := s.identities.Delete(ctx, identity.ID); delErr != nil {
				logger.WithContext(ctx).WithError(delErr).WithField("identity_id", identity.ID.Hex()).Error("❌ [AUTH] Cannot roll back identity after HR profile failure")
			}
			return nil, err
		}
	}

	logger.Audit(ctx, "signup", logrus.Fields{"identity_id": identity.ID.Hex(), "role": string(role)})
	return identity, nil
}

// Signin kiểm tra email + mật khẩu, trả về token phiên
func (s *AuthService) Signin(ctx context.Context, input *authdto.SigninInput) (*authdto.SigninOutput, error) {
	identity, err := s.identities.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(input.Password)); err != nil {
		return nil, common.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(identity)
	if err != nil {
		return nil, err
	}
	return &authdto.SigninOutput{Token: token, User: identity}, nil
}

// Me trả về tài khoản của người gọi
func (s *AuthService) Me(ctx context.Context, caller models.CallerContext) (*models.Identity, error) {
	return s.identities.FindByID(ctx, caller.IdentityID)
}
