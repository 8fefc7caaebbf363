package authsvc

import (
	"context"
	"errors"

	models "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/auth/models"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/common"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JobOwnership trả về id hồ sơ HR sở hữu job (recruit cài đặt, tránh import vòng)
type JobOwnership interface {
	JobOwner(ctx context.Context, jobID primitive.ObjectID) (primitive.ObjectID, error)
}

// Guard kiểm tra vai trò và quyền sở hữu trước mọi thao tác ghi.
// Mọi lỗi tra cứu đều là từ chối.
type Guard struct {
	identities IdentityStore
	profiles   HRProfileStore
	jobs       JobOwnership
}

// NewGuard tạo Guard
func NewGuard(identities IdentityStore, profiles HRProfileStore, jobs JobOwnership) *Guard {
	return &Guard{identities: identities, profiles: profiles, jobs: jobs}
}

// RequireRole đọc lại tài khoản từ store và kiểm tra role
func (g *Guard) RequireRole(ctx context.Context, identityID primitive.ObjectID, roles ...models.Role) (*models.Identity, error) {
	identity, err := g.identities.FindByID(ctx, identityID)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			logger.WithContext(ctx).WithError(err).WithField("identity_id", identityID.Hex()).Warn("[GUARD] Identity lookup failed, denying")
		}
		return nil, common.ErrForbiddenRole
	}
	for _, role := range roles {
		if identity.Role == role {
			return identity, nil
		}
	}
	return nil, common.ErrForbiddenRole
}

// RequireHR yêu cầu role hr và có HRProfile
func (g *Guard) RequireHR(ctx context.Context, caller models.CallerContext) (*models.HRProfile, error) {
	if _, err := g.RequireRole(ctx, caller.IdentityID, models.RoleHR); err != nil {
		return nil, err
	}
	profile, err := g.profiles.FindByIdentity(ctx, caller.IdentityID)
	if err != nil {
		return nil, common.ErrForbiddenRole
	}
	return profile, nil
}

// RequireCandidate yêu cầu role candidate
func (g *Guard) RequireCandidate(ctx context.Context, caller models.CallerContext) (*models.Identity, error) {
	return g.RequireRole(ctx, caller.IdentityID, models.RoleCandidate)
}

// RequireOwnership job không tồn tại trả NotFound, job của HR khác trả ErrNotJobOwner
func (g *Guard) RequireOwnership(ctx context.Context, hrProfileID, jobID primitive.ObjectID) error {
	owner, err := g.jobs.JobOwner(ctx, jobID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return err
	}
	if owner != hrProfileID {
		return common.ErrNotJobOwner
	}
	return nil
}
