package middleware

import (
	"strings"
	"sync"

	models "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/auth/models"
	authsvc "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/auth/service"
	basehdl "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/base/handler"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/common"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Keys lưu trong c.Locals
const (
	LocalCaller = "caller"
	LocalUserID = "user_id"
)

// AuthManager xác thực token phiên và đọc lại tài khoản từ store
type AuthManager struct {
	tokens     *authsvc.TokenIssuer
	identities authsvc.IdentityStore
}

var (
	authManagerInstance *AuthManager
	authManagerMu       sync.RWMutex
)

// NewAuthManager tạo AuthManager
func NewAuthManager(tokens *authsvc.TokenIssuer, identities authsvc.IdentityStore) *AuthManager {
	return &AuthManager{tokens: tokens, identities: identities}
}

// SetAuthManager đặt instance dùng chung cho AuthMiddleware (gọi một lần khi khởi động)
func SetAuthManager(am *AuthManager) {
	authManagerMu.Lock()
	defer authManagerMu.Unlock()
	authManagerInstance = am
}

// GetAuthManager trả về instance dùng chung, panic nếu chưa khởi tạo
func GetAuthManager() *AuthManager {
	authManagerMu.RLock()
	defer authManagerMu.RUnlock()
	if authManagerInstance == nil {
		panic("middleware: AuthManager is not initialized")
	}
	return authManagerInstance
}

// AuthMiddleware middleware xác thực dùng AuthManager chung. roles rỗng thì chỉ cần đăng nhập.
func AuthMiddleware(roles ...models.Role) fiber.Handler {
	return GetAuthManager().Middleware(roles...)
}

// Middleware trả về fiber.Handler xác thực Bearer token.
// Role lấy từ store chứ không tin claim trong token.
func (am *AuthManager) Middleware(roles ...models.Role) fiber.Handler {
	return func(c fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			logger.WithRequest(c).Warn("❌ [AUTH] Missing Authorization header")
			return basehdl.HandleErrorResponse(c, common.ErrTokenMissing)
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			return basehdl.HandleErrorResponse(c, common.ErrTokenInvalid)
		}

		claims, err := am.tokens.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			return basehdl.HandleErrorResponse(c, err)
		}

		identityID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			return basehdl.HandleErrorResponse(c, common.ErrTokenInvalid)
		}

		identity, err := am.identities.FindByID(c.Context(), identityID)
		if err != nil {
			logger.WithRequest(c).WithFields(logrus.Fields{
				"identity_id": claims.UserID,
				"error":       err.Error(),
			}).Warn("❌ [AUTH] Token subject not found")
			return basehdl.HandleErrorResponse(c, common.ErrTokenInvalid)
		}

		if len(roles) > 0 && !hasRole(identity.Role, roles) {
			return basehdl.HandleErrorResponse(c, common.ErrForbiddenRole)
		}

		c.Locals(LocalCaller, models.CallerContext{IdentityID: identity.ID, Role: identity.Role})
		c.Locals(LocalUserID, identity.ID.Hex())
		return c.Next()
	}
}

func hasRole(role models.Role, allowed []models.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// GetCaller đọc CallerContext mà AuthMiddleware đã gắn vào request
func GetCaller(c fiber.Ctx) (models.CallerContext, error) {
	caller, ok := c.Locals(LocalCaller).(models.CallerContext)
	if !ok {
		return models.CallerContext{}, common.ErrTokenMissing
	}
	return caller, nil
}
