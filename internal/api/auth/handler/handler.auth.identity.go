package authhdl

import (
	"fmt"
	"time"

	authdto "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/auth/dto"
	authsvc "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/auth/service"
	basehdl "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/base/handler"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/middleware"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/common"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/global"

	"github.com/gofiber/fiber/v3"
)

// AuthHandler xử lý đăng ký, đăng nhập và thông tin tài khoản
type AuthHandler struct {
	authService *authsvc.AuthService
}

// NewAuthHandler tạo AuthHandler từ các collection đã đăng ký và cấu hình server
func NewAuthHandler() (*AuthHandler, error) {
	identities, err := authsvc.NewIdentityService()
	if err != nil {
		return nil, fmt.Errorf("failed to create identity service: %v", err)
	}
	profiles, err := authsvc.NewHRProfileService()
	if err != nil {
		return nil, fmt.Errorf("failed to create hr profile service: %v", err)
	}
	cfg := global.MongoDB_ServerConfig
	if cfg == nil {
		return nil, fmt.Errorf("server config is not loaded")
	}
	tokens := authsvc.NewTokenIssuer(cfg.JwtSecret, time.Duration(cfg.JwtTTLHours)*time.Hour)
	return NewAuthHandlerWithService(authsvc.NewAuthService(identities, profiles, tokens, cfg.SaltRounds)), nil
}

// NewAuthHandlerWithService tạo AuthHandler với service có sẵn
func NewAuthHandlerWithService(svc *authsvc.AuthService) *AuthHandler {
	return &AuthHandler{authService: svc}
}

// HandleSignup đăng ký tài khoản mới
func (h *AuthHandler) HandleSignup(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var input authdto.SignupInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return basehdl.HandleErrorResponse(c, err)
		}
		identity, err := h.authService.Signup(c.Context(), &input)
		return basehdl.HandleResponseWithStatus(c, common.StatusCreated, common.MsgCreated, identity, err)
	})
}

// HandleSignin đăng nhập, trả về token phiên
func (h *AuthHandler) HandleSignin(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var input authdto.SigninInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return basehdl.HandleErrorResponse(c, err)
		}
		output, err := h.authService.Signin(c.Context(), &input)
		return basehdl.HandleResponse(c, output, err)
	})
}

// HandleMe trả về tài khoản của người gọi
func (h *AuthHandler) HandleMe(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		caller, err := middleware.GetCaller(c)
		if err != nil {
			return basehdl.HandleErrorResponse(c, err)
		}
		identity, err := h.authService.Me(c.Context(), caller)
		return basehdl.HandleResponse(c, identity, err)
	})
}
