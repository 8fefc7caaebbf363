// Package router đăng ký các route thuộc domain auth: signup, signin, me.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authhdl "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/auth/handler"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/middleware"
	apirouter "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/router"
)

// Register đăng ký route auth lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	authHandler, err := authhdl.NewAuthHandler()
	if err != nil {
		return fmt.Errorf("failed to create auth handler: %w", err)
	}
	RegisterWithHandler(v1, authHandler)
	return nil
}

// RegisterWithHandler đăng ký route auth với handler có sẵn
func RegisterWithHandler(v1 fiber.Router, h *authhdl.AuthHandler) {
	apirouter.RegisterRouteWithMiddleware(v1, "/auth", "POST", "/signup", nil, h.HandleSignup)
	apirouter.RegisterRouteWithMiddleware(v1, "/auth", "POST", "/signin", nil, h.HandleSignin)
	authOnly := middleware.AuthMiddleware()
	apirouter.RegisterRouteWithMiddleware(v1, "/auth", "GET", "/me", []fiber.Handler{authOnly}, h.HandleMe)
}
