package main

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/lithammer/shortuuid/v4"

	apirouter "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/router"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/common"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/global"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/logger"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/metrics"
)

// InitFiberApp khởi tạo ứng dụng Fiber với các middleware cần thiết và đăng ký route của từng domain
func InitFiberApp(m *metrics.Metrics, regs ...apirouter.RegisterFunc) (*fiber.App, error) {
	cfg := global.MongoDB_ServerConfig
	bodyLimit := cfg.BodyLimitMB
	if bodyLimit <= 0 {
		bodyLimit = 20
	}

	app := fiber.New(fiber.Config{
		AppName:       "Candidate Assessment API",
		ServerHeader:  "Candidate Assessment API",
		StrictRouting: true,
		CaseSensitive: true,
		UnescapePath:  true,

		// Résumé PDF gửi qua multipart
		BodyLimit:       bodyLimit * 1024 * 1024,
		ReadBufferSize:  8192,
		WriteBufferSize: 4096,

		// Submit chờ dịch vụ AI chấm bài nên WriteTimeout phải lớn hơn AI timeout
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.AITimeout() + 30*time.Second,
		IdleTimeout:  120 * time.Second,

		ErrorHandler: errorHandler,
	})

	// 1. Request ID, đẩy vào context để log ở service có request_id
	app.Use(requestid.New(requestid.Config{
		Header: fiber.HeaderXRequestID,
		Generator: func() string {
			return shortuuid.New()
		},
	}))
	app.Use(func(c fiber.Ctx) error {
		if rid := logger.RequestID(c); rid != "" {
			c.SetContext(context.WithValue(c.Context(), logger.RequestIDKey, rid))
		}
		return c.Next()
	})

	// 2. CORS, đặt trước các middleware khác để preflight không bị chặn
	allowOrigins := []string{"*"}
	if cfg.CORS_Origins != "*" {
		allowOrigins = strings.Split(cfg.CORS_Origins, ",")
		for i, origin := range allowOrigins {
			allowOrigins[i] = strings.TrimSpace(origin)
		}
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"Authorization",
			"X-Request-ID",
			"X-Requested-With",
		},
		AllowCredentials: cfg.CORS_AllowCredentials,
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		MaxAge:           24 * 60 * 60,
	}))

	// 3. Security headers
	app.Use(func(c fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		return c.Next()
	})

	// 4. Rate limit theo IP
	log := logger.GetAppLogger()
	if cfg.RateLimit_Enabled && cfg.RateLimit_Max > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimit_Max,
			Expiration: time.Duration(cfg.RateLimit_Window) * time.Second,
			KeyGenerator: func(c fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c fiber.Ctx) error {
				return c.Status(common.StatusTooManyRequests).JSON(fiber.Map{
					"code":    common.ErrCodeValidationInput.Code,
					"message": "Too many requests, please try again later",
					"status":  "error",
				})
			},
			Next: func(c fiber.Ctx) bool {
				return c.Path() == "/health" || c.Path() == "/metrics" || c.Method() == "OPTIONS"
			},
		}))
		log.Infof("Rate limiting enabled: %d requests per %d seconds", cfg.RateLimit_Max, cfg.RateLimit_Window)
	} else {
		log.Info("Rate limiting disabled")
	}

	// 5. Recover
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e interface{}) {
			logger.WithRequest(c).WithField("panic", e).Error("Panic recovered")
		},
	}))

	// 6. Metrics theo route
	app.Use(m.Middleware())

	app.Get("/metrics", m.Handler())
	app.Get("/health", handleHealth)

	if err := apirouter.SetupRoutes(app, regs...); err != nil {
		return nil, err
	}
	return app, nil
}

// errorHandler trả lỗi của fiber (404 route, body quá lớn, ...) theo format chuẩn
func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := common.MsgInternalError
	errorCode := common.ErrCodeInternalServer.Code

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
		switch code {
		case fiber.StatusBadRequest, fiber.StatusRequestEntityTooLarge:
			errorCode = common.ErrCodeValidationInput.Code
		case fiber.StatusUnauthorized:
			errorCode = common.ErrCodeAuthToken.Code
		case fiber.StatusForbidden:
			errorCode = common.ErrCodeAuthRole.Code
		case fiber.StatusNotFound, fiber.StatusMethodNotAllowed:
			errorCode = common.ErrCodeDatabaseQuery.Code
		}
	}

	if code >= fiber.StatusInternalServerError {
		logger.WithRequest(c).WithFields(map[string]interface{}{
			"code":      code,
			"errorCode": errorCode,
			"error":     err.Error(),
		}).Error("Request error")
	}

	return c.Status(code).JSON(fiber.Map{
		"code":    errorCode,
		"message": message,
		"status":  "error",
	})
}

// handleHealth ping MongoDB
func handleHealth(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	state, database, status := "ok", "up", common.StatusOK
	if global.MongoDB_Session == nil || global.MongoDB_Session.Ping(ctx, nil) != nil {
		state, database, status = "degraded", "down", common.StatusServiceUnavailable
	}
	return c.Status(status).JSON(fiber.Map{
		"status":   state,
		"database": database,
		"time":     time.Now().UTC().Format(time.RFC3339),
	})
}
