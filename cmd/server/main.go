package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"golang.org/x/sync/errgroup"

	authrouter "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/auth/router"
	authsvc "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/auth/service"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/middleware"
	recruithdl "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/recruit/handler"
	recruitrouter "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/recruit/router"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/aiclient"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/database"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/global"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/logger"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/metrics"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/notification"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/worker"
)

// initAuthManager tạo AuthManager dùng chung cho AuthMiddleware
func initAuthManager() error {
	cfg := global.MongoDB_ServerConfig
	identities, err := authsvc.NewIdentityService()
	if err != nil {
		return fmt.Errorf("failed to create identity service: %w", err)
	}
	tokens := authsvc.NewTokenIssuer(cfg.JwtSecret, time.Duration(cfg.JwtTTLHours)*time.Hour)
	middleware.SetAuthManager(middleware.NewAuthManager(tokens, identities))
	return nil
}

// initNotifier ghi audit mọi thông báo, chỉ gửi mail khi có SMTP_HOST
func initNotifier() (*notification.Notifier, error) {
	cfg := global.MongoDB_ServerConfig
	audits, err := notification.NewAuditService()
	if err != nil {
		return nil, fmt.Errorf("failed to create email audit service: %w", err)
	}

	var sender notification.Sender
	if smtp := notification.NewSMTPSender(notification.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}); smtp != nil {
		sender = smtp
	} else {
		logger.GetAppLogger().Warn("SMTP_HOST is empty, notifications are recorded but not sent")
	}
	return notification.NewNotifier(audits, sender), nil
}

// resolvePath tìm đường dẫn tương đối tính từ thư mục chứa config/env
func resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	currentDir, err := os.Getwd()
	if err != nil {
		return path
	}
	for {
		if _, err := os.Stat(filepath.Join(currentDir, "config", "env")); err == nil {
			return filepath.Join(currentDir, path)
		}
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return path
		}
		currentDir = parentDir
	}
}

// listen chạy server, HTTPS khi bật TLS và có đủ cert/key
func listen(app *fiber.App) error {
	cfg := global.MongoDB_ServerConfig
	address := cfg.Address
	log := logger.GetAppLogger()

	if cfg.EnableTLS && cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		certPath := resolvePath(cfg.TLSCertFile)
		keyPath := resolvePath(cfg.TLSKeyFile)
		cert, err := tls.LoadX509KeyPair(certPath, keyPath)
		if err != nil {
			return fmt.Errorf("error loading TLS certificate: %w", err)
		}
		ln, err := net.Listen("tcp", address)
		if err != nil {
			return fmt.Errorf("error creating listener: %w", err)
		}
		tlsListener := tls.NewListener(ln, &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		})
		log.WithFields(map[string]interface{}{
			"address": address,
			"cert":    certPath,
		}).Info("Starting server with HTTPS/TLS")
		return app.Listener(tlsListener, fiber.ListenConfig{DisableStartupMessage: true})
	}

	log.WithFields(map[string]interface{}{
		"address":  address,
		"protocol": "HTTP",
	}).Info("Starting server with HTTP")
	return app.Listen(address, fiber.ListenConfig{DisableStartupMessage: true})
}

func run() error {
	if err := InitGlobal(); err != nil {
		return err
	}
	defer database.CloseInstance(global.MongoDB_Session)

	if err := InitRegistry(); err != nil {
		return err
	}
	if err := initAuthManager(); err != nil {
		return err
	}

	cfg := global.MongoDB_ServerConfig
	m := metrics.New()
	ai := aiclient.NewHTTPClient(cfg.AIServiceURL, cfg.AITimeout(), m)
	notifier, err := initNotifier()
	if err != nil {
		return err
	}

	recruitService, err := recruithdl.NewRecruitService(ai, notifier, m)
	if err != nil {
		return fmt.Errorf("failed to create recruit service: %w", err)
	}

	app, err := InitFiberApp(m, authrouter.Register, recruitrouter.Register(recruitService))
	if err != nil {
		return fmt.Errorf("failed to setup routes: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return listen(app)
	})
	if cfg.EvalRetryEnabled {
		retryWorker := worker.NewEvaluationRetryWorker(recruitService,
			time.Duration(cfg.EvalRetryIntervalSeconds)*time.Second,
			time.Duration(cfg.EvalRetryAfterSeconds)*time.Second,
			cfg.EvalRetryBatch,
		)
		g.Go(func() error {
			retryWorker.Start(gctx)
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		logger.GetAppLogger().Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func main() {
	initLogger()
	defer logger.Shutdown()

	if err := run(); err != nil {
		logger.GetAppLogger().WithError(err).Error("Server stopped with error")
		logger.Shutdown()
		os.Exit(1)
	}
	logger.GetAppLogger().Info("Server stopped")
}
