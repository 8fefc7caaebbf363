package main

import (
	"context"
	"fmt"
	"time"

	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/config"
	authmodels "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/auth/models"
	recruitmodels "github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/api/recruit/models"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/database"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/global"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/logger"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/notification"
)

// initLogger khởi tạo logger cho toàn bộ ứng dụng (đọc LOG_* từ env)
func initLogger() {
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	logger.GetAppLogger().Info("Logger system initialized successfully")
}

// InitGlobal khởi tạo các biến toàn cục
func InitGlobal() error {
	initColNames()
	initValidator()
	if err := initConfig(); err != nil {
		return err
	}
	return initDatabase_MongoDB()
}

// initColNames khởi tạo tên các collection trong database
func initColNames() {
	global.MongoDB_ColNames = global.DefaultCollectionNames()
	logger.GetAppLogger().Info("Initialized collection names")
}

// initValidator đăng ký các custom validator (no_xss, role)
func initValidator() {
	global.InitValidator()
	logger.GetAppLogger().Info("Initialized validator")
}

// initConfig đọc cấu hình server
func initConfig() error {
	cfg, err := config.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}
	global.MongoDB_ServerConfig = cfg
	logger.GetAppLogger().Info("Initialized server config")
	return nil
}

// initDatabase_MongoDB kết nối MongoDB và tạo index theo tag của model
func initDatabase_MongoDB() error {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.MongoDB_ServerConfig)
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	logger.GetAppLogger().Info("Connected to MongoDB")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := global.MongoDB_Session.Database(global.MongoDB_ServerConfig.MongoDB_DBName)
	names := global.MongoDB_ColNames
	models := map[string]interface{}{
		names.Identities:            authmodels.Identity{},
		names.HRProfiles:            authmodels.HRProfile{},
		names.JobPostings:           recruitmodels.JobPosting{},
		names.CandidateApplications: recruitmodels.CandidateApplication{},
		names.TestInstances:         recruitmodels.TestInstance{},
		names.TestReports:           recruitmodels.TestReport{},
		names.EmailAudits:           notification.EmailAuditRecord{},
	}
	for name, model := range models {
		// Tạo index lỗi thì không dừng server, chỉ log (index cũ có thể đang trùng tên)
		if err := database.CreateIndexes(ctx, db.Collection(name), model); err != nil {
			logger.WithModule("database").WithError(err).WithField("collection", name).Error("❌ [DATABASE] Failed to create indexes")
		}
	}
	return nil
}
