package main

import (
	"fmt"

	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/config"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/global"
	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/logger"

	"go.mongodb.org/mongo-driver/mongo"
)

// InitRegistry đăng ký các collection vào registry dùng chung
func InitRegistry() error {
	if err := InitCollections(global.MongoDB_Session, global.MongoDB_ServerConfig); err != nil {
		return fmt.Errorf("failed to initialize collections: %w", err)
	}
	logger.GetAppLogger().Info("Initialized collection registry")
	return nil
}

// InitCollections khởi tạo và đăng ký các collections MongoDB
func InitCollections(client *mongo.Client, cfg *config.Configuration) error {
	db := client.Database(cfg.MongoDB_DBName)
	names := global.MongoDB_ColNames
	colNames := []string{
		names.Identities,
		names.HRProfiles,
		names.JobPostings,
		names.CandidateApplications,
		names.TestInstances,
		names.TestReports,
		names.EmailAudits,
	}

	log := logger.WithModule("registry")
	for _, name := range colNames {
		registered, err := global.RegistryCollections.Register(name, db.Collection(name))
		if err != nil {
			log.WithError(err).Errorf("Failed to register collection %s", name)
			return err
		}
		if registered {
			log.Debugf("Collection %s registered successfully", name)
		} else {
			log.Warnf("Collection %s already registered", name)
		}
	}
	return nil
}
