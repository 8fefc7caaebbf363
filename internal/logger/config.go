package logger

import (
	"os"
	"strings"

	"github.com/caarlos0/env"
)

// LogConfig chứa cấu hình cho hệ thống logging
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`   // trace, debug, info, warn, error
	Format string `env:"LOG_FORMAT" envDefault:"text"`  // json, text
	Output string `env:"LOG_OUTPUT" envDefault:"both"`  // file, stdout, both

	// Xoay vòng file log (lumberjack)
	MaxSize    int  `env:"LOG_MAX_SIZE" envDefault:"100"`   // MB
	MaxBackups int  `env:"LOG_MAX_BACKUPS" envDefault:"10"` // Số file cũ giữ lại
	MaxAge     int  `env:"LOG_MAX_AGE" envDefault:"30"`     // Số ngày giữ lại
	Compress   bool `env:"LOG_COMPRESS" envDefault:"true"`  // Nén file cũ

	LogPath    string `env:"LOG_PATH" envDefault:"./logs"`
	BufferSize int    `env:"LOG_BUFFER_SIZE" envDefault:"1000"` // Số entry tối đa trong hàng đợi async
}

// DefaultConfig đọc cấu hình logging từ biến môi trường.
// Production mặc định dùng JSON, development dùng text và level debug.
func DefaultConfig() *LogConfig {
	cfg := &LogConfig{}
	if err := env.Parse(cfg); err != nil {
		cfg = &LogConfig{Level: "info", Format: "text", Output: "both", MaxSize: 100, MaxBackups: 10, MaxAge: 30, Compress: true, LogPath: "./logs", BufferSize: 1000}
	}

	goEnv := os.Getenv("GO_ENV")
	if goEnv == "" || goEnv == "development" {
		if os.Getenv("LOG_LEVEL") == "" {
			cfg.Level = "debug"
		}
	} else if os.Getenv("LOG_FORMAT") == "" {
		cfg.Format = "json"
	}

	cfg.Level = strings.ToLower(cfg.Level)
	cfg.Format = strings.ToLower(cfg.Format)
	cfg.Output = strings.ToLower(cfg.Output)
	return cfg
}
