package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Tên các logger dùng trong hệ thống
const (
	NameApp         = "app"
	NameAudit       = "audit"
	NamePerformance = "performance"
	NameError       = "error"
)

var (
	loggers   = make(map[string]*logrus.Logger)
	hooks     []*AsyncHook
	loggersMu sync.Mutex

	config *LogConfig
)

// Init khởi tạo hệ thống logging với cấu hình
func Init(cfg *LogConfig) error {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	return initLocked(cfg)
}

func initLocked(cfg *LogConfig) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	config = cfg

	if config.Output == "file" || config.Output == "both" {
		if err := os.MkdirAll(config.LogPath, 0755); err != nil {
			return fmt.Errorf("failed to create logs directory: %w", err)
		}
	}
	return nil
}

// GetLogger trả về logger theo tên (app, audit, performance, error)
func GetLogger(name string) *logrus.Logger {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if config == nil {
		if err := initLocked(nil); err != nil {
			panic(fmt.Sprintf("Failed to initialize logger: %v", err))
		}
	}

	if l, ok := loggers[name]; ok {
		return l
	}

	l := createLogger(name)
	loggers[name] = l
	return l
}

// createLogger tạo logger mới, mọi writer đều đi qua AsyncHook để không block request
func createLogger(name string) *logrus.Logger {
	l := logrus.New()

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if config.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05.000",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
				logrus.FieldKeyFunc:  "function",
				logrus.FieldKeyFile:  "file",
			},
		})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05.000",
			CallerPrettyfier: func(f *runtime.Frame) (string, string) {
				s := strings.Split(f.Function, ".")
				return s[len(s)-1], fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line)
			},
		})
	}

	var writers []io.Writer
	if config.Output == "file" || config.Output == "both" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   filepath.Join(config.LogPath, name+".log"),
			MaxSize:    config.MaxSize,
			MaxBackups: config.MaxBackups,
			MaxAge:     config.MaxAge,
			Compress:   config.Compress,
		})
	}
	if config.Output == "stdout" || config.Output == "both" {
		writers = append(writers, os.Stdout)
	}

	if len(writers) > 0 {
		hook := NewAsyncHook(writers, config.BufferSize)
		hook.service = name
		hooks = append(hooks, hook)
		l.AddHook(hook)
		l.SetOutput(io.Discard)
	}

	l.SetReportCaller(true)
	return l
}

// Shutdown đợi các hook ghi hết log còn trong hàng đợi
func Shutdown() {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	for _, h := range hooks {
		_ = h.Close()
	}
	hooks = nil
	loggers = make(map[string]*logrus.Logger)
}

// GetAppLogger trả về logger chính của ứng dụng
func GetAppLogger() *logrus.Logger {
	return GetLogger(NameApp)
}

// GetAuditLogger trả về logger cho audit (quyết định của HR, nộp bài)
func GetAuditLogger() *logrus.Logger {
	return GetLogger(NameAudit)
}

// GetPerformanceLogger trả về logger đo thời gian gọi dịch vụ AI
func GetPerformanceLogger() *logrus.Logger {
	return GetLogger(NamePerformance)
}

// GetErrorLogger trả về logger cho lỗi
func GetErrorLogger() *logrus.Logger {
	return GetLogger(NameError)
}
