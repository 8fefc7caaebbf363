package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration chứa thông tin tĩnh cần thiết để chạy ứng dụng
type Configuration struct {
	Address               string `env:"ADDRESS" envDefault:":8080"`                // Địa chỉ server
	JwtSecret             string `env:"JWT_SECRET,required"`                       // Bí mật ký JWT phiên đăng nhập
	JwtTTLHours           int    `env:"JWT_TTL_HOURS" envDefault:"24"`             // Thời hạn token phiên
	SaltRounds            int    `env:"SALT_ROUNDS" envDefault:"10"`               // bcrypt cost
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required"`           // URL kết nối cơ sở dữ liệu
	MongoDB_DBName        string `env:"MONGODB_DBNAME,required"`                   // Tên cơ sở dữ liệu
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`               // Các origins được phép (phân cách bởi dấu phẩy, * = tất cả)
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"` // Cho phép gửi credentials
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"100"`           // Số request tối đa trong window
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"`         // Thời gian window (giây)
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`      // Bật/tắt rate limiting
	BodyLimitMB           int    `env:"BODY_LIMIT_MB" envDefault:"20"`             // Giới hạn body (résumé base64 khá lớn)

	// Dịch vụ AI (chấm CV, sinh đề, chấm bài)
	AIServiceURL     string `env:"AI_SERVICE_URL" envDefault:"http://127.0.0.1:5000"`
	AITimeoutSeconds int    `env:"AI_TIMEOUT_SECONDS" envDefault:"60"`

	// Bài test
	TestWindowHours   int    `env:"TEST_WINDOW_HOURS" envDefault:"72"`               // Hạn làm bài tính từ lúc được chọn
	TestLinkBareIDs   bool   `env:"TEST_LINK_BARE_IDS" envDefault:"true"`            // Cho phép link mời dạng /test/{candidateId}/{jobId}
	TestLinkSecret    string `env:"TEST_LINK_SECRET"`                                // Bí mật ký link mời, rỗng thì dùng JWT_SECRET
	FrontendURL       string `env:"FRONTEND_URL" envDefault:"http://localhost:8081"` // Gốc của link mời trong email
	ResumeTextPreview int    `env:"RESUME_TEXT_PREVIEW" envDefault:"300"`            // Số ký tự résumé text trả về trong danh sách ứng viên

	// Worker chấm lại bài dừng ở answers_submitted
	EvalRetryEnabled         bool `env:"EVAL_RETRY_ENABLED" envDefault:"true"`
	EvalRetryIntervalSeconds int  `env:"EVAL_RETRY_INTERVAL_SECONDS" envDefault:"120"` // Chu kỳ quét
	EvalRetryAfterSeconds    int  `env:"EVAL_RETRY_AFTER_SECONDS" envDefault:"300"`    // Bài nộp quá lâu mới chấm lại
	EvalRetryBatch           int  `env:"EVAL_RETRY_BATCH" envDefault:"20"`             // Số bài tối đa mỗi lần quét

	// SMTP (tùy chọn - SMTP_HOST rỗng thì chỉ ghi email audit)
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPFrom     string `env:"SMTP_FROM" envDefault:"no-reply@recruit.local"`

	// TLS/HTTPS Configuration
	EnableTLS   bool   `env:"ENABLE_TLS" envDefault:"false"` // Bật HTTPS
	TLSCertFile string `env:"TLS_CERT_FILE"`                 // Đường dẫn đến file certificate
	TLSKeyFile  string `env:"TLS_KEY_FILE"`                  // Đường dẫn đến file private key
}

// AITimeout trả về timeout cho mỗi lần gọi dịch vụ AI
func (c *Configuration) AITimeout() time.Duration {
	if c.AITimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.AITimeoutSeconds) * time.Second
}

// TestWindow trả về khoảng thời gian ứng viên được truy cập bài test
func (c *Configuration) TestWindow() time.Duration {
	if c.TestWindowHours <= 0 {
		return 72 * time.Hour
	}
	return time.Duration(c.TestWindowHours) * time.Hour
}

// LinkSecret trả về bí mật dùng ký link mời làm bài
func (c *Configuration) LinkSecret() string {
	if c.TestLinkSecret != "" {
		return c.TestLinkSecret
	}
	return c.JwtSecret
}

// getEnvPath trả về đường dẫn đến file env dựa trên môi trường
func getEnvPath() string {
	goEnv := os.Getenv("GO_ENV")
	if goEnv == "" {
		goEnv = "development"
	}

	currentDir, err := os.Getwd()
	if err != nil {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể lấy được thư mục hiện tại: %v\n", err)
		return ""
	}

	// Đi ngược lên thư mục cha cho tới khi gặp config/env
	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(envDir, fmt.Sprintf("%s.env", goEnv))
		}
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig đọc cấu hình từ file env (nếu có) rồi parse biến môi trường.
// Không có file env thì chỉ dùng biến môi trường của process.
func NewConfig() (*Configuration, error) {
	if envPath := getEnvPath(); envPath != "" {
		if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("cannot load env file %s: %w", envPath, err)
		}
	}

	cfg := Configuration{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("cannot parse config: %w", err)
	}
	return &cfg, nil
}
