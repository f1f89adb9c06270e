package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App     AppConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Session SessionConfig
	Gemini  GeminiConfig
	Chat    ChatConfig
	Queue   QueueConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
}

// SessionConfig điều khiển vòng đời session trong memory
type SessionConfig struct {
	TTL       time.Duration // idle time trước khi session bị evict
	SweepCron string        // cron spec cho task session:sweep
}

// =====================================================
// GEMINI CONFIGURATION
// =====================================================

type GeminiConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration // provider-side timeout cho mỗi lần gọi
}

type ChatConfig struct {
	Greeting    string        // tin nhắn mở đầu của trợ lý, rỗng = không có
	WaitTimeout time.Duration // thời gian tối đa của GET chat?wait=true
}

type QueueConfig struct {
	Concurrency int
}

const defaultJWTSecret = "your-secret-key-change-in-production"

const defaultGreeting = "Xin chào! Tôi là Trợ lý AI của TechStore. Tôi có thể giúp bạn phân tích thông số kỹ thuật, so sánh sản phẩm hoặc tư vấn giải pháp công nghệ tối ưu dựa trên nhu cầu thực tế."

// Load đọc config từ environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "TechStore Session API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", defaultJWTSecret),
		},
		Session: SessionConfig{
			TTL:       getEnvDuration("SESSION_TTL", 2*time.Hour),
			SweepCron: getEnv("SESSION_SWEEP_CRON", "*/5 * * * *"),
		},
		Gemini: GeminiConfig{
			APIKey:  getEnv("GEMINI_API_KEY", ""),
			Model:   getEnv("GEMINI_MODEL", "gemini-3-flash-preview"),
			Timeout: getEnvDuration("GEMINI_TIMEOUT", 30*time.Second),
		},
		Chat: ChatConfig{
			Greeting:    getEnvRaw("CHAT_GREETING", defaultGreeting),
			WaitTimeout: getEnvDuration("CHAT_WAIT_TIMEOUT", 25*time.Second),
		},
		Queue: QueueConfig{
			Concurrency: getEnvInt("QUEUE_CONCURRENCY", 10),
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.Queue.Concurrency < 1 {
		return fmt.Errorf("QUEUE_CONCURRENCY must be at least 1")
	}

	// Production environment phải có JWT secret
	if c.App.Environment == "production" {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Gemini.APIKey == "" {
			fmt.Println("WARNING: GEMINI_API_KEY not set - chat will only answer with the fallback message")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvRaw phân biệt "không set" với "set rỗng"
func getEnvRaw(key, defaultValue string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
