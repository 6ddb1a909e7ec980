package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	CORS     CORSConfig
	GenAI    GenAIConfig
	Checkout CheckoutConfig
	Images   ImageConfig
	S3       S3Config
}

type ServerConfig struct {
	Port        string
	GinMode     string
	Environment string
}

type LogConfig struct {
	Level  string
	Format string // console, json
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

type SessionConfig struct {
	Secret        string
	TTL           time.Duration
	CookieName    string
	SweepSchedule string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// GenAIConfig configures the generative AI provider. An empty APIKey disables
// chat and image generation without stopping the server.
type GenAIConfig struct {
	APIKey           string
	ChatModel        string
	ImageModel       string
	ImageAspectRatio string
	Timeout          time.Duration
}

type CheckoutConfig struct {
	ShippingFee    int64
	PaymentLatency time.Duration
	MerchantID     string
}

type ImageConfig struct {
	Store string // datauri, s3
}

type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	BaseURL         string // CloudFront or S3 direct URL
	Folder          string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			GinMode:     getEnv("GIN_MODE", "debug"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", ""),
			Format: getEnv("LOG_FORMAT", "console"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "admin"),
			Password: getEnv("DB_PASSWORD", "1234"),
			DBName:   getEnv("DB_NAME", "wooahhan"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Enabled:  parseBool(getEnv("REDIS_ENABLED", "false")),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       parseInt(getEnv("REDIS_DB", "0"), 0),
		},
		Session: SessionConfig{
			Secret:        getEnv("SESSION_SECRET", "your-session-secret"),
			TTL:           parseDuration(getEnv("SESSION_TTL", "24h"), 24*time.Hour),
			CookieName:    getEnv("SESSION_COOKIE_NAME", "wooahhan_session"),
			SweepSchedule: getEnv("SESSION_SWEEP_SCHEDULE", "@every 10m"),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		},
		GenAI: GenAIConfig{
			APIKey:           getEnv("API_KEY", os.Getenv("GEMINI_API_KEY")),
			ChatModel:        getEnv("GENAI_CHAT_MODEL", "gemini-3-flash-preview"),
			ImageModel:       getEnv("GENAI_IMAGE_MODEL", "gemini-2.5-flash-image"),
			ImageAspectRatio: getEnv("GENAI_IMAGE_ASPECT_RATIO", "1:1"),
			Timeout:          parseDuration(getEnv("GENAI_TIMEOUT", "60s"), 60*time.Second),
		},
		Checkout: CheckoutConfig{
			ShippingFee:    int64(parseInt(getEnv("CHECKOUT_SHIPPING_FEE", "3500"), 3500)),
			PaymentLatency: parseDuration(getEnv("CHECKOUT_PAYMENT_LATENCY", "1500ms"), 1500*time.Millisecond),
			MerchantID:     getEnv("CHECKOUT_MERCHANT_ID", "WOOAHHAN-SIM"),
		},
		Images: ImageConfig{
			Store: getEnv("IMAGE_STORE", "datauri"),
		},
		S3: S3Config{
			Region:          getEnv("AWS_REGION", "ap-northeast-2"),
			Bucket:          getEnv("AWS_S3_BUCKET", ""),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			BaseURL:         getEnv("AWS_S3_BASE_URL", ""),
			Folder:          getEnv("AWS_S3_FOLDER", "generated"),
		},
	}

	if config.Log.Level == "" {
		config.Log.Level = "info"
		if config.Server.Environment == "development" {
			config.Log.Level = "debug"
		}
	}

	return config, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// AIEnabled reports whether a credential for the generative AI provider is set.
func (c *GenAIConfig) AIEnabled() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration %s, using default %s", s, fallback)
		return fallback
	}
	return duration
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		log.Printf("Invalid integer %s, using default %d", s, fallback)
		return fallback
	}
	return n
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return b
}

func parseSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
