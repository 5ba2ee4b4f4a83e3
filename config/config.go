package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	AllowedOrigins    string `mapstructure:"ALLOWED_ORIGINS"`

	// Gemini configuration.
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`
	GoogleAPIKey string `mapstructure:"GOOGLE_API_KEY"`
	GeminiModel  string `mapstructure:"GEMINI_MODEL"`

	// Lead webhook (n8n).
	LeadWebhookURL     string        `mapstructure:"LEAD_WEBHOOK_URL"`
	LeadWebhookTestURL string        `mapstructure:"LEAD_WEBHOOK_TEST_URL"`
	LeadWebhookTimeout time.Duration `mapstructure:"LEAD_WEBHOOK_TIMEOUT"`

	// Session storage.
	SessionStore string        `mapstructure:"SESSION_STORE"`
	SessionTTL   time.Duration `mapstructure:"SESSION_TTL"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`

	// Scheduling embed, without query parameters.
	CalEmbedURL string `mapstructure:"CAL_EMBED_URL"`
}

var AppConfig Config

func LoadConfig() {
	// A local .env is optional; real deployments inject the environment.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("ALLOWED_ORIGINS", "*")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GOOGLE_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash-001")
	viper.SetDefault("LEAD_WEBHOOK_URL", "https://n8n.spacetact.co.za/webhook/lead-capture")
	viper.SetDefault("LEAD_WEBHOOK_TEST_URL", "")
	viper.SetDefault("LEAD_WEBHOOK_TIMEOUT", 10*time.Second)
	viper.SetDefault("SESSION_STORE", "memory")
	viper.SetDefault("SESSION_TTL", 24*time.Hour)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("CAL_EMBED_URL", "https://cal.spacetact.co.za/kwanele/discovery-call")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// ModelAPIKey returns the Gemini credential, accepting either variable name.
func ModelAPIKey() string {
	if AppConfig.GeminiAPIKey != "" {
		return AppConfig.GeminiAPIKey
	}
	return AppConfig.GoogleAPIKey
}

// LeadWebhook returns the endpoint leads are posted to. Outside production the
// test webhook wins when it is configured.
func LeadWebhook() string {
	if !IsProduction() && AppConfig.LeadWebhookTestURL != "" {
		return AppConfig.LeadWebhookTestURL
	}
	return AppConfig.LeadWebhookURL
}
