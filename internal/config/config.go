package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/osa911/portfolio-backend/internal/logging"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// LLM providers supported by the chat endpoint. Exactly one is wired per deployment.
const (
	ProviderGroq   = "groq"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// ModelAuto asks the LLM adapter to discover a model from the provider
const ModelAuto = "auto"

// Config holds all configuration for the application
type Config struct {
	// Server Configuration
	Environment    string   `env:"ENV" envDefault:"development"`
	Port           string   `env:"PORT" envDefault:"4000"`
	APIPrefix      string   `env:"API_PREFIX" envDefault:"/api"`
	FrontendOrigin string   `env:"FRONTEND_ORIGIN" envDefault:"http://localhost:3000"`
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
	MaxBodyBytes   int64    `env:"MAX_BODY_BYTES" envDefault:"1048576"`
	ServiceName    string   `env:"SERVICE_NAME" envDefault:"portfolio-backend"`

	// Logging Configuration
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile       string `env:"LOG_FILE"`
	LogMaxSize    int    `env:"LOG_MAX_SIZE" envDefault:"100"`
	LogMaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"3"`
	LogMaxAge     int    `env:"LOG_MAX_AGE" envDefault:"7"`
	LogRequests   bool   `env:"LOG_REQUESTS" envDefault:"false"`
	LogNoColor    bool   `env:"LOG_NO_COLOR" envDefault:"false"`

	// Telemetry Configuration
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	// LLM Configuration
	LLMProvider    string        `env:"LLM_PROVIDER" envDefault:"groq"`
	GroqAPIKey     string        `env:"GROQ_API_KEY"`
	OpenAIAPIKey   string        `env:"OPENAI_API_KEY"`
	GeminiAPIKey   string        `env:"GEMINI_API_KEY"`
	LLMBaseURL     string        `env:"LLM_BASE_URL"`
	LLMModel       string        `env:"LLM_MODEL"`
	LLMTemperature float32       `env:"LLM_TEMPERATURE" envDefault:"0.7"`
	LLMMaxTokens   int           `env:"LLM_MAX_TOKENS" envDefault:"150"`
	LLMTimeout     time.Duration `env:"LLM_TIMEOUT" envDefault:"30s"`
	LLMMaxRPS      float64       `env:"LLM_MAX_RPS" envDefault:"2"`
	LLMBurst       int           `env:"LLM_BURST" envDefault:"4"`

	// Prompt Configuration
	SystemPromptPath string `env:"SYSTEM_PROMPT_PATH"`

	// reCAPTCHA Configuration
	RecaptchaSecret    string        `env:"RECAPTCHA_SECRET_KEY"`
	RecaptchaVerifyURL string        `env:"RECAPTCHA_VERIFY_URL" envDefault:"https://www.google.com/recaptcha/api/siteverify"`
	RecaptchaMinScore  float64       `env:"RECAPTCHA_MIN_SCORE" envDefault:"0.5"`
	RecaptchaTimeout   time.Duration `env:"RECAPTCHA_TIMEOUT" envDefault:"10s"`

	// Mail Configuration
	EmailUser            string        `env:"EMAIL_USER"`
	EmailPass            string        `env:"EMAIL_PASS"`
	SMTPHost             string        `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort             int           `env:"SMTP_PORT" envDefault:"587"`
	ContactRecipient     string        `env:"CONTACT_RECIPIENT"`
	ContactSubjectPrefix string        `env:"CONTACT_SUBJECT_PREFIX" envDefault:"Portfolio Contact: "`
	MailTimeout          time.Duration `env:"MAIL_TIMEOUT" envDefault:"15s"`

	// Contact Validation and Rate Limiting
	EmailPattern       string        `env:"EMAIL_PATTERN" envDefault:"^[^\\s\\v\\p{Z}\\x{FEFF}@]+@[^\\s\\v\\p{Z}\\x{FEFF}@]+\\.[^\\s\\v\\p{Z}\\x{FEFF}@]+$"`
	ContactRateWindow  time.Duration `env:"CONTACT_RATE_WINDOW" envDefault:"15m"`
	ContactRateMax     int           `env:"CONTACT_RATE_MAX" envDefault:"5"`
	ContactRateSweep   time.Duration `env:"CONTACT_RATE_SWEEP" envDefault:"5m"`
	RateLimitRedisURL  string        `env:"RATE_LIMIT_REDIS_URL"`
	RateLimitKeyPrefix string        `env:"RATE_LIMIT_KEY_PREFIX" envDefault:"portfolio:contact"`
}

// Load loads the configuration from environment variables and .env files.
// envFile, when not empty, is tried before the default locations.
func Load(envFile string) (*Config, error) {
	envLocations := []string{".env"}

	if envName := os.Getenv("ENV"); envName != "" {
		envLocations = append([]string{fmt.Sprintf(".env.%s", envName)}, envLocations...)
	}
	if envFile != "" {
		envLocations = append([]string{envFile}, envLocations...)
	}

	// godotenv never overwrites variables already present in the process environment
	for _, loc := range envLocations {
		if err := godotenv.Load(loc); err == nil {
			break
		}
	}

	cfg, err := Parse()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Parse builds a Config from the process environment only
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.LLMProvider = strings.ToLower(strings.TrimSpace(cfg.LLMProvider))
	cfg.EmailPass = strings.Join(strings.Fields(cfg.EmailPass), "")
	if cfg.ContactRecipient == "" {
		cfg.ContactRecipient = cfg.EmailUser
	}
	cfg.APIPrefix = "/" + strings.Trim(cfg.APIPrefix, "/")
	if cfg.APIPrefix == "/" {
		cfg.APIPrefix = ""
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.LLMProvider {
	case ProviderGroq, ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("unknown llm provider: %s", c.LLMProvider)
	}

	if !strings.HasPrefix(c.FrontendOrigin, "http://") && !strings.HasPrefix(c.FrontendOrigin, "https://") {
		return fmt.Errorf("FRONTEND_ORIGIN must be an http(s) origin, got %q", c.FrontendOrigin)
	}

	if c.RecaptchaMinScore < 0 || c.RecaptchaMinScore > 1 {
		return fmt.Errorf("RECAPTCHA_MIN_SCORE must be between 0 and 1, got %v", c.RecaptchaMinScore)
	}

	if _, err := regexp.Compile(c.EmailPattern); err != nil {
		return fmt.Errorf("invalid EMAIL_PATTERN: %w", err)
	}

	if c.ContactRateMax <= 0 {
		return fmt.Errorf("CONTACT_RATE_MAX must be positive")
	}

	if c.ContactRateWindow <= 0 {
		return fmt.Errorf("CONTACT_RATE_WINDOW must be positive")
	}

	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive")
	}

	return nil
}

// LLMAPIKey returns the credential of the configured provider
func (c *Config) LLMAPIKey() string {
	switch c.LLMProvider {
	case ProviderGroq:
		return c.GroqAPIKey
	case ProviderOpenAI:
		return c.OpenAIAPIKey
	case ProviderGemini:
		return c.GeminiAPIKey
	default:
		return ""
	}
}

// LLMAPIKeyName returns the environment variable holding the provider credential
func (c *Config) LLMAPIKeyName() string {
	switch c.LLMProvider {
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderGemini:
		return "GEMINI_API_KEY"
	default:
		return "GROQ_API_KEY"
	}
}

// LogConfig returns the logger settings
func (c *Config) LogConfig() *logging.Config {
	return &logging.Config{
		Level:      c.LogLevel,
		File:       c.LogFile,
		MaxSize:    c.LogMaxSize,
		MaxBackups: c.LogMaxBackups,
		MaxAge:     c.LogMaxAge,
		NoColor:    c.LogNoColor,
	}
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
