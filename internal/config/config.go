package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"dailypack/internal/domain"

	"github.com/joho/godotenv"
)

// DefaultWanxEndpoint is the DashScope text-to-image generation endpoint
const DefaultWanxEndpoint = "https://dashscope.aliyuncs.com/api/v1/services/aigc/image-generation/generation"

// Auth schemes accepted for provider API keys
const (
	AuthBearer  = "Bearer"
	AuthXAPIKey = "X-API-Key"
)

// Config holds all application configuration
type Config struct {
	Provider     ProviderConfig
	TimeZone     string
	ChildName    string
	ContentRoot  string
	WordsPerDay  int
	WordSampling string
	ThemesFile   string
	Database     DatabaseConfig
	Notify       NotifyConfig
	Publish      PublishConfig
}

// ProviderConfig holds the selected image provider settings
type ProviderConfig struct {
	Kind             domain.ProviderKind
	Endpoint         string
	EndpointSuffixes []string
	APIKey           string
	AuthScheme       string
	Model            string
	ImageSize        string
	Workspace        string
	Timeout          time.Duration
	MaxAttempts      int
	Pacing           time.Duration
}

// DatabaseConfig holds run ledger connection settings
type DatabaseConfig struct {
	Enabled       bool
	Host          string
	Port          string
	Name          string
	User          string
	Password      string
	RetentionDays int
}

// NotifyConfig holds run summary side channels
type NotifyConfig struct {
	StepSummaryPath string
	TelegramToken   string
	TelegramChatID  int64
}

// PublishConfig holds optional bucket publishing settings
type PublishConfig struct {
	Bucket string
	Prefix string
}

// Word sampling modes
const (
	SamplingDate   = "date"
	SamplingRandom = "random"
)

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	provider, err := loadProvider()
	if err != nil {
		return nil, err
	}

	wordsPerDay, err := getEnvInt("WORDS_PER_DAY", 4)
	if err != nil {
		return nil, err
	}
	retention, err := getEnvInt("LEDGER_RETENTION_DAYS", 60)
	if err != nil {
		return nil, err
	}
	dbEnabled, err := getEnvBool("DB_ENABLED", false)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Provider:     provider,
		TimeZone:     getEnv("TZ", "Asia/Shanghai"),
		ChildName:    getEnv("CHILD_NAME", "Kid"),
		ContentRoot:  getEnv("CONTENT_ROOT", "frontend/public"),
		WordsPerDay:  wordsPerDay,
		WordSampling: strings.ToLower(getEnv("WORD_SAMPLING", SamplingDate)),
		ThemesFile:   os.Getenv("THEMES_FILE"),
		Database: DatabaseConfig{
			Enabled:       dbEnabled,
			Host:          getEnv("DB_HOST", "localhost"),
			Port:          getEnv("DB_PORT", "5432"),
			Name:          getEnv("DB_NAME", "dailypack"),
			User:          getEnv("DB_USER", "dailypack"),
			Password:      os.Getenv("DB_PASSWORD"),
			RetentionDays: retention,
		},
		Notify: NotifyConfig{
			StepSummaryPath: os.Getenv("GITHUB_STEP_SUMMARY"),
			TelegramToken:   os.Getenv("TELEGRAM_BOT_TOKEN"),
		},
		Publish: PublishConfig{
			Bucket: os.Getenv("GCS_BUCKET"),
			Prefix: strings.Trim(os.Getenv("GCS_PREFIX"), "/"),
		},
	}

	// Validate
	if _, err := time.LoadLocation(cfg.TimeZone); err != nil {
		return nil, fmt.Errorf("TZ is invalid: %w", err)
	}
	if cfg.WordsPerDay < 2 {
		return nil, fmt.Errorf("WORDS_PER_DAY must be at least 2, got %d", cfg.WordsPerDay)
	}
	if cfg.WordSampling != SamplingDate && cfg.WordSampling != SamplingRandom {
		return nil, fmt.Errorf("WORD_SAMPLING must be %q or %q, got %q", SamplingDate, SamplingRandom, cfg.WordSampling)
	}
	if cfg.Database.Enabled && cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required when DB_ENABLED is set")
	}
	if cfg.Database.RetentionDays < 1 {
		return nil, fmt.Errorf("LEDGER_RETENTION_DAYS must be positive, got %d", cfg.Database.RetentionDays)
	}
	if cfg.Notify.TelegramToken != "" {
		chatID, err := strconv.ParseInt(os.Getenv("TELEGRAM_CHAT_ID"), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("TELEGRAM_CHAT_ID must be numeric when TELEGRAM_BOT_TOKEN is set: %w", err)
		}
		cfg.Notify.TelegramChatID = chatID
	}

	return cfg, nil
}

func loadProvider() (ProviderConfig, error) {
	timeout, err := getEnvDuration("PROVIDER_TIMEOUT", 60*time.Second)
	if err != nil {
		return ProviderConfig{}, err
	}
	pacing, err := getEnvDuration("PROVIDER_PACING", 900*time.Millisecond)
	if err != nil {
		return ProviderConfig{}, err
	}
	maxAttempts, err := getEnvInt("PROVIDER_MAX_ATTEMPTS", 4)
	if err != nil {
		return ProviderConfig{}, err
	}
	if maxAttempts < 1 {
		return ProviderConfig{}, fmt.Errorf("PROVIDER_MAX_ATTEMPTS must be positive, got %d", maxAttempts)
	}

	pc := ProviderConfig{
		Timeout:     timeout,
		MaxAttempts: maxAttempts,
		Pacing:      pacing,
	}

	switch name := strings.ToLower(getEnv("IMAGE_PROVIDER", "wanx")); name {
	case "wanx":
		pc.Kind = domain.ProviderWanx
		pc.Endpoint = getEnv("WANX_ENDPOINT", DefaultWanxEndpoint)
		pc.APIKey = getEnv("TONGYI_API_KEY", os.Getenv("DASHSCOPE_API_KEY"))
		pc.AuthScheme = AuthBearer
		pc.Model = getEnv("WANX_MODEL", "wanx2.0-t2i-turbo")
		pc.ImageSize = getEnv("WANX_IMG_SIZE", "512*512")
		pc.Workspace = os.Getenv("WANX_WORKSPACE")
	case "doubao":
		switch flavor := strings.ToLower(getEnv("DOUBAO_FLAVOR", "ark")); flavor {
		case "ark":
			pc.Kind = domain.ProviderDoubaoArk
		case "openai":
			pc.Kind = domain.ProviderDoubaoOpenAI
		default:
			return ProviderConfig{}, fmt.Errorf("DOUBAO_FLAVOR must be ark or openai, got %q", flavor)
		}
		scheme, err := parseAuthScheme(getEnv("DOUBAO_AUTH_SCHEME", AuthBearer))
		if err != nil {
			return ProviderConfig{}, err
		}
		pc.Endpoint = strings.TrimSpace(os.Getenv("DOUBAO_API_BASE"))
		pc.EndpointSuffixes = splitList(os.Getenv("DOUBAO_ENDPOINT_SUFFIXES"))
		pc.APIKey = os.Getenv("DOUBAO_API_KEY")
		pc.AuthScheme = scheme
		pc.Model = getEnv("DOUBAO_MODEL", "seedream-3-0-t2i-250415")
		pc.ImageSize = getEnv("DOUBAO_IMG_SIZE", "512x512")
	default:
		return ProviderConfig{}, fmt.Errorf("IMAGE_PROVIDER must be wanx or doubao, got %q", name)
	}

	return pc, nil
}

// Available reports whether the provider has enough settings to be called
func (p ProviderConfig) Available() bool {
	return strings.TrimSpace(p.APIKey) != "" && strings.TrimSpace(p.Endpoint) != ""
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func parseAuthScheme(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "bearer":
		return AuthBearer, nil
	case "x-api-key":
		return AuthXAPIKey, nil
	}
	return "", fmt.Errorf("DOUBAO_AUTH_SCHEME must be Bearer or X-API-Key, got %q", raw)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return b, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}
