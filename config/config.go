package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var ErrInvalidConfig = errors.New("invalid config")

const (
	ProviderDeepSeek = "deepseek"
	ProviderOpenAI   = "openai"
	ProviderQwen     = "qwen"

	SourceLongport = "longport"
	SourceYahoo    = "yahoo"
	SourceNone     = "none"
)

const qwenCompatibleURL = "https://dashscope.aliyuncs.com/compatible-mode/v1"

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

type Config struct {
	Env      string `envconfig:"APP_ENV" default:"development" json:"env"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"warn" json:"log_level"`
	Debug    bool   `envconfig:"DEBUG" default:"false" json:"debug"`

	ProjectDir string `envconfig:"PROJECT_DIR" json:"project_dir"`
	DataDir    string `envconfig:"DATA_DIR" json:"data_dir"`

	// LLM
	LLMProvider    string  `envconfig:"LLM_PROVIDER" default:"deepseek" json:"llm_provider"`
	LLMModel       string  `envconfig:"LLM_MODEL" json:"llm_model"`
	LLMBaseURL     string  `envconfig:"LLM_BASE_URL" json:"llm_base_url"`
	Temperature    float32 `envconfig:"LLM_TEMPERATURE" default:"0.1" json:"temperature"`
	MaxTokens      int     `envconfig:"LLM_MAX_TOKENS" default:"4096" json:"max_tokens"`
	DeepSeekAPIKey string  `envconfig:"DEEPSEEK_API_KEY" json:"-"`
	OpenAIAPIKey   string  `envconfig:"OPENAI_API_KEY" json:"-"`
	QwenAPIKey     string  `envconfig:"DASHSCOPE_API_KEY" json:"-"`

	// Longport API Configuration
	PrimarySource       string `envconfig:"PRIMARY_SOURCE" default:"longport" json:"primary_source"`
	LongportAppKey      string `envconfig:"LONGPORT_APP_KEY" json:"-"`
	LongportAppSecret   string `envconfig:"LONGPORT_APP_SECRET" json:"-"`
	LongportAccessToken string `envconfig:"LONGPORT_ACCESS_TOKEN" json:"-"`

	// Secondary web sources
	HTTPTimeout    time.Duration `envconfig:"HTTP_TIMEOUT" default:"5s" json:"http_timeout"`
	UserAgent      string        `envconfig:"HTTP_USER_AGENT" json:"user_agent"`
	QuoteFeedURL   string        `envconfig:"QUOTE_FEED_URL" default:"https://qt.gtimg.cn" json:"quote_feed_url"`
	ProfilePageURL string        `envconfig:"PROFILE_PAGE_URL" default:"https://vip.stock.finance.sina.com.cn" json:"profile_page_url"`
	NewsSearchURL  string        `envconfig:"NEWS_SEARCH_URL" default:"https://search.sina.com.cn" json:"news_search_url"`

	PriceHistoryDays int `envconfig:"PRICE_HISTORY_DAYS" default:"5" json:"price_history_days"`
	NewsLimit        int `envconfig:"NEWS_LIMIT" default:"5" json:"news_limit"`

	GeneralChatEnabled bool   `envconfig:"GENERAL_CHAT_ENABLED" default:"false" json:"general_chat_enabled"`
	TranscriptDB       string `envconfig:"TRANSCRIPT_DB" json:"transcript_db"`

	// Eino Debug configuration
	EinoDebugEnabled bool `envconfig:"EINO_DEBUG_ENABLED" default:"false" json:"eino_debug_enabled"`
}

// Load reads .env (if present) and the process environment, fills in derived
// defaults and validates the result.
func Load() (*Config, error) {
	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.ProjectDir == "" {
		c.ProjectDir, _ = os.Getwd()
	}
	if c.DataDir == "" {
		c.DataDir = filepath.Join(c.ProjectDir, "data")
	}
	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent
	}

	c.LLMProvider = strings.ToLower(strings.TrimSpace(c.LLMProvider))
	c.PrimarySource = strings.ToLower(strings.TrimSpace(c.PrimarySource))
	if c.LLMProvider == "" {
		c.LLMProvider = ProviderDeepSeek
	}
	if c.PrimarySource == "" {
		c.PrimarySource = SourceLongport
	}

	if c.LLMModel == "" {
		switch c.LLMProvider {
		case ProviderOpenAI:
			c.LLMModel = "gpt-4o-mini"
		case ProviderQwen:
			c.LLMModel = "qwen-turbo"
		default:
			c.LLMModel = "deepseek-chat"
		}
	}
	if c.LLMBaseURL == "" && c.LLMProvider == ProviderQwen {
		c.LLMBaseURL = qwenCompatibleURL
	}
}

func (c *Config) Validate() error {
	switch c.LLMProvider {
	case ProviderDeepSeek, ProviderOpenAI, ProviderQwen:
	default:
		return fmt.Errorf("%w: unsupported LLM_PROVIDER %q", ErrInvalidConfig, c.LLMProvider)
	}

	switch c.PrimarySource {
	case SourceLongport, SourceYahoo, SourceNone:
	default:
		return fmt.Errorf("%w: unsupported PRIMARY_SOURCE %q", ErrInvalidConfig, c.PrimarySource)
	}

	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("%w: LLM_TEMPERATURE must be within [0, 2], got %v", ErrInvalidConfig, c.Temperature)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("%w: HTTP_TIMEOUT must be positive", ErrInvalidConfig)
	}
	if c.PriceHistoryDays <= 0 || c.NewsLimit <= 0 {
		return fmt.Errorf("%w: PRICE_HISTORY_DAYS and NEWS_LIMIT must be positive", ErrInvalidConfig)
	}
	return nil
}

// APIKey returns the credential for the configured provider.
func (c *Config) APIKey() string {
	switch c.LLMProvider {
	case ProviderOpenAI:
		return c.OpenAIAPIKey
	case ProviderQwen:
		return c.QwenAPIKey
	default:
		return c.DeepSeekAPIKey
	}
}

func (c *Config) HasLongportCredentials() bool {
	return c.LongportAppKey != "" && c.LongportAppSecret != "" && c.LongportAccessToken != ""
}

func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.DataDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if c.TranscriptDB != "" {
		if err := os.MkdirAll(filepath.Dir(c.TranscriptDB), 0755); err != nil {
			return fmt.Errorf("failed to create transcript directory: %w", err)
		}
	}
	return nil
}
