// File: internal/config/config.go
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type ServerConfig struct {
	Port         int           `yaml:"port"`
	CookieDomain string        `yaml:"cookie_domain"`
	SecureCookie bool          `yaml:"secure_cookie"`
	SessionTTL   time.Duration `yaml:"session_ttl"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type AuthConfig struct {
	JWTSecret    string `yaml:"jwt_secret"`
	DemoEmail    string `yaml:"demo_email"`
	DemoPassword string `yaml:"demo_password"`
}

type StorageConfig struct {
	// Driver selects the profile store: "jsonfile" | "postgres".
	Driver   string `yaml:"driver"`
	FilePath string `yaml:"file_path"` // jsonfile driver
	URL      string `yaml:"url"`       // postgres driver
}

type RedisConfig struct {
	URL      string        `yaml:"url"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"` // scored-job cache TTL
}

type AIConfig struct {
	OpenAIKey         string        `yaml:"openai_key"`
	GeminiKey         string        `yaml:"gemini_key"`
	GeminiURL         string        `yaml:"gemini_url"`
	DefaultProvider   string        `yaml:"default_provider"` // gemini | openai
	DefaultModel      string        `yaml:"default_model"`
	RouterModel       string        `yaml:"router_model"` // assistant intent routing, defaults to DefaultModel
	MaxOutputTokens   int           `yaml:"max_output_tokens"`
	ConcurrentLimit   int           `yaml:"concurrent_limit"` // max concurrent AI calls
	ScoreTimeout      time.Duration `yaml:"score_timeout"`    // per-posting scoring deadline
	PromptTokenBudget int           `yaml:"prompt_token_budget"`
}

type JobSourceConfig struct {
	BaseURL        string        `yaml:"base_url"`
	AppID          string        `yaml:"app_id"`
	AppKey         string        `yaml:"app_key"`
	Country        string        `yaml:"country"`
	ResultsPerPage int           `yaml:"results_per_page"`
	Timeout        time.Duration `yaml:"timeout"`
}

type UploadConfig struct {
	MaxResumeBytes int `yaml:"max_resume_bytes"`
}

type RateLimitConfig struct {
	AssistantPerMinute int `yaml:"assistant_per_minute"`
}

type SchedulerConfig struct {
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	Workers         int           `yaml:"workers"`
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Auth      AuthConfig      `yaml:"auth"`
	Storage   StorageConfig   `yaml:"storage"`
	Redis     RedisConfig     `yaml:"redis"`
	AI        AIConfig        `yaml:"ai"`
	JobSource JobSourceConfig `yaml:"job_source"`
	Upload    UploadConfig    `yaml:"upload"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Scheduler SchedulerConfig `yaml:"scheduler"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig() (*Config, error) {
	var configPath string = ""
	var dev bool
	flag.StringVar(&configPath, "config", "config.yaml", "path to config yaml")
	flag.BoolVar(&dev, "dev", false, "development mode")
	flag.Parse()

	b, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	// defaults
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.SessionTTL <= 0 {
		cfg.Server.SessionTTL = 12 * time.Hour
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Auth.DemoEmail == "" {
		cfg.Auth.DemoEmail = "test@gmail.com"
	}
	if cfg.Auth.DemoPassword == "" {
		cfg.Auth.DemoPassword = "test@123"
	}
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = "jsonfile"
	}
	if cfg.Storage.FilePath == "" {
		cfg.Storage.FilePath = "data.json"
	}
	if cfg.AI.DefaultProvider == "" {
		cfg.AI.DefaultProvider = "gemini"
	}
	if cfg.AI.ConcurrentLimit <= 0 {
		cfg.AI.ConcurrentLimit = 8
	}
	if cfg.AI.ScoreTimeout <= 0 {
		cfg.AI.ScoreTimeout = 30 * time.Second
	}
	if cfg.RateLimit.AssistantPerMinute <= 0 {
		cfg.RateLimit.AssistantPerMinute = 20
	}
	if cfg.Scheduler.Workers <= 0 {
		cfg.Scheduler.Workers = 4
	}
	cfg.Redis.TTL = normalizeTTL(cfg.Redis.TTL)

	// Minimal validation
	switch cfg.Storage.Driver {
	case "jsonfile":
	case "postgres":
		if cfg.Storage.URL == "" {
			return nil, errors.New("storage.url is required for the postgres driver")
		}
	default:
		return nil, fmt.Errorf("unknown storage.driver %q", cfg.Storage.Driver)
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("auth.jwt_secret is required")
	}
	if cfg.JobSource.AppID == "" || cfg.JobSource.AppKey == "" {
		return nil, errors.New("job_source.app_id and job_source.app_key are required")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

func normalizeTTL(d time.Duration) time.Duration {
	if d <= 0 {
		return 30 * time.Minute
	}
	return d
}
