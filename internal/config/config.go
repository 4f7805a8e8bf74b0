package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	API       APIConfig       `mapstructure:"api"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Pomodoro  PomodoroConfig  `mapstructure:"pomodoro"`
	Log       LogConfig       `mapstructure:"log"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// 运行时信息（非配置项）
	ConfigFile string `mapstructure:"-"` // 实际读取到的配置文件路径，未找到时为空
}

type APIConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// Timeout 返回单次请求超时时间
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type StorageConfig struct {
	TokenPath     string `mapstructure:"token_path"`
	ExportType    string `mapstructure:"export_type"`
	LocalPath     string `mapstructure:"local_path"`
	MinioEndpoint string `mapstructure:"minio_endpoint"`
	MinioAccessID string `mapstructure:"minio_access_key"`
	MinioSecret   string `mapstructure:"minio_secret_key"`
	MinioBucket   string `mapstructure:"minio_bucket"`
	MinioSecure   bool   `mapstructure:"minio_secure"`
	OSSEndpoint   string `mapstructure:"oss_endpoint"`
	OSSAccessKey  string `mapstructure:"oss_access_key"`
	OSSSecretKey  string `mapstructure:"oss_secret_key"`
	OSSBucket     string `mapstructure:"oss_bucket"`
}

type PomodoroConfig struct {
	FocusMinutes           int  `mapstructure:"focus_minutes"`
	BreakMinutes           int  `mapstructure:"break_minutes"`
	LongBreakMinutes       int  `mapstructure:"long_break_minutes"`
	SessionsBeforeLongRest int  `mapstructure:"sessions_before_long_break"`
	Notifications          bool `mapstructure:"notifications"`
	ReportSessions         bool `mapstructure:"report_sessions"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

type TracingConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Exporter string `mapstructure:"exporter"`
	Endpoint string `mapstructure:"endpoint"`
	File     string `mapstructure:"file"`
}

type MetricsConfig struct {
	TextfilePath string `mapstructure:"textfile_path"`
}

type DashboardConfig struct {
	NextTestDays int `mapstructure:"next_test_days"`
	RecentCourse int `mapstructure:"recent_courses"`
}

// StateDir 返回客户端本地状态目录（令牌、日志、导出文件）
func StateDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".study_assistant"
	}
	return filepath.Join(home, ".study_assistant")
}

func setDefaults(v *viper.Viper) {
	state := StateDir()

	v.SetDefault("api.base_url", "http://localhost:5000")
	v.SetDefault("api.timeout_seconds", 60)

	v.SetDefault("rate_limit.requests_per_second", 5)
	v.SetDefault("rate_limit.burst", 5)

	v.SetDefault("storage.token_path", filepath.Join(state, "token"))
	v.SetDefault("storage.export_type", "local")
	v.SetDefault("storage.local_path", filepath.Join(state, "exports"))

	v.SetDefault("pomodoro.focus_minutes", 25)
	v.SetDefault("pomodoro.break_minutes", 5)
	v.SetDefault("pomodoro.long_break_minutes", 15)
	v.SetDefault("pomodoro.sessions_before_long_break", 4)
	v.SetDefault("pomodoro.notifications", false)
	v.SetDefault("pomodoro.report_sessions", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(state, "logs", "app.log"))
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age", 30)
	v.SetDefault("log.compress", true)

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.exporter", "stdout")
	v.SetDefault("tracing.file", filepath.Join(state, "logs", "traces.json"))

	v.SetDefault("dashboard.next_test_days", 3)
	v.SetDefault("dashboard.recent_courses", 3)
}

// LoadConfig 从 path 目录（为空时依次查找 ./configs 与状态目录）读取 config.yaml，
// 未找到配置文件时使用默认值
func LoadConfig(path string) (*Config, error) {
	// .env 可选，不存在时忽略
	_ = godotenv.Load()

	v := viper.New()
	if path != "" {
		v.AddConfigPath(path)
	}
	v.AddConfigPath("configs")
	v.AddConfigPath(StateDir())
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("STUDY_ASSISTANT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// API
	v.BindEnv("api.base_url", "API_BASE_URL")
	v.BindEnv("api.timeout_seconds", "API_TIMEOUT_SECONDS")

	// Storage
	v.BindEnv("storage.token_path", "TOKEN_PATH")
	v.BindEnv("storage.export_type", "EXPORT_TYPE")
	v.BindEnv("storage.minio_endpoint", "MINIO_ENDPOINT")
	v.BindEnv("storage.minio_access_key", "MINIO_ACCESS_KEY")
	v.BindEnv("storage.minio_secret_key", "MINIO_SECRET_KEY")
	v.BindEnv("storage.minio_bucket", "MINIO_BUCKET")
	v.BindEnv("storage.oss_endpoint", "OSS_ENDPOINT")
	v.BindEnv("storage.oss_access_key", "OSS_ACCESS_KEY")
	v.BindEnv("storage.oss_secret_key", "OSS_SECRET_KEY")
	v.BindEnv("storage.oss_bucket", "OSS_BUCKET")

	// Log
	v.BindEnv("log.level", "LOG_LEVEL")

	// Tracing
	v.BindEnv("tracing.enabled", "TRACING_ENABLED")
	v.BindEnv("tracing.endpoint", "TRACING_ENDPOINT")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.ConfigFile = v.ConfigFileUsed()
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 校验配置取值范围
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api.base_url must not be empty")
	}
	if c.API.TimeoutSeconds <= 0 {
		return fmt.Errorf("api.timeout_seconds must be positive, got %d", c.API.TimeoutSeconds)
	}
	p := c.Pomodoro
	if p.FocusMinutes <= 0 || p.BreakMinutes <= 0 || p.LongBreakMinutes <= 0 {
		return fmt.Errorf("pomodoro durations must be positive (focus=%d break=%d long_break=%d)",
			p.FocusMinutes, p.BreakMinutes, p.LongBreakMinutes)
	}
	if p.SessionsBeforeLongRest <= 0 {
		return fmt.Errorf("pomodoro.sessions_before_long_break must be positive, got %d", p.SessionsBeforeLongRest)
	}
	switch c.Storage.ExportType {
	case "local":
	case "minio":
		if c.Storage.MinioEndpoint == "" || c.Storage.MinioBucket == "" {
			return errors.New("storage.minio_endpoint and storage.minio_bucket are required for minio export")
		}
	case "oss":
		if c.Storage.OSSEndpoint == "" || c.Storage.OSSBucket == "" {
			return errors.New("storage.oss_endpoint and storage.oss_bucket are required for oss export")
		}
	default:
		return fmt.Errorf("storage.export_type must be local, minio or oss, got %q", c.Storage.ExportType)
	}
	return nil
}
