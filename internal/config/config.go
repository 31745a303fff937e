package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig   `yaml:"server"`
	Log       LogConfig      `yaml:"log"`
	SecretKey string         `yaml:"secret_key"`
	LLM       LLMConfig      `yaml:"llm"`
	Database  DatabaseConfig `yaml:"database"`
	Upload    UploadConfig   `yaml:"upload"`
	Session   SessionConfig  `yaml:"session"`
	CORS      CORSConfig     `yaml:"cors"`
	CSRF      CSRFConfig     `yaml:"csrf"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	Console    bool   `yaml:"console"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

// LLMConfig points at any OpenAI-compatible chat completion endpoint.
type LLMConfig struct {
	BaseURL        string `yaml:"base_url"`
	APIKey         string `yaml:"api_key"`
	Model          string `yaml:"model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	Referer        string `yaml:"referer"`
}

// DatabaseConfig selects one of mysql, postgres or sqlite. Path is only
// used by sqlite and may be a full DSN.
type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Path     string `yaml:"path"`
}

type UploadConfig struct {
	Dir       string `yaml:"dir"`
	URLPrefix string `yaml:"url_prefix"`
	MaxSizeMB int    `yaml:"max_size_mb"`
}

type SessionConfig struct {
	TTLHours      int    `yaml:"ttl_hours"`
	CookieName    string `yaml:"cookie_name"`
	Secure        bool   `yaml:"secure"`
	SweepSchedule string `yaml:"sweep_schedule"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type CSRFConfig struct {
	TrustedOrigins []string `yaml:"trusted_origins"`
	CookieName     string   `yaml:"cookie_name"`
	HeaderName     string   `yaml:"header_name"`
}

// Default returns the configuration used when no file or env var says otherwise.
func Default() *Config {
	return &Config{
		Server:    ServerConfig{Port: 8000},
		Log:       LogConfig{Level: "info", Console: true, MaxSizeMB: 100, MaxBackups: 3, MaxAgeDays: 30},
		SecretKey: "fallback-secret-key",
		LLM: LLMConfig{
			BaseURL:        "https://openrouter.ai/api/v1",
			Model:          "mistralai/mistral-7b-instruct:free",
			TimeoutSeconds: 60,
		},
		Database: DatabaseConfig{Driver: "sqlite", Path: "db.sqlite3", Name: "college_chat"},
		Upload:   UploadConfig{Dir: "media/uploads", URLPrefix: "/media/uploads", MaxSizeMB: 10},
		Session: SessionConfig{
			TTLHours:      14 * 24,
			CookieName:    "sessionid",
			SweepSchedule: "@every 1h",
		},
		CORS: CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
		CSRF: CSRFConfig{
			TrustedOrigins: []string{"http://localhost:5173", "http://127.0.0.1:8000"},
			CookieName:     "csrftoken",
			HeaderName:     "X-CSRFToken",
		},
	}
}

func Load(configFile string) *Config {
	_ = godotenv.Load()
	c := Default()

	paths := []string{"etc/config-dev.yaml", "/etc/college-chat/config.yaml"}
	if configFile != "" {
		paths = []string{configFile}
	}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		// decode into a copy so a broken file leaves the defaults intact
		parsed := *c
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			slog.Warn("config file ignored", "path", path, "err", err)
		} else {
			*c = parsed
		}
		break
	}

	envOverride(&c.SecretKey, "SECRET_KEY")
	envOverride(&c.LLM.APIKey, "LLM_API_KEY")
	envOverride(&c.LLM.APIKey, "OPENROUTER_API_KEY")
	envOverride(&c.LLM.BaseURL, "LLM_BASE_URL")
	envOverride(&c.LLM.Model, "LLM_MODEL")
	envOverride(&c.Database.Driver, "DB_DRIVER")
	envOverride(&c.Database.Host, "DB_HOST")
	envOverride(&c.Database.User, "DB_USER")
	envOverride(&c.Database.Password, "DB_PASS")
	envOverride(&c.Database.Name, "DB_NAME")
	envOverride(&c.Database.Path, "DB_PATH")
	envOverride(&c.Upload.Dir, "UPLOAD_DIR")
	envOverride(&c.Log.Level, "LOG_LEVEL")
	envOverride(&c.Log.File, "LOG_FILE")
	envOverrideInt(&c.Server.Port, "PORT")
	envOverrideInt(&c.Database.Port, "DB_PORT")
	envOverrideList(&c.CORS.AllowedOrigins, "CORS_ALLOWED_ORIGINS")
	envOverrideList(&c.CSRF.TrustedOrigins, "CSRF_TRUSTED_ORIGINS")

	return c
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

func (c *Config) LLMTimeout() time.Duration {
	if c.LLM.TimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.LLM.TimeoutSeconds) * time.Second
}

func (c *Config) SessionTTL() time.Duration {
	if c.Session.TTLHours <= 0 {
		return 14 * 24 * time.Hour
	}
	return time.Duration(c.Session.TTLHours) * time.Hour
}

func (c *Config) MaxUploadBytes() int64 {
	if c.Upload.MaxSizeMB <= 0 {
		return 10 << 20
	}
	return int64(c.Upload.MaxSizeMB) << 20
}

func envOverride(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envOverrideInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func envOverrideList(dst *[]string, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	*dst = out
}
