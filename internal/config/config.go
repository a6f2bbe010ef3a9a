// Package config loads courtlog settings from a YAML file, an optional .env
// file and environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const minSecretKeyLength = 32

const (
	UploadBackendLocal = "local"
	UploadBackendS3    = "s3"
)

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Upload   UploadConfig   `yaml:"upload"`
}

type ServerConfig struct {
	Port            string `yaml:"port" validate:"required,numeric"`
	SecretKey       string `yaml:"secret_key" validate:"required"`
	CookieSecure    bool   `yaml:"cookie_secure"`
	TimeZone        string `yaml:"time_zone"`
	DefaultLanguage string `yaml:"default_language" validate:"required"`
}

type DatabaseConfig struct {
	Path string `yaml:"path" validate:"required"`
}

type LogConfig struct {
	Level      string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	File       string `yaml:"file"`
	Console    bool   `yaml:"console"`
	MaxSizeMB  int    `yaml:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `yaml:"max_backups" validate:"gte=0"`
	MaxAgeDays int    `yaml:"max_age_days" validate:"gte=0"`
}

type UploadConfig struct {
	Backend      string   `yaml:"backend" validate:"oneof=local s3"`
	Dir          string   `yaml:"dir"`
	PublicPrefix string   `yaml:"public_prefix"`
	S3           S3Config `yaml:"s3"`
}

type S3Config struct {
	Bucket        string `yaml:"bucket"`
	Region        string `yaml:"region"`
	Endpoint      string `yaml:"endpoint"`
	AccessKey     string `yaml:"access_key"`
	SecretKey     string `yaml:"secret_key"`
	PublicBaseURL string `yaml:"public_base_url"`
	UsePathStyle  bool   `yaml:"use_path_style"`
	// ACL is sent as the canned object ACL when set. Buckets with object
	// ownership enforced reject any ACL, so public reads belong in the
	// bucket policy there.
	ACL string `yaml:"acl" validate:"omitempty,oneof=private public-read authenticated-read bucket-owner-read bucket-owner-full-control"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			TimeZone:        "UTC",
			DefaultLanguage: "en",
		},
		Database: DatabaseConfig{Path: filepath.Join("data", "courtlog.db")},
		Log: LogConfig{
			Level:      "info",
			Console:    true,
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 30,
		},
		Upload: UploadConfig{
			Backend:      UploadBackendLocal,
			Dir:          filepath.Join("data", "uploads"),
			PublicPrefix: "/uploads",
			S3:           S3Config{Region: "us-east-1"},
		},
	}
}

// Load reads configFile (or the first default location that exists), then the
// .env file, then applies environment overrides and validates the result.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	paths := []string{"config.yaml", filepath.Join("/etc", "courtlog", "config.yaml")}
	if configFile != "" {
		paths = []string{configFile}
	}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if configFile != "" {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
			continue
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		break
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	overrideString(&cfg.Server.Port, "PORT")
	overrideString(&cfg.Server.SecretKey, "SECRET_KEY")
	overrideString(&cfg.Server.TimeZone, "TZ")
	overrideString(&cfg.Server.DefaultLanguage, "DEFAULT_LANGUAGE")
	overrideBool(&cfg.Server.CookieSecure, "COOKIE_SECURE")
	overrideString(&cfg.Database.Path, "DB_PATH")
	overrideString(&cfg.Log.Level, "LOG_LEVEL")
	overrideString(&cfg.Log.File, "LOG_FILE")
	overrideString(&cfg.Upload.Backend, "UPLOAD_BACKEND")
	overrideString(&cfg.Upload.Dir, "UPLOAD_DIR")
	overrideString(&cfg.Upload.PublicPrefix, "UPLOAD_PUBLIC_PREFIX")
	overrideString(&cfg.Upload.S3.Bucket, "S3_BUCKET")
	overrideString(&cfg.Upload.S3.Region, "S3_REGION")
	overrideString(&cfg.Upload.S3.Endpoint, "S3_ENDPOINT")
	overrideString(&cfg.Upload.S3.AccessKey, "S3_ACCESS_KEY")
	overrideString(&cfg.Upload.S3.SecretKey, "S3_SECRET_KEY")
	overrideString(&cfg.Upload.S3.PublicBaseURL, "S3_PUBLIC_BASE_URL")
	overrideBool(&cfg.Upload.S3.UsePathStyle, "S3_USE_PATH_STYLE")
	overrideString(&cfg.Upload.S3.ACL, "S3_ACL")
}

func overrideString(target *string, key string) {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		*target = value
	}
}

func overrideBool(target *bool, key string) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return
	}
	*target = parsed
}

func (cfg *Config) Validate() error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := ValidateSecretKey(cfg.Server.SecretKey); err != nil {
		return err
	}
	if cfg.Upload.Backend == UploadBackendS3 {
		if strings.TrimSpace(cfg.Upload.S3.Bucket) == "" {
			return errors.New("invalid config: upload.s3.bucket is required for the s3 backend")
		}
		if strings.TrimSpace(cfg.Upload.S3.PublicBaseURL) == "" {
			return errors.New("invalid config: upload.s3.public_base_url is required for the s3 backend")
		}
	}
	return nil
}

// ValidateSecretKey rejects empty, placeholder and short signing secrets.
func ValidateSecretKey(secret string) error {
	trimmed := strings.TrimSpace(secret)
	if trimmed == "" {
		return errors.New("SECRET_KEY is required")
	}
	if _, insecure := insecureSecretKeys[strings.ToLower(trimmed)]; insecure {
		return errors.New("SECRET_KEY uses an insecure placeholder value")
	}
	if len(trimmed) < minSecretKeyLength {
		return fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	}
	return nil
}
