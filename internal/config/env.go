package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type BaseEnv struct {
	Env      string `envconfig:"ENV" default:"local"`
	HTTPHost string `envconfig:"HTTP_HOST" default:""`
	HTTPPort string `envconfig:"HTTP_PORT" default:"3100"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"debug"`
}

type ProviderEnv struct {
	Provider    string        `envconfig:"PROVIDER" default:"openai"`
	APIKey      string        `envconfig:"PROVIDER_API_KEY"`
	BaseURL     string        `envconfig:"PROVIDER_BASE_URL"`
	Model       string        `envconfig:"MODEL" default:"gpt-4o-mini"`
	Temperature float64       `envconfig:"TEMPERATURE" default:"0.2"`
	Timeout     time.Duration `envconfig:"PROVIDER_TIMEOUT" default:"60s"`
}

type StorageEnv struct {
	Type    string `envconfig:"STORAGE_TYPE" default:"local"`
	BaseDir string `envconfig:"STORAGE_BASE_DIR" default:".agentstudio/data"`
	// S3 settings (used when Type == "s3")
	S3Bucket string `envconfig:"S3_BUCKET"`
	S3Prefix string `envconfig:"S3_PREFIX" default:"agentstudio/"`
	S3Region string `envconfig:"S3_REGION" default:"ap-northeast-1"`
}

type Env struct {
	BaseEnv
	ProviderEnv
	StorageEnv
}

const namespace = "AGENTSTUDIO"

func LoadEnv() (*Env, error) {
	var env Env
	if err := envconfig.Process(namespace, &env); err != nil {
		return nil, fmt.Errorf("failed to load env: %w", err)
	}
	return &env, nil
}

func (e *BaseEnv) SlogLevel() slog.Level {
	if e == nil {
		return slog.LevelDebug
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(e.LogLevel)); err != nil {
		return slog.LevelDebug
	}
	return level
}

// ResolveAPIKey returns the configured provider key, falling back to the
// conventional variable of the selected provider when none is set.
func (e *ProviderEnv) ResolveAPIKey(lookup func(string) string) string {
	if e.APIKey != "" {
		return e.APIKey
	}
	switch e.Provider {
	case "openai":
		return lookup("OPENAI_API_KEY")
	case "gemini":
		return lookup("GEMINI_API_KEY")
	}
	return ""
}
