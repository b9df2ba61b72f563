package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix  = "BAZAAR_"
	envFileVar = "BAZAAR_CONFIG"
)

// Load builds a Config by layering, lowest precedence first:
//  1. Default()
//  2. the YAML file named by BAZAAR_CONFIG, if set
//  3. BAZAAR_* environment variables (a .env file is loaded into the
//     environment first; it never overrides variables already set)
//
// BAZAAR_API_BASE_URL maps to api.base_url: the first underscore after the
// prefix separates the section from the key.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")

	if path := strings.TrimSpace(os.Getenv(envFileVar)); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	envProvider := env.ProviderWithValue(envPrefix, ".", func(key, value string) (string, interface{}) {
		key = envKey(key)
		if strings.HasSuffix(key, "allowed_origins") {
			return key, splitCSV(value)
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// envKey maps BAZAAR_API_BASE_URL to api.base_url.
func envKey(raw string) string {
	s := strings.ToLower(strings.TrimPrefix(raw, envPrefix))
	return strings.Replace(s, "_", ".", 1)
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Validate checks struct tags and the rules tags cannot express.
func Validate(cfg *Config) error {
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return formatValidationError(err)
	}

	if cfg.API.Timeout < time.Millisecond {
		return errors.New("api.timeout must be at least 1ms")
	}
	return nil
}

func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		field := e.Namespace()
		switch e.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", field))
		case "oneof":
			messages = append(messages, fmt.Sprintf("%s must be one of: %s", field, e.Param()))
		case "http_url":
			messages = append(messages, fmt.Sprintf("%s must be an http(s) URL", field))
		case "gt":
			messages = append(messages, fmt.Sprintf("%s must be greater than %s", field, e.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s failed validation: %s", field, e.Tag()))
		}
	}
	return fmt.Errorf("validation errors: %s", strings.Join(messages, "; "))
}
