package common

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string        `toml:"environment" validate:"omitempty,oneof=development production prod"`
	Server      ServerConfig  `toml:"server"`
	Logging     LoggingConfig `toml:"logging"`
	Bedrock     BedrockConfig `toml:"bedrock"`
}

type ServerConfig struct {
	Port int    `toml:"port" validate:"gt=0,lte=65535"`
	Host string `toml:"host" validate:"required"`
}

type LoggingConfig struct {
	Level      string   `toml:"level" validate:"oneof=debug info warn error"`
	Format     string   `toml:"format" validate:"oneof=text json"`
	Output     []string `toml:"output"`      // "stdout", "file"
	TimeFormat string   `toml:"time_format"` // Time format for logs (default: "15:04:05")
}

// BedrockConfig contains the Bedrock Knowledge Base settings consumed by
// the knowledge service. Read once at startup, immutable afterwards.
type BedrockConfig struct {
	KnowledgeBaseID string `toml:"knowledge_base_id" validate:"required"` // Knowledge base to query
	Region          string `toml:"region" validate:"required"`            // AWS region hosting the knowledge base
	ModelARN        string `toml:"model_arn" validate:"required"`         // Foundation model used for answer generation
	Timeout         string `toml:"timeout"`                               // Per-call timeout as duration string (default: "2m")
}

// NewDefaultConfig creates a configuration with default values.
// The knowledge base ID has no default - it must come from the config
// file or environment.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "text",
			Output:     []string{"stdout", "file"},
			TimeFormat: "15:04:05",
		},
		Bedrock: BedrockConfig{
			Region:   "us-west-2",
			ModelARN: "arn:aws:bedrock:us-west-2::foundation-model/anthropic.claude-3-sonnet-20240229-v1:0",
			Timeout:  "2m", // retrieve-and-generate calls run 60-180s in practice
		},
	}
}

// LoadFromFile loads configuration with priority: defaults -> file -> env
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files, later files
// overriding earlier ones. Environment variables override all files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	// Environment configuration (highest priority: DOCTRINA_ENV, fallback: GO_ENV)
	if env := os.Getenv("DOCTRINA_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	// Server configuration
	if port := os.Getenv("DOCTRINA_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("DOCTRINA_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	// Logging configuration
	if level := os.Getenv("DOCTRINA_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if format := os.Getenv("DOCTRINA_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}

	// Bedrock configuration
	if kbID := os.Getenv("DOCTRINA_BEDROCK_KNOWLEDGE_BASE_ID"); kbID != "" {
		config.Bedrock.KnowledgeBaseID = kbID
	}
	if region := os.Getenv("DOCTRINA_BEDROCK_REGION"); region != "" {
		config.Bedrock.Region = region
	} else if region := os.Getenv("AWS_REGION"); region != "" {
		config.Bedrock.Region = region
	}
	if modelARN := os.Getenv("DOCTRINA_BEDROCK_MODEL_ARN"); modelARN != "" {
		config.Bedrock.ModelARN = modelARN
	}
	if timeout := os.Getenv("DOCTRINA_BEDROCK_TIMEOUT"); timeout != "" {
		config.Bedrock.Timeout = timeout
	}
}

// Validate checks the configuration against the struct validation tags
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			first := verrs[0]
			return fmt.Errorf("invalid config: field %s failed %s validation", first.Namespace(), first.Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}
