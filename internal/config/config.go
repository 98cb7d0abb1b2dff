package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	OutputDir string `env:"DATAGEN_OUTPUT_DIR" envDefault:"./final_dataset"`

	SentencesPerIntent int `env:"DATAGEN_SENTENCES_PER_INTENT" envDefault:"3000"`
	NoneMultiplier     int `env:"DATAGEN_NONE_MULTIPLIER" envDefault:"4"`
	// Seed 0 seeds from the clock.
	Seed int64 `env:"DATAGEN_SEED" envDefault:"0"`
	// AttemptFactor bounds plain unique generation to count*factor attempts.
	AttemptFactor int `env:"DATAGEN_ATTEMPT_FACTOR" envDefault:"5"`

	TokenizerKind  string `env:"DATAGEN_TOKENIZER" envDefault:"huggingface"`
	TokenizerPath  string `env:"DATAGEN_TOKENIZER_PATH"`
	TokenizerModel string `env:"DATAGEN_TOKENIZER_MODEL" envDefault:"bert-base-uncased"`

	DatabaseURL string `env:"DATABASE_URL"`

	S3EndpointURL     string `env:"S3_ENDPOINT_URL"`
	S3AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	S3Region          string `env:"AWS_REGION" envDefault:"us-east-1"`
	S3Bucket          string `env:"S3_BUCKET"`
	S3Prefix          string `env:"S3_PREFIX" envDefault:"corpora"`

	// PublishDir publishes to a local directory instead of S3 when set.
	PublishDir string `env:"DATAGEN_PUBLISH_DIR"`
}

// LoadConfig loads envFile (".env" when empty, silently skipped if missing)
// and parses the environment. Callers apply flag overrides and then Validate.
func LoadConfig(envFile string) (*Config, error) {
	if envFile == "" {
		if err := godotenv.Load(); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("error loading .env file: %w", err)
			}
			log.Println("no .env file found, continuing with environment variables")
		}
	} else {
		log.Printf("loading env from file %s", envFile)
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("error loading env file '%s': %w", envFile, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config from environment: %w", err)
	}

	if cfg.S3EndpointURL != "" && (cfg.S3AccessKeyID == "" || cfg.S3SecretAccessKey == "") {
		log.Println("Warning: S3_ENDPOINT_URL is set, but AWS_ACCESS_KEY_ID or AWS_SECRET_ACCESS_KEY are missing.")
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.SentencesPerIntent <= 0 {
		return fmt.Errorf("sentences per intent must be positive, got %d", c.SentencesPerIntent)
	}
	if c.NoneMultiplier < 0 {
		return fmt.Errorf("none multiplier must not be negative, got %d", c.NoneMultiplier)
	}
	if c.AttemptFactor < 1 {
		return fmt.Errorf("attempt factor must be at least 1, got %d", c.AttemptFactor)
	}
	return nil
}

// PublishEnabled reports whether outputs should be uploaded to an object store.
func (c *Config) PublishEnabled() bool {
	return c.PublishDir != "" || c.S3Bucket != ""
}
