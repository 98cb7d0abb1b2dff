package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"nlu-datagen/internal/config"
	"nlu-datagen/internal/core/datagen"
	"nlu-datagen/internal/core/tokenizer"
	"nlu-datagen/internal/database"
	"nlu-datagen/internal/storage"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

type rootFlags struct {
	envFile   string
	verbose   bool
	outputDir string
	seed      int64

	tokenizerKind  string
	tokenizerPath  string
	tokenizerModel string
}

func main() {
	var flags rootFlags
	var cfg *config.Config

	root := &cobra.Command{
		Use:           "datagen",
		Short:         "Generate synthetic banking intent and entity datasets",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if flags.verbose {
				slog.SetLogLoggerLevel(slog.LevelDebug)
			}

			loaded, err := config.LoadConfig(flags.envFile)
			if err != nil {
				return err
			}
			applyRootFlags(cmd, loaded, flags)
			cfg = loaded
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.envFile, "env", "", "path to load env from")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVarP(&flags.outputDir, "output", "o", "", "output directory (overrides DATAGEN_OUTPUT_DIR)")
	pf.Int64Var(&flags.seed, "seed", 0, "random seed, 0 seeds from the clock (overrides DATAGEN_SEED)")
	pf.StringVar(&flags.tokenizerKind, "tokenizer", "", "tokenizer kind: whitespace, wordpiece, huggingface or sentencepiece")
	pf.StringVar(&flags.tokenizerPath, "tokenizer-path", "", "tokenizer vocab or model file")
	pf.StringVar(&flags.tokenizerModel, "tokenizer-model", "", "huggingface model id used when no tokenizer path is given")

	getConfig := func() *config.Config { return cfg }
	root.AddCommand(
		newCorpusCmd(getConfig),
		newPlainCmd(getConfig),
		newEntitiesCmd(getConfig),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		log.Fatalf("datagen failed: %v", err)
	}
}

func applyRootFlags(cmd *cobra.Command, cfg *config.Config, flags rootFlags) {
	changed := cmd.Flags().Changed
	if changed("output") {
		cfg.OutputDir = flags.outputDir
	}
	if changed("seed") {
		cfg.Seed = flags.seed
	}
	if changed("tokenizer") {
		cfg.TokenizerKind = flags.tokenizerKind
	}
	if changed("tokenizer-path") {
		cfg.TokenizerPath = flags.tokenizerPath
	}
	if changed("tokenizer-model") {
		cfg.TokenizerModel = flags.tokenizerModel
	}
}

func newRand(cfg *config.Config) datagen.Rand {
	if cfg.Seed == 0 {
		slog.Warn("no seed given, output will not be reproducible")
	} else {
		slog.Info("seeding generator", "seed", cfg.Seed)
	}
	return datagen.NewRand(cfg.Seed)
}

func tokenizerOptions(cfg *config.Config) tokenizer.Options {
	return tokenizer.Options{
		Kind:  tokenizer.Kind(cfg.TokenizerKind),
		Path:  cfg.TokenizerPath,
		Model: cfg.TokenizerModel,
	}
}

// createObjectStore returns nil when publishing is not configured.
func createObjectStore(ctx context.Context, cfg *config.Config) (storage.ObjectStore, error) {
	if !cfg.PublishEnabled() {
		return nil, nil
	}

	if cfg.PublishDir != "" {
		store, err := storage.NewLocalObjectStore(cfg.PublishDir)
		if err != nil {
			return nil, fmt.Errorf("failed to create local object store: %w", err)
		}
		return store, nil
	}

	store, err := storage.NewS3ObjectStore(ctx, storage.S3ClientConfig{
		Endpoint:        cfg.S3EndpointURL,
		Region:          cfg.S3Region,
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
		Bucket:          cfg.S3Bucket,
		Prefix:          cfg.S3Prefix,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 object store: %w", err)
	}
	if err := store.CreateBucket(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// createDatabase returns nil when no database is configured.
func createDatabase(cfg *config.Config) (*gorm.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, nil
	}
	db, err := database.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}
