package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"nlu-datagen/internal/config"
	"nlu-datagen/internal/core/datagen"
	"nlu-datagen/internal/core/tokenizer"
	"nlu-datagen/internal/core/types"
	"nlu-datagen/internal/database"
	"nlu-datagen/internal/storage"
	"nlu-datagen/pkg/api"
	"os"
	"path"
	"path/filepath"
	"slices"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newCorpusCmd(getConfig func() *config.Config) *cobra.Command {
	var (
		perIntent      int
		noneMultiplier int
		noProgress     bool
	)

	cmd := &cobra.Command{
		Use:   "corpus",
		Short: "Generate the token-labelled intent and named entity corpus",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getConfig()
			if cmd.Flags().Changed("per-intent") {
				cfg.SentencesPerIntent = perIntent
			}
			if cmd.Flags().Changed("none-multiplier") {
				cfg.NoneMultiplier = noneMultiplier
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			var progress io.Writer
			if !noProgress {
				progress = os.Stderr
			}
			_, err := runCorpus(cmd.Context(), cfg, progress)
			return err
		},
	}

	cmd.Flags().IntVarP(&perIntent, "per-intent", "n", 0, "examples per intent (overrides DATAGEN_SENTENCES_PER_INTENT)")
	cmd.Flags().IntVar(&noneMultiplier, "none-multiplier", 0, "none intent examples as a multiple of per-intent (overrides DATAGEN_NONE_MULTIPLIER)")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable the progress bar")

	return cmd
}

// runCorpus writes the corpus files and manifest to cfg.OutputDir, then
// optionally saves the corpus to the database and publishes exactly the files
// listed in the manifest.
func runCorpus(ctx context.Context, cfg *config.Config, progress io.Writer) (api.Manifest, error) {
	start := time.Now()

	tok, err := tokenizer.New(tokenizerOptions(cfg))
	if err != nil {
		return api.Manifest{}, fmt.Errorf("error loading tokenizer: %w", err)
	}
	defer func() {
		if err := tokenizer.Close(tok); err != nil {
			slog.Warn("error releasing tokenizer", "error", err)
		}
	}()

	db, err := createDatabase(cfg)
	if err != nil {
		return api.Manifest{}, err
	}
	store, err := createObjectStore(ctx, cfg)
	if err != nil {
		return api.Manifest{}, err
	}

	r := newRand(cfg)
	generators, err := datagen.NewGenerators(r, datagen.DefaultNameMix)
	if err != nil {
		return api.Manifest{}, err
	}

	opts := datagen.CorpusOpts{
		PerIntent:      cfg.SentencesPerIntent,
		NoneMultiplier: cfg.NoneMultiplier,
		Progress:       progress,
	}
	examples, err := datagen.BuildCorpus(r, datagen.NewAligner(tok), generators, opts)
	if err != nil {
		return api.Manifest{}, err
	}

	files, err := storage.WriteCorpusFiles(cfg.OutputDir, examples)
	if err != nil {
		return api.Manifest{}, err
	}

	names := make([]string, 0, len(files))
	for _, file := range files {
		names = append(names, filepath.Base(file))
	}

	manifest := api.Manifest{
		Id:           uuid.New(),
		CreationTime: time.Now().UTC(),
		Tokenizer: api.TokenizerInfo{
			Kind:  cfg.TokenizerKind,
			Path:  cfg.TokenizerPath,
			Model: cfg.TokenizerModel,
		},
		Seed:           cfg.Seed,
		PerIntent:      cfg.SentencesPerIntent,
		NoneMultiplier: cfg.NoneMultiplier,
		Counts:         intentCounts(examples),
		Files:          names,
	}
	manifestPath, err := storage.WriteManifest(cfg.OutputDir, manifest)
	if err != nil {
		return api.Manifest{}, err
	}
	slog.Info("wrote corpus", "corpus_id", manifest.Id, "dir", cfg.OutputDir, "manifest", manifestPath)

	if db != nil {
		if err := database.SaveCorpus(ctx, db, manifest, examples); err != nil {
			return api.Manifest{}, err
		}
	}

	if store != nil {
		prefix := corpusPrefix(manifest)
		published, err := storage.PublishFiles(ctx, store, cfg.OutputDir, append(slices.Clone(manifest.Files), storage.ManifestFile), prefix)
		if err != nil {
			return api.Manifest{}, err
		}
		var total uint64
		for _, obj := range published {
			total += uint64(obj.Size)
		}
		slog.Info("published corpus", "corpus_id", manifest.Id, "prefix", prefix, "objects", len(published), "size", humanize.Bytes(total))

		if db != nil {
			if err := database.SetPublishedPrefix(ctx, db, manifest.Id, prefix); err != nil {
				return api.Manifest{}, err
			}
		}
	}

	slog.Info("corpus complete", "examples", humanize.Comma(int64(len(examples))), "elapsed", time.Since(start).Round(time.Millisecond))
	return manifest, nil
}

func corpusPrefix(manifest api.Manifest) string {
	return path.Join("corpus", manifest.Id.String())
}

func intentCounts(examples []types.Example) map[string]int {
	counts := make(map[string]int)
	for intent, n := range datagen.CountIntents(examples) {
		counts[string(intent)] = n
	}
	return counts
}
