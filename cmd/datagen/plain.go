package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"nlu-datagen/internal/config"
	"nlu-datagen/internal/core/datagen"
	"nlu-datagen/internal/core/types"
	"nlu-datagen/internal/core/utils"
	"nlu-datagen/internal/storage"
	"nlu-datagen/pkg/api"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newPlainCmd(getConfig func() *config.Config) *cobra.Command {
	var (
		count           int
		attemptFactor   int
		allowDuplicates bool
		intents         []string
	)

	cmd := &cobra.Command{
		Use:   "plain",
		Short: "Generate one plain sentence dataset per intent",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getConfig()
			if cmd.Flags().Changed("count") {
				cfg.SentencesPerIntent = count
			}
			if cmd.Flags().Changed("attempt-factor") {
				cfg.AttemptFactor = attemptFactor
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			selected := make(map[types.Intent]bool, len(intents))
			for _, name := range intents {
				intent, err := types.ParseIntent(name)
				if err != nil {
					return err
				}
				selected[intent] = true
			}

			datasets, err := runPlain(cmd.Context(), cfg, selected, allowDuplicates)
			if err != nil {
				return err
			}
			for _, ds := range datasets {
				slog.Info("plain dataset", "intent", ds.Intent, "file", ds.File, "sentences", ds.Produced)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 0, "sentences per intent (overrides DATAGEN_SENTENCES_PER_INTENT)")
	cmd.Flags().IntVar(&attemptFactor, "attempt-factor", 0, "generation attempts per requested sentence (overrides DATAGEN_ATTEMPT_FACTOR)")
	cmd.Flags().BoolVar(&allowDuplicates, "allow-duplicates", false, "produce exactly count sentences, keeping duplicates")
	cmd.Flags().StringSliceVar(&intents, "intent", nil, "only generate these intents (repeatable, default all)")

	return cmd
}

func plainFileName(intent types.Intent) string {
	return fmt.Sprintf("%s_intent_dataset.csv", intent)
}

// runPlain generates every selected intent concurrently. Each intent gets its
// own generator seeded from the root generator, so output stays reproducible
// for a fixed seed regardless of scheduling.
func runPlain(ctx context.Context, cfg *config.Config, selected map[types.Intent]bool, allowDuplicates bool) ([]api.PlainDataset, error) {
	r := newRand(cfg)
	generators, err := datagen.NewGenerators(r, datagen.DefaultNameMix)
	if err != nil {
		return nil, err
	}

	type plainTask struct {
		gen  datagen.Generator
		seed int64
	}

	var tasks []plainTask
	for _, gen := range generators {
		if len(selected) > 0 && !selected[gen.Intent()] {
			continue
		}
		// A zero seed would fall back to the clock.
		tasks = append(tasks, plainTask{gen: gen, seed: int64(r.Intn(math.MaxInt32)) + 1})
	}

	worker := func(ctx context.Context, task plainTask) (api.PlainDataset, error) {
		intent := task.gen.Intent()
		sentences, err := datagen.PlainSentences(datagen.NewRand(task.seed), task.gen, cfg.SentencesPerIntent, cfg.AttemptFactor, allowDuplicates)

		var shortfall *datagen.ShortfallError
		if errors.As(err, &shortfall) {
			slog.Warn("could not generate enough unique sentences", "intent", intent, "requested", shortfall.Requested, "produced", shortfall.Produced, "attempts", shortfall.Attempts)
		} else if err != nil {
			return api.PlainDataset{}, fmt.Errorf("error generating '%s' sentences: %w", intent, err)
		}

		file := filepath.Join(cfg.OutputDir, plainFileName(intent))
		if err := storage.WritePlainFile(file, sentences); err != nil {
			return api.PlainDataset{}, err
		}

		return api.PlainDataset{
			Intent:    string(intent),
			File:      file,
			Requested: cfg.SentencesPerIntent,
			Produced:  len(sentences),
		}, nil
	}

	completed, err := utils.RunInPool(ctx, worker, tasks, len(tasks))
	if err != nil {
		return nil, err
	}

	datasets := make([]api.PlainDataset, 0, len(completed))
	for _, task := range completed {
		datasets = append(datasets, task.Result)
	}
	return datasets, nil
}
