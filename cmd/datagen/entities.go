package main

import (
	"fmt"
	"log/slog"
	"nlu-datagen/internal/config"
	"nlu-datagen/internal/core/datagen"
	"nlu-datagen/internal/storage"
	"path/filepath"

	"github.com/spf13/cobra"
)

const (
	namesFile    = "names_sentences.csv"
	amountsFile  = "amounts_sentences.csv"
	accountsFile = "accounts_sentences.csv"
)

func newEntitiesCmd(getConfig func() *config.Config) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "entities",
		Short: "Generate standalone person name, amount and bank account datasets",
		RunE: func(cmd *cobra.Command, args []string) error {
			if count <= 0 {
				return fmt.Errorf("count must be positive, got %d", count)
			}
			return runEntities(getConfig(), count)
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 3000, "entities of each type")

	return cmd
}

func runEntities(cfg *config.Config, count int) error {
	catalogs, err := datagen.LoadCatalogs()
	if err != nil {
		return err
	}

	r := newRand(cfg)

	names := datagen.RandomNames(r, catalogs, datagen.EvenNameMix(count))
	amounts := datagen.RandomAmounts(r, catalogs, count)
	accounts := datagen.RandomBankAccounts(r, catalogs, count)

	datasets := []struct {
		file   string
		values []string
	}{
		{namesFile, names},
		{amountsFile, amounts},
		{accountsFile, accounts},
	}
	for _, ds := range datasets {
		path := filepath.Join(cfg.OutputDir, ds.file)
		if err := storage.WritePlainFile(path, ds.values); err != nil {
			return err
		}
		slog.Info("wrote entity dataset", "file", path, "entities", len(ds.values))
	}
	return nil
}
