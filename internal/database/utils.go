package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"nlu-datagen/internal/core/types"
	"nlu-datagen/pkg/api"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const insertBatchSize = 500

// SaveCorpus stores the manifest and every example in a single transaction.
func SaveCorpus(ctx context.Context, db *gorm.DB, manifest api.Manifest, examples []types.Example) error {
	counts, err := json.Marshal(manifest.Counts)
	if err != nil {
		return fmt.Errorf("error encoding intent counts: %w", err)
	}

	corpus := Corpus{
		Id:             manifest.Id,
		Tokenizer:      manifest.Tokenizer.Kind,
		TokenizerPath:  manifest.Tokenizer.Path,
		TokenizerModel: manifest.Tokenizer.Model,
		Seed:           manifest.Seed,
		PerIntent:      manifest.PerIntent,
		NoneMultiplier: manifest.NoneMultiplier,
		Counts:         datatypes.JSON(counts),
		CreationTime:   manifest.CreationTime,
	}
	if corpus.Tokenizer == "" {
		corpus.Tokenizer = "whitespace"
	}

	rows := make([]CorpusExample, 0, len(examples))
	for i, example := range examples {
		row, err := newCorpusExample(manifest.Id, i, example)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}

	err = db.WithContext(ctx).Transaction(func(txn *gorm.DB) error {
		if err := txn.Create(&corpus).Error; err != nil {
			return fmt.Errorf("error creating corpus record: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := txn.CreateInBatches(&rows, insertBatchSize).Error; err != nil {
			return fmt.Errorf("error saving corpus examples: %w", err)
		}
		return nil
	})
	if err != nil {
		slog.Error("error saving corpus", "corpus_id", manifest.Id, "error", err)
		return err
	}

	slog.Info("saved corpus", "corpus_id", manifest.Id, "examples", len(rows))
	return nil
}

func newCorpusExample(corpusId uuid.UUID, position int, example types.Example) (CorpusExample, error) {
	intentCode, err := example.Intent.Code()
	if err != nil {
		return CorpusExample{}, err
	}

	tokens, err := json.Marshal(example.Tokens)
	if err != nil {
		return CorpusExample{}, fmt.Errorf("error encoding tokens: %w", err)
	}
	labels, err := json.Marshal(example.LabelStrings())
	if err != nil {
		return CorpusExample{}, fmt.Errorf("error encoding labels: %w", err)
	}

	return CorpusExample{
		CorpusId:   corpusId,
		Position:   position,
		Sentence:   example.Sentence,
		Intent:     string(example.Intent),
		IntentCode: intentCode,
		Tokens:     datatypes.JSON(tokens),
		Labels:     datatypes.JSON(labels),
	}, nil
}

// LoadCorpus returns the corpus record and its examples in their stored order.
func LoadCorpus(ctx context.Context, db *gorm.DB, corpusId uuid.UUID) (Corpus, []types.Example, error) {
	var corpus Corpus
	err := db.WithContext(ctx).
		Preload("Examples", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&corpus, "id = ?", corpusId).Error
	if err != nil {
		return Corpus{}, nil, fmt.Errorf("error loading corpus %s: %w", corpusId, err)
	}

	examples := make([]types.Example, 0, len(corpus.Examples))
	for _, row := range corpus.Examples {
		intent, err := types.ParseIntent(row.Intent)
		if err != nil {
			return Corpus{}, nil, err
		}

		var tokens, labels []string
		if err := json.Unmarshal(row.Tokens, &tokens); err != nil {
			return Corpus{}, nil, fmt.Errorf("error decoding tokens of example %d: %w", row.Position, err)
		}
		if err := json.Unmarshal(row.Labels, &labels); err != nil {
			return Corpus{}, nil, fmt.Errorf("error decoding labels of example %d: %w", row.Position, err)
		}

		example := types.Example{Sentence: row.Sentence, Intent: intent, Tokens: tokens}
		for _, label := range labels {
			example.Labels = append(example.Labels, types.Label(label))
		}
		examples = append(examples, example)
	}

	return corpus, examples, nil
}

func SetPublishedPrefix(ctx context.Context, db *gorm.DB, corpusId uuid.UUID, prefix string) error {
	if err := db.WithContext(ctx).Model(&Corpus{Id: corpusId}).Update("published_prefix", prefix).Error; err != nil {
		slog.Error("error updating published prefix", "corpus_id", corpusId, "error", err)
		return err
	}
	return nil
}

// IntentCounts counts stored examples per intent.
func IntentCounts(ctx context.Context, db *gorm.DB, corpusId uuid.UUID) (map[string]int, error) {
	var rows []struct {
		Intent string
		Count  int
	}
	err := db.WithContext(ctx).Model(&CorpusExample{}).
		Select("intent, count(*) as count").
		Where("corpus_id = ?", corpusId).
		Group("intent").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("error counting intents of corpus %s: %w", corpusId, err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Intent] = row.Count
	}
	return counts, nil
}
