package database

import (
	"context"
	"nlu-datagen/internal/core/types"
	"nlu-datagen/pkg/api"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadCorpus(t *testing.T) {
	db, err := NewDatabase(filepath.Join(t.TempDir(), "corpus.db"))
	require.NoError(t, err)

	examples := []types.Example{
		{
			Sentence: "Request 3 euros from dad",
			Intent:   types.RequestMoneyIntent,
			Tokens:   []string{"Request", "3", "euros", "from", "dad"},
			Labels:   []types.Label{"O", "B-AMOUNT", "I-AMOUNT", "O", "B-USER"},
		},
		{
			Sentence: "No thanks",
			Intent:   types.NoIntent,
			Tokens:   []string{"No", "thanks"},
			Labels:   []types.Label{"O", "O"},
		},
		{
			Sentence: "No thanks",
			Intent:   types.NoIntent,
			Tokens:   []string{"No", "thanks"},
			Labels:   []types.Label{"O", "O"},
		},
	}
	manifest := api.Manifest{
		Id:             uuid.New(),
		CreationTime:   time.Now().UTC(),
		Tokenizer:      api.TokenizerInfo{Kind: "huggingface", Model: "bert-base-uncased"},
		Seed:           7,
		PerIntent:      1,
		NoneMultiplier: 4,
		Counts:         map[string]int{"request_money": 1, "no": 2},
	}

	ctx := context.Background()
	require.NoError(t, SaveCorpus(ctx, db, manifest, examples))

	corpus, loaded, err := LoadCorpus(ctx, db, manifest.Id)
	require.NoError(t, err)
	assert.Equal(t, examples, loaded)
	assert.Equal(t, "huggingface", corpus.Tokenizer)
	assert.Equal(t, "bert-base-uncased", corpus.TokenizerModel)
	assert.Equal(t, int64(7), corpus.Seed)
	assert.JSONEq(t, `{"request_money": 1, "no": 2}`, string(corpus.Counts))

	counts, err := IntentCounts(ctx, db, manifest.Id)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"request_money": 1, "no": 2}, counts)

	require.NoError(t, SetPublishedPrefix(ctx, db, manifest.Id, "corpora/"+manifest.Id.String()))
	corpus, _, err = LoadCorpus(ctx, db, manifest.Id)
	require.NoError(t, err)
	assert.Equal(t, "corpora/"+manifest.Id.String(), corpus.PublishedPrefix)

	_, _, err = LoadCorpus(ctx, db, uuid.New())
	require.Error(t, err)
}

func TestSaveCorpusRejectsUnknownIntent(t *testing.T) {
	db, err := NewDatabase(filepath.Join(t.TempDir(), "corpus.db"))
	require.NoError(t, err)

	err = SaveCorpus(context.Background(), db, api.Manifest{Id: uuid.New()}, []types.Example{{Sentence: "x", Intent: "pay_bills"}})
	require.ErrorIs(t, err, types.ErrUnknownIntent)
}

func TestMigratorRollback(t *testing.T) {
	db, err := NewDatabase(filepath.Join(t.TempDir(), "corpus.db"))
	require.NoError(t, err)

	require.NoError(t, GetMigrator(db).RollbackLast())
	assert.False(t, db.Migrator().HasColumn(&Corpus{}, "TokenizerModel"))
	assert.True(t, db.Migrator().HasColumn(&Corpus{}, "PublishedPrefix"))

	require.NoError(t, GetMigrator(db).RollbackLast())
	assert.False(t, db.Migrator().HasColumn(&Corpus{}, "PublishedPrefix"))

	require.NoError(t, GetMigrator(db).Migrate())
	assert.True(t, db.Migrator().HasColumn(&Corpus{}, "PublishedPrefix"))
	assert.True(t, db.Migrator().HasColumn(&Corpus{}, "TokenizerModel"))
}
