//go:build integration

package integrationtests

import (
	"context"
	"nlu-datagen/internal/core/datagen"
	"nlu-datagen/internal/core/tokenizer"
	"nlu-datagen/internal/database"
	"nlu-datagen/internal/storage"
	"nlu-datagen/pkg/api"
	"path"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorpusPipeline(t *testing.T) {
	ctx := context.Background()

	r := datagen.NewRand(1234)
	generators, err := datagen.NewGenerators(r, datagen.DefaultNameMix)
	require.NoError(t, err)

	examples, err := datagen.BuildCorpus(r, datagen.NewAligner(tokenizer.Whitespace{}), generators, datagen.CorpusOpts{PerIntent: 20, NoneMultiplier: 4})
	require.NoError(t, err)

	outDir := t.TempDir()
	files, err := storage.WriteCorpusFiles(outDir, examples)
	require.NoError(t, err)

	counts := make(map[string]int)
	for intent, n := range datagen.CountIntents(examples) {
		counts[string(intent)] = n
	}
	manifest := api.Manifest{
		Id:             uuid.New(),
		CreationTime:   time.Now().UTC(),
		Tokenizer:      api.TokenizerInfo{Kind: string(tokenizer.KindWhitespace)},
		Seed:           1234,
		PerIntent:      20,
		NoneMultiplier: 4,
		Counts:         counts,
		Files:          []string{storage.IntentsFile, storage.NamedEntitiesFile},
	}
	_, err = storage.WriteManifest(outDir, manifest)
	require.NoError(t, err)
	require.Len(t, files, 2)

	db, err := database.NewDatabase(setupPostgresContainer(t, ctx))
	require.NoError(t, err)
	require.NoError(t, database.SaveCorpus(ctx, db, manifest, examples))

	_, loaded, err := database.LoadCorpus(ctx, db, manifest.Id)
	require.NoError(t, err)
	assert.Equal(t, examples, loaded)

	store, err := storage.NewS3ObjectStore(ctx, storage.S3ClientConfig{
		Endpoint:        setupMinioContainer(t, ctx),
		Region:          "us-east-1",
		AccessKeyID:     minioUsername,
		SecretAccessKey: minioPassword,
		Bucket:          "corpora",
		Prefix:          "nlu",
	})
	require.NoError(t, err)
	require.NoError(t, store.CreateBucket(ctx))

	prefix := manifest.Id.String()
	published, err := storage.PublishFiles(ctx, store, outDir, append(manifest.Files, storage.ManifestFile), prefix)
	require.NoError(t, err)
	assert.Len(t, published, 3)
	require.NoError(t, database.SetPublishedPrefix(ctx, db, manifest.Id, prefix))

	objects, err := storage.ListObjects(ctx, store, prefix)
	require.NoError(t, err)
	assert.Len(t, objects, 3)

	intents, err := store.GetObject(ctx, path.Join(prefix, storage.IntentsFile))
	require.NoError(t, err)
	defer intents.Close()
	entities, err := store.GetObject(ctx, path.Join(prefix, storage.NamedEntitiesFile))
	require.NoError(t, err)
	defer entities.Close()

	downloaded, err := storage.ReadCorpus(intents, entities)
	require.NoError(t, err)
	assert.Equal(t, examples, downloaded)

	require.NoError(t, store.DeleteObjects(ctx, prefix))
	objects, err = storage.ListObjects(ctx, store, prefix)
	require.NoError(t, err)
	assert.Empty(t, objects)
}
