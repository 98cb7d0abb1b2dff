package storage

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestObjectStore(t *testing.T) (*LocalObjectStore, string) {
	t.Helper()
	dir := t.TempDir()
	objectStore, err := NewLocalObjectStore(dir)
	require.NoError(t, err)
	return objectStore, dir
}

func TestLocalObjectStore_PutObject(t *testing.T) {
	objectStore, baseDir := setupTestObjectStore(t)

	key := "corpus/intents.csv"
	content := []byte("yes,yes,5\n")

	err := objectStore.PutObject(context.Background(), key, bytes.NewReader(content))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(baseDir, "corpus", "intents.csv"))
	require.NoError(t, err)
	assert.Equal(t, content, data)

	reader, err := objectStore.GetObject(context.Background(), key)
	require.NoError(t, err)
	defer reader.Close()
	read, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, content, read)

	_, err = objectStore.GetObject(context.Background(), "missing.csv")
	require.Error(t, err)
}

func TestLocalObjectStore_ListAndDeleteObjects(t *testing.T) {
	objectStore, baseDir := setupTestObjectStore(t)

	files := []string{"run-1/intents.csv", "run-1/plain/yes.csv", "run-2/intents.csv"}
	for _, file := range files {
		filePath := filepath.Join(baseDir, file)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), os.ModePerm))
		require.NoError(t, os.WriteFile(filePath, []byte("content"), os.ModePerm))
	}

	objects, err := ListObjects(context.Background(), objectStore, "run-1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []Object{
		{Name: "run-1/intents.csv", Size: 7},
		{Name: "run-1/plain/yes.csv", Size: 7},
	}, objects)

	objects, err = ListObjects(context.Background(), objectStore, "missing")
	require.NoError(t, err)
	assert.Empty(t, objects)

	require.NoError(t, objectStore.DeleteObjects(context.Background(), "run-1"))

	for _, file := range files[:2] {
		_, err := os.Stat(filepath.Join(baseDir, file))
		assert.True(t, os.IsNotExist(err), "File %s should not exist", file)
	}

	_, err = os.Stat(filepath.Join(baseDir, files[2]))
	assert.NoError(t, err, "File outside prefix should still exist")
}

func TestPublish(t *testing.T) {
	objectStore, baseDir := setupTestObjectStore(t)

	srcDir := t.TempDir()
	files := map[string]string{
		"intents.csv":   "Yes,yes,5\n",
		"manifest.json": "{}",
		"plain/no.csv":  "Sentence\nNo\n",
		"plain/yes.csv": "Sentence\nYes\n",
	}
	for file, content := range files {
		filePath := filepath.Join(srcDir, file)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), os.ModePerm))
		require.NoError(t, os.WriteFile(filePath, []byte(content), os.ModePerm))
	}

	published, err := Publish(context.Background(), objectStore, srcDir, "corpora/run-1")
	require.NoError(t, err)
	assert.Len(t, published, len(files))

	for file, content := range files {
		data, err := os.ReadFile(filepath.Join(baseDir, "corpora", "run-1", file))
		require.NoError(t, err)
		assert.Equal(t, content, string(data))
	}
	assert.Contains(t, published, PublishedObject{Key: "corpora/run-1/plain/yes.csv", Size: int64(len(files["plain/yes.csv"]))})
}

func TestPublishFiles(t *testing.T) {
	objectStore, _ := setupTestObjectStore(t)
	ctx := context.Background()

	srcDir := t.TempDir()
	require.NoError(t, WritePlainFile(filepath.Join(srcDir, "yes_intent_dataset.csv"), []string{"Yes"}))
	names, err := WriteCorpusFiles(srcDir, testExamples)
	require.NoError(t, err)
	for i, name := range names {
		names[i] = filepath.Base(name)
	}

	published, err := PublishFiles(ctx, objectStore, srcDir, names, "corpus/abc")
	require.NoError(t, err)
	require.Len(t, published, 2)

	objects, err := ListObjects(ctx, objectStore, "corpus/abc")
	require.NoError(t, err)
	var keys []string
	for _, obj := range objects {
		keys = append(keys, obj.Name)
	}
	assert.ElementsMatch(t, []string{"corpus/abc/" + IntentsFile, "corpus/abc/" + NamedEntitiesFile}, keys)

	_, err = PublishFiles(ctx, objectStore, srcDir, []string{"../outside.csv"}, "corpus/abc")
	require.Error(t, err)

	_, err = PublishFiles(ctx, objectStore, srcDir, []string{"missing.csv"}, "corpus/abc")
	require.Error(t, err)
}
