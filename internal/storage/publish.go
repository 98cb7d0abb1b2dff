package storage

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"nlu-datagen/internal/core/utils"
	"os"
	"path"
	"path/filepath"

	"github.com/dustin/go-humanize"
)

const maxConcurrentUploads = 4

type PublishedObject struct {
	Key  string
	Size int64
}

// Publish uploads every file under dir to store, keyed by prefix plus the
// file's path relative to dir.
func Publish(ctx context.Context, store ObjectStore, dir, prefix string) ([]PublishedObject, error) {
	var names []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		names = append(names, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", dir, err)
	}

	return PublishFiles(ctx, store, dir, names, prefix)
}

// PublishFiles uploads only the named files, given relative to dir. Other
// files in dir are left alone.
func PublishFiles(ctx context.Context, store ObjectStore, dir string, names []string, prefix string) ([]PublishedObject, error) {
	files := make([]string, 0, len(names))
	for _, name := range names {
		if !filepath.IsLocal(name) {
			return nil, fmt.Errorf("file %q is not inside %s", name, dir)
		}
		files = append(files, filepath.Join(dir, name))
	}

	upload := func(ctx context.Context, file string) (PublishedObject, error) {
		rel, err := filepath.Rel(dir, file)
		if err != nil {
			return PublishedObject{}, err
		}
		key := path.Join(prefix, filepath.ToSlash(rel))

		f, err := os.Open(file)
		if err != nil {
			return PublishedObject{}, fmt.Errorf("failed to open %s: %w", file, err)
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			return PublishedObject{}, fmt.Errorf("failed to stat %s: %w", file, err)
		}

		if err := store.PutObject(ctx, key, f); err != nil {
			return PublishedObject{}, err
		}
		return PublishedObject{Key: key, Size: info.Size()}, nil
	}

	completed, err := utils.RunInPool(ctx, upload, files, maxConcurrentUploads)
	if err != nil {
		return nil, fmt.Errorf("error publishing %s: %w", dir, err)
	}

	published := make([]PublishedObject, 0, len(completed))
	var total uint64
	for _, task := range completed {
		published = append(published, task.Result)
		total += uint64(task.Result.Size)
	}

	slog.Info("published output", "dir", dir, "prefix", prefix, "files", len(published), "size", humanize.Bytes(total))

	return published, nil
}
