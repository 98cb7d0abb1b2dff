package storage

import (
	"context"
	"io"
)

type Object struct {
	Name string
	Size int64
}

type ObjectIterator func(yield func(obj Object, err error) bool)

// ObjectStore holds published corpus artifacts. Keys are slash separated and
// relative to the store's root (a directory or a bucket).
type ObjectStore interface {
	PutObject(ctx context.Context, key string, data io.Reader) error

	GetObject(ctx context.Context, key string) (io.ReadCloser, error)

	IterObjects(ctx context.Context, prefix string) ObjectIterator

	DeleteObjects(ctx context.Context, prefix string) error
}

func ListObjects(ctx context.Context, store ObjectStore, prefix string) ([]Object, error) {
	var objects []Object
	for obj, err := range store.IterObjects(ctx, prefix) {
		if err != nil {
			return nil, err
		}
		objects = append(objects, obj)
	}
	return objects, nil
}
