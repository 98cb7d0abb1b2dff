package storage

import (
	"encoding/json"
	"fmt"
	"nlu-datagen/pkg/api"
	"os"
	"path/filepath"
)

const ManifestFile = "manifest.json"

func WriteManifest(dir string, manifest api.Manifest) (string, error) {
	path := filepath.Join(dir, ManifestFile)

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error encoding manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("error writing manifest %s: %w", path, err)
	}
	return path, nil
}

func ReadManifest(dir string) (api.Manifest, error) {
	path := filepath.Join(dir, ManifestFile)

	data, err := os.ReadFile(path)
	if err != nil {
		return api.Manifest{}, fmt.Errorf("error reading manifest %s: %w", path, err)
	}

	var manifest api.Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return api.Manifest{}, fmt.Errorf("error decoding manifest %s: %w", path, err)
	}
	return manifest, nil
}
