package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/settings/domain"
)

// FileStore keeps each document in its own JSON file.
type FileStore struct {
	presetsPath string
	adminPath   string
}

// NewFileStore creates a FileStore over the two given paths. The files are
// created on first save.
func NewFileStore(presetsPath, adminPath string) *FileStore {
	return &FileStore{
		presetsPath: presetsPath,
		adminPath:   adminPath,
	}
}

// LoadPresets returns an empty set when the file does not exist yet.
func (s *FileStore) LoadPresets(ctx context.Context) (domain.Presets, error) {
	presets := domain.Presets{}
	found, err := readJSON(s.presetsPath, &presets)
	if err != nil {
		return nil, err
	}
	if !found || presets == nil {
		return domain.Presets{}, nil
	}
	return presets, nil
}

func (s *FileStore) SavePresets(ctx context.Context, presets domain.Presets) error {
	if presets == nil {
		presets = domain.Presets{}
	}
	return writeJSON(s.presetsPath, presets)
}

// LoadAdminSettings returns defaults when the file does not exist yet.
func (s *FileStore) LoadAdminSettings(ctx context.Context) (domain.AdminSettings, error) {
	settings := domain.DefaultAdminSettings()
	if _, err := readJSON(s.adminPath, &settings); err != nil {
		return domain.AdminSettings{}, err
	}
	settings.Normalize()
	return settings, nil
}

func (s *FileStore) SaveAdminSettings(ctx context.Context, settings domain.AdminSettings) error {
	return writeJSON(s.adminPath, settings)
}

func readJSON(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return true, nil
}

// writeJSON replaces the file through a sibling temp file so a crash never
// leaves a truncated document behind.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
