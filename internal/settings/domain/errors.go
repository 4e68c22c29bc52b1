package domain

import "errors"

var (
	ErrPresetNotFound  = errors.New("preset not found")
	ErrInvalidPreset   = errors.New("invalid preset")
	ErrEmptyPresetName = errors.New("preset name is required")
	ErrInvalidTheme    = errors.New("invalid theme")
)
