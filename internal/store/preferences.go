package store

import (
	"context"
	"errors"
	"fmt"

	"reviewdesk/internal/config"
)

// FlagOnboardingDismissed is set once the operator asks not to see the
// onboarding panel again.
const FlagOnboardingDismissed = "onboarding_dismissed"

type PreferenceStore interface {
	GetFlag(ctx context.Context, key string) (bool, error)
	SetFlag(ctx context.Context, key string, value bool) error
	Close() error
}

var errFlagKeyRequired = errors.New("flag key is required")

// OpenPreferences opens the backend selected by [preferences] backend.
func OpenPreferences(cfg config.CoreConfig) (PreferenceStore, error) {
	switch cfg.PreferencesBackend() {
	case config.PreferencesBackendFile:
		path, err := config.PreferencesFilePath()
		if err != nil {
			return nil, err
		}
		return NewFilePreferences(path), nil
	default:
		path, err := config.PreferencesDBPath()
		if err != nil {
			return nil, err
		}
		prefs, err := NewBoltPreferences(path)
		if err != nil {
			return nil, fmt.Errorf("open preferences db: %w", err)
		}
		return prefs, nil
	}
}
