package store

import (
	"context"

	"reviewdesk/internal/logging"
)

// Flags reads and writes preference flags on a best-effort basis. Any
// storage failure is logged at debug level and the flag reads as unset.
type Flags struct {
	store  PreferenceStore
	logger logging.Logger
}

func NewFlags(store PreferenceStore, logger logging.Logger) *Flags {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Flags{store: store, logger: logger}
}

func (f *Flags) Get(ctx context.Context, key string) bool {
	if f == nil || f.store == nil {
		return false
	}
	value, err := f.store.GetFlag(ctx, key)
	if err != nil {
		f.logger.Debug("preference read failed", logging.F("key", key), logging.Err(err))
		return false
	}
	return value
}

func (f *Flags) Set(ctx context.Context, key string, value bool) {
	if f == nil || f.store == nil {
		return
	}
	if err := f.store.SetFlag(ctx, key, value); err != nil {
		f.logger.Debug("preference write failed", logging.F("key", key), logging.Err(err))
	}
}
