package store

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"reviewdesk/internal/logging"
)

func TestBoltPreferencesRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prefs", "preferences.db")
	prefs, err := NewBoltPreferences(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer prefs.Close()

	value, err := prefs.GetFlag(ctx, FlagOnboardingDismissed)
	if err != nil || value {
		t.Fatalf("expected unset flag, got %v err=%v", value, err)
	}
	if err := prefs.SetFlag(ctx, FlagOnboardingDismissed, true); err != nil {
		t.Fatalf("set: %v", err)
	}
	value, err = prefs.GetFlag(ctx, FlagOnboardingDismissed)
	if err != nil || !value {
		t.Fatalf("expected flag set, got %v err=%v", value, err)
	}
	if _, err := prefs.GetFlag(ctx, " "); err == nil {
		t.Fatalf("expected error for empty key")
	}
}

func TestFilePreferencesRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "preferences.json")
	prefs := NewFilePreferences(path)

	value, err := prefs.GetFlag(ctx, FlagOnboardingDismissed)
	if err != nil || value {
		t.Fatalf("expected unset flag on missing file, got %v err=%v", value, err)
	}
	if err := prefs.SetFlag(ctx, FlagOnboardingDismissed, true); err != nil {
		t.Fatalf("set: %v", err)
	}

	reopened := NewFilePreferences(path)
	value, err = reopened.GetFlag(ctx, FlagOnboardingDismissed)
	if err != nil || !value {
		t.Fatalf("expected persisted flag, got %v err=%v", value, err)
	}
}

func TestFilePreferencesCorruptFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := NewFilePreferences(path).GetFlag(context.Background(), FlagOnboardingDismissed); err == nil {
		t.Fatalf("expected decode error")
	}
}

type brokenStore struct{}

func (brokenStore) GetFlag(context.Context, string) (bool, error) {
	return true, errors.New("storage unavailable")
}

func (brokenStore) SetFlag(context.Context, string, bool) error {
	return errors.New("storage unavailable")
}

func (brokenStore) Close() error { return nil }

func TestFlagsSwallowFailuresAsUnset(t *testing.T) {
	var buf bytes.Buffer
	flags := NewFlags(brokenStore{}, logging.New(&buf, logging.Debug))

	if flags.Get(context.Background(), FlagOnboardingDismissed) {
		t.Fatalf("expected failed read to report unset")
	}
	flags.Set(context.Background(), FlagOnboardingDismissed, true)

	out := buf.String()
	if strings.Count(out, "level=debug") != 2 || !strings.Contains(out, "storage unavailable") {
		t.Fatalf("expected two debug lines, got %q", out)
	}
}

func TestFlagsWithoutStore(t *testing.T) {
	var flags *Flags
	if flags.Get(context.Background(), FlagOnboardingDismissed) {
		t.Fatalf("expected nil flags to read unset")
	}
	NewFlags(nil, nil).Set(context.Background(), FlagOnboardingDismissed, true)
}
