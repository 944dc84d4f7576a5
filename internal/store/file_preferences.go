package store

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
)

type preferencesFile struct {
	Flags map[string]bool `json:"flags"`
}

// FilePreferences keeps flags in a small JSON document, rewritten
// atomically on every change.
type FilePreferences struct {
	path string
	mu   sync.Mutex
}

func NewFilePreferences(path string) *FilePreferences {
	return &FilePreferences{path: path}
}

func (s *FilePreferences) load() (*preferencesFile, error) {
	doc := &preferencesFile{}
	if err := readJSON(s.path, doc); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			doc.Flags = map[string]bool{}
			return doc, nil
		}
		return nil, err
	}
	if doc.Flags == nil {
		doc.Flags = map[string]bool{}
	}
	return doc, nil
}

func (s *FilePreferences) GetFlag(_ context.Context, key string) (bool, error) {
	if strings.TrimSpace(key) == "" {
		return false, errFlagKeyRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return false, err
	}
	return doc.Flags[key], nil
}

func (s *FilePreferences) SetFlag(_ context.Context, key string, value bool) error {
	if strings.TrimSpace(key) == "" {
		return errFlagKeyRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	doc.Flags[key] = value
	return writeJSONAtomic(s.path, doc)
}

func (s *FilePreferences) Close() error {
	return nil
}
