// Package store implements the persisted credential store on a local JSON
// file, the client-side equivalent of platform key-value storage.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"gigmarket/config"
	"gigmarket/internal/domain/entity"
	"gigmarket/internal/domain/repository"
	"gigmarket/internal/errors"
)

// schemaVersion guards the document shape. A document with a different
// version is treated as absent rather than migrated; the session manager
// then falls back to a network bootstrap.
const schemaVersion = 1

type document struct {
	Version      int                 `json:"version"`
	AccessToken  string              `json:"accessToken,omitempty"`
	RefreshToken string              `json:"refreshToken,omitempty"`
	Profile      *entity.UserProfile `json:"profile,omitempty"`
}

// fileStore persists the three session keys in one file. Every read loads
// from disk so concurrent operations observe each other's writes; a single
// mutex makes the store single-writer-at-a-time.
type fileStore struct {
	mu   sync.Mutex
	path string
}

// New creates a credential store at the configured path, creating parent
// directories as needed.
func New(cfg *config.Config) (repository.CredentialRepository, error) {
	path := cfg.Storage.Path
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, errors.Wrap(err, "create credential store directory")
	}

	return &fileStore{path: path}, nil
}

func (s *fileStore) AccessToken() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return "", err
	}

	return doc.AccessToken, nil
}

func (s *fileStore) RefreshToken() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return "", err
	}

	return doc.RefreshToken, nil
}

func (s *fileStore) SetTokens(accessToken, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	doc.AccessToken = accessToken
	doc.RefreshToken = refreshToken

	return s.save(doc)
}

func (s *fileStore) Profile() (*entity.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}

	return doc.Profile, nil
}

func (s *fileStore) SetProfile(profile *entity.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	doc.Profile = profile.Clone()

	return s.save(doc)
}

func (s *fileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "clear credential store")
	}

	return nil
}

// load reads the document from disk. A missing file or a version mismatch
// yields an empty document.
func (s *fileStore) load() (*document, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return &document{Version: schemaVersion}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read credential store")
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil || doc.Version != schemaVersion {
		// Unreadable or foreign-version document: discard rather than guess.
		return &document{Version: schemaVersion}, nil
	}

	return &doc, nil
}

// save writes through a temp file and renames it into place, so a crashed
// write never leaves a truncated document behind.
func (s *fileStore) save(doc *document) error {
	doc.Version = schemaVersion
	raw, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "encode credential store")
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return errors.Wrap(err, "write credential store")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Wrap(err, "replace credential store")
	}

	return nil
}
