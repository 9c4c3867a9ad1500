// Package store holds the durable client-side state: the bearer token pair
// and the onboarding draft. Both live as JSON files under the configured
// state directory and survive restarts of the client.
package store

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/pathwise/pathwise/internal/config"
	"github.com/spf13/afero"
)

const tokenFileName = "tokens.json"

// tokenPair is the on-disk shape. Access and refresh tokens are written as a
// single record so the pair is always both-present or both-absent.
type tokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// TokenStore persists the opaque access/refresh token pair. Token contents
// are never validated and never logged.
type TokenStore struct {
	fs   afero.Fs
	path string
}

// NewTokenStore creates a token store rooted at the configured state directory.
func NewTokenStore(fs afero.Fs, cfg *config.Config) *TokenStore {
	return &TokenStore{
		fs:   fs,
		path: filepath.Join(cfg.Storage.Dir, tokenFileName),
	}
}

// Save persists both tokens. The pair is written to a temporary file and
// renamed into place so a crash cannot leave one token without the other.
func (s *TokenStore) Save(access, refresh string) error {
	data, err := json.Marshal(tokenPair{AccessToken: access, RefreshToken: refresh})
	if err != nil {
		return fmt.Errorf("encode token pair: %w", err)
	}

	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace token file: %w", err)
	}
	return nil
}

// Access returns the stored access token, or "" when none is stored.
func (s *TokenStore) Access() string {
	return s.load().AccessToken
}

// Refresh returns the stored refresh token, or "" when none is stored.
func (s *TokenStore) Refresh() string {
	return s.load().RefreshToken
}

// Clear removes the stored pair. Clearing an empty store is not an error.
func (s *TokenStore) Clear() error {
	if ok, _ := afero.Exists(s.fs, s.path); !ok {
		return nil
	}
	return s.fs.Remove(s.path)
}

func (s *TokenStore) load() tokenPair {
	var pair tokenPair
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return tokenPair{}
	}
	if err := json.Unmarshal(data, &pair); err != nil {
		return tokenPair{}
	}
	return pair
}
