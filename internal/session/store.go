// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session persists the signed-in identity across restarts.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/jeranaias/tutor-tui/internal/model"
	"github.com/jeranaias/tutor-tui/internal/util"
)

// sessionFile is the record filename under the store directory.
const sessionFile = "session.json"

// =============================================================================
// SESSION STORE
// =============================================================================

// Store handles identity persistence.
type Store struct {
	// BaseDir is the directory holding the session record
	// Default: ~/.tutor/
	BaseDir string
}

// NewStore creates a store rooted at the default config directory.
func NewStore() (*Store, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	baseDir := filepath.Join(homeDir, ".tutor")
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	return &Store{BaseDir: baseDir}, nil
}

// NewStoreWithDir creates a store with a custom directory.
func NewStoreWithDir(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	return &Store{BaseDir: baseDir}, nil
}

// =============================================================================
// OPERATIONS
// =============================================================================

// Establish persists the given identity as the current session.
func (s *Store) Establish(id model.Identity) error {
	data, err := json.MarshalIndent(id, "", "  ")
	if err != nil {
		return err
	}

	// Atomic write with fsync prevents a torn record on crash
	return util.AtomicWriteFile(s.filePath(), data, 0600)
}

// Restore loads the persisted identity, if any. A missing, malformed, or
// tokenless record yields ok=false; malformed records are removed so they
// do not fail every startup.
func (s *Store) Restore() (model.Identity, bool) {
	data, err := os.ReadFile(s.filePath())
	if err != nil {
		return model.Identity{}, false
	}

	var id model.Identity
	if err := json.Unmarshal(data, &id); err != nil {
		log.Warn().Err(err).Msg("discarding malformed session record")
		os.Remove(s.filePath())
		return model.Identity{}, false
	}

	if !id.HasToken() {
		log.Warn().Msg("discarding session record without token")
		os.Remove(s.filePath())
		return model.Identity{}, false
	}

	return id, true
}

// Clear removes the persisted session, signing the identity out.
func (s *Store) Clear() error {
	err := os.Remove(s.filePath())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// filePath returns the session record path.
func (s *Store) filePath() string {
	return filepath.Join(s.BaseDir, sessionFile)
}
