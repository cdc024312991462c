// Package state remembers which card files have been encoded so unchanged
// cards can reuse their share value across builds.
package state

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// FileState is what the last build saw of one card file
type FileState struct {
	MTime int64  `json:"mtime"`
	Hash  string `json:"hash"`
	Pako  string `json:"pako,omitempty"`
}

// State is the build state, keyed by card path
type State struct {
	Files     map[string]*FileState `json:"files"`
	LastBuild time.Time             `json:"last_build,omitempty"`
}

// NewState creates a new empty state
func NewState() *State {
	return &State{
		Files: make(map[string]*FileState),
	}
}

// Load reads state from the state file. A missing file is an empty state.
func Load(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewState(), nil
		}
		return nil, err
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}

	if state.Files == nil {
		state.Files = make(map[string]*FileState)
	}

	return &state, nil
}

// Save writes state to the state file
func (s *State) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	return nil
}

// ComputeHash computes SHA256 hash of a file
func ComputeHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("sha256:%x", h.Sum(nil)), nil
}

// HasChanged checks if a file has changed since the last build.
// The mtime is checked first; the hash only when the mtime moved.
func (s *State) HasChanged(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}

	fileState, exists := s.Files[path]
	if !exists {
		return true, nil
	}

	if info.ModTime().Unix() == fileState.MTime {
		return false, nil
	}

	hash, err := ComputeHash(path)
	if err != nil {
		return false, err
	}

	return hash != fileState.Hash, nil
}

// Update records the file's current mtime and hash with its share value
func (s *State) Update(path string, pako string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	hash, err := ComputeHash(path)
	if err != nil {
		return err
	}

	s.Files[path] = &FileState{
		MTime: info.ModTime().Unix(),
		Hash:  hash,
		Pako:  pako,
	}

	return nil
}

// Pako returns the cached share value for a file, if any
func (s *State) Pako(path string) (string, bool) {
	fileState, exists := s.Files[path]
	if !exists || fileState.Pako == "" {
		return "", false
	}
	return fileState.Pako, true
}

// Forget drops a file from the state
func (s *State) Forget(path string) {
	delete(s.Files, path)
}

// Prune forgets every file not in keep and returns the forgotten paths
func (s *State) Prune(keep map[string]bool) []string {
	var removed []string
	for path := range s.Files {
		if !keep[path] {
			removed = append(removed, path)
			delete(s.Files, path)
		}
	}
	sort.Strings(removed)
	return removed
}

// GetMTime returns the recorded modification time for a file
func (s *State) GetMTime(path string) time.Time {
	if fileState, exists := s.Files[path]; exists {
		return time.Unix(fileState.MTime, 0)
	}
	return time.Time{}
}
