package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"aoc-star-charts/internal/model"
)

// JSONStore reads and writes JSON documents below a root directory.
type JSONStore struct {
	Root string // e.g. "data"
}

func NewJSONStore(root string) *JSONStore {
	return &JSONStore{Root: root}
}

func (s *JSONStore) Path(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(s.Root, rel)
}

func (s *JSONStore) Exists(rel string) bool {
	_, err := os.Stat(s.Path(rel))
	return err == nil
}

func (s *JSONStore) WriteRaw(rel string, body []byte) error {
	path := s.Path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, body, 0o644)
}

func (s *JSONStore) ReadRaw(rel string) ([]byte, error) {
	return os.ReadFile(s.Path(rel))
}

// ReadLeaderboard decodes the leaderboard export stored at rel.
func (s *JSONStore) ReadLeaderboard(rel string) (*model.Leaderboard, error) {
	raw, err := s.ReadRaw(rel)
	if err != nil {
		return nil, err
	}
	var board model.Leaderboard
	if err := json.Unmarshal(raw, &board); err != nil {
		return nil, fmt.Errorf("decode leaderboard %s: %w", rel, err)
	}
	return &board, nil
}
