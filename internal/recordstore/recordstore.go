// Package recordstore provides the durable local cache for per-team player
// records. It is a plain key-value store handed to the reconciliation
// controller as an explicit dependency — never ambient state — so the
// controller stays testable without a real database on disk.
//
// Keys follow the format "team_{teamID}_players"; values are JSON-encoded
// player-record arrays, overwritten wholesale on every mutation.
package recordstore

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Beru003/valorant-coach-pro/internal/roster"
)

// Store is the key-value contract the reconciliation layer depends on.
type Store interface {
	// Get returns the stored bytes and whether the key exists.
	Get(key string) ([]byte, bool, error)
	// Set overwrites the value for a key.
	Set(key string, value []byte) error
	// Delete removes a key. Deleting a missing key is not an error.
	Delete(key string) error
}

// TeamKey returns the cache key for a team's player records.
func TeamKey(teamID string) string {
	return fmt.Sprintf("team_%s_players", teamID)
}

// LoadPlayers reads and decodes a team's cached player records. A missing
// key or corrupt JSON both report ok=false; corruption is surfaced in err
// so the caller can log it, but is otherwise treated as a cache miss.
func LoadPlayers(s Store, teamID string) (players []roster.PlayerRecord, ok bool, err error) {
	raw, found, err := s.Get(TeamKey(teamID))
	if err != nil || !found {
		return nil, false, err
	}
	if err := json.Unmarshal(raw, &players); err != nil {
		return nil, false, fmt.Errorf("decode cached players for team %s: %w", teamID, err)
	}
	return players, true, nil
}

// SavePlayers encodes and writes a team's player records, replacing any
// previous value.
func SavePlayers(s Store, teamID string, players []roster.PlayerRecord) error {
	raw, err := json.Marshal(players)
	if err != nil {
		return fmt.Errorf("encode players for team %s: %w", teamID, err)
	}
	return s.Set(TeamKey(teamID), raw)
}

// Memory is an in-process Store used in tests and when no cache path is
// configured. Safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string][]byte)}
}

func (m *Memory) Get(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, true, nil
}

func (m *Memory) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(value))
	copy(cp, value)
	m.entries[key] = cp
	return nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}
