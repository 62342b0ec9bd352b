// Package watchlist owns the user's tracked asset ids: an ordered,
// deduplicated list persisted to a JSON file.
package watchlist

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
)

// Service is the tracked-asset store. Ids keep their insertion order;
// lookups and mutations are safe for concurrent use.
type Service struct {
	filePath string

	mu  sync.RWMutex
	ids []string
}

// NewService creates a watchlist backed by the given file
func NewService(filePath string) *Service {
	return &Service{
		filePath: filePath,
	}
}

// Start implements core.Interface: loads the persisted list if present
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if os.IsNotExist(err) {
		log.Printf("Watchlist: No existing file at %s, starting empty", s.filePath)
		s.ids = []string{}
		return nil
	}
	if err != nil {
		return fmt.Errorf("error reading watchlist file: %w", err)
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return fmt.Errorf("error parsing watchlist file: %w", err)
	}

	s.ids = dedupe(ids)
	log.Printf("Watchlist: Loaded %d tracked assets from %s", len(s.ids), s.filePath)
	return nil
}

// Stop implements core.Interface
func (s *Service) Stop() {}

// IDs returns a copy of the tracked asset ids in insertion order
func (s *Service) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, len(s.ids))
	copy(ids, s.ids)
	return ids
}

// Add appends an asset id if not already tracked, persisting the change.
// Returns false if the id was already present or blank.
func (s *Service) Add(assetID string) (bool, error) {
	assetID = normalize(assetID)
	if assetID == "" {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.ids {
		if id == assetID {
			return false, nil
		}
	}

	s.ids = append(s.ids, assetID)
	if err := s.persistLocked(); err != nil {
		s.ids = s.ids[:len(s.ids)-1]
		return false, err
	}
	return true, nil
}

// Remove drops an asset id from the list, persisting the change.
// Returns false if the id was not tracked.
func (s *Service) Remove(assetID string) (bool, error) {
	assetID = normalize(assetID)

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, id := range s.ids {
		if id != assetID {
			continue
		}
		removed := s.ids[i]
		s.ids = append(s.ids[:i], s.ids[i+1:]...)
		if err := s.persistLocked(); err != nil {
			// Restore on failed persist
			s.ids = append(s.ids[:i], append([]string{removed}, s.ids[i:]...)...)
			return false, err
		}
		return true, nil
	}
	return false, nil
}

func (s *Service) persistLocked() error {
	data, err := json.MarshalIndent(s.ids, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.filePath, data, 0o644)
}

func normalize(assetID string) string {
	return strings.ToLower(strings.TrimSpace(assetID))
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		id = normalize(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
