// Package snapshot persists the harvested Pipefy card set between the
// extract stage and the sync stages. The file is a plain JSON array in the
// exact card shape the API returned, so a saved snapshot is also a usable
// test fixture.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"

	"employee-sync/internal/providers/pipefy"
)

// Save writes the card set to path, pretty-printed.
func Save(path string, cards []pipefy.Card) error {
	if cards == nil {
		cards = []pipefy.Card{}
	}
	b, err := json.MarshalIndent(cards, "", "  ")
	if err != nil {
		return fmt.Errorf("snapshot: marshal cards: %w", err)
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("snapshot: write %s: %w", path, err)
	}
	return nil
}

// Load reads a card set back. A missing file is an error: the sync stages
// must never run against an implicit empty snapshot.
func Load(path string) ([]pipefy.Card, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: read %s: %w", path, err)
	}
	var cards []pipefy.Card
	if err := json.Unmarshal(b, &cards); err != nil {
		return nil, fmt.Errorf("snapshot: %s is not a card array: %w", path, err)
	}
	return cards, nil
}
