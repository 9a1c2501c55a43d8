package snapshot

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"employee-sync/internal/providers/pipefy"
)

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.json")
	cards := []pipefy.Card{
		{
			ID:    "c1",
			Title: "Maria Souza",
			Fields: []pipefy.CardField{
				{Name: "CPF", Value: "489.179.938-26"},
				{Name: "Status", Value: "Ativo"},
			},
		},
		{ID: "c2", Title: "Joao"},
	}

	if err := Save(path, cards); err != nil {
		t.Fatalf("Expected save to succeed, got %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Expected load to succeed, got %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 cards, got %d", len(got))
	}
	if got[0].ID != "c1" || got[0].FieldValue("CPF") != "489.179.938-26" {
		t.Errorf("Card did not round-trip: %+v", got[0])
	}
}

func TestSaveNilIsEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.json")
	if err := Save(path, nil); err != nil {
		t.Fatalf("Expected save to succeed, got %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Cannot read snapshot: %v", err)
	}
	if strings.TrimSpace(string(b)) != "[]" {
		t.Errorf("Expected an empty JSON array, got %q", b)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Expected load to succeed, got %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected zero cards, got %d", len(got))
	}
}

func TestLoadMissingFileIsError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("Expected an error for a missing snapshot file")
	}
}

func TestLoadRejectsNonArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.json")
	if err := os.WriteFile(path, []byte(`{"not":"an array"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Expected an error for a non-array snapshot")
	}
}
