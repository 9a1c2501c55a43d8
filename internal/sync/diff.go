package sync

import (
	"employee-sync/internal/canonical"
	"employee-sync/internal/domain"
)

// FieldDiff is one disagreement between the two canonical records: the
// logical field plus both normalized values. SourceValue is the value that
// wins, the HR feed being authoritative.
type FieldDiff struct {
	Key         string
	CardValue   string
	SourceValue string
}

// Diff compares the two canonical records field by field, in mapping table
// order so the output is stable across runs. Equality is pure string
// equality after Normalize: no coercion and no case folding, since names and
// addresses are case-sensitive data. A case change is a real diff.
func Diff(mapping *canonical.Mapping, card, source domain.Record) []FieldDiff {
	var diffs []FieldDiff
	for _, f := range mapping.Fields() {
		a := domain.Normalize(card.Get(f.Key))
		b := domain.Normalize(source.Get(f.Key))
		if a != b {
			diffs = append(diffs, FieldDiff{Key: f.Key, CardValue: a, SourceValue: b})
		}
	}
	return diffs
}
