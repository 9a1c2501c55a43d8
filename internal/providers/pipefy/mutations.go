package pipefy

import (
	"context"
	"fmt"
	"strings"
)

// UpdateCardFields issues one batched mutation covering the given field
// updates. Each updateCardField operation gets a deterministic alias so the
// operations can share a single mutation document. A nil/empty update list
// is a no-op.
func (c *Client) UpdateCardFields(ctx context.Context, cardID string, updates []FieldUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	var ops strings.Builder
	for _, u := range updates {
		fmt.Fprintf(&ops, `
  %s: updateCardField(
    input: {card_id: %q, field_id: %q, new_value: "%s"}
  ) {
    card { id }
  }`, aliasFor(u.FieldID), cardID, u.FieldID, gqlEscape(u.Value))
	}

	mutation := "mutation {" + ops.String() + "\n}"
	if err := c.CallGraphQL(ctx, mutation, nil, nil); err != nil {
		return fmt.Errorf("pipefy: update card %s: %w", cardID, err)
	}
	return nil
}

type createCardData struct {
	CreateCard struct {
		Card *CreatedCard `json:"card"`
	} `json:"createCard"`
}

// CreateCard creates a card in the pipe with the given field attributes.
// Empty values are dropped; Pipefy rejects some field types when handed "".
func (c *Client) CreateCard(ctx context.Context, pipeID int, fields []FieldAttribute) (*CreatedCard, error) {
	var attrs strings.Builder
	n := 0
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			continue
		}
		if n > 0 {
			attrs.WriteString(",\n      ")
		}
		fmt.Fprintf(&attrs, `{ field_id: %q, field_value: "%s" }`, f.FieldID, gqlEscape(f.Value))
		n++
	}

	mutation := fmt.Sprintf(`
mutation {
  createCard(input: {
    pipe_id: %d,
    fields_attributes: [
      %s
    ]
  }) {
    card {
      id
      title
    }
  }
}`, pipeID, attrs.String())

	var data createCardData
	if err := c.CallGraphQL(ctx, mutation, nil, &data); err != nil {
		return nil, fmt.Errorf("pipefy: create card: %w", err)
	}
	if data.CreateCard.Card == nil {
		return nil, fmt.Errorf("pipefy: create card: response contained no card")
	}
	return data.CreateCard.Card, nil
}

// aliasFor derives a GraphQL-safe alias from a field id.
func aliasFor(fieldID string) string {
	var b strings.Builder
	b.WriteString("f_")
	for _, r := range fieldID {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

var gqlEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\r", `\r`,
	"\n", `\n`,
)

// gqlEscape makes a value safe inside a double-quoted GraphQL string literal.
func gqlEscape(v string) string {
	return gqlEscaper.Replace(v)
}
