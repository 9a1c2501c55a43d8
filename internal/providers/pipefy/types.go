package pipefy

// Card is the Pipefy card shape this service reads and snapshots: identity,
// title and the flat field list. The JSON tags are exactly the GraphQL field
// names so the snapshot file round-trips the API response untouched.
type Card struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	CreatedAt string      `json:"created_at,omitempty"`
	Assignees []Assignee  `json:"assignees,omitempty"`
	Fields    []CardField `json:"fields"`
}

type Assignee struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CardField is one field value as Pipefy renders it: the human label and the
// current value. Field lookup is by exact label match, first match wins.
type CardField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// FieldValue returns the value of the first field with the given label, or
// "" when no field carries that label.
func (c Card) FieldValue(label string) string {
	for _, f := range c.Fields {
		if f.Name == label {
			return f.Value
		}
	}
	return ""
}

// FieldUpdate is one updateCardField input: the target field id and the new
// value, already canonical.
type FieldUpdate struct {
	FieldID string
	Value   string
}

// FieldAttribute is one createCard fields_attributes entry.
type FieldAttribute struct {
	FieldID string
	Value   string
}

// CreatedCard is the createCard mutation result.
type CreatedCard struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}
