package domain

// Record is the canonical representation of an employee inside this service,
// keyed by logical field name. Both sources (Pipefy cards, Sinergy payloads)
// map into this shape before any comparison.
//
// Absent data is always the empty string, never a missing key, so that
// comparison stays total across the whole field table.
type Record map[string]string

// Get returns the value for key, with absent keys reading as "".
func (r Record) Get(key string) string {
	if r == nil {
		return ""
	}
	return r[key]
}
