package domain

import "strings"

// Normalize is the single normalization applied to both sides before any
// equality check: trim incidental whitespace. Values that differ only in
// surrounding whitespace must compare equal.
func Normalize(v string) string {
	return strings.TrimSpace(v)
}

// OnlyDigits strips every non-digit rune. The digits-only form is the only
// form ever used for CPF equality and lookup.
func OnlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatCPFMask renders an 11-digit CPF with the fixed punctuation mask:
// "48917993826" -> "489.179.938-26". Inputs that do not contain exactly 11
// digits are returned unchanged ("" stays "").
func FormatCPFMask(s string) string {
	d := OnlyDigits(s)
	if len(d) != 11 {
		return s
	}
	return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:]
}

// ToISODateOrOriginal converts "dd/MM/yyyy" into "yyyy-MM-dd". Anything that
// does not match that exact pattern is returned unchanged: an unrecognized
// date is data to preserve, not an error.
func ToISODateOrOriginal(s string) string {
	v := strings.TrimSpace(s)
	if len(v) != 10 || v[2] != '/' || v[5] != '/' {
		return s
	}
	dd, mm, yyyy := v[0:2], v[3:5], v[6:10]
	if !allDigits(dd) || !allDigits(mm) || !allDigits(yyyy) {
		return s
	}
	return yyyy + "-" + mm + "-" + dd
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
