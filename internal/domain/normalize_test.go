package domain

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"  ", ""},
		{" João ", "João"},
		{"\tvalue\n", "value"},
		{"already clean", "already clean"},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestOnlyDigits(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"489.179.938-26", "48917993826"},
		{"48917993826", "48917993826"},
		{"abc", ""},
		{"", ""},
		{" 4 8 9 ", "489"},
	}
	for _, c := range cases {
		if got := OnlyDigits(c.in); got != c.want {
			t.Errorf("OnlyDigits(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatCPFMask(t *testing.T) {
	if got := FormatCPFMask("48917993826"); got != "489.179.938-26" {
		t.Errorf("Expected masked CPF '489.179.938-26', got %q", got)
	}

	// Already masked input is re-masked identically.
	if got := FormatCPFMask("489.179.938-26"); got != "489.179.938-26" {
		t.Errorf("Expected masked CPF to be stable, got %q", got)
	}

	// Anything without exactly 11 digits passes through unchanged.
	for _, in := range []string{"", "1234", "123456789012", "no digits"} {
		if got := FormatCPFMask(in); got != in {
			t.Errorf("FormatCPFMask(%q) = %q, want input unchanged", in, got)
		}
	}
}

// Masking is idempotent: mask(strip(mask(d))) == mask(d) for 11-digit input.
func TestFormatCPFMaskRoundTrip(t *testing.T) {
	digits := "12345678901"
	masked := FormatCPFMask(digits)
	again := FormatCPFMask(OnlyDigits(masked))
	if again != masked {
		t.Errorf("Round trip broke the mask: %q vs %q", again, masked)
	}
}

func TestToISODateOrOriginal(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"01/12/2023", "2023-12-01"},
		{"26/12/2025", "2025-12-26"},
		{"", ""},
		// Unrecognized patterns are preserved, not rejected.
		{"12-01-2023", "12-01-2023"},
		{"2023-12-01", "2023-12-01"},
		{"1/2/2023", "1/2/2023"},
		{"aa/bb/cccc", "aa/bb/cccc"},
	}
	for _, c := range cases {
		if got := ToISODateOrOriginal(c.in); got != c.want {
			t.Errorf("ToISODateOrOriginal(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestRecordGet(t *testing.T) {
	var nilRec Record
	if got := nilRec.Get("anything"); got != "" {
		t.Errorf("Expected empty string from nil record, got %q", got)
	}

	rec := Record{"cpf": "489.179.938-26"}
	if got := rec.Get("cpf"); got != "489.179.938-26" {
		t.Errorf("Expected stored value, got %q", got)
	}
	if got := rec.Get("missing"); got != "" {
		t.Errorf("Expected empty string for absent key, got %q", got)
	}
}
