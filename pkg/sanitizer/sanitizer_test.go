package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain", input: "Somchai", expected: "Somchai"},
		{name: "surrounding whitespace", input: "  Somchai  ", expected: "Somchai"},
		{name: "internal runs collapse", input: "Honda   Civic\tType R", expected: "Honda Civic Type R"},
		{name: "empty", input: "", expected: ""},
		{name: "only whitespace", input: " \t\n ", expected: ""},
		{name: "thai text preserved", input: " กก 1234 ", expected: "กก 1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestNormalizeLicensePlate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "latin upcased", input: "ab 1234", expected: "AB 1234"},
		{name: "thai untouched", input: "กก1234", expected: "กก1234"},
		{name: "trimmed", input: "  1กข 567  ", expected: "1กข 567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeLicensePlate(tt.input); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "thai mobile to e164", input: "0812345678", expected: "+66812345678"},
		{name: "already e164", input: "+66812345678", expected: "+66812345678"},
		{name: "unparseable passes through trimmed", input: " front desk ", expected: "front desk"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePhone(tt.input); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
