package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "email and phone",
			in:   "Contact me at a@b.com or 555-123-4567",
			want: "Contact me at [REDACTED] or [REDACTED]",
		},
		{
			name: "international phone",
			in:   "Call +1 (415) 555 0100.",
			want: "Call +[REDACTED].",
		},
		{
			name: "street address",
			in:   "Lives at 123 Main Street now",
			want: "Lives at [REDACTED] now",
		},
		{
			name: "address case insensitive",
			in:   "42 elm ave",
			want: "[REDACTED]",
		},
		{
			name: "control characters",
			in:   "\tline one\nline two\x7f",
			want: "line one line two",
		},
		{
			name: "short numbers kept",
			in:   "5 years of Go, 3 of Rust",
			want: "5 years of Go, 3 of Rust",
		},
		{name: "empty", in: "", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Sanitize(tc.in))
		})
	}
}

func TestSanitizeIsIdempotent(t *testing.T) {
	once := Sanitize("mail jane.doe@example.org, phone 555.123.4567\n")
	assert.Equal(t, once, Sanitize(once))
}

func TestSanitizeAll(t *testing.T) {
	assert.Equal(t, "Go, SQL, [REDACTED]", SanitizeAll([]string{"Go", "SQL", "x@y.io"}))
	assert.Equal(t, "", SanitizeAll(nil))
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0.0, ClampScore(-5, 0, 100))
	assert.Equal(t, 100.0, ClampScore(130, 0, 100))
	assert.Equal(t, 42.5, ClampScore(42.5, 0, 100))
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 69.5, roundTo(69.5, 2))
	assert.Equal(t, 0.9235, roundTo(0.923456, 4))
	assert.Equal(t, 3.0, roundTo(2.5, 0))
}
