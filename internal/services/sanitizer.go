package services

import (
	"math"
	"regexp"
	"strings"
)

// RedactionToken replaces every PII match.
const RedactionToken = "[REDACTED]"

// Applied in order. Email runs first so its digits are gone before the phone pattern.
var piiPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b[\w.%+-]+@[\w.-]+\.[A-Za-z]{2,}\b`),
	regexp.MustCompile(`\b\+?\d[\d\s().-]{7,}\b`),
	regexp.MustCompile(`(?i)\b\d{1,5}\s+[\w\s.]+\s(?:Street|St|Avenue|Ave|Road|Rd|Boulevard|Blvd|Lane|Ln|Drive|Dr)\b`),
}

var controlChars = regexp.MustCompile(`[\x00-\x1F\x7F]`)

// Sanitize redacts email, phone and street-address patterns, replaces ASCII
// control characters with spaces and trims the result.
func Sanitize(text string) string {
	for _, pattern := range piiPatterns {
		text = pattern.ReplaceAllLiteralString(text, RedactionToken)
	}
	text = controlChars.ReplaceAllLiteralString(text, " ")
	return strings.TrimSpace(text)
}

// SanitizeAll sanitizes each element and joins them with ", ".
func SanitizeAll(values []string) string {
	return Sanitize(strings.Join(values, ", "))
}

// ClampScore bounds v to [lo, hi].
func ClampScore(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// roundTo rounds half up at the given number of decimals.
func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Floor(v*p+0.5) / p
}
