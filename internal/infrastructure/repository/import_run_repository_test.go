package repository

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateReasonKeepsValidUTF8(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		reason string
		want   int
	}{
		{name: "short", reason: "  upstream timeout  ", want: len("upstream timeout")},
		{name: "ascii over limit", reason: strings.Repeat("a", 1200), want: 1000},
		// 'é' is two bytes; byte 1000 falls inside the 500th rune
		{name: "two byte runes", reason: "x" + strings.Repeat("é", 600), want: 999},
		// '€' is three bytes
		{name: "three byte runes", reason: strings.Repeat("€", 400), want: 999},
		{name: "emoji", reason: "ab" + strings.Repeat("🙂", 300), want: 998},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := truncateReason(tt.reason)
			if !utf8.ValidString(got) {
				t.Fatalf("truncated reason is not valid UTF-8: %q", got[len(got)-4:])
			}
			if len(got) != tt.want {
				t.Fatalf("expected %d bytes, got %d", tt.want, len(got))
			}
		})
	}
}
