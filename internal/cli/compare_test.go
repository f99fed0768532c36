package cli

import (
	"strings"
	"testing"
)

func TestFormatDelta(t *testing.T) {
	tests := []struct {
		name string
		a, b uint32
		want string // substring of the rendered cell
	}{
		{"improvement", 200, 150, "-25.0%"},
		{"regression", 100, 110, "+10.0%"},
		{"unchanged", 50, 50, "+0.0%"},
		{"zero baseline", 0, 10, "—"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatDelta(tt.a, tt.b)
			if !strings.Contains(got, tt.want) {
				t.Errorf("formatDelta(%d, %d) = %q, want it to contain %q", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
