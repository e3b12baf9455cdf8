package textutil

import "testing"

func TestCleanLabel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Developer", "Developer"},
		{"trims", "  Stop bath ", "Stop bath"},
		{"collapses whitespace", "Pre\t\tsoak\nwash", "Pre soak wash"},
		{"drops escape sequences", "Fix\x1b[2K", "Fix[2K"},
		{"drops carriage return", "A\rB", "A B"},
		{"keeps unicode", "Entwickler ☕", "Entwickler ☕"},
		{"empty", " \t ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanLabel(tt.input); got != tt.want {
				t.Fatalf("CleanLabel(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
