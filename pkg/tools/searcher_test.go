package tools

import "testing"

func TestHasEncyclopediaIntent(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"who is alan turing", true},
		{"what is a goroutine", true},
		{"define idempotent", true},
		{"check the wiki page for go", true},
		{"weather in paris", false},
		{"best pizza near me", false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if got := hasEncyclopediaIntent(tt.query); got != tt.want {
				t.Errorf("hasEncyclopediaIntent(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}
