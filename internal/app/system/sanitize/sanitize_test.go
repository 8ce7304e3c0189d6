package sanitize_test

import (
	"testing"

	"github.com/jwstechnologies/hackportal/internal/app/system/sanitize"
)

func TestText(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"St. Joseph's College", "St. Joseph's College"},
		{`<script>alert("x")</script>Asha`, "Asha"},
		{"<b>Bold Name</b>", "Bold Name"},
		{"plain", "plain"},
		{"A &amp; B College", "A & B College"},
	}
	for _, tt := range tests {
		if got := sanitize.Text(tt.input); got != tt.want {
			t.Errorf("Text(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
