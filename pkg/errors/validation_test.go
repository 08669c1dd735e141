package errors

import (
	"strings"
	"testing"
)

func TestValidateElementID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "a1b2c3", false},
		{"valid underscore start", "_anchor", false},
		{"valid with dash", "node-12", false},
		{"valid with dot", "n.12", false},

		{"empty", "", true},
		{"too long", "a" + strings.Repeat("b", 200), true},
		{"digit start", "1abc", true},
		{"space", "a b", true},
		{"quote", `a"b`, true},
		{"angle bracket", "a<b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateElementID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateElementID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateBoardName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid default", "default", false},
		{"valid with dash", "lab-bench", false},
		{"valid with digits", "board2", false},

		{"empty", "", true},
		{"uppercase", "Default", true},
		{"path", "a/b", true},
		{"traversal", "..", true},
		{"too long", strings.Repeat("a", 65), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBoardName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBoardName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidBoard) {
				t.Errorf("ValidateBoardName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidBoard)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid relative", "pathways/WP1.gpml", false},
		{"valid absolute", "/tmp/WP1.gpml", false},

		{"empty", "", true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
		{"too long", strings.Repeat("a", 5000), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateLocator(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantPath string
		wantErr  bool
	}{
		{"file url", "file:///tmp/WP1.gpml", "/tmp/WP1.gpml", false},
		{"file url with spaces around", "  file:///tmp/a.gpml \r", "/tmp/a.gpml", false},

		{"empty", "", "", true},
		{"plain text", "just some pasted words", "", true},
		{"http url", "https://example.org/a.gpml", "", true},
		{"relative", "tmp/a.gpml", "", true},
		{"no path", "file://host", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := ValidateLocator(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateLocator(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				if !Is(err, ErrCodeInvalidLocator) {
					t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidLocator)
				}
				return
			}
			if u.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", u.Path, tt.wantPath)
			}
		})
	}
}
