package cfg

import (
	"reflect"
	"testing"
)

func TestNormalizeModeDetection(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Mode
	}{
		{"pythonish", "if x:\n    pass", ModeIndent},
		{"cStyle", "if (x) { y; }", ModeBrace},
		{"openBraceOnly", "dict = {", ModeIndent},
		{"closeBraceOnly", "}", ModeIndent},
		{"empty", "", ModeIndent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mode := Normalize(tt.input)
			if mode != tt.want {
				t.Errorf("Normalize(%q) mode = %s, want %s", tt.input, mode, tt.want)
			}
		})
	}
}

func TestNormalizeIndentMode(t *testing.T) {
	lines, mode := Normalize("a = 1  # set a\n\n  b = 2\n# full comment line\nc = 3")
	if mode != ModeIndent {
		t.Fatalf("mode = %s, want indent", mode)
	}

	want := []string{"a = 1", "b = 2", "c = 3"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("lines = %v, want %v", lines, want)
	}
}

func TestNormalizeBraceMode(t *testing.T) {
	lines, mode := Normalize("if (x) { a; b; } // trailing comment")
	if mode != ModeBrace {
		t.Fatalf("mode = %s, want brace", mode)
	}

	want := []string{"if (x)", "{", "a;", "b;", "}"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("lines = %v, want %v", lines, want)
	}
}

func TestNormalizeElseIfRewrite(t *testing.T) {
	lines, _ := Normalize("if (x) { a; } else if (y) { b; }")

	found := false
	for _, line := range lines {
		if line == "elif (y)" {
			found = true
		}
		if line == "else if (y)" {
			t.Error("two-word else if should have been rewritten")
		}
	}
	if !found {
		t.Errorf("expected an elif line, got %v", lines)
	}
}

func TestNormalizeNaiveCommentStripping(t *testing.T) {
	// Stripping does not honor string literals. The tail of the line after
	// the marker is lost; this is documented behavior, not a bug to fix.
	lines, _ := Normalize(`url = "http://example.com" { }`)
	want := []string{`url = "http:`}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("lines = %v, want %v", lines, want)
	}
}
