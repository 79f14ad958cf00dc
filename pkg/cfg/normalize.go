package cfg

import (
	"regexp"
	"strings"
)

// Mode is the surface syntax detected for an input.
type Mode string

// Syntax modes.
const (
	// ModeBrace is selected when the text contains both an opening and a
	// closing brace (C, Java, JavaScript, Go, ...).
	ModeBrace Mode = "brace"
	// ModeIndent is selected otherwise (Python, pseudocode).
	ModeIndent Mode = "indent"
)

// Comment stripping is naive by design: it does not honor string literals,
// so a // or # inside a string is treated as a comment start. Fixing this
// would require a real tokenizer and change observable output.
var (
	slashCommentRe = regexp.MustCompile(`//[^\n]*`)
	hashCommentRe  = regexp.MustCompile(`#[^\n]*`)
)

// Normalize converts raw source text into an ordered sequence of trimmed,
// non-empty statement lines plus the detected syntax mode.
//
// Brace mode strips //-comments, breaks lines around braces and statement
// terminators so each structural token lands on its own line, and rewrites
// the two-word form "else if" into the single keyword "elif" so the parser
// has one vocabulary for chained conditionals. Indent mode strips #-comments.
func Normalize(text string) ([]string, Mode) {
	mode := ModeIndent
	if strings.Contains(text, "{") && strings.Contains(text, "}") {
		mode = ModeBrace
	}

	switch mode {
	case ModeBrace:
		text = slashCommentRe.ReplaceAllString(text, "")
		text = strings.ReplaceAll(text, "{", "\n{\n")
		text = strings.ReplaceAll(text, "}", "\n}\n")
		text = strings.ReplaceAll(text, ";", ";\n")
		text = strings.ReplaceAll(text, "else if", "elif")
	case ModeIndent:
		text = hashCommentRe.ReplaceAllString(text, "")
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines, mode
}
