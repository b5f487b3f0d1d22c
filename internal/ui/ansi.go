package ui

import (
	"io"
	"regexp"
	"strings"
	"unicode/utf8"
)

// SGR color codes and OSC-8 hyperlinks
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m|\x1b\]8;;[^\x1b]*\x1b\\`)

// StripAnsi removes all ANSI escape codes from a string
func StripAnsi(input string) string {
	return ansiPattern.ReplaceAllString(input, "")
}

// VisibleWidth returns the display width of a string in runes, ignoring ANSI codes
func VisibleWidth(input string) int {
	return utf8.RuneCountInString(StripAnsi(input))
}

// PadRight pads a string to a minimum visible width
func PadRight(input string, width int) string {
	if pad := width - VisibleWidth(input); pad > 0 {
		return input + strings.Repeat(" ", pad)
	}
	return input
}

// PadLeft right-aligns a string within a minimum visible width
func PadLeft(input string, width int) string {
	if pad := width - VisibleWidth(input); pad > 0 {
		return strings.Repeat(" ", pad) + input
	}
	return input
}

// stripWriter removes ANSI codes before writing, for file sinks.
type stripWriter struct {
	w io.Writer
}

func (s *stripWriter) Write(p []byte) (int, error) {
	if _, err := io.WriteString(s.w, StripAnsi(string(p))); err != nil {
		return 0, err
	}
	return len(p), nil
}
