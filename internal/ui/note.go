package ui

import (
	"strings"
)

// Note displays a boxed, word-wrapped message with an optional title
func Note(message, title string) {
	lines := wrap(message, 72)

	width := VisibleWidth(title) + 6
	for _, line := range lines {
		if w := VisibleWidth(line) + 4; w > width {
			width = w
		}
	}

	emit("\n")
	if title != "" {
		styled := title
		if IsRich() {
			styled = Heading("%s", title)
		}
		fill := width - 4 - VisibleWidth(title)
		emit("%s%s %s %s%s\n",
			Muted("%s", boxTopLeft), Muted("%s", strings.Repeat(boxHorizontal, 2)),
			styled,
			Muted("%s", strings.Repeat(boxHorizontal, fill)), Muted("%s", boxTopRight))
	} else {
		emit("%s\n", Muted("%s", boxTopLeft+strings.Repeat(boxHorizontal, width)+boxTopRight))
	}

	for _, line := range lines {
		emit("%s %s %s\n", Muted("%s", boxVertical), PadRight(line, width-2), Muted("%s", boxVertical))
	}
	emit("%s\n\n", Muted("%s", boxBottomLeft+strings.Repeat(boxHorizontal, width)+boxBottomRight))
}

// wrap splits message into lines of at most width visible characters,
// keeping explicit line breaks.
func wrap(message string, width int) []string {
	var out []string
	for _, line := range strings.Split(message, "\n") {
		words := strings.Fields(line)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		current := words[0]
		for _, word := range words[1:] {
			if VisibleWidth(current)+1+VisibleWidth(word) > width {
				out = append(out, current)
				current = word
				continue
			}
			current += " " + word
		}
		out = append(out, current)
	}
	return out
}

// WarningNote displays a warning-styled note
func WarningNote(message string) {
	Note(message, "⚠ Attenzione")
}

// ErrorNote displays an error-styled note
func ErrorNote(message string) {
	Note(message, "✗ Errore")
}

// SuccessNote displays a success-styled note
func SuccessNote(message string) {
	Note(message, "✓ OK")
}
