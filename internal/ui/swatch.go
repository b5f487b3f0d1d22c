package ui

import (
	"github.com/fatih/color"
	"github.com/lucasb-eyer/go-colorful"
)

// Swatch renders a two-cell block in the given hex color followed by the
// hex text. Values that are not plain hex colors are shown as text only.
func Swatch(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil || len(hex) != 7 {
		return Muted("%s", hex)
	}
	r, g, b := c.RGB255()
	block := color.BgRGB(int(r), int(g), int(b)).Sprint("  ")
	return block + " " + Subtle("%s", hex)
}

// Swatches renders several colors side by side without labels.
func Swatches(hexes ...string) string {
	s := ""
	for _, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil || len(h) != 7 {
			s += "  "
			continue
		}
		r, g, b := c.RGB255()
		s += color.BgRGB(int(r), int(g), int(b)).Sprint("  ")
	}
	return s
}
