package palette

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidHex is returned when a value is not a #RRGGBB color.
var ErrInvalidHex = errors.New("invalid hex color")

var hexPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ValidHex reports whether s is a six digit hex color like #D4AF37.
func ValidHex(s string) bool {
	return hexPattern.MatchString(s)
}

// ParseHex validates s and converts it for color math.
func ParseHex(s string) (colorful.Color, error) {
	if !ValidHex(s) {
		return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	return c, nil
}

// NormalizeHex returns the canonical upper-case form of a valid hex color.
func NormalizeHex(s string) (string, error) {
	if !ValidHex(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	return strings.ToUpper(s), nil
}

// Luminance returns the WCAG relative luminance of a hex color.
func Luminance(hex string) (float64, error) {
	c, err := ParseHex(hex)
	if err != nil {
		return 0, err
	}
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b, nil
}

// Contrast returns the WCAG contrast ratio between two hex colors (1..21).
func Contrast(a, b string) (float64, error) {
	la, err := Luminance(a)
	if err != nil {
		return 0, err
	}
	lb, err := Luminance(b)
	if err != nil {
		return 0, err
	}
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05), nil
}

// Kebab turns a camelCase key into the kebab-case form used for CSS
// variable names: every upper-case letter gets a leading dash and the
// whole string is lower-cased. Digits are left attached ("gray50").
func Kebab(key string) string {
	var b strings.Builder
	b.Grow(len(key) + 4)
	for _, r := range key {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}
