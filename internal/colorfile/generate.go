package colorfile

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/gamut"

	"motoclub-theme/internal/palette"
)

// Generate derives a complete site scheme from a single gold color. The
// dark and light variants come from gamut, the bordeaux and amaranth
// accents are hue rotations of the base in HCL space, and the navy is a
// deep shade of the base's complement.
func Generate(name, gold string) (palette.Scheme, error) {
	base, err := palette.ParseHex(gold)
	if err != nil {
		return palette.Scheme{}, err
	}

	goldDark := gamut.Darker(base, 0.15)
	bordeaux := rotate(base, -70, 0.45)
	amaranth := rotate(base, -110, 0.5)
	navy := gamut.Darker(gamut.Complementary(base), 0.65)
	cream := gamut.Lighter(base, 0.92)
	buttonHover := gamut.Darker(bordeaux, 0.2)

	neutral := palette.NewTokens(
		"white", "#FFFFFF",
		"black", hexOf(gamut.Darker(navy, 0.5)),
	)
	for i, c := range gamut.Blends(gamut.Lighter(navy, 0.97), gamut.Darker(navy, 0.2), len(grayScale)) {
		neutral.Set(grayScale[i], hexOf(c))
	}

	ui := palette.NewTokens(
		"navbar", hexOf(base),
		"navbarHover", hexOf(goldDark),
		"navbarBg", hexOf(navy),
		"navbarText", readableOn(navy),
		"button", hexOf(bordeaux),
		"buttonHover", hexOf(buttonHover),
		"buttonText", readableOn(bordeaux),
		"accent", hexOf(goldDark),
		"highlight", hexOf(base),
	)

	return palette.Scheme{
		Name:        name,
		Description: fmt.Sprintf("Generato da %s", strings.ToUpper(gold)),
		Colors: palette.SchemeColors{
			Primary: palette.Primary{
				Gold:     hexOf(base),
				GoldDark: hexOf(goldDark),
				Bordeaux: hexOf(bordeaux),
			},
			Secondary: palette.Secondary{
				Navy:     hexOf(navy),
				Amaranth: hexOf(amaranth),
				Cream:    hexOf(cream),
			},
			Neutral: neutral,
			Gradients: &palette.Gradients{
				Primary: fmt.Sprintf("linear-gradient(135deg, %s 0%%, %s 50%%, %s 100%%)", hexOf(bordeaux), hexOf(goldDark), hexOf(base)),
				Hero:    fmt.Sprintf("linear-gradient(135deg, %s 0%%, %s 50%%, %s 100%%)", rgba(bordeaux, 0.95), rgba(goldDark, 0.85), rgba(base, 0.75)),
				Card:    fmt.Sprintf("linear-gradient(145deg, %s 0%%, %s 100%%)", rgba(bordeaux, 0.6), rgba(goldDark, 0.4)),
				Navbar:  fmt.Sprintf("linear-gradient(135deg, %s 0%%, %s 100%%)", rgba(bordeaux, 0.95), rgba(navy, 0.95)),
			},
			Shadows: palette.Shadows{
				Gold:     "0 10px 30px " + rgba(base, 0.3),
				Bordeaux: "0 8px 25px " + rgba(bordeaux, 0.25),
			},
			UI: &ui,
		},
	}, nil
}

var grayScale = []string{"gray50", "gray100", "gray200", "gray300", "gray700", "gray800", "gray900"}

// rotate shifts c's hue by degrees and scales its lightness.
func rotate(c colorful.Color, degrees, lightness float64) colorful.Color {
	h, chroma, l := c.Hcl()
	h = math.Mod(h+degrees+360, 360)
	return colorful.Hcl(h, chroma, l*lightness).Clamped()
}

// readableOn picks white or near-black text, whichever contrasts more with bg.
func readableOn(bg color.Color) string {
	hex := hexOf(bg)
	white, _ := palette.Contrast("#FFFFFF", hex)
	black, _ := palette.Contrast("#0A0E14", hex)
	if white >= black {
		return "#FFFFFF"
	}
	return "#0A0E14"
}

func hexOf(c color.Color) string {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return "#000000"
	}
	return strings.ToUpper(cf.Clamped().Hex())
}

func rgba(c color.Color, alpha float64) string {
	cf, _ := colorful.MakeColor(c)
	r, g, b := cf.Clamped().RGB255()
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", alpha), "0"), "."))
}
