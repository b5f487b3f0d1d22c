package remote

import "motoclub-theme/internal/palette"

// FallbackProfile is the built-in site palette key.
const FallbackProfile = "motoclub-warm"

// Fallback returns the built-in site palette used when colors.json cannot
// be loaded or names no usable active palette.
func Fallback() palette.Scheme {
	ui := palette.NewTokens(
		"navbar", "#ffd700",
		"navbarHover", "#f6c401",
		"button", "#ab0031",
		"buttonHover", "#8b002a",
		"accent", "#f6c401",
		"highlight", "#ffd700",
	)
	return palette.Scheme{
		Name: "Moto Club Warm",
		Colors: palette.SchemeColors{
			Primary:   palette.Primary{Gold: "#ffd700", GoldDark: "#f6c401", Bordeaux: "#ab0031"},
			Secondary: palette.Secondary{Navy: "#1B263B", Amaranth: "#9B1D64", Cream: "#FEFCF6"},
			Neutral: palette.NewTokens(
				"white", "#FFFFFF",
				"black", "#0A0E14",
				"gray50", "#F9FAFB",
				"gray100", "#F3F4F6",
				"gray200", "#E5E7EB",
				"gray300", "#D1D5DB",
				"gray700", "#374151",
				"gray800", "#1F2937",
				"gray900", "#111827",
			),
			Gradients: &palette.Gradients{
				Primary: "linear-gradient(135deg, #ab0031 0%, #f6c401 50%, #ffd700 100%)",
				Hero:    "linear-gradient(135deg, rgba(171, 0, 49, 0.95) 0%, rgba(246, 196, 1, 0.85) 50%, rgba(255, 215, 0, 0.75) 100%)",
				Card:    "linear-gradient(145deg, rgba(171, 0, 49, 0.6) 0%, rgba(246, 196, 1, 0.4) 100%)",
				Navbar:  "linear-gradient(135deg, rgba(171, 0, 49, 0.95) 0%, rgba(27, 38, 59, 0.95) 100%)",
			},
			Shadows: palette.Shadows{
				Gold:     "0 10px 30px rgba(255, 215, 0, 0.3)",
				Bordeaux: "0 8px 25px rgba(171, 0, 49, 0.25)",
			},
			UI: &ui,
		},
	}
}

func fallbackCollection() palette.Collection {
	var c palette.Collection
	c.Set(FallbackProfile, Fallback())
	return c
}
