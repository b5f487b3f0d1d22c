package cookiestore

import "motoclub-theme/internal/palette"

// DefaultProfile is the built-in palette used when nothing else is selected.
const DefaultProfile = "light"

// Defaults returns a fresh copy of the built-in palettes in their fixed
// order: light, dark, classic, racing, vintage.
func Defaults() palette.OrderedMap[palette.Palette] {
	var m palette.OrderedMap[palette.Palette]
	m.Set("light", palette.Palette{
		Name: "Chiaro (Default)",
		Colors: palette.Colors{
			Gold: "#D4AF37", GoldDark: "#B8941F",
			Navy: "#1B263B", NavyLight: "#2D3E5C",
			Amaranth: "#9B1D64", AmaranthDark: "#7A164F",
			Cream: "#FEFCF6", WarmGray: "#F5F3EE",
			TextPrimary: "#1B263B", TextSecondary: "#4B5563",
			CardBg: "#FFFFFF", BodyBg: "#FEFCF6",
		},
	})
	m.Set("dark", palette.Palette{
		Name: "Scuro",
		Colors: palette.Colors{
			Gold: "#D4AF37", GoldDark: "#B8941F",
			Navy: "#0D1321", NavyLight: "#1B263B",
			Amaranth: "#9B1D64", AmaranthDark: "#7A164F",
			Cream: "#1B263B", WarmGray: "#2D3E5C",
			TextPrimary: "#FFFFFF", TextSecondary: "#9CA3AF",
			CardBg: "#2D3E5C", BodyBg: "#0D1321",
		},
	})
	m.Set("classic", palette.Palette{
		Name: "Classico",
		Colors: palette.Colors{
			Gold: "#C9A227", GoldDark: "#A68B1F",
			Navy: "#2C3E50", NavyLight: "#34495E",
			Amaranth: "#8E1651", AmaranthDark: "#6B1141",
			Cream: "#F8F5F0", WarmGray: "#EBE8E3",
			TextPrimary: "#2C3E50", TextSecondary: "#5D6D7E",
			CardBg: "#FFFFFF", BodyBg: "#F8F5F0",
		},
	})
	m.Set("racing", palette.Palette{
		Name: "Racing",
		Colors: palette.Colors{
			Gold: "#FF6B00", GoldDark: "#CC5500",
			Navy: "#1A1A2E", NavyLight: "#16213E",
			Amaranth: "#E94560", AmaranthDark: "#B83650",
			Cream: "#F5F5F5", WarmGray: "#E8E8E8",
			TextPrimary: "#1A1A2E", TextSecondary: "#4A4A5A",
			CardBg: "#FFFFFF", BodyBg: "#F5F5F5",
		},
	})
	m.Set("vintage", palette.Palette{
		Name: "Vintage",
		Colors: palette.Colors{
			Gold: "#8B7355", GoldDark: "#6B5642",
			Navy: "#3D3229", NavyLight: "#5C4A3D",
			Amaranth: "#8B4513", AmaranthDark: "#6B3410",
			Cream: "#FAF0E6", WarmGray: "#E8DDD0",
			TextPrimary: "#3D3229", TextSecondary: "#6B5B4F",
			CardBg: "#FFFAF5", BodyBg: "#FAF0E6",
		},
	})
	return m
}

// IsDefault reports whether id names a built-in palette.
func IsDefault(id string) bool {
	switch id {
	case "light", "dark", "classic", "racing", "vintage":
		return true
	}
	return false
}

func lightColors() palette.Colors {
	p, _ := Defaults().Get(DefaultProfile)
	return p.Colors
}
