package palette

import "fmt"

// Colors is the flat twelve-color set used by visitor profiles.
type Colors struct {
	Gold          string `json:"gold"`
	GoldDark      string `json:"goldDark"`
	Navy          string `json:"navy"`
	NavyLight     string `json:"navyLight"`
	Amaranth      string `json:"amaranth"`
	AmaranthDark  string `json:"amaranthDark"`
	Cream         string `json:"cream"`
	WarmGray      string `json:"warmGray"`
	TextPrimary   string `json:"textPrimary"`
	TextSecondary string `json:"textSecondary"`
	CardBg        string `json:"cardBg"`
	BodyBg        string `json:"bodyBg"`
}

// Palette is a named flat color set.
type Palette struct {
	Name   string `json:"name"`
	Colors Colors `json:"colors"`
}

// ColorKey describes one editable color of a flat palette.
type ColorKey struct {
	Key   string
	Label string
}

// ColorKeys lists the editable colors in editor order.
var ColorKeys = []ColorKey{
	{Key: "gold", Label: "Oro (Primario)"},
	{Key: "goldDark", Label: "Oro Scuro"},
	{Key: "navy", Label: "Navy (Secondario)"},
	{Key: "navyLight", Label: "Navy Chiaro"},
	{Key: "amaranth", Label: "Amaranto (Accento)"},
	{Key: "amaranthDark", Label: "Amaranto Scuro"},
	{Key: "bodyBg", Label: "Sfondo Pagina"},
	{Key: "cardBg", Label: "Sfondo Card"},
	{Key: "warmGray", Label: "Sfondo Sezioni"},
	{Key: "textPrimary", Label: "Testo Principale"},
	{Key: "textSecondary", Label: "Testo Secondario"},
	{Key: "cream", Label: "Crema"},
}

// FieldKeys lists the color keys in declaration order, which is the order
// custom properties are written in.
var FieldKeys = []string{
	"gold", "goldDark", "navy", "navyLight", "amaranth", "amaranthDark",
	"cream", "warmGray", "textPrimary", "textSecondary", "cardBg", "bodyBg",
}

// Validate checks every color is a #RRGGBB value.
func (c Colors) Validate() error {
	for _, k := range FieldKeys {
		if v := c.Get(k); !ValidHex(v) {
			return fmt.Errorf("%s: %w: %q", k, ErrInvalidHex, v)
		}
	}
	return nil
}

// Get returns the color stored under a camelCase key, or "" for unknown keys.
func (c Colors) Get(key string) string {
	if p := c.field(key); p != nil {
		return *p
	}
	return ""
}

// Set stores value under key. It reports false for unknown keys.
func (c *Colors) Set(key, value string) bool {
	p := c.field(key)
	if p == nil {
		return false
	}
	*p = value
	return true
}

func (c *Colors) field(key string) *string {
	switch key {
	case "gold":
		return &c.Gold
	case "goldDark":
		return &c.GoldDark
	case "navy":
		return &c.Navy
	case "navyLight":
		return &c.NavyLight
	case "amaranth":
		return &c.Amaranth
	case "amaranthDark":
		return &c.AmaranthDark
	case "cream":
		return &c.Cream
	case "warmGray":
		return &c.WarmGray
	case "textPrimary":
		return &c.TextPrimary
	case "textSecondary":
		return &c.TextSecondary
	case "cardBg":
		return &c.CardBg
	case "bodyBg":
		return &c.BodyBg
	}
	return nil
}
