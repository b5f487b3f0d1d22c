package palette

// Scheme is a site palette as stored in colors.json: grouped colors plus
// optional gradients and free-form ui tokens.
type Scheme struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Colors      SchemeColors `json:"colors"`
}

// SchemeColors groups a scheme's values by role.
type SchemeColors struct {
	Primary   Primary    `json:"primary"`
	Secondary Secondary  `json:"secondary"`
	Neutral   Tokens     `json:"neutral"`
	Gradients *Gradients `json:"gradients,omitempty"`
	Shadows   Shadows    `json:"shadows"`
	UI        *Tokens    `json:"ui,omitempty"`
}

type Primary struct {
	Gold     string `json:"gold"`
	GoldDark string `json:"goldDark"`
	Bordeaux string `json:"bordeaux"`
}

type Secondary struct {
	Navy     string `json:"navy"`
	Amaranth string `json:"amaranth"`
	Cream    string `json:"cream"`
}

type Gradients struct {
	Primary string `json:"primary"`
	Hero    string `json:"hero"`
	Card    string `json:"card"`
	Navbar  string `json:"navbar"`
}

type Shadows struct {
	Gold     string `json:"gold"`
	Bordeaux string `json:"bordeaux"`
}

// Collection is an ordered set of schemes keyed by id (e.g. "motoclub-warm").
type Collection = OrderedMap[Scheme]

// UIValue returns a ui token, reporting false when the scheme has no ui
// group or the token is absent or empty.
func (c SchemeColors) UIValue(key string) (string, bool) {
	if c.UI == nil {
		return "", false
	}
	v, ok := c.UI.Get(key)
	return v, ok && v != ""
}

// Clone returns a deep copy of the scheme.
func (s Scheme) Clone() Scheme {
	out := s
	out.Colors.Neutral = s.Colors.Neutral.Clone()
	if s.Colors.Gradients != nil {
		g := *s.Colors.Gradients
		out.Colors.Gradients = &g
	}
	if s.Colors.UI != nil {
		ui := s.Colors.UI.Clone()
		out.Colors.UI = &ui
	}
	return out
}

// Groups returns the scheme's color groups as ordered tokens keyed by
// category name, in the order primary, secondary, neutral, gradients,
// shadows, ui. Absent optional groups are skipped.
func (c SchemeColors) Groups() OrderedMap[Tokens] {
	var out OrderedMap[Tokens]

	var primary Tokens
	primary.Set("gold", c.Primary.Gold)
	primary.Set("goldDark", c.Primary.GoldDark)
	primary.Set("bordeaux", c.Primary.Bordeaux)
	out.Set("primary", primary)

	var secondary Tokens
	secondary.Set("navy", c.Secondary.Navy)
	secondary.Set("amaranth", c.Secondary.Amaranth)
	secondary.Set("cream", c.Secondary.Cream)
	out.Set("secondary", secondary)

	out.Set("neutral", c.Neutral.Clone())

	if c.Gradients != nil {
		var g Tokens
		g.Set("primary", c.Gradients.Primary)
		g.Set("hero", c.Gradients.Hero)
		g.Set("card", c.Gradients.Card)
		g.Set("navbar", c.Gradients.Navbar)
		out.Set("gradients", g)
	}

	var shadows Tokens
	shadows.Set("gold", c.Shadows.Gold)
	shadows.Set("bordeaux", c.Shadows.Bordeaux)
	out.Set("shadows", shadows)

	if c.UI != nil {
		out.Set("ui", c.UI.Clone())
	}
	return out
}

// NewTokens builds tokens from alternating key, value arguments.
func NewTokens(kv ...string) Tokens {
	var t Tokens
	for i := 0; i+1 < len(kv); i += 2 {
		t.Set(kv[i], kv[i+1])
	}
	return t
}
