package remote

import (
	"motoclub-theme/internal/document"
	"motoclub-theme/internal/palette"
)

// regionRule restyles one part of the site markup from a ui token. Rules
// with a region only apply when the document contains that region.
type regionRule struct {
	region   string
	selector string
	property string
	token    string
}

var regionRules = []regionRule{
	{region: "#navbar", selector: "#navbar", property: "background-color", token: "navbarBg"},
	{region: "#logo-text", selector: "#logo-text", property: "color", token: "navbarText"},
	{selector: "nav a:not(.bg-bordeaux)", property: "color", token: "navbarText"},
	{region: "#hero", selector: "#hero", property: "background-color", token: "heroBg"},
	{region: "#footer", selector: "#footer", property: "background-color", token: "footerBg"},
}

const (
	buttonSelector = ".btn-primary, .cta-button, .bg-bordeaux"
	titleSelector  = ".section-title::after"
	cardSelector   = ".card:hover, .event-card:hover, .member-card:hover"
)

// writeScheme writes a site palette as root custom properties followed by
// the region rules its ui tokens enable.
func writeScheme(doc *document.Document, s palette.Scheme) {
	c := s.Colors

	doc.SetProperty("--gold", c.Primary.Gold)
	doc.SetProperty("--gold-dark", c.Primary.GoldDark)
	doc.SetProperty("--bordeaux", c.Primary.Bordeaux)

	doc.SetProperty("--navy", c.Secondary.Navy)
	doc.SetProperty("--amaranth", c.Secondary.Amaranth)
	doc.SetProperty("--cream", c.Secondary.Cream)

	c.Neutral.Each(func(key, value string) {
		doc.SetProperty("--"+palette.Kebab(key), value)
	})

	if g := c.Gradients; g != nil {
		doc.SetProperty("--gradient-primary", g.Primary)
		doc.SetProperty("--gradient-hero", g.Hero)
		doc.SetProperty("--gradient-card", g.Card)
		doc.SetProperty("--gradient-navbar", g.Navbar)
	}

	doc.SetProperty("--shadow-gold", c.Shadows.Gold)
	doc.SetProperty("--shadow-bordeaux", c.Shadows.Bordeaux)

	if c.UI != nil {
		c.UI.Each(func(key, value string) {
			doc.SetProperty("--ui-"+palette.Kebab(key), value)
		})
	}

	writeRegions(doc, c)
}

func writeRegions(doc *document.Document, c palette.SchemeColors) {
	for _, r := range regionRules {
		if r.region != "" && !doc.Has(r.region) {
			continue
		}
		if v, ok := c.UIValue(r.token); ok {
			doc.SetStyle(r.selector, r.property, v)
		}
	}

	if bg, ok := c.UIValue("button"); ok {
		doc.SetStyle(buttonSelector, "background-color", bg)
		if fg, ok := c.UIValue("buttonText"); ok {
			doc.SetStyle(buttonSelector, "color", fg)
		}
	}

	if c.Gradients != nil && c.Gradients.Primary != "" {
		doc.SetStyle(titleSelector, "background", c.Gradients.Primary)
	}
	if c.Shadows.Gold != "" {
		doc.SetStyle(cardSelector, "box-shadow", c.Shadows.Gold)
	}
}
