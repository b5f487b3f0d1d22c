// Package panel renders the theme control panel: the visitor's palette
// picker and editor plus the site palette selector.
package panel

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"

	"motoclub-theme/internal/cookiestore"
	"motoclub-theme/internal/palette"
	"motoclub-theme/internal/remote"
)

// Panel timing, in milliseconds, read by the panel script.
const (
	OpenDelayMS  = 10
	CloseDelayMS = 300
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns the panel's browser assets rooted at the static directory.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Card is one selectable visitor palette.
type Card struct {
	ID       string
	Name     string
	Swatches []string
	Active   bool
}

// Row is one editor line.
type Row struct {
	Key   string
	Label string
	Value string
}

// View is everything the panel template reads.
type View struct {
	Defaults     []Card
	Customs      []Card
	Editor       []Row
	Site         []remote.Option
	Notice       *Notice
	OpenDelayMS  int
	CloseDelayMS int
}

// BuildView collects the panel state for one visitor.
func BuildView(store *cookiestore.Store, site []remote.Option) View {
	v := View{
		Site:         site,
		OpenDelayMS:  OpenDelayMS,
		CloseDelayMS: CloseDelayMS,
	}
	current := store.CurrentProfile()

	cookiestore.Defaults().Each(func(id string, p palette.Palette) {
		c := card(id, p, current)
		c.Swatches = append(c.Swatches, p.Colors.BodyBg)
		v.Defaults = append(v.Defaults, c)
	})
	store.CustomProfiles().Each(func(id string, p palette.Palette) {
		v.Customs = append(v.Customs, card(id, p, current))
	})

	colors := store.CurrentColors()
	for _, k := range palette.ColorKeys {
		v.Editor = append(v.Editor, Row{Key: k.Key, Label: k.Label, Value: colors.Get(k.Key)})
	}
	return v
}

func card(id string, p palette.Palette, current string) Card {
	return Card{
		ID:       id,
		Name:     p.Name,
		Swatches: []string{p.Colors.Gold, p.Colors.Navy, p.Colors.Amaranth},
		Active:   id == current,
	}
}

// Renderer executes the panel templates.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("panel").Funcs(template.FuncMap{
		"css": func(s string) template.CSS {
			if !palette.ValidHex(s) {
				return template.CSS("transparent")
			}
			return template.CSS(s)
		},
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse panel templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render returns the panel markup for v.
func (r *Renderer) Render(v View) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "panel.html", v); err != nil {
		return "", fmt.Errorf("render panel: %w", err)
	}
	return template.HTML(buf.String()), nil
}
