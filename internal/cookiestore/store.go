// Package cookiestore implements the visitor color preference: five
// built-in palettes plus any number of custom ones, with the selection and
// the custom palettes persisted in a single cookie.
package cookiestore

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"motoclub-theme/internal/document"
	"motoclub-theme/internal/metrics"
	"motoclub-theme/internal/palette"
	"motoclub-theme/internal/ui"
)

const (
	// CookieName is the default preference cookie.
	CookieName = "mcColorConfig"
	// CookieDays is the default cookie lifetime.
	CookieDays = 365

	// browsers drop cookies past this size
	maxCookieBytes = 4096
)

// tailwindKeys maps palette keys to the tailwind color names they override.
var tailwindKeys = []struct{ key, name string }{
	{"gold", "gold"},
	{"goldDark", "gold-dark"},
	{"navy", "navy"},
	{"navyLight", "navy-light"},
	{"amaranth", "amaranth"},
	{"amaranthDark", "amaranth-dark"},
	{"cream", "cream"},
	{"warmGray", "warm-gray"},
}

// utilityRules lists the utility classes restyled on every apply.
var utilityRules = []struct{ selector, property, key string }{
	{".bg-cream", "background-color", "cream"},
	{".bg-warm-gray", "background-color", "warmGray"},
	{".bg-navy", "background-color", "navy"},
	{".bg-navy-light", "background-color", "navyLight"},
	{".bg-gold", "background-color", "gold"},
	{".bg-gold-dark", "background-color", "goldDark"},
	{".bg-amaranth", "background-color", "amaranth"},
	{".bg-amaranth-dark", "background-color", "amaranthDark"},
	{".bg-white", "background-color", "cardBg"},
	{".text-navy", "color", "textPrimary"},
	{".text-gold", "color", "gold"},
	{".text-amaranth", "color", "amaranth"},
	{".text-gray-600", "color", "textSecondary"},
	{".border-gold", "border-color", "gold"},
	{".border-navy", "border-color", "navy"},
}

// Options tunes cookie persistence. Zero values take the defaults.
type Options struct {
	CookieName string
	CookieDays int
	Secure     bool
	Now        func() time.Time
}

// state is the cookie payload.
type state struct {
	CurrentProfile string                              `json:"currentProfile"`
	CustomProfiles palette.OrderedMap[palette.Palette] `json:"customProfiles"`
}

// Store manages one visitor's palette selection. A Store is built per
// request from the visitor's cookie and is not safe for concurrent use.
type Store struct {
	jar  Jar
	doc  *document.Document
	opts Options

	current string
	custom  palette.OrderedMap[palette.Palette]
	applied *palette.Colors
}

// New creates a store persisting through jar. doc may be nil, in which case
// palettes are only recorded for a later ApplyTo.
func New(jar Jar, doc *document.Document, opts Options) *Store {
	if opts.CookieName == "" {
		opts.CookieName = CookieName
	}
	if opts.CookieDays <= 0 {
		opts.CookieDays = CookieDays
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Store{
		jar:     jar,
		doc:     doc,
		opts:    opts,
		current: DefaultProfile,
	}
}

// Init loads the persisted selection and applies the active palette.
func (s *Store) Init() {
	s.LoadFromCookie()
	s.ApplyColors(s.CurrentColors())
}

// CurrentProfile returns the active profile key.
func (s *Store) CurrentProfile() string {
	return s.current
}

// CustomProfiles returns a copy of the custom palettes in creation order.
func (s *Store) CustomProfiles() palette.OrderedMap[palette.Palette] {
	return s.custom.Clone()
}

// AllProfiles returns the built-in palettes followed by the custom ones.
// A custom palette stored under a built-in key replaces it in place.
func (s *Store) AllProfiles() palette.OrderedMap[palette.Palette] {
	all := Defaults()
	all.Merge(s.custom)
	return all
}

// CurrentColors returns the active palette's colors, or the light palette
// when the active key is unknown.
func (s *Store) CurrentColors() palette.Colors {
	if p, ok := s.AllProfiles().Get(s.current); ok {
		return p.Colors
	}
	return lightColors()
}

// ApplyColors writes colors into the attached document and remembers them
// for ApplyTo.
func (s *Store) ApplyColors(colors palette.Colors) {
	s.applied = &colors
	if s.doc != nil {
		writeColors(s.doc, colors)
	}
}

// ApplyTo writes the most recently applied colors (or the active palette
// when nothing was applied yet) into doc.
func (s *Store) ApplyTo(doc *document.Document) {
	colors := s.CurrentColors()
	if s.applied != nil {
		colors = *s.applied
	}
	writeColors(doc, colors)
}

// SetProfile activates id and persists. The key is not checked; an unknown
// key renders the light colors.
func (s *Store) SetProfile(id string) {
	s.current = id
	s.ApplyColors(s.CurrentColors())
	s.SaveToCookie()
	metrics.ProfileApplies.WithLabelValues("visitor", metricLabel(id)).Inc()
}

// SaveCustomProfile stores a copy of colors under a new custom_<millis> key,
// activates it and persists. Two saves within the same millisecond share a
// key and the later one wins.
func (s *Store) SaveCustomProfile(name string, colors palette.Colors) string {
	id := fmt.Sprintf("custom_%d", s.opts.Now().UnixMilli())
	s.custom.Set(id, palette.Palette{Name: name, Colors: colors})
	s.current = id
	s.ApplyColors(colors)
	s.SaveToCookie()
	metrics.ProfileApplies.WithLabelValues("visitor", "custom").Inc()
	return id
}

// DeleteCustomProfile removes a custom palette. Unknown ids are ignored.
// Deleting the active palette reverts to the default.
func (s *Store) DeleteCustomProfile(id string) {
	if !s.custom.Has(id) {
		return
	}
	s.custom.Delete(id)
	if s.current == id {
		s.current = DefaultProfile
		s.ApplyColors(s.CurrentColors())
	}
	s.SaveToCookie()
}

// Preview applies colors without persisting them.
func (s *Store) Preview(colors palette.Colors) {
	s.ApplyColors(colors)
}

// SaveToCookie persists the selection and the custom palettes.
func (s *Store) SaveToCookie() {
	data, err := json.Marshal(state{CurrentProfile: s.current, CustomProfiles: s.custom})
	if err != nil {
		ui.LogStatus("error", "Encoding color preferences failed: "+err.Error())
		return
	}
	value := EncodeComponent(string(data))
	if len(value) > maxCookieBytes {
		ui.LogStatus("warning", fmt.Sprintf("Color preference cookie is %d bytes; browsers may drop it", len(value)))
	}

	s.jar.Set(&http.Cookie{
		Name:     s.opts.CookieName,
		Value:    value,
		Path:     "/",
		Expires:  s.opts.Now().Add(time.Duration(s.opts.CookieDays) * 24 * time.Hour),
		MaxAge:   s.opts.CookieDays * 24 * 60 * 60,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.opts.Secure,
	})
}

// LoadFromCookie restores persisted state. A missing cookie leaves the
// defaults; a malformed one is logged and ignored.
func (s *Store) LoadFromCookie() {
	raw, ok := s.jar.Get(s.opts.CookieName)
	if !ok || raw == "" {
		return
	}

	decoded, err := DecodeComponent(raw)
	if err != nil {
		s.rejectCookie(err)
		return
	}
	var st state
	if err := json.Unmarshal([]byte(decoded), &st); err != nil {
		s.rejectCookie(err)
		return
	}

	s.current = st.CurrentProfile
	if s.current == "" {
		s.current = DefaultProfile
	}

	// A hand-edited cookie may carry anything; only #RRGGBB palettes load.
	var custom palette.OrderedMap[palette.Palette]
	st.CustomProfiles.Each(func(id string, p palette.Palette) {
		if err := p.Colors.Validate(); err != nil {
			s.rejectCookie(fmt.Errorf("custom palette %q: %w", id, err))
			return
		}
		custom.Set(id, p)
	})
	s.custom = custom
}

func (s *Store) rejectCookie(err error) {
	metrics.CookieErrors.Inc()
	ui.LogStatus("warning", "Ignoring malformed color preferences: "+err.Error())
}

func writeColors(doc *document.Document, colors palette.Colors) {
	for _, k := range palette.FieldKeys {
		doc.SetProperty("--color-"+palette.Kebab(k), colors.Get(k))
	}

	patch := make(map[string]string, len(tailwindKeys))
	for _, tk := range tailwindKeys {
		patch[tk.name] = colors.Get(tk.key)
	}
	doc.PatchTailwind(patch)

	doc.SetStyle("body", "background-color", colors.BodyBg)
	for _, r := range utilityRules {
		doc.SetStyle(r.selector, r.property, colors.Get(r.key))
	}
}

// metricLabel keeps the profile label bounded: every custom key shares one label.
func metricLabel(id string) string {
	if IsDefault(id) {
		return id
	}
	if strings.HasPrefix(id, "custom_") {
		return "custom"
	}
	return "unknown"
}

// EncodeComponent percent-encodes s the way encodeURIComponent does, so
// cookies written here and by the page script decode the same way.
func EncodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// DecodeComponent reverses EncodeComponent and accepts the unescaped
// !'()* characters encodeURIComponent leaves in place.
func DecodeComponent(s string) (string, error) {
	return url.PathUnescape(s)
}
