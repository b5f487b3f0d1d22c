package remote

import (
	"fmt"
	"time"

	"motoclub-theme/internal/document"
	"motoclub-theme/internal/metrics"
	"motoclub-theme/internal/palette"
)

// Overlay is what a page carries between requests: the palettes it
// imported and the palette it selected. The page keeps it in memory, so a
// reload starts again from the shared scheme.
type Overlay struct {
	Active   string             `json:"active,omitempty"`
	Profiles palette.Collection `json:"profiles"`
}

// Session is one page's view of the site scheme. It starts as a copy of
// the shared collection and is never shared between requests.
type Session struct {
	profiles palette.Collection
	imported palette.Collection
	base     string
	current  string
	now      func() time.Time
}

// Session returns a fresh page view of the shared scheme.
func (m *Manager) Session() *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return &Session{
		profiles: cloneCollection(m.profiles),
		base:     m.current,
		current:  m.current,
		now:      m.now,
	}
}

// Restore replays an overlay sent back by the page. Palettes that cannot
// be written safely reject the whole overlay; an unknown active key is
// ignored.
func (s *Session) Restore(ov Overlay) error {
	if err := checkValues(ov.Profiles); err != nil {
		return err
	}
	s.merge(ov.Profiles)
	if ov.Active != "" && s.profiles.Has(ov.Active) {
		s.current = ov.Active
	}
	return nil
}

// Overlay returns the state the page has to send back on its next request.
func (s *Session) Overlay() Overlay {
	ov := Overlay{Profiles: cloneCollection(s.imported)}
	if s.current != s.base {
		ov.Active = s.current
	}
	return ov
}

// ApplyProfile selects name for this page. Unknown names change nothing.
func (s *Session) ApplyProfile(name string) error {
	if !s.profiles.Has(name) {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	s.current = name
	label := name
	if s.imported.Has(name) {
		label = "imported"
	}
	metrics.ProfileApplies.WithLabelValues("site_page", label).Inc()
	return nil
}

// Current returns the palette selected for this page.
func (s *Session) Current() string {
	return s.current
}

// Profiles returns a deep copy of this page's collection.
func (s *Session) Profiles() palette.Collection {
	return cloneCollection(s.profiles)
}

// ProfileOptions lists this page's palettes, marking the selected one.
func (s *Session) ProfileOptions() []Option {
	return options(s.profiles, s.current)
}

// Changed reports whether the page differs from the shared scheme.
func (s *Session) Changed() bool {
	return s.current != s.base || s.imported.Len() > 0
}

// ApplyTo writes the selected palette into doc when the page changed
// anything. The shared snapshot already carries the base palette.
func (s *Session) ApplyTo(doc *document.Document) {
	if !s.Changed() {
		return
	}
	if sc, ok := s.profiles.Get(s.current); ok {
		writeScheme(doc, sc)
	}
}

func (s *Session) merge(incoming palette.Collection) {
	incoming.Each(func(k string, sc palette.Scheme) {
		s.profiles.Set(k, sc.Clone())
		s.imported.Set(k, sc.Clone())
	})
}
