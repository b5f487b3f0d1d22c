// Package remote implements the site color scheme: a collection of nested
// palettes fetched from colors.json and applied to the shared site
// document. Visitors never change the shared state; selection, import and
// export run on a per-page Session layered over it.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"sync"
	"time"

	"motoclub-theme/internal/document"
	"motoclub-theme/internal/metrics"
	"motoclub-theme/internal/palette"
	"motoclub-theme/internal/ui"
)

var (
	// ErrProfileNotFound is returned when applying a key the collection lacks.
	ErrProfileNotFound = errors.New("profilo non trovato")
	// ErrInvalidFormat is returned when a palette file has no profiles object.
	ErrInvalidFormat = errors.New("formato file non valido")
)

// maxFileBytes bounds colors.json and uploaded palette files.
const maxFileBytes = 1 << 20

// file is the colors.json shape as read.
type file struct {
	Version  string          `json:"version"`
	Profiles json.RawMessage `json:"profiles"`
	Active   string          `json:"active"`
}

// Option describes one entry of the palette selector.
type Option struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// Manager owns the site scheme. It is shared by every request, so all
// state sits behind mu. Only the process that owns it calls ApplyProfile.
type Manager struct {
	mu       sync.RWMutex
	source   string
	client   *http.Client
	now      func() time.Time
	doc      *document.Document
	profiles palette.Collection
	current  string
}

// NewClient returns an HTTP client that also serves file:// URLs, so a
// local colors.json is loaded with the same status semantics as a fetch.
func NewClient(timeout time.Duration) *http.Client {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.RegisterProtocol("file", http.NewFileTransport(http.Dir("/")))
	return &http.Client{Transport: t, Timeout: timeout}
}

// NewManager creates a manager that loads palettes from source and applies
// them to doc. A nil client gets NewClient's defaults.
func NewManager(source string, doc *document.Document, client *http.Client) *Manager {
	if client == nil {
		client = NewClient(10 * time.Second)
	}
	if doc == nil {
		doc = document.New()
	}
	return &Manager{
		source:  source,
		client:  client,
		now:     time.Now,
		doc:     doc,
		current: FallbackProfile,
	}
}

// SetClock replaces the clock used for export timestamps and filenames.
func (m *Manager) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// Init loads colors.json and applies its active palette. Any failure is
// logged and replaced by the built-in palette, so after Init there is
// always at least one palette and a valid active key.
func (m *Manager) Init(ctx context.Context) {
	if err := m.LoadFromJSON(ctx); err != nil {
		ui.LogStatus("warning", "Site palette unavailable, using built-in colors: "+err.Error())
		metrics.Fallbacks.WithLabelValues("load").Inc()
		m.loadFallback()
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.profiles.Has(m.current) {
		ui.LogStatus("warning", fmt.Sprintf("Active palette %q not found, using built-in colors", m.current))
		metrics.Fallbacks.WithLabelValues("missing_active").Inc()
		m.profiles = fallbackCollection()
		m.current = FallbackProfile
	}
	m.applyLocked(m.current)
}

// LoadFromJSON fetches the palette collection and replaces the current one.
// It does not apply anything.
func (m *Manager) LoadFromJSON(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.source, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", m.source, err)
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", m.source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("fetch %s: %s", m.source, resp.Status)
	}

	var f file
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxFileBytes)).Decode(&f); err != nil {
		return fmt.Errorf("decode %s: %w", m.source, err)
	}
	profiles, err := decodeProfiles(f.Profiles)
	if err != nil {
		return err
	}

	active := f.Active
	if active == "" {
		active = FallbackProfile
	}

	m.mu.Lock()
	m.profiles = profiles
	m.current = active
	m.mu.Unlock()

	ui.LogStatus("success", fmt.Sprintf("Loaded %d site palettes from %s", profiles.Len(), m.source))
	return nil
}

// ApplyProfile makes name the active palette and writes it into the site
// document. An unknown name is logged and reported, and nothing changes.
func (m *Manager) ApplyProfile(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.profiles.Has(name) {
		ui.LogStatus("error", "Site palette not found: "+name)
		return fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	m.applyLocked(name)
	return nil
}

// Current returns the active palette key.
func (m *Manager) Current() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Profiles returns a deep copy of the collection.
func (m *Manager) Profiles() palette.Collection {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneCollection(m.profiles)
}

// ProfileOptions lists the palettes in collection order, marking the active one.
func (m *Manager) ProfileOptions() []Option {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return options(m.profiles, m.current)
}

func options(c palette.Collection, current string) []Option {
	opts := make([]Option, 0, c.Len())
	c.Each(func(key string, s palette.Scheme) {
		opts = append(opts, Option{Value: key, Label: s.Name, Selected: key == current})
	})
	return opts
}

// Snapshot returns a copy of the site document for per-request composition.
func (m *Manager) Snapshot() *document.Document {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.doc.Clone()
}

// ApplyTo writes the active palette into doc without touching the
// manager's own document.
func (m *Manager) ApplyTo(doc *document.Document) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.profiles.Get(m.current); ok {
		writeScheme(doc, s)
	}
}

func (m *Manager) loadFallback() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles = fallbackCollection()
	m.current = FallbackProfile
	m.applyLocked(FallbackProfile)
}

// applyLocked requires mu held for writing and name present.
func (m *Manager) applyLocked(name string) {
	s, _ := m.profiles.Get(name)
	m.current = name
	writeScheme(m.doc, s)
	metrics.ProfileApplies.WithLabelValues("site", name).Inc()
	ui.LogApply("site", name, s.Name)
}

func decodeProfiles(raw json.RawMessage) (palette.Collection, error) {
	var profiles palette.Collection
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return profiles, ErrInvalidFormat
	}
	if err := json.Unmarshal(trimmed, &profiles); err != nil {
		return profiles, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if err := checkValues(profiles); err != nil {
		return palette.Collection{}, err
	}
	return profiles, nil
}

// tokenKey matches neutral and ui keys, which become custom property names.
var tokenKey = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*$`)

// checkValues rejects collections with a value or token key that cannot be
// written into a stylesheet as is.
func checkValues(c palette.Collection) error {
	var err error
	c.Each(func(id string, s palette.Scheme) {
		s.Colors.Groups().Each(func(group string, tokens palette.Tokens) {
			tokens.Each(func(key, value string) {
				if err != nil {
					return
				}
				if !tokenKey.MatchString(key) {
					err = fmt.Errorf("%w: %s: chiave non valida %q", ErrInvalidFormat, id, key)
				} else if !document.SafeValue(value) {
					err = fmt.Errorf("%w: %s.%s.%s: valore non consentito", ErrInvalidFormat, id, group, key)
				}
			})
		})
	})
	return err
}

func cloneCollection(c palette.Collection) palette.Collection {
	var out palette.Collection
	c.Each(func(k string, s palette.Scheme) {
		out.Set(k, s.Clone())
	})
	return out
}
