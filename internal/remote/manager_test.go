package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motoclub-theme/internal/document"
)

const siteColors = `{
  "version": "1.0.0",
  "active": "notte",
  "profiles": {
    "giorno": {
      "name": "Giorno",
      "colors": {
        "primary": {"gold": "#D4AF37", "goldDark": "#B8941F", "bordeaux": "#800020"},
        "secondary": {"navy": "#1B263B", "amaranth": "#9B1D64", "cream": "#FEFCF6"},
        "neutral": {"white": "#FFFFFF", "gray50": "#F9FAFB"},
        "shadows": {"gold": "0 0 4px #D4AF37", "bordeaux": "0 0 4px #800020"}
      }
    },
    "notte": {
      "name": "Notte",
      "colors": {
        "primary": {"gold": "#C9A227", "goldDark": "#A68B1F", "bordeaux": "#6B1141"},
        "secondary": {"navy": "#0D1321", "amaranth": "#8E1651", "cream": "#1B263B"},
        "neutral": {"black": "#000000"},
        "gradients": {"primary": "linear-gradient(90deg, #C9A227, #6B1141)", "hero": "none", "card": "none", "navbar": "none"},
        "shadows": {"gold": "0 10px 30px rgba(0, 0, 0, 0.3)", "bordeaux": "none"},
        "ui": {"navbarBg": "#0D1321", "navbarText": "#FFFFFF", "heroBg": "#1B263B", "footerBg": "#000000", "button": "#6B1141", "buttonText": "#FFFFFF"}
      }
    }
  }
}`

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newLoaded(t *testing.T, regions ...string) (*Manager, *document.Document) {
	t.Helper()
	srv := serve(t, http.StatusOK, siteColors)
	doc := document.New(regions...)
	m := NewManager(srv.URL+"/colors.json", doc, srv.Client())
	m.Init(context.Background())
	return m, doc
}

func TestInitAppliesActive(t *testing.T) {
	m, doc := newLoaded(t, "#navbar", "#logo-text", "#hero", "#footer")

	assert.Equal(t, "notte", m.Current())
	assert.Equal(t, "#C9A227", doc.Property("--gold"))
	assert.Equal(t, "#000000", doc.Property("--black"))
	assert.Equal(t, "#0D1321", doc.Property("--ui-navbar-bg"))
	assert.Equal(t, "#0D1321", doc.Style("#navbar", "background-color"))
	assert.Equal(t, "#FFFFFF", doc.Style("#logo-text", "color"))
	assert.Equal(t, "#FFFFFF", doc.Style("nav a:not(.bg-bordeaux)", "color"))
	assert.Equal(t, "#1B263B", doc.Style("#hero", "background-color"))
	assert.Equal(t, "#000000", doc.Style("#footer", "background-color"))
	assert.Equal(t, "#6B1141", doc.Style(buttonSelector, "background-color"))
	assert.Equal(t, "#FFFFFF", doc.Style(buttonSelector, "color"))
	assert.Equal(t, "linear-gradient(90deg, #C9A227, #6B1141)", doc.Style(titleSelector, "background"))
	assert.Equal(t, "0 10px 30px rgba(0, 0, 0, 0.3)", doc.Style(cardSelector, "box-shadow"))
}

func TestInitFallsBack(t *testing.T) {
	missing := "file://" + filepath.ToSlash(filepath.Join(t.TempDir(), "colors.json"))

	cases := map[string]string{
		"not found":       serve(t, http.StatusNotFound, "").URL,
		"server error":    serve(t, http.StatusInternalServerError, siteColors).URL,
		"malformed json":  serve(t, http.StatusOK, "{nope").URL,
		"missing profile": serve(t, http.StatusOK, `{"active":"x"}`).URL,
		"array profiles":  serve(t, http.StatusOK, `{"profiles":[]}`).URL,
		"unknown active":  serve(t, http.StatusOK, `{"profiles":{"a":{"name":"A","colors":{}}},"active":"b"}`).URL,
		"empty profiles":  serve(t, http.StatusOK, `{"profiles":{}}`).URL,
		"missing file":    missing,
	}

	for name, url := range cases {
		t.Run(name, func(t *testing.T) {
			doc := document.New()
			m := NewManager(url, doc, nil)
			m.Init(context.Background())

			assert.Equal(t, FallbackProfile, m.Current())
			assert.Equal(t, []string{FallbackProfile}, m.Profiles().Keys())
			assert.Equal(t, "#ffd700", doc.Property("--gold"))
			assert.Equal(t, "#f6c401", doc.Property("--ui-navbar-hover"))
		})
	}
}

func TestLoadFromFileURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colors.json")
	require.NoError(t, os.WriteFile(path, []byte(siteColors), 0o644))

	m := NewManager("file://"+filepath.ToSlash(path), nil, nil)
	require.NoError(t, m.LoadFromJSON(context.Background()))
	assert.Equal(t, "notte", m.Current())
	assert.Equal(t, []string{"giorno", "notte"}, m.Profiles().Keys())
}

func TestLoadDefaultsActive(t *testing.T) {
	srv := serve(t, http.StatusOK, `{"profiles":{"motoclub-warm":{"name":"W","colors":{}}}}`)
	m := NewManager(srv.URL, nil, srv.Client())
	require.NoError(t, m.LoadFromJSON(context.Background()))
	assert.Equal(t, FallbackProfile, m.Current())
}

func TestApplyUnknownLeavesState(t *testing.T) {
	m, doc := newLoaded(t)
	before := doc.CSS()

	err := m.ApplyProfile("inverno")
	require.ErrorIs(t, err, ErrProfileNotFound)
	assert.Equal(t, "notte", m.Current())
	assert.Equal(t, before, doc.CSS())
}

func TestApplyKebabNames(t *testing.T) {
	m, doc := newLoaded(t)
	require.NoError(t, m.ApplyProfile("giorno"))

	assert.Equal(t, "giorno", m.Current())
	assert.Equal(t, "#F9FAFB", doc.Property("--gray50"))
	assert.Equal(t, "#B8941F", doc.Property("--gold-dark"))
	assert.Equal(t, "0 0 4px #800020", doc.Property("--shadow-bordeaux"))
}

func TestRegionWritesAreGuarded(t *testing.T) {
	m, doc := newLoaded(t, "#navbar")

	assert.Equal(t, "#0D1321", doc.Style("#navbar", "background-color"))
	assert.Empty(t, doc.Style("#hero", "background-color"), "hero is not in the markup")
	assert.Empty(t, doc.Style("#footer", "background-color"))

	// giorno has no ui group or gradients: earlier writes stay, nothing new is added
	require.NoError(t, m.ApplyProfile("giorno"))
	assert.Equal(t, "#0D1321", doc.Style("#navbar", "background-color"))
	assert.Equal(t, "0 0 4px #D4AF37", doc.Style(cardSelector, "box-shadow"))
}

func TestProfileOptions(t *testing.T) {
	m, _ := newLoaded(t)
	assert.Equal(t, []Option{
		{Value: "giorno", Label: "Giorno"},
		{Value: "notte", Label: "Notte", Selected: true},
	}, m.ProfileOptions())
}

func TestSnapshotIsIndependent(t *testing.T) {
	m, _ := newLoaded(t)
	snap := m.Snapshot()
	snap.SetProperty("--gold", "#000000")

	assert.Equal(t, "#C9A227", m.Snapshot().Property("--gold"))
}

func TestExportFormat(t *testing.T) {
	m, _ := newLoaded(t)
	at := time.Date(2024, 5, 1, 10, 30, 0, 123e6, time.UTC)
	m.SetClock(func() time.Time { return at })

	var buf bytes.Buffer
	name, err := m.Session().ExportToJSON(&buf)
	require.NoError(t, err)
	assert.Equal(t, "motoclub-colors-1714559400123.json", name)
	assert.True(t, strings.HasPrefix(buf.String(), "{\n  \"version\": \"1.0.0\",\n  \"profiles\": {\n    \"giorno\""))

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "notte", out["active"])
	assert.Equal(t, "2024-05-01T10:30:00.123Z", out["exported"])
}

type recorder struct {
	level   Level
	message string
}

func (r *recorder) Notify(level Level, message string) {
	r.level, r.message = level, message
}

func TestExportImportRoundTrip(t *testing.T) {
	src, _ := newLoaded(t)
	var buf bytes.Buffer
	_, err := src.Session().ExportToJSON(&buf)
	require.NoError(t, err)

	doc := document.New()
	dst := NewManager("file:///nonexistent/colors.json", doc, nil)
	dst.Init(context.Background())

	page := dst.Session()
	rec := &recorder{}
	res, err := page.ImportFromJSON(&buf, "motoclub-colors-1.json", rec)
	require.NoError(t, err)

	assert.Equal(t, LevelSuccess, rec.level)
	assert.Equal(t, "Importati 2 profili!", rec.message)
	assert.Equal(t, ImportResult{Imported: 2, Keys: []string{"giorno", "notte"}, Active: "notte", Switched: true}, res)
	assert.Equal(t, []string{FallbackProfile, "giorno", "notte"}, page.Profiles().Keys())
	assert.Equal(t, "notte", page.Current())

	composed := dst.Snapshot()
	page.ApplyTo(composed)
	assert.Equal(t, "#C9A227", composed.Property("--gold"))

	want, _ := src.Profiles().Get("notte")
	got, _ := page.Profiles().Get("notte")
	assert.Equal(t, want, got)
}

func TestImportLeavesSharedSchemeUntouched(t *testing.T) {
	m, doc := newLoaded(t)
	before := doc.CSS()

	page := m.Session()
	body := `{"profiles":{"alba":{"name":"Alba","colors":{"primary":{"gold":"#E0B84A"}}}},"active":"alba"}`
	_, err := page.ImportFromJSON(strings.NewReader(body), "alba.json", &recorder{})
	require.NoError(t, err)
	require.Equal(t, "alba", page.Current())

	assert.Equal(t, "notte", m.Current())
	assert.Equal(t, []string{"giorno", "notte"}, m.Profiles().Keys())
	assert.Equal(t, before, doc.CSS())
	assert.Equal(t, "notte", m.Session().Current(), "a new page starts from the shared scheme")
	assert.Equal(t, 2, m.Session().Profiles().Len())
}

func TestImportOverwritesWithoutSwitching(t *testing.T) {
	m, _ := newLoaded(t)
	page := m.Session()
	body := `{"profiles":{"giorno":{"name":"Giorno 2","colors":{}},"extra":{"name":"Extra","colors":{}}},"active":"assente"}`

	res, err := page.ImportFromJSON(strings.NewReader(body), "x.JSON", &recorder{})
	require.NoError(t, err)
	assert.False(t, res.Switched)
	assert.Equal(t, "notte", page.Current())

	assert.Equal(t, []string{"giorno", "notte", "extra"}, page.Profiles().Keys())
	giorno, _ := page.Profiles().Get("giorno")
	assert.Equal(t, "Giorno 2", giorno.Name)
}

func TestImportFailuresCommitNothing(t *testing.T) {
	cases := []struct {
		name     string
		filename string
		body     string
		err      error
	}{
		{"no file", "", "", ErrNoFile},
		{"wrong extension", "colors.txt", siteColors, ErrUnsupportedFile},
		{"no profiles", "c.json", `{"active":"giorno"}`, ErrInvalidFormat},
		{"null profiles", "c.json", `{"profiles":null}`, ErrInvalidFormat},
		{"string profiles", "c.json", `{"profiles":"giorno"}`, ErrInvalidFormat},
		{"bad json", "c.json", `{"profiles":`, nil},
		{"resource url", "c.json", `{"profiles":{"x":{"name":"X","colors":{"primary":{"gold":"url(https://tracker.example/t.png)"}}}},"active":"x"}`, ErrInvalidFormat},
		{"open comment", "c.json", `{"profiles":{"x":{"name":"X","colors":{"primary":{"gold":"#000000 /*"}}}}}`, ErrInvalidFormat},
		{"property key", "c.json", `{"profiles":{"x":{"name":"X","colors":{"neutral":{"a:b":"#000000"}}}}}`, ErrInvalidFormat},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, _ := newLoaded(t)
			page := m.Session()
			rec := &recorder{}

			_, err := page.ImportFromJSON(strings.NewReader(tc.body), tc.filename, rec)
			require.Error(t, err)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
			}
			assert.Equal(t, LevelError, rec.level)
			assert.True(t, strings.HasPrefix(rec.message, "Errore: "), rec.message)
			assert.Equal(t, []string{"giorno", "notte"}, page.Profiles().Keys())
			assert.Equal(t, "notte", page.Current())
			assert.False(t, page.Changed())
		})
	}
}

func TestSessionSelectAndOverlay(t *testing.T) {
	m, _ := newLoaded(t, "#navbar")

	page := m.Session()
	assert.False(t, page.Changed())
	assert.Equal(t, Overlay{}, page.Overlay())

	require.ErrorIs(t, page.ApplyProfile("inverno"), ErrProfileNotFound)
	require.NoError(t, page.ApplyProfile("giorno"))
	assert.Equal(t, "notte", m.Current())

	ov := page.Overlay()
	assert.Equal(t, "giorno", ov.Active)
	assert.Equal(t, 0, ov.Profiles.Len())

	next := m.Session()
	require.NoError(t, next.Restore(ov))
	assert.Equal(t, "giorno", next.Current())

	composed := m.Snapshot()
	next.ApplyTo(composed)
	assert.Equal(t, "#D4AF37", composed.Property("--gold"))
	assert.Equal(t, "#C9A227", m.Snapshot().Property("--gold"))
}

func TestRestoreRejectsUnsafeOverlay(t *testing.T) {
	m, _ := newLoaded(t)

	var ov Overlay
	require.NoError(t, json.Unmarshal([]byte(`{"active":"x","profiles":{"x":{"name":"X","colors":{"primary":{"gold":"red} body{display:none"}}}}}`), &ov))

	page := m.Session()
	assert.ErrorIs(t, page.Restore(ov), ErrInvalidFormat)
	assert.Equal(t, "notte", page.Current())
	assert.False(t, page.Changed())

	var unknown Overlay
	require.NoError(t, json.Unmarshal([]byte(`{"active":"missing"}`), &unknown))
	require.NoError(t, page.Restore(unknown))
	assert.Equal(t, "notte", page.Current())
}
