package theme

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motoclub-theme/internal/cookiestore"
	"motoclub-theme/internal/document"
	"motoclub-theme/internal/remote"
)

func newSite(t *testing.T) *remote.Manager {
	t.Helper()
	doc := document.New("#navbar")
	doc.EnableTailwind()
	m := remote.NewManager("file:///nonexistent/colors.json", doc, nil)
	m.Init(context.Background())
	return m
}

func TestSiteFirstVisitorSecond(t *testing.T) {
	site := newSite(t)
	svc := NewService(site)

	visitor := cookiestore.New(cookiestore.NewMemoryJar(), nil, cookiestore.Options{})
	visitor.Init()
	visitor.SetProfile("racing")

	doc := svc.Compose(visitor)
	assert.Equal(t, "#ffd700", doc.Property("--gold"), "site namespace")
	assert.Equal(t, "#FF6B00", doc.Property("--color-gold"), "visitor namespace")

	css := doc.CSS()
	assert.Less(t, strings.Index(css, "--gold:"), strings.Index(css, "--color-gold:"))

	tw, ok := doc.Tailwind()
	require.True(t, ok)
	assert.Equal(t, "#FF6B00", tw["gold"])
}

func TestComposeDoesNotMutateBase(t *testing.T) {
	site := newSite(t)
	svc := NewService(site)

	visitor := cookiestore.New(cookiestore.NewMemoryJar(), nil, cookiestore.Options{})
	visitor.Init()
	svc.Compose(visitor)

	assert.Empty(t, site.Snapshot().Property("--color-gold"))
}

func TestRenderETagTracksContent(t *testing.T) {
	svc := NewService(newSite(t))

	light := cookiestore.New(cookiestore.NewMemoryJar(), nil, cookiestore.Options{})
	light.Init()
	dark := cookiestore.New(cookiestore.NewMemoryJar(), nil, cookiestore.Options{})
	dark.SetProfile("dark")

	a, b := svc.Render(light), svc.Render(light)
	assert.Equal(t, a.ETag, b.ETag)
	assert.NotEqual(t, a.ETag, svc.Render(dark).ETag)
	assert.Len(t, a.ETag, 34)
	assert.Contains(t, a.Tailwind, `"gold": "#D4AF37"`)
}
