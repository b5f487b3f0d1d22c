package ui

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(nil)
		SetLevel("info")
	})
	return &buf
}

func TestStripAnsi(t *testing.T) {
	assert.Equal(t, "gold", StripAnsi("\x1b[33;1mgold\x1b[0m"))
	assert.Equal(t, 4, VisibleWidth("\x1b[33mgold\x1b[0m"))
	assert.Equal(t, "ab  ", PadRight("ab", 4))
	assert.Equal(t, "  ab", PadLeft("ab", 4))
}

func TestLogStatusDebugGate(t *testing.T) {
	buf := capture(t)

	LogStatus("debug", "hidden")
	assert.Empty(t, buf.String())

	SetLevel("debug")
	LogStatus("debug", "shown")
	assert.Contains(t, StripAnsi(buf.String()), "shown")
}

func TestLogLines(t *testing.T) {
	buf := capture(t)

	LogStatus("warning", "cookie too large")
	LogApply("visitor", "dark", "Scuro")
	LogRequest("GET", "/theme.css", 304, 1500*time.Microsecond, "0b9c2f4e-6f55-4d0e-9d8a-3f1e2b7c9a10")

	out := StripAnsi(buf.String())
	assert.Contains(t, out, "⚠  cookie too large")
	assert.Contains(t, out, "dark (Scuro)")
	assert.Contains(t, out, "/theme.css")
	assert.Contains(t, out, "304")
	assert.Contains(t, out, "0b9c2f4e")
	assert.NotContains(t, out, "0b9c2f4e-6f55")
}

func TestRenderTable(t *testing.T) {
	out := StripAnsi(RenderTable(
		[]TableColumn{{Key: "id", Header: "Profilo"}, {Key: "n", Header: "Colori", Align: AlignRight}},
		[]map[string]string{{"id": "motoclub-warm", "n": "12"}, {"id": "notte", "n": "7"}},
	))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 6)
	assert.Contains(t, lines[1], "Profilo")
	assert.Contains(t, lines[4], "│ notte         │      7 │")
	for _, l := range lines[1:] {
		assert.Equal(t, VisibleWidth(lines[0]), VisibleWidth(l))
	}
}

func TestSwatchNonHexFallsBackToText(t *testing.T) {
	assert.Equal(t, "none", StripAnsi(Swatch("none")))
	assert.Equal(t, "   #D4AF37", StripAnsi(Swatch("#D4AF37")))
	assert.Equal(t, 4, VisibleWidth(Swatches("#D4AF37", "rgba(0,0,0,0.3)")))
}

func TestFileSinkCloseDetaches(t *testing.T) {
	buf := capture(t)
	path := filepath.Join(t.TempDir(), "theme.log")

	sink := AddFileSink(path, 1, 1)
	LogStatus("info", "before close")
	require.NoError(t, sink.Close())
	require.NoError(t, sink.Close())
	LogStatus("info", "after close")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "before close")
	assert.NotContains(t, string(data), "after close")
	assert.NotContains(t, string(data), "\x1b[")
	assert.Contains(t, buf.String(), "after close")
}
