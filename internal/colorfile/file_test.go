package colorfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motoclub-theme/internal/palette"
)

const sample = `{
  "version": "1.0.0",
  "lastUpdated": "2024-01-01",
  "active": "motoclub-warm",
  "profiles": {
    "motoclub-warm": {
      "name": "Moto Club Warm",
      "description": "Caldo",
      "colors": {
        "primary": {"gold": "#ffd700", "goldDark": "#f6c401", "bordeaux": "#ab0031"},
        "secondary": {"navy": "#1B263B", "amaranth": "#9B1D64", "cream": "#FEFCF6"},
        "neutral": {"white": "#FFFFFF", "gray_50": "#F9FAFB"},
        "gradients": {"primary": "linear-gradient(#ab0031, #ffd700)"},
        "shadows": {"gold": "0 10px 30px rgba(255, 215, 0, 0.3)"},
        "ui": {"navbarBg": "#FFFFFF", "navbarText": "#F9FAFB", "button": "#ab0031", "buttonText": "#FFFFFF"}
      }
    },
    "notte": {"name": "Notte", "colors": {"primary": {"gold": "gold"}}}
  }
}`

func writeSample(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "colors.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func mustParse(t *testing.T, body string) *File {
	t.Helper()
	f, err := Parse([]byte(body))
	require.NoError(t, err)
	return f
}

func TestValidate(t *testing.T) {
	require.NoError(t, mustParse(t, sample).Validate())

	cases := map[string]string{
		"missing active":  `{"version":"1","profiles":{"a":{"name":"A","colors":{"x":{}}}}}`,
		"no profiles":     `{"version":"1","profiles":{},"active":"a"}`,
		"profile no name": `{"version":"1","profiles":{"a":{"colors":{"x":{}}}},"active":"a"}`,
		"empty colors":    `{"version":"1","profiles":{"a":{"name":"A","colors":{}}},"active":"a"}`,
		"unknown active":  `{"version":"1","profiles":{"a":{"name":"A","colors":{"x":{}}}},"active":"b"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, mustParse(t, body).Validate())
		})
	}

	err := mustParse(t, cases["missing active"]).Validate()
	assert.Contains(t, err.Error(), "active")
	assert.ErrorIs(t, mustParse(t, cases["unknown active"]).Validate(), ErrProfileNotFound)
}

func TestLint(t *testing.T) {
	warnings := mustParse(t, sample).Lint()
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "navbarText on ui.navbarBg")
	assert.Contains(t, warnings[1], `primary.gold "gold"`)
}

func TestFlattenAndExport(t *testing.T) {
	f := mustParse(t, sample)

	vars, err := f.Flatten("motoclub-warm")
	require.NoError(t, err)
	assert.Equal(t, Var{Name: "primary-gold", Value: "#ffd700"}, vars[0])
	assert.Equal(t, Var{Name: "primary-goldDark", Value: "#f6c401"}, vars[1])
	assert.Contains(t, vars, Var{Name: "neutral-gray-50", Value: "#F9FAFB"})
	for _, v := range vars {
		assert.NotContains(t, v.Name, "gradients")
		assert.NotContains(t, v.Name, "shadows")
	}

	css, err := f.ExportCSS("motoclub-warm")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(css, "/* Colori profilo: motoclub-warm */\n:root {\n    --primary-gold: #ffd700;\n"))
	assert.True(t, strings.HasSuffix(css, "}\n"))

	scss, err := f.ExportSCSS("motoclub-warm")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(scss, "// Colori profilo: motoclub-warm\n\n$primary-gold: #ffd700;\n"))

	_, err = f.ExportCSS("notte")
	assert.ErrorIs(t, err, ErrNoColors)
	_, err = f.ExportCSS("assente")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestCreateFromBase(t *testing.T) {
	f := mustParse(t, sample)
	require.NoError(t, f.Create("copia", "motoclub-warm"))

	profiles, err := f.Profiles()
	require.NoError(t, err)
	assert.Equal(t, []string{"motoclub-warm", "notte", "copia"}, profiles.Keys())
	assert.Equal(t, "copia", f.ProfileString("copia", "name"))
	assert.Equal(t, "Caldo", f.ProfileString("copia", "description"))
	assert.Equal(t, "Moto Club Warm", f.ProfileString("motoclub-warm", "name"))

	assert.ErrorIs(t, f.Create("copia", ""), ErrProfileExists)
	assert.ErrorIs(t, f.Create("altro", "assente"), ErrProfileNotFound)
}

func TestCreateSkeleton(t *testing.T) {
	f := mustParse(t, sample)
	require.NoError(t, f.Create("vuoto", ""))

	assert.Equal(t, "Profilo personalizzato", f.ProfileString("vuoto", "description"))
	counts, keys, err := f.CategoryCounts("vuoto")
	require.NoError(t, err)
	assert.Equal(t, []string{"gradients", "neutral", "primary", "secondary", "shadows", "ui"}, keys)
	assert.Equal(t, 0, counts["primary"])
}

func TestActivateAndSaveKeepsUnknownFields(t *testing.T) {
	path := writeSample(t, sample)
	f, err := Load(path)
	require.NoError(t, err)

	require.NoError(t, f.Activate("notte"))
	assert.ErrorIs(t, f.Activate("assente"), ErrProfileNotFound)
	require.NoError(t, f.Save(""))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{\n  \"version\": \"1.0.0\",\n  \"lastUpdated\": \"2024-01-01\",\n  \"active\": \"notte\""))

	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "notte", again.Active())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeSample(t, "{broken"))
	assert.Error(t, err)
}

func TestGenerate(t *testing.T) {
	s, err := Generate("Oro", "#D4AF37")
	require.NoError(t, err)

	assert.Equal(t, "#D4AF37", s.Colors.Primary.Gold)
	for _, v := range []string{s.Colors.Primary.GoldDark, s.Colors.Primary.Bordeaux, s.Colors.Secondary.Navy, s.Colors.Secondary.Amaranth, s.Colors.Secondary.Cream} {
		assert.True(t, palette.ValidHex(v), v)
	}

	darkL, _ := palette.Luminance(s.Colors.Primary.GoldDark)
	goldL, _ := palette.Luminance(s.Colors.Primary.Gold)
	creamL, _ := palette.Luminance(s.Colors.Secondary.Cream)
	assert.Less(t, darkL, goldL)
	assert.Greater(t, creamL, goldL)

	assert.Equal(t, 9, s.Colors.Neutral.Len())
	text, _ := s.Colors.UIValue("buttonText")
	bg, _ := s.Colors.UIValue("button")
	ratio, err := palette.Contrast(text, bg)
	require.NoError(t, err)
	assert.Greater(t, ratio, 3.0)

	_, err = Generate("x", "oro")
	assert.ErrorIs(t, err, palette.ErrInvalidHex)
}

func TestAddGeneratedScheme(t *testing.T) {
	f := mustParse(t, sample)
	s, err := Generate("Oro", "#C9A227")
	require.NoError(t, err)

	require.NoError(t, f.AddScheme("oro", s))
	require.NoError(t, f.Validate())
	assert.ErrorIs(t, f.AddScheme("oro", s), ErrProfileExists)

	data, err := f.Bytes()
	require.NoError(t, err)
	var out struct {
		Profiles map[string]palette.Scheme `json:"profiles"`
	}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "#C9A227", out.Profiles["oro"].Colors.Primary.Gold)
}
