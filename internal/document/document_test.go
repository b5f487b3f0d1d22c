package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPropertiesKeepWriteOrder(t *testing.T) {
	d := New()
	d.SetProperty("--b", "#000000")
	d.SetProperty("--a", "#111111")
	d.SetProperty("--b", "#222222")

	assert.Equal(t, []Declaration{{"--b", "#222222"}, {"--a", "#111111"}}, d.Properties())
	assert.Equal(t, ":root {\n  --b: #222222;\n  --a: #111111;\n}\n", d.CSS())
}

func TestEmptyValueRemoves(t *testing.T) {
	d := New()
	d.SetProperty("--gold", "#D4AF37")
	d.SetProperty("--gold", "")
	assert.Equal(t, "", d.Property("--gold"))
	assert.Empty(t, d.Properties())

	d.SetStyle("#hero", "background-color", "")
	assert.Empty(t, d.Rules())
	d.SetStyle("#hero", "background-color", "#1B263B")
	d.SetStyle("#hero", "background-color", "")
	assert.Empty(t, d.Rules())
	assert.Equal(t, "", d.CSS())
}

func TestUnsafeValuesRejected(t *testing.T) {
	d := New()
	assert.False(t, d.SetProperty("--gold", "red; } body { display: none"))
	assert.False(t, d.SetStyle("body", "color", "</style><script>"))
	assert.Equal(t, "", d.CSS())
}

func TestSafeValue(t *testing.T) {
	for _, v := range []string{
		"#D4AF37",
		"linear-gradient(135deg, #1B263B 0%, #9B1D64 100%)",
		"0 10px 30px rgba(0, 0, 0, 0.3)",
		"10px / 2",
	} {
		assert.True(t, SafeValue(v), v)
	}
	for _, v := range []string{
		"red /* x",
		"red */",
		"url(https://evil.example/beacon)",
		"URL( //evil.example/x )",
		"image-set('a.png' 1x)",
		"expression(alert(1))",
		"@import x",
		`"quoted"`,
		"a\\61",
		"red\nbody{}",
	} {
		assert.False(t, SafeValue(v), v)
	}
}

func TestUnsafeBackgroundNotWritten(t *testing.T) {
	d := New("#hero")
	assert.False(t, d.SetStyle("#hero", "background", "url(https://evil.example/beacon)"))
	assert.False(t, d.SetProperty("--hero", "#000 /* */"))
	assert.Equal(t, "", d.CSS())
}

func TestRulesRenderImportant(t *testing.T) {
	d := New()
	d.SetStyle("body", "background-color", "#FEFCF6")
	d.SetStyle(".card", "box-shadow", "0 10px 30px rgba(0, 0, 0, 0.3)")

	assert.Equal(t,
		"body {\n  background-color: #FEFCF6 !important;\n}\n"+
			".card {\n  box-shadow: 0 10px 30px rgba(0, 0, 0, 0.3) !important;\n}\n",
		d.CSS())
}

func TestRegions(t *testing.T) {
	d := New("#navbar", "#hero")
	assert.True(t, d.Has("#hero"))
	assert.False(t, d.Has("#footer"))
	assert.Equal(t, []string{"#hero", "#navbar"}, d.Regions())
}

func TestTailwindOnlyWhenEnabled(t *testing.T) {
	d := New()
	assert.False(t, d.PatchTailwind(map[string]string{"gold": "#D4AF37"}))
	_, ok := d.Tailwind()
	assert.False(t, ok)
	assert.Equal(t, "", d.TailwindScript())

	d.EnableTailwind()
	assert.True(t, d.PatchTailwind(map[string]string{"navy": "#1B263B", "gold": "#D4AF37"}))
	tw, ok := d.Tailwind()
	assert.True(t, ok)
	assert.Equal(t, "#D4AF37", tw["gold"])
	assert.Contains(t, d.TailwindScript(), "\"gold\": \"#D4AF37\",\n    \"navy\": \"#1B263B\"")
}

func TestCloneIsDeep(t *testing.T) {
	d := New("#navbar")
	d.EnableTailwind()
	d.SetProperty("--gold", "#D4AF37")
	d.SetStyle("#navbar", "color", "#FFFFFF")
	d.PatchTailwind(map[string]string{"gold": "#D4AF37"})

	c := d.Clone()
	c.SetProperty("--gold", "#000000")
	c.SetStyle("#navbar", "color", "#000000")
	c.SetStyle(".new", "color", "#000000")
	c.PatchTailwind(map[string]string{"gold": "#000000"})

	assert.Equal(t, "#D4AF37", d.Property("--gold"))
	assert.Equal(t, "#FFFFFF", d.Style("#navbar", "color"))
	assert.Len(t, d.Rules(), 1)
	tw, _ := d.Tailwind()
	assert.Equal(t, "#D4AF37", tw["gold"])
	assert.True(t, c.Has("#navbar"))
}
