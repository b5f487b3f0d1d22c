// Package colorfile reads, checks and edits colors.json. Unknown fields
// are carried through untouched so a rewrite only changes what was asked.
package colorfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"motoclub-theme/internal/palette"
)

var (
	ErrProfileNotFound = errors.New("profilo non trovato")
	ErrProfileExists   = errors.New("profilo già esistente")
	ErrNoColors        = errors.New("nessun colore da esportare")
)

// Object is a JSON object with its key order and unknown members preserved.
type Object = palette.OrderedMap[json.RawMessage]

// requiredKeys must all be present at the top level.
var requiredKeys = []string{"version", "profiles", "active"}

// File is a loaded colors.json.
type File struct {
	Path string
	root Object
}

// Load reads and parses path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	f.Path = path
	return f, nil
}

// Parse decodes a colors.json document.
func Parse(data []byte) (*File, error) {
	var root Object
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	return &File{root: root}, nil
}

// Active returns the active profile key ("" when unset or not a string).
func (f *File) Active() string {
	var s string
	if raw, ok := f.root.Get("active"); ok {
		_ = json.Unmarshal(raw, &s)
	}
	return s
}

// Profiles decodes the profiles object.
func (f *File) Profiles() (palette.OrderedMap[Object], error) {
	var out palette.OrderedMap[Object]
	raw, ok := f.root.Get("profiles")
	if !ok {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("profiles: %w", err)
	}
	return out, nil
}

// Validate checks the document structure, stopping at the first problem:
// required top-level keys, at least one profile, a name and non-empty
// colors on every profile, and an active key that names a profile.
func (f *File) Validate() error {
	var missing []string
	for _, k := range requiredKeys {
		if !f.root.Has(k) {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("chiavi mancanti: %s", strings.Join(missing, ", "))
	}

	profiles, err := f.Profiles()
	if err != nil {
		return err
	}
	if profiles.Len() == 0 {
		return errors.New("nessun profilo definito")
	}

	var verr error
	profiles.Each(func(key string, p Object) {
		if verr != nil {
			return
		}
		var miss []string
		for _, k := range []string{"name", "colors"} {
			if !p.Has(k) {
				miss = append(miss, k)
			}
		}
		if len(miss) > 0 {
			verr = fmt.Errorf("profilo '%s': chiavi mancanti %s", key, strings.Join(miss, ", "))
			return
		}
		raw, _ := p.Get("colors")
		if isEmpty(raw) {
			verr = fmt.Errorf("profilo '%s': nessun colore definito", key)
		}
	})
	if verr != nil {
		return verr
	}

	if active := f.Active(); !profiles.Has(active) {
		return fmt.Errorf("%w: profilo attivo '%s'", ErrProfileNotFound, active)
	}
	return nil
}

// Lint reports problems that do not make the file unusable: malformed hex
// values in the primary and secondary groups and ui text/background pairs
// below the WCAG AA contrast ratio.
func (f *File) Lint() []string {
	profiles, err := f.Profiles()
	if err != nil {
		return nil
	}

	var warnings []string
	profiles.Each(func(key string, p Object) {
		var s palette.Scheme
		raw, _ := p.Get("colors")
		if err := json.Unmarshal(raw, &s.Colors); err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: colors: %v", key, err))
			return
		}
		groups := s.Colors.Groups()
		for _, g := range []string{"primary", "secondary"} {
			tokens, _ := groups.Get(g)
			tokens.Each(func(name, value string) {
				if value != "" && !palette.ValidHex(value) {
					warnings = append(warnings, fmt.Sprintf("%s: %s.%s %q is not #RRGGBB", key, g, name, value))
				}
			})
		}
		for _, pair := range contrastPairs {
			fg, okFg := s.Colors.UIValue(pair[0])
			bg, okBg := s.Colors.UIValue(pair[1])
			if !okFg || !okBg {
				continue
			}
			ratio, err := palette.Contrast(fg, bg)
			if err == nil && ratio < minContrast {
				warnings = append(warnings, fmt.Sprintf("%s: ui.%s on ui.%s contrast %.2f:1 below %.1f:1", key, pair[0], pair[1], ratio, minContrast))
			}
		}
	})
	return warnings
}

const minContrast = 4.5

var contrastPairs = [][2]string{
	{"navbarText", "navbarBg"},
	{"buttonText", "button"},
}

// Var is one flattened color.
type Var struct {
	Name  string
	Value string
}

// Flatten returns every hex color of a profile as category-key variables,
// in document order. Underscores become dashes; camelCase is kept.
func (f *File) Flatten(profile string) ([]Var, error) {
	p, err := f.profile(profile)
	if err != nil {
		return nil, err
	}

	var colors palette.OrderedMap[json.RawMessage]
	if raw, ok := p.Get("colors"); ok {
		if err := json.Unmarshal(raw, &colors); err != nil {
			return nil, fmt.Errorf("profilo '%s': colors: %w", profile, err)
		}
	}

	var vars []Var
	colors.Each(func(category string, raw json.RawMessage) {
		var group palette.OrderedMap[json.RawMessage]
		if json.Unmarshal(raw, &group) != nil {
			return
		}
		group.Each(func(key string, rv json.RawMessage) {
			var value string
			if json.Unmarshal(rv, &value) != nil || !strings.HasPrefix(value, "#") {
				return
			}
			vars = append(vars, Var{
				Name:  strings.ReplaceAll(category+"_"+key, "_", "-"),
				Value: value,
			})
		})
	})
	return vars, nil
}

// ExportCSS renders a profile's colors as custom properties under :root.
func (f *File) ExportCSS(profile string) (string, error) {
	vars, err := f.Flatten(profile)
	if err != nil {
		return "", err
	}
	if len(vars) == 0 {
		return "", ErrNoColors
	}
	var b strings.Builder
	fmt.Fprintf(&b, "/* Colori profilo: %s */\n:root {\n", profile)
	for _, v := range vars {
		fmt.Fprintf(&b, "    --%s: %s;\n", v.Name, v.Value)
	}
	b.WriteString("}\n")
	return b.String(), nil
}

// ExportSCSS renders a profile's colors as SCSS variables.
func (f *File) ExportSCSS(profile string) (string, error) {
	vars, err := f.Flatten(profile)
	if err != nil {
		return "", err
	}
	if len(vars) == 0 {
		return "", ErrNoColors
	}
	var b strings.Builder
	fmt.Fprintf(&b, "// Colori profilo: %s\n\n", profile)
	for _, v := range vars {
		fmt.Fprintf(&b, "$%s: %s;\n", v.Name, v.Value)
	}
	return b.String(), nil
}

// Create adds a profile named name, copied from base or, when base is
// empty, as an empty skeleton.
func (f *File) Create(name, base string) error {
	profiles, err := f.Profiles()
	if err != nil {
		return err
	}
	if profiles.Has(name) {
		return fmt.Errorf("%w: '%s'", ErrProfileExists, name)
	}

	var p Object
	if base != "" {
		src, ok := profiles.Get(base)
		if !ok {
			return fmt.Errorf("%w: profilo base '%s'", ErrProfileNotFound, base)
		}
		p = src.Clone()
		p.Set("name", mustRaw(name))
	} else {
		var colors Object
		for _, g := range []string{"primary", "secondary", "neutral", "gradients", "shadows", "ui"} {
			colors.Set(g, json.RawMessage("{}"))
		}
		p.Set("name", mustRaw(name))
		p.Set("description", mustRaw("Profilo personalizzato"))
		p.Set("colors", mustRaw(colors))
	}

	profiles.Set(name, p)
	return f.setProfiles(profiles)
}

// AddScheme stores s under key, replacing nothing: an existing key is an error.
func (f *File) AddScheme(key string, s palette.Scheme) error {
	profiles, err := f.Profiles()
	if err != nil {
		return err
	}
	if profiles.Has(key) {
		return fmt.Errorf("%w: '%s'", ErrProfileExists, key)
	}
	var p Object
	if err := json.Unmarshal(mustRaw(s), &p); err != nil {
		return err
	}
	profiles.Set(key, p)
	return f.setProfiles(profiles)
}

// Activate makes profile the active one.
func (f *File) Activate(profile string) error {
	if _, err := f.profile(profile); err != nil {
		return err
	}
	f.root.Set("active", mustRaw(profile))
	return nil
}

// Bytes encodes the document with two-space indentation.
func (f *File) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f.root); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes the document to path, or back to where it was loaded from
// when path is empty.
func (f *File) Save(path string) error {
	if path == "" {
		path = f.Path
	}
	data, err := f.Bytes()
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// CategoryCounts returns how many entries each color group of profile has,
// sorted by category name.
func (f *File) CategoryCounts(profile string) (map[string]int, []string, error) {
	p, err := f.profile(profile)
	if err != nil {
		return nil, nil, err
	}
	var colors palette.OrderedMap[Object]
	if raw, ok := p.Get("colors"); ok {
		_ = json.Unmarshal(raw, &colors)
	}
	counts := make(map[string]int, colors.Len())
	colors.Each(func(k string, v Object) { counts[k] = v.Len() })
	keys := colors.Keys()
	sort.Strings(keys)
	return counts, keys, nil
}

// ProfileString reads a string member of profile ("" when absent).
func (f *File) ProfileString(profile, member string) string {
	p, err := f.profile(profile)
	if err != nil {
		return ""
	}
	var s string
	if raw, ok := p.Get(member); ok {
		_ = json.Unmarshal(raw, &s)
	}
	return s
}

func (f *File) profile(key string) (Object, error) {
	profiles, err := f.Profiles()
	if err != nil {
		return Object{}, err
	}
	p, ok := profiles.Get(key)
	if !ok {
		return Object{}, fmt.Errorf("%w: '%s'", ErrProfileNotFound, key)
	}
	return p, nil
}

func (f *File) setProfiles(profiles palette.OrderedMap[Object]) error {
	raw, err := json.Marshal(profiles)
	if err != nil {
		return fmt.Errorf("encode profiles: %w", err)
	}
	f.root.Set("profiles", raw)
	return nil
}

func isEmpty(raw json.RawMessage) bool {
	switch string(bytes.TrimSpace(raw)) {
	case "", "null", "{}", "[]", `""`, "false", "0":
		return true
	}
	var obj map[string]json.RawMessage
	if json.Unmarshal(raw, &obj) == nil && len(obj) == 0 {
		return true
	}
	return false
}

func mustRaw(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
