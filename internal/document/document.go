// Package document models the styling surface the theme stores write into:
// custom properties on the document root, per-selector declarations that
// stand in for inline element styles, and the optional runtime tailwind
// color map. A Document renders to a stylesheet, so applying a palette is a
// state transition rather than a sweep over live elements.
package document

import (
	"sort"
	"strings"
)

// Declaration is a single property: value pair.
type Declaration struct {
	Property string
	Value    string
}

// Rule is an ordered list of declarations for one selector.
type Rule struct {
	Selector     string
	Declarations []Declaration
}

// Document holds styling state. It is not safe for concurrent use; callers
// that share one across goroutines clone it first.
type Document struct {
	root     []Declaration
	rules    map[string]*Rule
	order    []string
	regions  map[string]bool
	tailwind map[string]string
}

// New creates an empty document whose markup contains the given regions
// (element ids written as "#id", classes as ".class").
func New(regions ...string) *Document {
	d := &Document{
		rules:   make(map[string]*Rule),
		regions: make(map[string]bool, len(regions)),
	}
	for _, r := range regions {
		d.regions[r] = true
	}
	return d
}

// Has reports whether the markup contains region.
func (d *Document) Has(region string) bool {
	return d.regions[region]
}

// Regions returns the markup regions in sorted order.
func (d *Document) Regions() []string {
	out := make([]string, 0, len(d.regions))
	for r := range d.regions {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

// SetProperty writes a custom property on the root. An empty value removes
// the property. Values that could break out of a declaration are ignored
// and reported as false.
func (d *Document) SetProperty(name, value string) bool {
	if !SafeValue(value) {
		return false
	}
	d.root = set(d.root, name, value)
	return true
}

// Property reads a root custom property ("" when unset).
func (d *Document) Property(name string) string {
	return get(d.root, name)
}

// Properties returns the root custom properties in write order.
func (d *Document) Properties() []Declaration {
	return append([]Declaration(nil), d.root...)
}

// SetStyle writes property on every element matching selector, the way an
// inline style assignment would. An empty value removes the declaration.
func (d *Document) SetStyle(selector, property, value string) bool {
	if !SafeValue(value) {
		return false
	}
	r, ok := d.rules[selector]
	if !ok {
		if value == "" {
			return true
		}
		r = &Rule{Selector: selector}
		d.rules[selector] = r
		d.order = append(d.order, selector)
	}
	r.Declarations = set(r.Declarations, property, value)
	return true
}

// Style reads a declaration previously written for selector.
func (d *Document) Style(selector, property string) string {
	r, ok := d.rules[selector]
	if !ok {
		return ""
	}
	return get(r.Declarations, property)
}

// Rules returns the selector rules in first-write order.
func (d *Document) Rules() []Rule {
	out := make([]Rule, 0, len(d.order))
	for _, sel := range d.order {
		r := d.rules[sel]
		if len(r.Declarations) == 0 {
			continue
		}
		out = append(out, Rule{
			Selector:     r.Selector,
			Declarations: append([]Declaration(nil), r.Declarations...),
		})
	}
	return out
}

// EnableTailwind marks the runtime tailwind library as present on the page.
func (d *Document) EnableTailwind() {
	if d.tailwind == nil {
		d.tailwind = make(map[string]string)
	}
}

// PatchTailwind merges colors into the tailwind theme.extend.colors map.
// It reports false, changing nothing, when tailwind is not present.
func (d *Document) PatchTailwind(colors map[string]string) bool {
	if d.tailwind == nil {
		return false
	}
	for k, v := range colors {
		d.tailwind[k] = v
	}
	return true
}

// Tailwind returns a copy of the tailwind color map and whether tailwind is present.
func (d *Document) Tailwind() (map[string]string, bool) {
	if d.tailwind == nil {
		return nil, false
	}
	out := make(map[string]string, len(d.tailwind))
	for k, v := range d.tailwind {
		out[k] = v
	}
	return out, true
}

// Clone returns a deep copy.
func (d *Document) Clone() *Document {
	c := &Document{
		root:    append([]Declaration(nil), d.root...),
		rules:   make(map[string]*Rule, len(d.rules)),
		order:   append([]string(nil), d.order...),
		regions: make(map[string]bool, len(d.regions)),
	}
	for sel, r := range d.rules {
		c.rules[sel] = &Rule{
			Selector:     r.Selector,
			Declarations: append([]Declaration(nil), r.Declarations...),
		}
	}
	for r := range d.regions {
		c.regions[r] = true
	}
	if d.tailwind != nil {
		c.tailwind, _ = d.Tailwind()
	}
	return c
}

func set(decls []Declaration, property, value string) []Declaration {
	for i := range decls {
		if decls[i].Property == property {
			if value == "" {
				return append(decls[:i:i], decls[i+1:]...)
			}
			decls[i].Value = value
			return decls
		}
	}
	if value == "" {
		return decls
	}
	return append(decls, Declaration{Property: property, Value: value})
}

func get(decls []Declaration, property string) string {
	for _, d := range decls {
		if d.Property == property {
			return d.Value
		}
	}
	return ""
}

// SafeValue reports whether v can be written as a declaration value
// without ending the declaration, opening a comment or loading a resource.
func SafeValue(v string) bool {
	if strings.ContainsAny(v, ";{}<>\\\n\r\"'") {
		return false
	}
	lower := strings.ToLower(v)
	for _, bad := range unsafeTokens {
		if strings.Contains(lower, bad) {
			return false
		}
	}
	return true
}

var unsafeTokens = []string{"/*", "*/", "url(", "image-set(", "expression(", "@import"}
