package document

import (
	"encoding/json"
	"sort"
	"strings"
)

// CSS renders the document as a stylesheet. Root properties come first,
// then selector rules in first-write order. Rule declarations are marked
// important because they stand in for inline styles.
func (d *Document) CSS() string {
	var b strings.Builder

	if len(d.root) > 0 {
		b.WriteString(":root {\n")
		for _, decl := range d.root {
			b.WriteString("  " + decl.Property + ": " + decl.Value + ";\n")
		}
		b.WriteString("}\n")
	}

	for _, r := range d.Rules() {
		b.WriteString(r.Selector + " {\n")
		for _, decl := range r.Declarations {
			b.WriteString("  " + decl.Property + ": " + decl.Value + " !important;\n")
		}
		b.WriteString("}\n")
	}
	return b.String()
}

// TailwindScript renders the runtime tailwind patch as a script body, or ""
// when tailwind is not present or nothing was patched.
func (d *Document) TailwindScript() string {
	tw, ok := d.Tailwind()
	if !ok || len(tw) == 0 {
		return ""
	}
	keys := make([]string, 0, len(tw))
	for k := range tw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("if (typeof tailwind !== 'undefined' && tailwind.config) {\n")
	b.WriteString("  tailwind.config.theme.extend.colors = Object.assign({}, tailwind.config.theme.extend.colors, {\n")
	for _, k := range keys {
		kb, _ := json.Marshal(k)
		vb, _ := json.Marshal(tw[k])
		b.WriteString("    " + string(kb) + ": " + string(vb) + ",\n")
	}
	b.WriteString("  });\n}\n")
	return b.String()
}
