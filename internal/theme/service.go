// Package theme composes the site scheme and the visitor preference into
// one stylesheet. The site scheme is always written first so the visitor's
// choice wins wherever the two touch the same selector.
package theme

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"

	"motoclub-theme/internal/document"
)

// Layer writes one palette source into a document.
type Layer interface {
	ApplyTo(doc *document.Document)
}

// Base supplies the document a composition starts from.
type Base interface {
	Snapshot() *document.Document
}

// Service builds per-request stylesheets on top of a shared base.
type Service struct {
	base Base
}

// NewService creates a service over base, usually the site scheme manager.
func NewService(base Base) *Service {
	return &Service{base: base}
}

// Compose returns a fresh document: the base snapshot with layers applied
// in order.
func (s *Service) Compose(layers ...Layer) *document.Document {
	doc := s.base.Snapshot()
	for _, l := range layers {
		if l != nil {
			l.ApplyTo(doc)
		}
	}
	return doc
}

// Stylesheet is a rendered composition.
type Stylesheet struct {
	CSS      string
	Tailwind string
	ETag     string
}

// Render composes layers and renders the result with a content ETag.
func (s *Service) Render(layers ...Layer) Stylesheet {
	doc := s.Compose(layers...)
	css := doc.CSS()
	tw := doc.TailwindScript()
	return Stylesheet{CSS: css, Tailwind: tw, ETag: ETag([]byte(css), []byte(tw))}
}

// ETag hashes parts into a strong entity tag.
func ETag(parts ...[]byte) string {
	h, _ := blake2b.New(16, nil)
	for _, p := range parts {
		h.Write(p)
	}
	return `"` + hex.EncodeToString(h.Sum(nil)) + `"`
}
