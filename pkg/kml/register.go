package kml

import (
	"github.com/beetlebugorg/kml/internal/parser"
)

func init() {
	registerElements(parser.DefaultRegistry)
}

// registerElements binds every element type of this package to its tags.
func registerElements(reg *parser.Registry) {
	register(reg, (*GroundOverlay)(nil).TagNames(), func(n *parser.Node, f *parser.Factory) parser.Element {
		return newGroundOverlay(n, f)
	})
	register(reg, (*LatLonBox)(nil).TagNames(), func(n *parser.Node, f *parser.Factory) parser.Element {
		return newLatLonBox(n, f)
	})
	register(reg, (*LatLonQuad)(nil).TagNames(), func(n *parser.Node, f *parser.Factory) parser.Element {
		return newLatLonQuad(n, f)
	})
	register(reg, (*Icon)(nil).TagNames(), func(n *parser.Node, f *parser.Factory) parser.Element {
		return newIcon(n, f)
	})
	register(reg, (*Document)(nil).TagNames(), func(n *parser.Node, f *parser.Factory) parser.Element {
		return newDocument(n, f)
	})
	register(reg, (*Folder)(nil).TagNames(), func(n *parser.Node, f *parser.Factory) parser.Element {
		return newFolder(n, f)
	})
}

func register(reg *parser.Registry, tags []string, ctor parser.Constructor) {
	for _, tag := range tags {
		reg.Register(tag, ctor)
	}
}
