package kml

import (
	"github.com/beetlebugorg/kml/internal/parser"
)

// Feature is a markup-backed element that takes part in rendering.
//
// Implementations read everything lazily from their subtree; calling an
// accessor never parses more than the children it needs.
type Feature interface {
	parser.Element

	// Tag returns the element's tag name, e.g. "GroundOverlay".
	Tag() string
	// ID returns the id attribute, or "" when absent.
	ID() string
	// Name returns the <name> child.
	Name() (string, bool)

	// Render is called once per frame by the scene traversal.
	Render(dc *DrawContext, opts RenderOptions)
}

// featureBase holds the accessors common to every feature and the shared
// feature-level render step.
type featureBase struct {
	element

	name        lazy[string]
	description lazy[string]
	styleURL    lazy[string]
	visibility  lazy[bool]
}

func newFeatureBase(n *parser.Node, f *parser.Factory) featureBase {
	return featureBase{element: newElement(n, f)}
}

// ID returns the id attribute, or "" when absent.
func (f *featureBase) ID() string {
	id, _ := f.node.Attr("id")
	return id
}

// Name returns the <name> child.
func (f *featureBase) Name() (string, bool) {
	return f.textField(&f.name, "name")
}

// Description returns the <description> child.
func (f *featureBase) Description() (string, bool) {
	return f.textField(&f.description, "description")
}

// StyleURL returns the <styleUrl> child.
func (f *featureBase) StyleURL() (string, bool) {
	return f.textField(&f.styleURL, "styleUrl")
}

// Visibility returns the <visibility> child. KML defaults to visible when
// the element is absent.
func (f *featureBase) Visibility() (bool, bool, error) {
	return f.boolField(&f.visibility, "visibility")
}

// renderFeature is the feature-level part of every Render call. It reports
// whether the feature should draw this frame.
//
// A malformed <visibility> falls back to the KML default of visible.
func (f *featureBase) renderFeature(_ *DrawContext, opts RenderOptions) bool {
	if opts.IgnoreVisibility {
		return true
	}
	if opts.hiddenByParent {
		return false
	}
	visible, found, err := f.Visibility()
	if err != nil || !found {
		return true
	}
	return visible
}
