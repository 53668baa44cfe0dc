package kml

import (
	"sort"

	"github.com/beetlebugorg/kml/internal/parser"
)

// Container is a feature that holds other features.
type Container struct {
	featureBase

	features    lazy[[]Feature]
	renderOrder lazy[[]Feature]
}

// Features returns the child features in document order. Children whose
// tag has no registered element, or whose element is not a Feature, are
// skipped.
func (c *Container) Features() []Feature {
	features, _, _ := c.features.get(func() ([]Feature, bool, error) {
		var out []Feature
		for _, n := range c.node.Children {
			el, err := c.factory.Build(n)
			if err != nil {
				continue
			}
			if f, ok := el.(Feature); ok {
				out = append(out, f)
			}
		}
		return out, len(out) > 0, nil
	})
	return features
}

// Render renders children in draw order. A hidden container hides its
// children.
func (c *Container) Render(dc *DrawContext, opts RenderOptions) {
	if !c.renderFeature(dc, opts) {
		opts.hiddenByParent = true
	}
	for _, f := range c.byDrawOrder() {
		f.Render(dc, opts)
	}
}

func (c *Container) byDrawOrder() []Feature {
	ordered, _, _ := c.renderOrder.get(func() ([]Feature, bool, error) {
		features := c.Features()
		ordered := make([]Feature, len(features))
		copy(ordered, features)
		sort.SliceStable(ordered, func(i, j int) bool {
			return drawOrderOf(ordered[i]) < drawOrderOf(ordered[j])
		})
		return ordered, true, nil
	})
	return ordered
}

// drawOrderOf returns a feature's <drawOrder>, or 0 for features without
// one.
func drawOrderOf(f Feature) int {
	o, ok := f.(interface{ DrawOrder() (int, bool, error) })
	if !ok {
		return 0
	}
	order, found, err := o.DrawOrder()
	if !found || err != nil {
		return 0
	}
	return order
}

// Document is the top-level KML container.
type Document struct {
	Container
}

func newDocument(n *parser.Node, f *parser.Factory) *Document {
	return &Document{Container{featureBase: newFeatureBase(n, f)}}
}

// TagNames returns the tags a Document is registered under.
func (d *Document) TagNames() []string { return []string{"Document"} }

// Folder groups features inside a document.
type Folder struct {
	Container
}

func newFolder(n *parser.Node, f *parser.Factory) *Folder {
	return &Folder{Container{featureBase: newFeatureBase(n, f)}}
}

// TagNames returns the tags a Folder is registered under.
func (f *Folder) TagNames() []string { return []string{"Folder"} }
