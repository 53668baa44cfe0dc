package kml

import (
	"image/color"
	"strconv"

	"github.com/beetlebugorg/kml/internal/parser"
)

// element is the state every markup-backed type shares: the subtree it reads
// from and the factory that resolves its children.
type element struct {
	node    *parser.Node
	factory *parser.Factory
}

func newElement(n *parser.Node, f *parser.Factory) element {
	if f == nil {
		f = parser.NewFactory(nil)
	}
	return element{node: n, factory: f}
}

// Node returns the backing markup subtree.
func (e *element) Node() *parser.Node { return e.node }

// Tag returns the element's tag name.
func (e *element) Tag() string { return e.node.Tag }

func (e *element) textField(slot *lazy[string], name string) (string, bool) {
	v, found, _ := slot.get(func() (string, bool, error) {
		raw, found, err := e.factory.Specific(e.node, name, parser.String)
		if !found || err != nil {
			return "", found, err
		}
		return raw.(string), true, nil
	})
	return v, found
}

func (e *element) numberField(slot *lazy[float64], name string) (float64, bool, error) {
	return slot.get(func() (float64, bool, error) {
		raw, found, err := e.factory.Specific(e.node, name, parser.Number)
		if !found || err != nil {
			return 0, found, err
		}
		return raw.(float64), true, nil
	})
}

func (e *element) intField(slot *lazy[int], name string) (int, bool, error) {
	return slot.get(func() (int, bool, error) {
		raw, found, err := e.factory.Specific(e.node, name, parser.Integer)
		if !found || err != nil {
			return 0, found, err
		}
		return raw.(int), true, nil
	})
}

func (e *element) boolField(slot *lazy[bool], name string) (bool, bool, error) {
	return slot.get(func() (bool, bool, error) {
		raw, found, err := e.factory.Specific(e.node, name, parser.Boolean)
		if !found || err != nil {
			return false, found, err
		}
		return raw.(bool), true, nil
	})
}

func (e *element) colorField(slot *lazy[color.NRGBA], name string) (color.NRGBA, bool, error) {
	return slot.get(func() (color.NRGBA, bool, error) {
		raw, found, err := e.factory.Specific(e.node, name, kmlColor)
		if !found || err != nil {
			return color.NRGBA{}, found, err
		}
		return raw.(color.NRGBA), true, nil
	})
}

// child resolves the first child whose tag is one of names and whose
// registered constructor produced a T. A child built as some other type
// (because the tag was re-registered) counts as absent.
func child[T parser.Element](e *element, slot *lazy[T], names ...string) (T, bool) {
	v, found, _ := slot.get(func() (T, bool, error) {
		var zero T
		el, ok := e.factory.Any(e.node, names)
		if !ok {
			return zero, false, nil
		}
		typed, ok := el.(T)
		if !ok {
			return zero, false, nil
		}
		return typed, true, nil
	})
	return v, found
}

// kmlColor parses a KML color: 8 hex digits in aabbggrr order.
func kmlColor(n *parser.Node) (interface{}, error) {
	if len(n.Text) != 8 {
		return nil, &parser.ErrMalformedValue{Path: n.Path(), Text: n.Text, Kind: "color",
			Reason: "expected 8 hex digits aabbggrr"}
	}
	v, err := strconv.ParseUint(n.Text, 16, 32)
	if err != nil {
		return nil, &parser.ErrMalformedValue{Path: n.Path(), Text: n.Text, Kind: "color"}
	}
	return color.NRGBA{
		A: uint8(v >> 24),
		B: uint8(v >> 16),
		G: uint8(v >> 8),
		R: uint8(v),
	}, nil
}
