package kml

import (
	"github.com/beetlebugorg/kml/internal/parser"
)

// LatLonBox is the rectangular bound of a ground overlay.
//
// Each edge is read on first access. A missing edge is absent, a
// non-numeric edge is an *parser.ErrMalformedValue.
type LatLonBox struct {
	element

	north    lazy[float64]
	south    lazy[float64]
	east     lazy[float64]
	west     lazy[float64]
	rotation lazy[float64]
	sector   lazy[Sector]
}

func newLatLonBox(n *parser.Node, f *parser.Factory) *LatLonBox {
	return &LatLonBox{element: newElement(n, f)}
}

// TagNames returns the tags a LatLonBox is registered under.
func (b *LatLonBox) TagNames() []string { return []string{"LatLonBox"} }

// North returns the latitude of the top edge.
func (b *LatLonBox) North() (float64, bool, error) { return b.numberField(&b.north, "north") }

// South returns the latitude of the bottom edge.
func (b *LatLonBox) South() (float64, bool, error) { return b.numberField(&b.south, "south") }

// East returns the longitude of the right edge.
func (b *LatLonBox) East() (float64, bool, error) { return b.numberField(&b.east, "east") }

// West returns the longitude of the left edge.
func (b *LatLonBox) West() (float64, bool, error) { return b.numberField(&b.west, "west") }

// Rotation returns the counter-clockwise rotation in degrees.
func (b *LatLonBox) Rotation() (float64, bool, error) { return b.numberField(&b.rotation, "rotation") }

// Sector returns the box as a validated Sector. All four edges are
// required.
func (b *LatLonBox) Sector() (Sector, error) {
	s, _, err := b.sector.get(func() (Sector, bool, error) {
		edges := []struct {
			tag string
			get func() (float64, bool, error)
		}{
			{"south", b.South},
			{"north", b.North},
			{"west", b.West},
			{"east", b.East},
		}
		var v [4]float64
		for i, edge := range edges {
			value, found, err := edge.get()
			if err != nil {
				return Sector{}, false, err
			}
			if !found {
				return Sector{}, false, &parser.ErrMissingElement{Path: b.node.Path(), Tag: edge.tag}
			}
			v[i] = value
		}
		s, err := NewSector(v[0], v[1], v[2], v[3])
		return s, err == nil, err
	})
	return s, err
}
