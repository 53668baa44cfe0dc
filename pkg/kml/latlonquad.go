package kml

import (
	"fmt"

	"github.com/beetlebugorg/kml/internal/parser"
	"github.com/twpayne/go-geom"
)

// LatLonQuad is the non-rectangular bound of a ground overlay
// (gx:LatLonQuad): four corners, counter-clockwise from the lower left.
//
// Rendering does not use it; it is parsed for exporters.
type LatLonQuad struct {
	element

	coordinates lazy[[][]float64]
}

func newLatLonQuad(n *parser.Node, f *parser.Factory) *LatLonQuad {
	return &LatLonQuad{element: newElement(n, f)}
}

// TagNames returns the tags a LatLonQuad is registered under. The gx
// prefix is dropped by the parser.
func (q *LatLonQuad) TagNames() []string { return []string{"LatLonQuad"} }

// Coordinates returns the four [lon, lat] corners.
func (q *LatLonQuad) Coordinates() ([][]float64, bool, error) {
	return q.coordinates.get(func() ([][]float64, bool, error) {
		raw, found, err := q.factory.Specific(q.node, "coordinates", parser.Coordinates)
		if !found || err != nil {
			return nil, found, err
		}
		coords := raw.([][]float64)
		if err := parser.ValidateQuad(coords); err != nil {
			return nil, true, fmt.Errorf("%s: %w", q.node.Path(), err)
		}
		return coords, true, nil
	})
}

// Polygon returns the quad as a closed ring.
func (q *LatLonQuad) Polygon() (*geom.Polygon, error) {
	coords, found, err := q.Coordinates()
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &parser.ErrMissingElement{Path: q.node.Path(), Tag: "coordinates"}
	}
	ring := make([]geom.Coord, 0, len(coords)+1)
	for _, c := range coords {
		ring = append(ring, geom.Coord{c[0], c[1]})
	}
	ring = append(ring, geom.Coord{coords[0][0], coords[0][1]})
	return geom.NewPolygon(geom.XY).SetCoords([][]geom.Coord{ring})
}
