package kml

import (
	"github.com/beetlebugorg/kml/internal/parser"
	"github.com/dhconnelly/rtreego"
	"github.com/twpayne/go-geom"
)

// Sector is a geographic rectangle in WGS-84 decimal degrees.
type Sector struct {
	South float64 // Southern edge (minimum latitude)
	North float64 // Northern edge (maximum latitude)
	West  float64 // Western edge (minimum longitude)
	East  float64 // Eastern edge (maximum longitude)
}

// NewSector validates the four edges and returns the sector.
func NewSector(south, north, west, east float64) (Sector, error) {
	if err := parser.ValidateBox(south, north, west, east); err != nil {
		return Sector{}, err
	}
	return Sector{South: south, North: north, West: west, East: east}, nil
}

// IsValid reports whether the edges lie in range and are not inverted.
func (s Sector) IsValid() bool {
	return parser.ValidateBox(s.South, s.North, s.West, s.East) == nil
}

// Width returns the longitude span in degrees.
func (s Sector) Width() float64 { return s.East - s.West }

// Height returns the latitude span in degrees.
func (s Sector) Height() float64 { return s.North - s.South }

// Contains returns true if the point (lat, lon) is within the sector.
func (s Sector) Contains(lat, lon float64) bool {
	return lon >= s.West && lon <= s.East &&
		lat >= s.South && lat <= s.North
}

// Intersects returns true if the given sector intersects with this sector.
func (s Sector) Intersects(other Sector) bool {
	return !(other.East < s.West ||
		other.West > s.East ||
		other.North < s.South ||
		other.South > s.North)
}

// Union returns the smallest sector containing both sectors.
func (s Sector) Union(other Sector) Sector {
	u := s
	if other.South < u.South {
		u.South = other.South
	}
	if other.North > u.North {
		u.North = other.North
	}
	if other.West < u.West {
		u.West = other.West
	}
	if other.East > u.East {
		u.East = other.East
	}
	return u
}

// Expand returns a new Sector expanded by the given margin in all directions.
//
// Margin is in decimal degrees.
func (s Sector) Expand(margin float64) Sector {
	return Sector{
		South: s.South - margin,
		North: s.North + margin,
		West:  s.West - margin,
		East:  s.East + margin,
	}
}

// Polygon returns the sector as a closed counter-clockwise ring of
// [lon, lat] coordinates.
func (s Sector) Polygon() *geom.Polygon {
	return geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{{
		{s.West, s.South},
		{s.East, s.South},
		{s.East, s.North},
		{s.West, s.North},
		{s.West, s.South},
	}})
}

// rtreeRect converts the sector to an R-tree rectangle.
// rtreeEpsilon is the smallest rect side handed to the R-tree, and the
// margin added to queries so rects that only touch still match.
const rtreeEpsilon = 0.0001

func (s Sector) rtreeRect() rtreego.Rect {
	point := rtreego.Point{s.West, s.South}

	// R-tree requires non-zero dimensions
	lonLength := s.Width()
	latLength := s.Height()
	if lonLength < rtreeEpsilon {
		lonLength = rtreeEpsilon
	}
	if latLength < rtreeEpsilon {
		latLength = rtreeEpsilon
	}

	rect, _ := rtreego.NewRect(point, []float64{lonLength, latLength})
	return rect
}
