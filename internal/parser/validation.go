package parser

import (
	"fmt"
	"math"
)

// ValidateCoordinate validates a single coordinate pair
// KML coordinates are WGS-84 decimal degrees
func ValidateCoordinate(lat, lon float64) error {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return &ErrInvalidCoordinate{Lat: lat, Lon: lon}
	}
	if lat < -90.0 || lat > 90.0 {
		return &ErrInvalidCoordinate{Lat: lat, Lon: lon}
	}
	if lon < -180.0 || lon > 180.0 {
		return &ErrInvalidCoordinate{Lat: lat, Lon: lon}
	}
	return nil
}

// ValidateBox validates the four edges of a LatLonBox.
//
// East may be smaller than west only for boxes crossing the antimeridian,
// which are rejected: the renderer works on a single equirectangular span.
func ValidateBox(south, north, west, east float64) error {
	if err := ValidateCoordinate(south, west); err != nil {
		return err
	}
	if err := ValidateCoordinate(north, east); err != nil {
		return err
	}
	if south > north {
		return &ErrInvalidBox{South: south, North: north, West: west, East: east,
			Reason: "south edge is above north edge"}
	}
	if west > east {
		return &ErrInvalidBox{South: south, North: north, West: west, East: east,
			Reason: "west edge is east of east edge"}
	}
	return nil
}

// ValidateQuad validates a gx:LatLonQuad coordinate list: exactly four
// [lon, lat] corners, counter-clockwise from the lower left.
func ValidateQuad(coords [][]float64) error {
	if len(coords) != 4 {
		return fmt.Errorf("quad must have 4 corners, got %d", len(coords))
	}
	for i, c := range coords {
		if err := ValidateCoordinate(c[1], c[0]); err != nil {
			return fmt.Errorf("corner %d: %w", i, err)
		}
	}
	return nil
}
