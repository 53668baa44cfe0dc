package kml

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// ErrNoFootprint is returned for overlays that have neither a LatLonBox nor
// a LatLonQuad.
var ErrNoFootprint = errors.New("overlay has neither LatLonBox nor LatLonQuad")

// Footprint returns the area an overlay covers: its LatLonBox when present,
// otherwise its LatLonQuad. It reports false when the overlay has neither.
func Footprint(o *GroundOverlay) (*geom.Polygon, bool, error) {
	if box, ok := o.LatLonBox(); ok {
		s, err := box.Sector()
		if err != nil {
			return nil, true, err
		}
		return s.Polygon(), true, nil
	}
	if quad, ok := o.LatLonQuad(); ok {
		p, err := quad.Polygon()
		return p, true, err
	}
	return nil, false, nil
}

// GeoJSONFeature converts an overlay's footprint and descriptive
// properties to a GeoJSON feature.
func GeoJSONFeature(o *GroundOverlay) (*geojson.Feature, error) {
	footprint, found, err := Footprint(o)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNoFootprint
	}

	props := map[string]interface{}{}
	if name, ok := o.Name(); ok {
		props["name"] = name
	}
	if icon, ok := o.Icon(); ok {
		if href, ok := icon.Href(); ok {
			props["href"] = href
		}
	}
	if altitude, ok := o.Altitude(); ok {
		props["altitude"] = altitude
	}
	if mode, ok := o.AltitudeMode(); ok {
		props["altitudeMode"] = mode
	}
	if order, ok, err := o.DrawOrder(); ok && err == nil {
		props["drawOrder"] = order
	}

	return &geojson.Feature{
		ID:         o.ID(),
		Geometry:   footprint,
		Properties: props,
	}, nil
}

// WriteGeoJSON writes the overlays as a GeoJSON FeatureCollection.
//
// Overlays without a footprint, or whose footprint does not convert, are
// left out and their errors returned after the collection is written.
func WriteGeoJSON(w io.Writer, overlays []*GroundOverlay) ([]error, error) {
	fc := &geojson.FeatureCollection{
		Features: make([]*geojson.Feature, 0, len(overlays)),
	}

	var skipped []error
	for _, o := range overlays {
		f, err := GeoJSONFeature(o)
		if err != nil {
			skipped = append(skipped, fmt.Errorf("overlay %q: %w", o.ID(), err))
			continue
		}
		fc.Features = append(fc.Features, f)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fc); err != nil {
		return skipped, fmt.Errorf("encode geojson: %w", err)
	}
	return skipped, nil
}
