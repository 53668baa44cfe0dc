package kml

import (
	"github.com/beetlebugorg/kml/internal/parser"
)

// GroundOverlay drapes an image onto the earth's surface.
//
// Every property is read from the backing subtree on first access and
// cached. The renderable is built on the first Render call at which both
// an Icon href and a LatLonBox are present, and reused on every later
// frame until Invalidate is called.
type GroundOverlay struct {
	Overlay

	altitude       lazy[string]
	altitudeMode   lazy[string]
	altitudeMeters lazy[float64]
	latLonBox      lazy[*LatLonBox]
	latLonQuad     lazy[*LatLonQuad]

	renderable      *SurfaceImage
	failureReported bool
}

func newGroundOverlay(n *parser.Node, f *parser.Factory) *GroundOverlay {
	return &GroundOverlay{Overlay: newOverlay(n, f)}
}

// TagNames returns the tags a GroundOverlay is registered under.
func (g *GroundOverlay) TagNames() []string { return []string{"GroundOverlay"} }

// Altitude returns the <altitude> text: meters above the surface,
// interpreted according to AltitudeMode.
func (g *GroundOverlay) Altitude() (string, bool) {
	return g.textField(&g.altitude, "altitude")
}

// AltitudeMeters returns <altitude> parsed as a number.
func (g *GroundOverlay) AltitudeMeters() (float64, bool, error) {
	return g.numberField(&g.altitudeMeters, "altitude")
}

// AltitudeMode returns the <altitudeMode> text (clampToGround, absolute).
func (g *GroundOverlay) AltitudeMode() (string, bool) {
	return g.textField(&g.altitudeMode, "altitudeMode")
}

// LatLonBox returns the rectangular bound.
func (g *GroundOverlay) LatLonBox() (*LatLonBox, bool) {
	return child(&g.element, &g.latLonBox, (*LatLonBox)(nil).TagNames()...)
}

// LatLonQuad returns the non-rectangular bound. It is never used for
// rendering; when both bounds are present the box wins.
func (g *GroundOverlay) LatLonQuad() (*LatLonQuad, bool) {
	return child(&g.element, &g.latLonQuad, (*LatLonQuad)(nil).TagNames()...)
}

// IsRealized reports whether the renderable has been built.
func (g *GroundOverlay) IsRealized() bool { return g.renderable != nil }

// Renderable returns the cached surface image, or nil before realization.
func (g *GroundOverlay) Renderable() Renderable {
	if g.renderable == nil {
		return nil
	}
	return g.renderable
}

// Invalidate drops the cached renderable. The next Render call builds a
// new one from the (cached) accessors.
func (g *GroundOverlay) Invalidate() {
	g.renderable = nil
	g.failureReported = false
}

// Render runs the feature-level render step, builds the surface image if it
// does not exist yet and the inputs allow it, then draws it.
//
// Missing inputs are not an error: the overlay simply draws nothing.
func (g *GroundOverlay) Render(dc *DrawContext, opts RenderOptions) {
	enabled := g.renderFeature(dc, opts)

	if g.renderable == nil {
		g.realize(dc)
	}

	if g.renderable != nil && enabled {
		g.renderable.Render(dc, opts)
	}
}

func (g *GroundOverlay) realize(dc *DrawContext) {
	icon, ok := g.Icon()
	if !ok {
		return
	}
	href, ok := icon.Href()
	if !ok {
		return
	}
	box, ok := g.LatLonBox()
	if !ok {
		return
	}

	sector, err := box.Sector()
	if err != nil {
		if !g.failureReported {
			g.failureReported = true
			dc.Observer.emit(Event{
				Kind:      EventConstructionFailed,
				Tag:       g.Tag(),
				FeatureID: g.ID(),
				Href:      href,
				Err:       err,
			})
		}
		return
	}

	img := NewSurfaceImage(sector, href)
	if c, found, err := g.Color(); found && err == nil {
		img.Opacity = float64(c.A) / 255
	}
	g.renderable = img
	dc.RedrawRequested = true

	dc.Observer.emit(Event{
		Kind:      EventRealized,
		Tag:       g.Tag(),
		FeatureID: g.ID(),
		Sector:    sector,
		Href:      href,
	})
}
