package kml

import (
	"errors"
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// ErrNoImageSource is reported when a surface image is drawn with a
// DrawContext that has no Images source.
var ErrNoImageSource = errors.New("draw context has no image source")

// SurfaceImage maps an image onto a geographic sector.
//
// The image is fetched from the DrawContext's ImageSource the first time the
// surface image is drawn. A failed fetch is reported once and the surface
// image stays blank.
type SurfaceImage struct {
	Sector Sector
	Source string
	// Opacity in [0, 1] applied to every pixel.
	Opacity float64

	img     image.Image
	loaded  bool
	loadErr error
}

// NewSurfaceImage creates a fully opaque surface image.
func NewSurfaceImage(sector Sector, source string) *SurfaceImage {
	return &SurfaceImage{Sector: sector, Source: source, Opacity: 1}
}

// Err returns the error from loading the image, if any.
func (s *SurfaceImage) Err() error { return s.loadErr }

// Render draws the image scaled into the sector's canvas rectangle.
// Visibility is resolved by the owning feature, so opts is not consulted.
func (s *SurfaceImage) Render(dc *DrawContext, _ RenderOptions) {
	if !s.loaded {
		s.load(dc)
	}
	if s.img == nil || dc.Canvas == nil {
		return
	}
	if !dc.Viewport.Intersects(s.Sector) {
		return
	}

	dst := dc.ProjectSector(s.Sector)
	if dst.Intersect(dc.Canvas.Bounds()).Empty() {
		return
	}

	var opts *xdraw.Options
	if s.Opacity < 1 {
		opts = &xdraw.Options{
			SrcMask: image.NewUniform(color.Alpha{A: uint8(clamp01(s.Opacity) * 255)}),
		}
	}
	xdraw.ApproxBiLinear.Scale(dc.Canvas, dst, s.img, s.img.Bounds(), xdraw.Over, opts)
	dc.DrawCalls++
}

func (s *SurfaceImage) load(dc *DrawContext) {
	s.loaded = true
	if dc.Images == nil {
		s.loadErr = ErrNoImageSource
	} else {
		s.img, s.loadErr = dc.Images.Image(s.Source)
	}
	if s.loadErr != nil {
		dc.Observer.emit(Event{
			Kind:   EventImageFailed,
			Tag:    "SurfaceImage",
			Sector: s.Sector,
			Href:   s.Source,
			Err:    s.loadErr,
		})
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
