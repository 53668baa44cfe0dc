package kml

import (
	"image"
	"image/draw"
	"math"
)

// Renderable is a scene object that draws itself into a DrawContext.
// Options are those the owning feature received for this frame.
type Renderable interface {
	Render(dc *DrawContext, opts RenderOptions)
}

// RenderOptions are handed down the feature tree on every frame. Features
// do not interpret them beyond visibility; they pass them on to children.
type RenderOptions struct {
	// IgnoreVisibility draws features whose <visibility> is 0.
	IgnoreVisibility bool

	// hiddenByParent is set by a container that is itself not visible.
	hiddenByParent bool
}

// DrawContext is the per-frame state passed through a render traversal.
type DrawContext struct {
	// Canvas receives draw calls. Nothing is drawn when it is nil.
	Canvas draw.Image
	// Viewport is the geographic area mapped onto the canvas bounds.
	Viewport Sector
	// Images resolves image hrefs for surface images.
	Images ImageSource
	// Observer receives render-time events.
	Observer Observer

	// RedrawRequested is set by anything that changed the scene during
	// this frame and needs another frame to show it.
	RedrawRequested bool
	// Frame counts BeginFrame calls.
	Frame int
	// DrawCalls counts draw operations issued since creation.
	DrawCalls int
}

// NewDrawContext creates a context with an RGBA canvas of the given size
// covering viewport.
func NewDrawContext(width, height int, viewport Sector) *DrawContext {
	return &DrawContext{
		Canvas:   image.NewRGBA(image.Rect(0, 0, width, height)),
		Viewport: viewport,
	}
}

// BeginFrame advances the frame counter, clears the redraw request and
// clears the canvas to transparent. Every frame redraws the whole scene.
func (dc *DrawContext) BeginFrame() {
	dc.Frame++
	dc.RedrawRequested = false
	if dc.Canvas != nil {
		draw.Draw(dc.Canvas, dc.Canvas.Bounds(), image.Transparent, image.Point{}, draw.Src)
	}
}

// Project maps a geographic point to canvas pixels (equirectangular).
func (dc *DrawContext) Project(lat, lon float64) image.Point {
	b := dc.Canvas.Bounds()
	x := (lon - dc.Viewport.West) / dc.Viewport.Width() * float64(b.Dx())
	y := (dc.Viewport.North - lat) / dc.Viewport.Height() * float64(b.Dy())
	return image.Point{
		X: b.Min.X + int(math.Round(x)),
		Y: b.Min.Y + int(math.Round(y)),
	}
}

// ProjectSector maps a sector to the canvas rectangle it covers. The result
// is not clipped to the canvas.
func (dc *DrawContext) ProjectSector(s Sector) image.Rectangle {
	return image.Rectangle{
		Min: dc.Project(s.North, s.West),
		Max: dc.Project(s.South, s.East),
	}
}
