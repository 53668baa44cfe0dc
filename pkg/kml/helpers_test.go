package kml

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/beetlebugorg/kml/internal/parser"
)

// buildOverlay parses doc and builds its root as a GroundOverlay.
func buildOverlay(t *testing.T, doc string) *GroundOverlay {
	t.Helper()
	root, err := parser.Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	el, err := parser.NewFactory(nil).Build(root)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	overlay, ok := el.(*GroundOverlay)
	if !ok {
		t.Fatalf("Expected *GroundOverlay, got %T", el)
	}
	return overlay
}

func solidImage(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// recorder collects observer events.
type recorder struct {
	events []Event
}

func (r *recorder) observe(ev Event) { r.events = append(r.events, ev) }

func (r *recorder) count(kind EventKind) int {
	n := 0
	for _, ev := range r.events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

var red = color.RGBA{R: 255, A: 255}

func newTestContext(images ImageSource) *DrawContext {
	dc := NewDrawContext(100, 100, Sector{South: 0, North: 10, West: 0, East: 10})
	dc.Images = images
	return dc
}
