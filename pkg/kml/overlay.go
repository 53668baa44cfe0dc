package kml

import (
	"image/color"

	"github.com/beetlebugorg/kml/internal/parser"
)

// Overlay holds what every KML overlay has on top of a feature: the image
// it shows, a color and a draw order.
type Overlay struct {
	featureBase

	icon      lazy[*Icon]
	color     lazy[color.NRGBA]
	drawOrder lazy[int]
}

func newOverlay(n *parser.Node, f *parser.Factory) Overlay {
	return Overlay{featureBase: newFeatureBase(n, f)}
}

// Icon returns the image reference.
func (o *Overlay) Icon() (*Icon, bool) {
	return child(&o.element, &o.icon, (*Icon)(nil).TagNames()...)
}

// Color returns the <color> child. Its alpha is used as image opacity.
func (o *Overlay) Color() (color.NRGBA, bool, error) {
	return o.colorField(&o.color, "color")
}

// DrawOrder returns the <drawOrder> child. Overlays with higher values are
// drawn on top of overlays with lower values.
func (o *Overlay) DrawOrder() (int, bool, error) {
	return o.intField(&o.drawOrder, "drawOrder")
}
