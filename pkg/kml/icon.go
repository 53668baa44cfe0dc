package kml

import (
	"github.com/beetlebugorg/kml/internal/parser"
)

// Icon is an image reference: the <Icon> child of an overlay.
type Icon struct {
	element

	href            lazy[string]
	refreshMode     lazy[string]
	refreshInterval lazy[float64]
}

func newIcon(n *parser.Node, f *parser.Factory) *Icon {
	return &Icon{element: newElement(n, f)}
}

// TagNames returns the tags an Icon is registered under.
func (i *Icon) TagNames() []string { return []string{"Icon"} }

// Href returns the image location. An empty <href> counts as absent.
func (i *Icon) Href() (string, bool) {
	href, found := i.textField(&i.href, "href")
	return href, found && href != ""
}

// RefreshMode returns the <refreshMode> child (onChange, onInterval, onExpire).
func (i *Icon) RefreshMode() (string, bool) {
	return i.textField(&i.refreshMode, "refreshMode")
}

// RefreshInterval returns the <refreshInterval> child in seconds.
func (i *Icon) RefreshInterval() (float64, bool, error) {
	return i.numberField(&i.refreshInterval, "refreshInterval")
}
