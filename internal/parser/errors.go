package parser

import (
	"fmt"
)

// ErrInvalidCoordinate indicates coordinate out of valid bounds
type ErrInvalidCoordinate struct {
	Lat, Lon float64
}

func (e *ErrInvalidCoordinate) Error() string {
	return fmt.Sprintf("invalid coordinate: lat=%f lon=%f (lat must be ±90, lon must be ±180)",
		e.Lat, e.Lon)
}

// ErrMalformedValue indicates a child element exists but its text does not
// convert to the requested kind (number, boolean, coordinates, ...)
type ErrMalformedValue struct {
	Path   string
	Text   string
	Kind   string
	Reason string
}

func (e *ErrMalformedValue) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("malformed %s at %s: %q (%s)", e.Kind, e.Path, e.Text, e.Reason)
	}
	return fmt.Sprintf("malformed %s at %s: %q", e.Kind, e.Path, e.Text)
}

// ErrInvalidBox indicates a LatLonBox whose edges do not form a region
type ErrInvalidBox struct {
	South, North, West, East float64
	Reason                   string
}

func (e *ErrInvalidBox) Error() string {
	return fmt.Sprintf("invalid box s=%f n=%f w=%f e=%f: %s",
		e.South, e.North, e.West, e.East, e.Reason)
}

// ErrUnknownTag indicates no constructor is registered for a tag
type ErrUnknownTag struct {
	Tag string
}

func (e *ErrUnknownTag) Error() string {
	return fmt.Sprintf("no element registered for tag %q", e.Tag)
}

// ErrMissingElement indicates a required child element is absent
type ErrMissingElement struct {
	Path string
	Tag  string
}

func (e *ErrMissingElement) Error() string {
	return fmt.Sprintf("%s: missing <%s>", e.Path, e.Tag)
}
