package kml

import (
	"github.com/beetlebugorg/kml/internal/parser"
)

// Errors reported by accessors and Sector construction. Use errors.As to
// tell them apart.
type (
	// ErrMalformedValue: a child exists but its text does not convert.
	ErrMalformedValue = parser.ErrMalformedValue
	// ErrMissingElement: a required child is absent.
	ErrMissingElement = parser.ErrMissingElement
	// ErrInvalidBox: the edges of a box are inverted.
	ErrInvalidBox = parser.ErrInvalidBox
	// ErrInvalidCoordinate: a latitude or longitude is out of range.
	ErrInvalidCoordinate = parser.ErrInvalidCoordinate
)
