package parser

import (
	"strconv"
	"strings"
)

// Transformer converts a node's text into a typed value.
//
// A transformer must report unconvertible text as *ErrMalformedValue and
// never substitute a zero value for it.
type Transformer func(n *Node) (interface{}, error)

// String returns the node's trimmed text.
func String(n *Node) (interface{}, error) {
	return n.Text, nil
}

// Number parses the node's text as a float64.
func Number(n *Node) (interface{}, error) {
	v, err := strconv.ParseFloat(n.Text, 64)
	if err != nil {
		return nil, &ErrMalformedValue{Path: n.Path(), Text: n.Text, Kind: "number"}
	}
	return v, nil
}

// Integer parses the node's text as a base-10 int.
func Integer(n *Node) (interface{}, error) {
	v, err := strconv.Atoi(n.Text)
	if err != nil {
		return nil, &ErrMalformedValue{Path: n.Path(), Text: n.Text, Kind: "integer"}
	}
	return v, nil
}

// Boolean accepts the XML schema boolean lexical forms 1, 0, true and false.
func Boolean(n *Node) (interface{}, error) {
	switch n.Text {
	case "1", "true":
		return true, nil
	case "0", "false":
		return false, nil
	}
	return nil, &ErrMalformedValue{Path: n.Path(), Text: n.Text, Kind: "boolean"}
}

// Coordinates parses a KML coordinate list: whitespace separated tuples of
// lon,lat or lon,lat,alt. Returned tuples follow the same [lon, lat(, alt)]
// order.
func Coordinates(n *Node) (interface{}, error) {
	fields := strings.Fields(n.Text)
	coords := make([][]float64, 0, len(fields))
	for i, tuple := range fields {
		parts := strings.Split(tuple, ",")
		if len(parts) < 2 || len(parts) > 3 {
			return nil, &ErrMalformedValue{
				Path:   n.Path(),
				Text:   tuple,
				Kind:   "coordinates",
				Reason: "tuple " + strconv.Itoa(i) + " must have 2 or 3 values",
			}
		}
		coord := make([]float64, len(parts))
		for j, p := range parts {
			v, err := strconv.ParseFloat(p, 64)
			if err != nil {
				return nil, &ErrMalformedValue{
					Path:   n.Path(),
					Text:   tuple,
					Kind:   "coordinates",
					Reason: "tuple " + strconv.Itoa(i) + " is not numeric",
				}
			}
			coord[j] = v
		}
		coords = append(coords, coord)
	}
	return coords, nil
}
