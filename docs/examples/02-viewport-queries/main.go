package main

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/kml/pkg/kml"
)

func main() {
	file, err := kml.ParseFile("overlays.kmz", kml.DefaultParseOptions())
	if err != nil {
		log.Fatal(err)
	}

	// Index overlays by LatLonBox
	idx := kml.BuildIndex(file.GroundOverlays())

	// Define viewport (Boston Harbor area)
	viewport := kml.Sector{
		West: -71.1, East: -71.0,
		South: 42.3, North: 42.4,
	}

	// Query R-tree index, sorted by drawOrder
	overlays := idx.Query(viewport)

	fmt.Printf("Visible overlays: %d of %d\n", len(overlays), idx.Count())

	for _, overlay := range overlays {
		href := "(no image)"
		if icon, ok := overlay.Icon(); ok {
			if h, ok := icon.Href(); ok {
				href = h
			}
		}
		fmt.Printf("  %s: %s\n", overlay.ID(), href)
	}
}
