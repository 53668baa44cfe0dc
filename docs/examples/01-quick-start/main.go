package main

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/kml/pkg/kml"
)

func main() {
	// Parse KML or KMZ file
	file, err := kml.ParseFile("overlays.kmz", kml.DefaultParseOptions())
	if err != nil {
		log.Fatal(err)
	}

	overlays := file.GroundOverlays()
	fmt.Printf("Ground overlays: %d\n", len(overlays))

	// Properties are read on first access
	for _, overlay := range overlays {
		name, _ := overlay.Name()
		fmt.Printf("  %s", name)
		if box, ok := overlay.LatLonBox(); ok {
			if s, err := box.Sector(); err == nil {
				fmt.Printf(" [%.4f,%.4f] to [%.4f,%.4f]", s.West, s.South, s.East, s.North)
			}
		}
		fmt.Println()
	}

	// Union of all boxes
	if bounds, ok := file.Bounds(); ok {
		fmt.Printf("Bounds: [%.4f,%.4f] to [%.4f,%.4f]\n",
			bounds.West, bounds.South,
			bounds.East, bounds.North)
	}
}
