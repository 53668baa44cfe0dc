package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/beetlebugorg/kml/pkg/kml"
)

func safeParseFile(path string) (*kml.File, error) {
	file, err := kml.ParseFile(path, kml.DefaultParseOptions())
	if err != nil {
		// Check if file exists
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("kml file not found: %s", path)
		}

		log.Printf("Failed to parse %s: %v", path, err)
		return nil, err
	}

	if len(file.GroundOverlays()) == 0 {
		log.Printf("Warning: %s contains no ground overlays", path)
	}

	// Malformed boxes never fail rendering; check them up front
	for _, overlay := range file.GroundOverlays() {
		box, ok := overlay.LatLonBox()
		if !ok {
			continue
		}
		_, err := box.Sector()
		var malformed *kml.ErrMalformedValue
		var invalid *kml.ErrInvalidBox
		switch {
		case errors.As(err, &malformed):
			log.Printf("Warning: overlay %q has a non-numeric edge: %v", overlay.ID(), err)
		case errors.As(err, &invalid):
			log.Printf("Warning: overlay %q has an inverted box: %v", overlay.ID(), err)
		case err != nil:
			log.Printf("Warning: overlay %q: %v", overlay.ID(), err)
		}
	}

	return file, nil
}

func main() {
	file, err := safeParseFile("overlays.kml")
	if err != nil {
		log.Printf("Error: %v", err)
		return
	}

	fmt.Printf("Successfully loaded: %s\n", file.Path())
	fmt.Printf("Ground overlays: %d\n", len(file.GroundOverlays()))

	// Try to parse a non-existent file
	_, err = safeParseFile("NONEXISTENT.kml")
	if err != nil {
		log.Printf("Expected error: %v", err)
	}
}
