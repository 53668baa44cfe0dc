package main

import (
	"image/png"
	"log"
	"os"

	"github.com/beetlebugorg/kml/pkg/kml"
	"go.uber.org/zap"
)

func main() {
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	opts := kml.DefaultParseOptions()
	opts.Observer = kml.ZapObserver(logger)

	file, err := kml.ParseFile("overlays.kmz", opts)
	if err != nil {
		log.Fatal(err)
	}

	viewport, ok := file.Bounds()
	if !ok {
		log.Fatal("no overlay has a LatLonBox")
	}

	dc := kml.NewDrawContext(1024, 768, viewport)
	dc.Images = file.Images()
	dc.Observer = opts.Observer

	// First frame builds the surface images and requests a redraw
	scene := kml.NewScene(file.Features()...)
	frames := scene.RenderUntilSettled(dc, 4)
	logger.Info("rendered", zap.Int("frames", frames), zap.Int("draw_calls", dc.DrawCalls))

	out, err := os.Create("overlays.png")
	if err != nil {
		log.Fatal(err)
	}
	defer out.Close()

	if err := png.Encode(out, dc.Canvas); err != nil {
		log.Fatal(err)
	}
}
