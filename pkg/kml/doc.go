// Package kml parses KML ground overlays and turns them into renderable
// surface images.
//
// Parsing only builds the markup tree. Every element reads its properties
// on demand: the first call to an accessor parses the matching child and
// caches the result, so the cost of a document is proportional to what the
// renderer or an exporter actually reads.
//
// # Basic Usage
//
//	file, err := kml.ParseFile("overlays.kml", kml.DefaultParseOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, overlay := range file.GroundOverlays() {
//	    if box, ok := overlay.LatLonBox(); ok {
//	        sector, err := box.Sector()
//	        fmt.Println(sector, err)
//	    }
//	}
//
// # Rendering Workflow
//
// A ground overlay builds its SurfaceImage during the first frame at which
// both its Icon href and its LatLonBox are available, asks the DrawContext
// for another frame, and reuses the surface image afterwards:
//
//	viewport, _ := file.Bounds()
//	dc := kml.NewDrawContext(1024, 768, viewport)
//	dc.Images = file.Images()
//
//	scene := kml.NewScene(file.Features()...)
//	scene.RenderUntilSettled(dc, 4)
//	png.Encode(out, dc.Canvas)
//
// Overlays missing an image or a box never draw and never fail; they
// simply stay unrealized.
//
// # Spatial Queries
//
// BuildIndex places overlays in an R-tree so a viewer can render only the
// overlays that intersect its viewport:
//
//	idx := kml.BuildIndex(file.GroundOverlays())
//	for _, overlay := range idx.Query(viewport) {
//	    overlay.Render(dc, kml.RenderOptions{})
//	}
//
// # Observability
//
// Nothing in this package logs. Element creation, realization and failures
// are reported to an Observer; ZapObserver adapts a *zap.Logger.
package kml
