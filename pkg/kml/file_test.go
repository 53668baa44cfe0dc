package kml

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

const sampleDoc = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2" xmlns:gx="http://www.google.com/kml/ext/2.2">
  <Document>
    <name>Sample</name>
    <GroundOverlay id="a">
      <name>A</name>
      <Icon><href>images/a.png</href></Icon>
      <LatLonBox><north>10</north><south>0</south><east>10</east><west>0</west></LatLonBox>
    </GroundOverlay>
    <Folder>
      <Placemark><name>not an overlay</name></Placemark>
      <GroundOverlay id="b">
        <Icon><href>images/b.png</href></Icon>
        <LatLonBox><north>20</north><south>5</south><east>25</east><west>5</west></LatLonBox>
      </GroundOverlay>
      <GroundOverlay id="quad">
        <Icon><href>images/a.png</href></Icon>
        <gx:LatLonQuad><coordinates>30,30 40,30 40,40 30,40</coordinates></gx:LatLonQuad>
      </GroundOverlay>
    </Folder>
  </Document>
</kml>`

func writeSampleKML(t *testing.T, dir string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(dir, "images"), 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"a.png", "b.png"} {
		if err := os.WriteFile(filepath.Join(dir, "images", name), encodePNG(t, solidImage(4, 4, red)), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	p := filepath.Join(dir, "sample.kml")
	if err := os.WriteFile(p, []byte(sampleDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func writeSampleKMZ(t *testing.T, dir string) string {
	t.Helper()
	p := filepath.Join(dir, "sample.kmz")
	f, err := os.Create(p)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	entries := map[string][]byte{
		"other.kml":    []byte(`<kml><Document/></kml>`),
		"doc.kml":      []byte(sampleDoc),
		"images/a.png": encodePNG(t, solidImage(4, 4, red)),
		"images/b.png": encodePNG(t, solidImage(4, 4, red)),
	}
	for _, name := range []string{"other.kml", "doc.kml", "images/a.png", "images/b.png"} {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write(entries[name]); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return p
}

func checkSampleFile(t *testing.T, file *File) {
	t.Helper()

	overlays := file.GroundOverlays()
	var ids []string
	for _, o := range overlays {
		ids = append(ids, o.ID())
	}
	if strings.Join(ids, ",") != "a,b,quad" {
		t.Errorf("Expected overlays a,b,quad in document order, got %v", ids)
	}

	bounds, ok := file.Bounds()
	if !ok {
		t.Fatal("Expected bounds")
	}
	want := Sector{South: 0, North: 20, West: 0, East: 25}
	if bounds != want {
		t.Errorf("Expected bounds %+v, got %+v", want, bounds)
	}

	dc := NewDrawContext(250, 200, bounds)
	dc.Images = file.Images()
	frames := NewScene(file.Features()...).RenderUntilSettled(dc, 5)
	if frames != 2 {
		t.Errorf("Expected scene to settle after 2 frames, got %d", frames)
	}
	if dc.DrawCalls != 4 {
		t.Errorf("Expected 4 draw calls (2 overlays x 2 frames), got %d", dc.DrawCalls)
	}
	for _, o := range overlays[:2] {
		if img := o.Renderable().(*SurfaceImage); img.Err() != nil {
			t.Errorf("Overlay %s: image failed: %v", o.ID(), img.Err())
		}
	}
}

func TestParseFileKML(t *testing.T) {
	p := writeSampleKML(t, t.TempDir())

	file, err := ParseFile(p, DefaultParseOptions())
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if file.Path() != p {
		t.Errorf("Expected path %s, got %s", p, file.Path())
	}
	checkSampleFile(t, file)
}

func TestParseFileKMZ(t *testing.T) {
	p := writeSampleKMZ(t, t.TempDir())

	file, err := ParseFile(p, DefaultParseOptions())
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	checkSampleFile(t, file)
}

func TestParseKMZWithoutDocument(t *testing.T) {
	p := filepath.Join(t.TempDir(), "empty.kmz")
	f, err := os.Create(p)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	if _, err := zw.Create("readme.txt"); err != nil {
		t.Fatal(err)
	}
	zw.Close()
	f.Close()

	if _, err := ParseKMZ(p, DefaultParseOptions()); err == nil {
		t.Error("Expected error for KMZ without a .kml entry")
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := ParseFile(filepath.Join(t.TempDir(), "missing.kml"), DefaultParseOptions()); err == nil {
		t.Error("Expected error for missing file")
	}
	if _, err := Parse(strings.NewReader("<kml><Document>"), DefaultParseOptions()); err == nil {
		t.Error("Expected error for truncated document")
	}
}

func TestParseIsLazy(t *testing.T) {
	rec := &recorder{}
	opts := DefaultParseOptions()
	opts.Observer = rec.observe

	file, err := Parse(strings.NewReader(sampleDoc), opts)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(rec.events) != 0 {
		t.Errorf("Expected no elements built during Parse, got %d events", len(rec.events))
	}

	features := file.Features()
	if len(features) != 1 || features[0].Tag() != "Document" {
		t.Fatalf("Expected a single Document, got %v", features)
	}
	if got := rec.count(EventCreated); got != 1 {
		t.Errorf("Expected only the Document built, got %d events", got)
	}

	file.GroundOverlays()
	created := map[string]int{}
	for _, ev := range rec.events {
		created[ev.Tag]++
	}
	if created["GroundOverlay"] != 3 || created["Folder"] != 1 {
		t.Errorf("Unexpected created elements %v", created)
	}
	if created["LatLonBox"] != 0 || created["Icon"] != 0 {
		t.Errorf("Expected children not built before access, got %v", created)
	}

	// Features are cached: walking again builds nothing new
	before := len(rec.events)
	file.GroundOverlays()
	if len(rec.events) != before {
		t.Errorf("Expected cached features, got %d new events", len(rec.events)-before)
	}
}

func TestParseWithoutKMLRoot(t *testing.T) {
	file, err := Parse(strings.NewReader(scenarioOverlay), DefaultParseOptions())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(file.GroundOverlays()) != 1 {
		t.Errorf("Expected bare GroundOverlay root to be a feature")
	}
}

func TestParseOptionsImages(t *testing.T) {
	opts := DefaultParseOptions()
	opts.Images = MapImageSource{"a.png": solidImage(1, 1, red)}

	file, err := Parse(strings.NewReader(scenarioOverlay), opts)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if _, err := file.Images().Image("a.png"); err != nil {
		t.Errorf("Expected overriding image source, got %v", err)
	}
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	kml := writeSampleKML(t, dir)
	kmz := writeSampleKMZ(t, dir)
	missing := filepath.Join(dir, "missing.kml")

	var (
		mu     sync.Mutex
		totals []int
	)
	progress := func(loaded, total int) {
		mu.Lock()
		totals = append(totals, total)
		mu.Unlock()
	}

	opts := DefaultLoadOptions()
	opts.Workers = 2
	opts.Progress = progress

	files, errs := LoadFiles([]string{kml, missing, kmz}, opts)
	if len(files) != 2 {
		t.Fatalf("Expected 2 files, got %d", len(files))
	}
	if files[0].Path() != kml || files[1].Path() != kmz {
		t.Errorf("Expected files in input order, got %s, %s", files[0].Path(), files[1].Path())
	}
	if len(errs) != 1 || !strings.Contains(errs[0].Error(), "missing.kml") {
		t.Errorf("Expected one error naming missing.kml, got %v", errs)
	}
	if len(totals) != 3 {
		t.Errorf("Expected progress called 3 times, got %d", len(totals))
	}
	for _, total := range totals {
		if total != 3 {
			t.Errorf("Expected total 3, got %d", total)
		}
	}

	// A single worker makes the stop after the first failure deterministic
	totals = nil
	opts.SkipErrors = false
	opts.Workers = 1
	files, errs = LoadFiles([]string{missing, kml, kmz}, opts)
	if files != nil || len(errs) != 1 {
		t.Errorf("Expected loading to stop at first error, got %d files %v", len(files), errs)
	}
	if len(errs) == 1 && !strings.Contains(errs[0].Error(), "missing.kml") {
		t.Errorf("Expected the first failure to be returned, got %v", errs[0])
	}
	if len(totals) != 1 || totals[0] != 3 {
		t.Errorf("Expected remaining files skipped after the failure, progress saw %v", totals)
	}

	files, errs = LoadFiles(nil, opts)
	if len(files) != 0 || errs != nil {
		t.Errorf("Expected empty result for no paths, got %v %v", files, errs)
	}
}
