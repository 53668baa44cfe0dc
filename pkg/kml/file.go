package kml

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/beetlebugorg/kml/internal/parser"
)

// ParseOptions configures parsing behavior.
type ParseOptions struct {
	// Observer receives an EventCreated for every element the document
	// builds. Elements are built lazily, so events arrive as features are
	// first accessed, not during Parse.
	Observer Observer

	// Images overrides how Icon hrefs are resolved. When nil, hrefs
	// resolve against the file's directory (or the KMZ archive), and
	// http(s) hrefs are downloaded unless DisableRemoteImages is set.
	Images ImageSource

	// HTTPClient is used for remote hrefs. Defaults to a client with
	// DefaultHTTPTimeout.
	HTTPClient *http.Client

	// DisableRemoteImages makes http(s) hrefs resolve as not found.
	DisableRemoteImages bool

	// ImageCacheSize bounds decoded images held per file, in bytes.
	// 0 means unlimited.
	ImageCacheSize int64
}

// DefaultParseOptions returns default options.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		Observer:       NopObserver,
		ImageCacheSize: 256 * 1024 * 1024, // 256MB
	}
}

// File is a parsed KML document.
//
// Parsing builds only the markup tree. Features are created when first
// requested and read their properties on demand.
type File struct {
	path    string
	root    *parser.Node
	factory *parser.Factory
	images  ImageSource

	features lazy[[]Feature]
}

// Parse reads a KML document from r. Relative image hrefs resolve against
// the current directory.
func Parse(r io.Reader, opts ParseOptions) (*File, error) {
	return parseKML(r, "", DirImageSource{Dir: "."}, opts)
}

// ParseFile reads a .kml or .kmz file.
//
// Example:
//
//	file, err := kml.ParseFile("overlays.kmz", kml.DefaultParseOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, overlay := range file.GroundOverlays() {
//	    name, _ := overlay.Name()
//	    fmt.Println(name)
//	}
func ParseFile(filename string, opts ParseOptions) (*File, error) {
	if strings.EqualFold(filepath.Ext(filename), ".kmz") {
		return ParseKMZ(filename, opts)
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	return parseKML(file, filename, DirImageSource{Dir: filepath.Dir(filename)}, opts)
}

// ParseKMZ reads a KMZ archive: a zip holding one KML document (doc.kml by
// convention) and the images it references.
//
// The archive is read into memory so images can be decoded lazily without
// keeping the file open.
func ParseKMZ(filename string, opts ParseOptions) (*File, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read kmz: %w", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open kmz: %w", err)
	}

	entry := findDocEntry(zr)
	if entry == nil {
		return nil, fmt.Errorf("kmz %s contains no .kml document", filename)
	}

	rc, err := entry.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s in kmz: %w", entry.Name, err)
	}
	defer rc.Close()

	return parseKML(rc, filename, ZipImageSource{Reader: zr}, opts)
}

// findDocEntry prefers a root-level doc.kml, then the first .kml entry.
func findDocEntry(zr *zip.Reader) *zip.File {
	var first *zip.File
	for _, f := range zr.File {
		if !strings.EqualFold(path.Ext(f.Name), ".kml") {
			continue
		}
		if strings.EqualFold(f.Name, "doc.kml") {
			return f
		}
		if first == nil {
			first = f
		}
	}
	return first
}

func parseKML(r io.Reader, filename string, local ImageSource, opts ParseOptions) (*File, error) {
	root, err := parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse kml: %w", err)
	}

	factory := parser.NewFactory(nil)
	if opts.Observer != nil {
		observer := opts.Observer
		factory.OnBuild = func(el parser.Element) {
			ev := Event{Kind: EventCreated, Tag: el.Node().Tag}
			if f, ok := el.(Feature); ok {
				ev.FeatureID = f.ID()
			}
			observer(ev)
		}
	}

	return &File{
		path:    filename,
		root:    root,
		factory: factory,
		images:  imageSourceFor(local, opts),
	}, nil
}

func imageSourceFor(local ImageSource, opts ParseOptions) ImageSource {
	if opts.Images != nil {
		return opts.Images
	}
	multi := MultiImageSource{Local: local}
	if !opts.DisableRemoteImages {
		multi.Remote = HTTPImageSource{Client: opts.HTTPClient}
	}
	return CachedImageSource{Source: multi, Cache: NewImageCache(opts.ImageCacheSize)}
}

// Path returns the file name the document was read from, or "" for Parse.
func (f *File) Path() string { return f.path }

// Images returns the image source matching this file's location.
func (f *File) Images() ImageSource { return f.images }

// Features returns the top-level features: the children of <kml>, or the
// root itself when the document has no <kml> wrapper.
func (f *File) Features() []Feature {
	features, _, _ := f.features.get(func() ([]Feature, bool, error) {
		nodes := f.root.Children
		if f.root.Tag != "kml" {
			nodes = []*parser.Node{f.root}
		}
		var out []Feature
		for _, n := range nodes {
			el, err := f.factory.Build(n)
			if err != nil {
				continue
			}
			if feature, ok := el.(Feature); ok {
				out = append(out, feature)
			}
		}
		return out, len(out) > 0, nil
	})
	return features
}

// GroundOverlays returns every ground overlay in the document, depth first
// in document order.
func (f *File) GroundOverlays() []*GroundOverlay {
	var out []*GroundOverlay
	var walk func([]Feature)
	walk = func(features []Feature) {
		for _, feature := range features {
			switch v := feature.(type) {
			case *GroundOverlay:
				out = append(out, v)
			case interface{ Features() []Feature }:
				walk(v.Features())
			}
		}
	}
	walk(f.Features())
	return out
}

// Bounds returns the union of every ground overlay's LatLonBox. It reports
// false when no overlay has a valid box.
func (f *File) Bounds() (Sector, bool) {
	var (
		bounds Sector
		found  bool
	)
	for _, overlay := range f.GroundOverlays() {
		box, ok := overlay.LatLonBox()
		if !ok {
			continue
		}
		s, err := box.Sector()
		if err != nil {
			continue
		}
		if !found {
			bounds, found = s, true
			continue
		}
		bounds = bounds.Union(s)
	}
	return bounds, found
}
