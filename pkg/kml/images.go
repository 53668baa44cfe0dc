package kml

import (
	"archive/zip"
	"fmt"
	"image"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	// Decoders for Icon hrefs.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageSource resolves an Icon href to a decoded image.
type ImageSource interface {
	Image(href string) (image.Image, error)
}

// ErrImageNotFound indicates an href that does not resolve to any image.
type ErrImageNotFound struct {
	Href string
}

func (e *ErrImageNotFound) Error() string {
	return fmt.Sprintf("image not found: %s", e.Href)
}

// MapImageSource serves images already in memory, keyed by href.
type MapImageSource map[string]image.Image

// Image implements ImageSource.
func (m MapImageSource) Image(href string) (image.Image, error) {
	img, ok := m[href]
	if !ok {
		return nil, &ErrImageNotFound{Href: href}
	}
	return img, nil
}

// DirImageSource reads images from disk. Relative hrefs resolve against Dir,
// normally the directory of the KML file.
type DirImageSource struct {
	Dir string
}

// Image implements ImageSource.
func (d DirImageSource) Image(href string) (image.Image, error) {
	p := strings.TrimPrefix(href, "file://")
	if !filepath.IsAbs(p) {
		p = filepath.Join(d.Dir, filepath.FromSlash(p))
	}

	file, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ErrImageNotFound{Href: href}
		}
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", href, err)
	}
	return img, nil
}

// ZipImageSource reads images stored inside a KMZ archive.
type ZipImageSource struct {
	Reader *zip.Reader
}

// Image implements ImageSource.
func (z ZipImageSource) Image(href string) (image.Image, error) {
	name := path.Clean(strings.TrimPrefix(href, "./"))
	for _, f := range z.Reader.File {
		if path.Clean(f.Name) != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s in archive: %w", href, err)
		}
		defer rc.Close()

		img, _, err := image.Decode(rc)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", href, err)
		}
		return img, nil
	}
	return nil, &ErrImageNotFound{Href: href}
}

// DefaultHTTPTimeout bounds a single image download when no client is given.
const DefaultHTTPTimeout = 30 * time.Second

var defaultHTTPClient = &http.Client{Timeout: DefaultHTTPTimeout}

// HTTPImageSource downloads images from http and https hrefs.
type HTTPImageSource struct {
	// Client defaults to a client with DefaultHTTPTimeout.
	Client *http.Client
}

// Image implements ImageSource.
func (h HTTPImageSource) Image(href string) (image.Image, error) {
	client := h.Client
	if client == nil {
		client = defaultHTTPClient
	}

	resp, err := client.Get(href)
	if err != nil {
		return nil, fmt.Errorf("download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, &ErrImageNotFound{Href: href}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download failed: HTTP %d", resp.StatusCode)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", href, err)
	}
	return img, nil
}

// MultiImageSource sends http and https hrefs to Remote and everything else
// to Local. A nil Remote makes remote hrefs not found.
type MultiImageSource struct {
	Local  ImageSource
	Remote ImageSource
}

// Image implements ImageSource.
func (m MultiImageSource) Image(href string) (image.Image, error) {
	if isRemote(href) {
		if m.Remote == nil {
			return nil, &ErrImageNotFound{Href: href}
		}
		return m.Remote.Image(href)
	}
	if m.Local == nil {
		return nil, &ErrImageNotFound{Href: href}
	}
	return m.Local.Image(href)
}

func isRemote(href string) bool {
	lower := strings.ToLower(href)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// CachedImageSource memoizes another source in an ImageCache.
type CachedImageSource struct {
	Source ImageSource
	Cache  *ImageCache
}

// Image implements ImageSource.
func (c CachedImageSource) Image(href string) (image.Image, error) {
	return c.Cache.Get(href, func() (image.Image, error) {
		return c.Source.Image(href)
	})
}
