package kml

import (
	"sort"

	"github.com/dhconnelly/rtreego"
)

// OverlayIndex provides fast viewport queries over ground overlays.
//
// Overlays are indexed by their LatLonBox. Overlays without a valid box
// cannot be placed and are left out.
//
// Example:
//
//	idx := kml.BuildIndex(file.GroundOverlays())
//	visible := idx.Query(kml.Sector{South: 37.5, North: 38, West: -122.5, East: -122})
type OverlayIndex struct {
	entries []*indexedOverlay
	rtree   *rtreego.Rtree // Spatial index for fast queries
}

// indexedOverlay wraps an overlay for R-tree storage.
type indexedOverlay struct {
	overlay   *GroundOverlay
	sector    Sector
	position  int // Document order
	drawOrder int
}

// Bounds implements rtreego.Spatial interface.
func (e *indexedOverlay) Bounds() rtreego.Rect {
	return e.sector.rtreeRect()
}

// BuildIndex creates an index over overlays.
func BuildIndex(overlays []*GroundOverlay) *OverlayIndex {
	// Create R-tree (2D, min=25 children, max=50 children)
	rtree := rtreego.NewTree(2, 25, 50)

	entries := make([]*indexedOverlay, 0, len(overlays))
	for i, overlay := range overlays {
		box, ok := overlay.LatLonBox()
		if !ok {
			continue
		}
		sector, err := box.Sector()
		if err != nil {
			continue
		}

		entry := &indexedOverlay{
			overlay:   overlay,
			sector:    sector,
			position:  i,
			drawOrder: drawOrderOf(overlay),
		}
		entries = append(entries, entry)
		rtree.Insert(entry)
	}

	return &OverlayIndex{
		entries: entries,
		rtree:   rtree,
	}
}

// Query returns overlays intersecting viewport, sorted for drawing: lower
// drawOrder first, then document order.
func (idx *OverlayIndex) Query(viewport Sector) []*GroundOverlay {
	// SearchIntersect skips rects that only share an edge, Intersects does not
	spatials := idx.rtree.SearchIntersect(viewport.Expand(rtreeEpsilon).rtreeRect())

	hits := make([]*indexedOverlay, 0, len(spatials))
	for _, spatial := range spatials {
		entry := spatial.(*indexedOverlay)
		// The query rect is padded; confirm against the real sector
		if !viewport.Intersects(entry.sector) {
			continue
		}
		hits = append(hits, entry)
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].drawOrder != hits[j].drawOrder {
			return hits[i].drawOrder < hits[j].drawOrder
		}
		return hits[i].position < hits[j].position
	})

	result := make([]*GroundOverlay, len(hits))
	for i, hit := range hits {
		result[i] = hit.overlay
	}
	return result
}

// Count returns the number of indexed overlays.
func (idx *OverlayIndex) Count() int {
	return len(idx.entries)
}

// Bounds returns the union of all indexed sectors.
func (idx *OverlayIndex) Bounds() Sector {
	if len(idx.entries) == 0 {
		return Sector{}
	}

	bounds := idx.entries[0].sector
	for _, entry := range idx.entries[1:] {
		bounds = bounds.Union(entry.sector)
	}
	return bounds
}
