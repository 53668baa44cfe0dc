package kml

import (
	"container/list"
	"fmt"
	"image"
	"sync"
)

// ImageCache manages decoded images with LRU eviction policy.
//
// Several overlays often share one image, and a KMZ keeps its images
// compressed, so decoding once per href saves both time and memory.
// Memory estimation is approximate: 4 bytes per pixel.
//
// Example:
//
//	cache := kml.NewImageCache(256 * 1024 * 1024) // 256MB limit
//
//	img, err := cache.Get("overlay.png", func() (image.Image, error) {
//	    return kml.DirImageSource{Dir: "/data"}.Image("overlay.png")
//	})
type ImageCache struct {
	maxMemory  int64 // Maximum memory in bytes
	usedMemory int64 // Current memory usage estimate
	images     map[string]*cacheEntry
	lru        *list.List // LRU list (most recent at front)
	mu         sync.RWMutex
}

// cacheEntry tracks a cached image and its metadata
type cacheEntry struct {
	href        string
	img         image.Image
	memorySize  int64
	element     *list.Element // Position in LRU list
	accessCount int
}

// NewImageCache creates a new cache with the specified memory limit in bytes.
//
// Set to 0 for unlimited cache size.
func NewImageCache(maxMemoryBytes int64) *ImageCache {
	return &ImageCache{
		maxMemory: maxMemoryBytes,
		images:    make(map[string]*cacheEntry),
		lru:       list.New(),
	}
}

// Get retrieves an image from cache or loads it using the provided loader function.
//
// The loader is only called on cache miss. Failed loads are not cached.
// An image too large for the cache is returned without being cached.
func (c *ImageCache) Get(href string, loader func() (image.Image, error)) (image.Image, error) {
	c.mu.Lock()
	if entry, ok := c.images[href]; ok {
		entry.accessCount++
		c.lru.MoveToFront(entry.element)
		c.mu.Unlock()
		return entry.img, nil
	}
	c.mu.Unlock()

	img, err := loader()
	if err != nil {
		return nil, err
	}

	// Cache add failed, but we still have the image
	_ = c.Add(href, img)

	return img, nil
}

// Add adds an image to the cache.
//
// If the cache is at capacity, least-recently-used images are evicted to make room.
// Returns error if the image is larger than max memory.
func (c *ImageCache) Add(href string, img image.Image) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	memSize := estimateImageMemory(img)

	if entry, ok := c.images[href]; ok {
		c.usedMemory += memSize - entry.memorySize
		entry.img = img
		entry.memorySize = memSize
		entry.accessCount++
		c.lru.MoveToFront(entry.element)
		return nil
	}

	if c.maxMemory > 0 && memSize > c.maxMemory {
		return fmt.Errorf("image too large for cache (%d bytes > %d bytes max)",
			memSize, c.maxMemory)
	}

	if c.maxMemory > 0 {
		for c.usedMemory+memSize > c.maxMemory && c.lru.Len() > 0 {
			c.evictLRU()
		}
	}

	entry := &cacheEntry{
		href:        href,
		img:         img,
		memorySize:  memSize,
		accessCount: 1,
	}
	entry.element = c.lru.PushFront(entry)
	c.images[href] = entry
	c.usedMemory += memSize

	return nil
}

// evictLRU removes the least recently used image from cache.
// Must be called with c.mu locked.
func (c *ImageCache) evictLRU() {
	elem := c.lru.Back()
	if elem == nil {
		return
	}

	entry := elem.Value.(*cacheEntry)
	c.lru.Remove(elem)
	delete(c.images, entry.href)
	c.usedMemory -= entry.memorySize
}

// Remove explicitly removes an image from the cache.
func (c *ImageCache) Remove(href string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.images[href]; ok {
		c.lru.Remove(entry.element)
		delete(c.images, href)
		c.usedMemory -= entry.memorySize
	}
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.images = make(map[string]*cacheEntry)
	c.lru.Init()
	c.usedMemory = 0
}

// Stats returns cache statistics.
func (c *ImageCache) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	totalAccess := 0
	for _, entry := range c.images {
		totalAccess += entry.accessCount
	}

	return CacheStats{
		ImageCount:  len(c.images),
		UsedMemory:  c.usedMemory,
		MaxMemory:   c.maxMemory,
		TotalAccess: totalAccess,
	}
}

// CacheStats holds cache performance metrics.
type CacheStats struct {
	ImageCount  int   // Number of images currently cached
	UsedMemory  int64 // Estimated memory usage in bytes
	MaxMemory   int64 // Maximum memory limit in bytes
	TotalAccess int   // Total number of accesses across all cached images
}

// estimateImageMemory assumes 4 bytes per pixel plus a small header.
func estimateImageMemory(img image.Image) int64 {
	if img == nil {
		return 0
	}
	b := img.Bounds()
	return 256 + int64(b.Dx())*int64(b.Dy())*4
}
