package source

import (
	"image"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache loads each background spec once. Concurrent requests for the same spec share one load.
type Cache struct {
	baseDir string
	dpi     int

	loads  singleflight.Group
	mu     sync.Mutex
	images map[string]image.Image
}

func NewCache(baseDir string, dpi int) *Cache {
	return &Cache{baseDir: baseDir, dpi: dpi, images: make(map[string]image.Image)}
}

func (c *Cache) Get(spec string) (image.Image, error) {
	c.mu.Lock()
	img, ok := c.images[spec]
	c.mu.Unlock()
	if ok {
		return img, nil
	}

	v, err, _ := c.loads.Do(spec, func() (any, error) {
		img, err := LoadBackground(spec, c.baseDir, c.dpi)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.images[spec] = img
		c.mu.Unlock()
		return img, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(image.Image), nil
}

// Len is the number of cached backgrounds
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.images)
}
