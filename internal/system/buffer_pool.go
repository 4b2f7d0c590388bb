package system

import (
	"image"
	"sync"
)

// ImagePool recycles *image.RGBA buffers per size to keep GC pressure down
// when many snapshots of the same viewport are rendered.
type ImagePool struct {
	mu    sync.RWMutex
	pools map[image.Point]*sync.Pool
}

func NewImagePool() *ImagePool {
	return &ImagePool{pools: make(map[image.Point]*sync.Pool)}
}

var globalPool = NewImagePool()

// GetImage returns a buffer with bounds (0,0)-size. Its pixels are not cleared.
func GetImage(size image.Point) *image.RGBA {
	return globalPool.Get(size)
}

// PutImage hands a buffer back for reuse
func PutImage(img *image.RGBA) {
	globalPool.Put(img)
}

func (p *ImagePool) pool(size image.Point) *sync.Pool {
	p.mu.RLock()
	pool, ok := p.pools[size]
	p.mu.RUnlock()
	if ok {
		return pool
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if pool, ok = p.pools[size]; ok {
		return pool
	}
	pool = &sync.Pool{
		New: func() any {
			return image.NewRGBA(image.Rectangle{Max: size})
		},
	}
	p.pools[size] = pool
	return pool
}

func (p *ImagePool) Get(size image.Point) *image.RGBA {
	return p.pool(size).Get().(*image.RGBA)
}

// Put ignores nil buffers and buffers not anchored at the origin
func (p *ImagePool) Put(img *image.RGBA) {
	if img == nil || img.Rect.Min != (image.Point{}) {
		return
	}
	p.pool(img.Rect.Size()).Put(img)
}
