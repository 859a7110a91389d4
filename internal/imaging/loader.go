package imaging

import (
	"image"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"github.com/ironsheep/image-morph-mcp/internal/morph"
)

// ErrDecodeFailure is returned when data cannot be decoded as an image.
var ErrDecodeFailure = errors.New("image decode failure")

// Decode reads an encoded PNG, JPEG, GIF, BMP or TIFF image and converts it
// to a raster. EXIF orientation is applied.
func Decode(r io.Reader) (*morph.Raster, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(ErrDecodeFailure, err.Error())
	}
	return FromImage(img)
}

// FromImage copies any image.Image into a raster as non-premultiplied RGBA8.
func FromImage(img image.Image) (*morph.Raster, error) {
	nrgba := imaging.Clone(img)
	w, h := nrgba.Rect.Dx(), nrgba.Rect.Dy()

	pix := make([]byte, 0, w*h*4)
	for y := 0; y < h; y++ {
		row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+w*4]
		pix = append(pix, row...)
	}
	return morph.NewRaster(w, h, pix)
}

// RasterCache provides thread-safe caching of decoded rasters to avoid
// redundant disk reads.
//
// Rasters are keyed by the exact path string passed to Load. The cached
// rasters hold the decoded pixels, not the binarized ones; binarization is the
// session's job.
//
// # Memory Management
//
// Cached rasters remain in memory until explicitly removed via Evict() or
// Clear().
type RasterCache struct {
	mu      sync.RWMutex
	rasters map[string]*morph.Raster
}

// NewRasterCache creates and initializes a new empty raster cache.
func NewRasterCache() *RasterCache {
	return &RasterCache{
		rasters: make(map[string]*morph.Raster),
	}
}

// Load retrieves a raster from the cache or decodes it from disk if not cached.
//
// # Errors
//
//   - Returns an error if the file does not exist or cannot be read
//   - Returns an error wrapping ErrDecodeFailure if the file is not an image
func (c *RasterCache) Load(path string) (*morph.Raster, error) {
	c.mu.RLock()
	if r, ok := c.rasters[path]; ok {
		c.mu.RUnlock()
		return r, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open image")
	}
	defer f.Close()

	r, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s", path)
	}

	c.mu.Lock()
	c.rasters[path] = r
	c.mu.Unlock()

	return r, nil
}

// Clear removes all rasters from the cache.
func (c *RasterCache) Clear() {
	c.mu.Lock()
	c.rasters = make(map[string]*morph.Raster)
	c.mu.Unlock()
}

// Evict removes a specific raster from the cache by its path.
// If the path is not in the cache, this method does nothing.
func (c *RasterCache) Evict(path string) {
	c.mu.Lock()
	delete(c.rasters, path)
	c.mu.Unlock()
}

// Len returns the number of cached rasters.
func (c *RasterCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.rasters)
}

// RasterInfo contains metadata about a loaded image file.
type RasterInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the format implied by the file extension ("png", "jpeg",
	// "gif", "tiff", "bmp") or "unknown".
	Format string `json:"format"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadInfo loads a raster through the cache and returns metadata about it.
func LoadInfo(cache *RasterCache, path string) (*RasterInfo, error) {
	r, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to stat file")
	}

	format := "unknown"
	if f, err := imaging.FormatFromFilename(path); err == nil {
		format = strings.ToLower(f.String())
	}

	return &RasterInfo{
		Width:         r.Width(),
		Height:        r.Height(),
		Format:        format,
		FileSizeBytes: stat.Size(),
	}, nil
}
