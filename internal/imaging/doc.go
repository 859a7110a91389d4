// Package imaging is the boundary between image files and morph rasters.
//
// Everything that touches an encoded image lives here: decoding files into
// RGBA8 rasters, rendering rasters back to PNG for MCP clients, sampling
// individual pixels, and comparing two rasters. The morphology engine itself
// never sees a file or an image.Image.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//
// # Decoding
//
// Files are decoded with github.com/disintegration/imaging, which applies
// EXIF orientation so that the raster matches what the user sees in an image
// viewer. The decoded image is converted to non-premultiplied RGBA8 before it
// is copied into a raster, so transparent pixels keep their color channels.
//
// # Thread Safety
//
// The RasterCache type is safe for concurrent use. All other functions are
// stateless, and rasters are immutable, so they can be shared freely.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Coordinates outside the raster
//   - Rasters of different dimensions passed to Diff
//   - File I/O errors during loading and saving
//   - Data that is not a decodable image (ErrDecodeFailure)
package imaging
