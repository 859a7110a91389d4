// Package morph implements binary morphology over RGBA8 rasters.
//
// The package is a pure function library: every operation takes a Raster and
// a Kernel and returns a brand-new Raster. Inputs are never modified, so a
// caller can keep an "original" and a "current" raster side by side without
// aliasing concerns.
//
// # Data Model
//
//   - Pixel: four 8-bit channels with componentwise Min/Max.
//   - Raster: width*height*4 bytes, row-major, RGBA, origin at top-left.
//   - Kernel: odd-sized square matrix of Foreground/Background/DontCare cells.
//
// # Operations
//
//   - Binarize: luma threshold to pure Black/White, alpha forced opaque
//   - Dilate / Erode: componentwise max/min over the Foreground cells
//   - Open / Close: erode-then-dilate / dilate-then-erode with a full kernel
//     of the same dimension (cell edits are ignored)
//   - HitOrMiss: exact match against Foreground (White) and Background (Black)
//   - Thinning / Thickening: force matched pixels to Black / White
//   - DilateSquare, ErodeSquare, OpenSquare, CloseSquare: radius-based square
//     window with clamp-to-edge borders
//
// # Border Handling
//
// Kernel-based operations use the replicate-border-via-center rule: when a
// kernel cell maps outside the raster, the pixel being processed stands in
// for the missing neighbor. The square-window family instead clamps to the
// nearest edge pixel. The two policies produce different results and are
// deliberately kept in separate functions.
//
// # Coordinates
//
// A kernel cell (kx, ky) applied at pixel (x, y) samples the image at
// (x + kx - c, y + ky - c), where c = (dimension-1)/2 is the kernel center.
//
// # Preconditions
//
// Raster.At, Kernel.Get and Kernel.Set panic on out-of-range coordinates.
// Callers handling user input should validate with Raster.Contains or
// Kernel.Contains first.
//
// # Concurrency
//
// Each output pixel depends only on the immutable input, so an Engine shards
// rows across goroutines and joins before returning. Results do not depend on
// the worker count.
package morph
