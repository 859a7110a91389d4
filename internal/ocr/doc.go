// Package ocr runs Tesseract OCR over processed rasters.
//
// Binarizing an image and then opening or closing it is the classic cleanup
// step before OCR, so the natural input here is the session's current raster
// rather than a file on disk. Rasters are encoded to PNG in memory and handed
// to Tesseract through gosseract/v2; no temporary files are written.
//
// # Prerequisites
//
// Tesseract and its language data must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// # Languages
//
// The default language is English ("eng"). Other languages are selected by
// their Tesseract codes ("deu", "fra", "chi_sim", ...), and several can be
// combined with "+" as in "eng+deu".
//
// # Error Handling
//
// If word-level bounding box extraction fails, Recognize still returns the
// recognized text with an empty Regions slice.
package ocr
