// Package ocr provides text recognition for screenshot title strips.
//
// The Recognizer interface is the boundary the triage pipeline consumes: an
// image goes in, an ordered list of Span values comes out. Span order is the
// recognizer's native reading order and callers rely on it, so implementations
// must never re-sort their output.
//
// # Tesseract
//
// Tesseract wraps the Tesseract OCR engine via gosseract/v2. One client is
// created per process and reused for every image. Regions are passed to the
// engine in memory as PNG bytes and reported at text-line granularity, so a
// span's text is a full line such as "ABC/123 extra".
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
//   - Windows: Download from https://github.com/UB-Mannheim/tesseract/wiki
//
// # Model Provisioning
//
// Provision copies *.traineddata files from a local directory into the
// per-user cache directory (see DefaultCacheDir) so the engine can start
// without downloading anything. The recognizer is then pointed at that
// directory through Options.TessdataDir.
package ocr
