package triage

import "errors"

// Errors reported by the triage pipeline.
var (
	// ErrInputFolderNotFound aborts a batch whose input folder is missing.
	ErrInputFolderNotFound = errors.New("input folder not found")

	// ErrDestinationUnavailable aborts a batch when the destination root or
	// its error folder cannot be created.
	ErrDestinationUnavailable = errors.New("destination folder unavailable")

	// ErrInterrupted is returned by a batch stopped before it finished.
	ErrInterrupted = errors.New("batch interrupted")

	// ErrDecode marks an image that could not be read or decoded.
	ErrDecode = errors.New("image decode failed")

	// ErrExtraction marks an image whose title region could not be cropped.
	ErrExtraction = errors.New("region extraction failed")

	// ErrRouting marks a failed category folder creation or copy.
	ErrRouting = errors.New("routing failed")

	// ErrFallbackRouting marks an image that could not be copied even into
	// the error folder.
	ErrFallbackRouting = errors.New("fallback routing failed")
)

// Reasons recorded when an image is routed to the error folder.
const (
	ReasonCropFailed           = "crop_failed"
	ReasonClassificationFailed = "classification_failed"
	ReasonRoutingFailed        = "routing_failed"
)
