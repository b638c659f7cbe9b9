package triage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/ironsheep/title-triage/internal/imaging"
	"github.com/ironsheep/title-triage/internal/logger"
	"github.com/ironsheep/title-triage/internal/ocr"
)

// LoadFunc reads and decodes one image file.
type LoadFunc func(path string) (*imaging.Record, error)

// Batch drives the images of an input folder through region extraction,
// recognition, key selection and routing, one image at a time.
type Batch struct {
	recognizer ocr.Recognizer
	root       string
	load       LoadFunc
	log        logger.Logger
}

// Option customizes a Batch.
type Option func(*Batch)

// WithLogger sets the logger used for progress and per-image outcomes.
func WithLogger(log logger.Logger) Option {
	return func(b *Batch) {
		b.log = log
	}
}

// WithLoader replaces the image loader. The default is imaging.Load.
func WithLoader(load LoadFunc) Option {
	return func(b *Batch) {
		b.load = load
	}
}

// NewBatch creates a Batch that routes into destinationRoot using recognizer.
// The recognizer is shared by every Run and is not closed by the Batch.
func NewBatch(recognizer ocr.Recognizer, destinationRoot string, opts ...Option) *Batch {
	b := &Batch{
		recognizer: recognizer,
		root:       destinationRoot,
		load:       imaging.Load,
		log:        logger.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run triages every supported image directly inside inputFolder.
//
// Cancellation of ctx is checked once before each image, never while an image
// is being processed, so at most the in-flight image finishes after a stop
// request. An interrupted run returns ErrInterrupted and no statistics; the
// images routed before the stop stay where they were copied.
//
// Per-image failures are logged and routed to the error folder; they never
// abort the batch. Only a missing input folder or an unusable destination
// root fail the call.
func (b *Batch) Run(ctx context.Context, inputFolder string) (*Stats, error) {
	runLog := b.log.With(
		logger.String("run_id", uuid.NewString()),
		logger.String("folder", inputFolder),
	)

	info, err := os.Stat(inputFolder)
	if err != nil || !info.IsDir() {
		runLog.Error("Input folder does not exist")
		return nil, fmt.Errorf("%w: %s", ErrInputFolderNotFound, inputFolder)
	}

	router := NewRouter(b.root, runLog)
	if err := router.Prepare(); err != nil {
		runLog.Error("Cannot create destination folders",
			logger.String("destination", router.Root()),
			logger.Error(err),
		)
		return nil, err
	}

	files, err := listImages(inputFolder)
	if err != nil {
		runLog.Error("Cannot list input folder", logger.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrInputFolderNotFound, err)
	}
	runLog.Info("Found images", logger.Int("count", len(files)))

	start := time.Now()
	stats := NewStats()
	for _, path := range files {
		if ctx.Err() != nil {
			return nil, b.interrupted(ctx, runLog, stats, len(files))
		}

		out := b.processImage(runLog.With(logger.String("file", filepath.Base(path))), router, path)

		stats.recordSeen()
		if out.Routed() {
			stats.recordRouted(out.Category)
		}
	}

	// A stop that arrived during the last image still voids the run.
	if ctx.Err() != nil {
		return nil, b.interrupted(ctx, runLog, stats, len(files))
	}

	runLog.Info("Batch complete",
		logger.Int("total", stats.Total),
		logger.Int("processed", stats.Processed),
		logger.Int("categories", stats.CategoryCount()),
		logger.Duration("elapsed", time.Since(start)),
	)
	return stats, nil
}

func (b *Batch) interrupted(ctx context.Context, log logger.Logger, stats *Stats, listed int) error {
	log.Warn("Stop requested, ending batch early",
		logger.Int("seen", stats.Total),
		logger.Int("remaining", listed-stats.Total),
	)
	return fmt.Errorf("%w: %w", ErrInterrupted, context.Cause(ctx))
}

// processImage runs one image through every stage. The decoded pixels are
// local to this call and released when it returns.
func (b *Batch) processImage(log logger.Logger, router *Router, path string) Outcome {
	log.Info("Processing image")

	rec, err := b.load(path)
	if err != nil {
		log.Error("Image decode failed", logger.String("stage", "decode"), logger.Error(err))
		return router.RouteToError(path, ReasonCropFailed, fmt.Errorf("%w: %w", ErrDecode, err))
	}

	log.Debug("Image decoded",
		logger.String("path", rec.Path),
		logger.Int("width", rec.Width),
		logger.Int("height", rec.Height),
		logger.Int("channels", rec.Channels),
	)

	region, err := imaging.ExtractRegion(rec.Image)
	if err != nil {
		log.Error("Region extraction failed", logger.String("stage", "crop"), logger.Error(err))
		return router.RouteToError(path, ReasonCropFailed, fmt.Errorf("%w: %w", ErrExtraction, err))
	}

	spans, err := b.recognizer.Recognize(region)
	if err != nil {
		log.Error("Text recognition failed", logger.String("stage", "recognize"), logger.Error(err))
		spans = nil
	}

	key, ok := SelectKey(spans, region.Bounds().Dx())
	if !ok {
		log.Warn("No classification text found",
			logger.String("stage", "select"),
			logger.Int("spans", len(spans)),
		)
		return router.Route(path, "", false)
	}

	log.Debug("Classification key selected", logger.String("key", key))
	return router.Route(path, key, true)
}

// listImages returns the supported image files directly inside dir, sorted by
// name. Symlinks are followed; subdirectories are not descended into.
func listImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !imaging.IsSupported(entry.Name()) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, path)
	}

	return files, nil
}
