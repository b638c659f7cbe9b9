package triage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ironsheep/title-triage/internal/logger"
)

// ErrorFolder is the folder under the destination root that receives every
// image that could not be classified or routed.
const ErrorFolder = "error"

// keyReplacer rewrites path separators so a key is always a single folder name.
var keyReplacer = strings.NewReplacer("/", "_", `\`, "_")

// NormalizeKey makes a classification key safe to use as a folder name by
// replacing every path separator with an underscore.
func NormalizeKey(key string) string {
	return keyReplacer.Replace(key)
}

// Outcome describes where one image ended up.
type Outcome struct {
	// Category is the normalized key the image was filed under. Empty when the
	// image went to the error folder.
	Category string

	// Reason is set when the image was sent to the error folder.
	Reason string

	// Destination is the path of the copy, or empty if no copy was made.
	Destination string

	// Err holds the failure that led to the error folder, if any. It wraps
	// ErrFallbackRouting when the error-folder copy also failed.
	Err error
}

// Routed reports whether the image was filed under a category.
func (o Outcome) Routed() bool {
	return o.Reason == ""
}

// Router copies source images into category folders under a destination root.
//
// A Router is not safe for concurrent use: creating a folder and copying into
// it is not atomic with respect to other Routers on the same tree.
type Router struct {
	root     string
	errorDir string
	log      logger.Logger
}

// NewRouter creates a Router writing under root.
func NewRouter(root string, log logger.Logger) *Router {
	if log == nil {
		log = logger.NewNop()
	}
	return &Router{
		root:     root,
		errorDir: filepath.Join(root, ErrorFolder),
		log:      log,
	}
}

// Root returns the destination root.
func (r *Router) Root() string {
	return r.root
}

// ErrorDir returns the error folder path.
func (r *Router) ErrorDir() string {
	return r.errorDir
}

// Prepare creates the destination root and its error folder.
func (r *Router) Prepare() error {
	if err := os.MkdirAll(r.errorDir, 0755); err != nil {
		return fmt.Errorf("%w: %w", ErrDestinationUnavailable, err)
	}
	return nil
}

// Route files src under key, or under the error folder when ok is false or the
// category copy fails. An existing file with the same name is overwritten.
// The source file is never modified.
func (r *Router) Route(src, key string, ok bool) Outcome {
	if !ok || key == "" {
		return r.RouteToError(src, ReasonClassificationFailed, nil)
	}

	category := NormalizeKey(key)

	dest, err := r.copyToCategory(src, category)
	if err != nil {
		r.log.Error("Category routing failed, copying to error folder",
			logger.String("file", filepath.Base(src)),
			logger.String("category", category),
			logger.Error(err),
		)
		return r.RouteToError(src, ReasonRoutingFailed, err)
	}

	r.log.Info("Image copied",
		logger.String("file", filepath.Base(src)),
		logger.String("category", category),
		logger.String("destination", dest),
	)
	return Outcome{Category: category, Destination: dest}
}

// RouteToError copies src into the error folder, recording reason and cause.
func (r *Router) RouteToError(src, reason string, cause error) Outcome {
	out := Outcome{Reason: reason, Err: cause}

	dest, err := r.copyInto(src, r.errorDir)
	if err != nil {
		out.Err = fmt.Errorf("%w: %w", ErrFallbackRouting, err)
		if cause != nil {
			out.Err = errors.Join(cause, out.Err)
		}
		r.log.Error("Copy to error folder failed",
			logger.String("file", filepath.Base(src)),
			logger.String("reason", reason),
			logger.Error(err),
		)
		return out
	}

	out.Destination = dest
	r.log.Info("Image copied to error folder",
		logger.String("file", filepath.Base(src)),
		logger.String("reason", reason),
		logger.String("destination", dest),
	)
	return out
}

func (r *Router) copyToCategory(src, category string) (string, error) {
	if category == "." || category == ".." {
		return "", fmt.Errorf("%w: invalid category name %q", ErrRouting, category)
	}

	dir := filepath.Join(r.root, category)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("%w: create folder: %w", ErrRouting, err)
	}

	dest, err := r.copyInto(src, dir)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRouting, err)
	}
	return dest, nil
}

// copyInto copies src into dir under its original base name.
//
// The data is written to a temporary file in dir and renamed over the
// destination, so a failed copy never leaves a truncated image behind.
func (r *Router) copyInto(src, dir string) (string, error) {
	dest := filepath.Join(dir, filepath.Base(src))

	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	tmp, err := os.CreateTemp(dir, ".triage-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("copy data: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("close temp file: %w", err)
	}

	if info, err := in.Stat(); err == nil {
		if err := os.Chmod(tmpPath, info.Mode().Perm()); err != nil {
			r.log.Debug("Cannot copy file mode", logger.String("file", filepath.Base(src)), logger.Error(err))
		}
	}

	if err := os.Rename(tmpPath, dest); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("rename into place: %w", err)
	}

	return dest, nil
}
