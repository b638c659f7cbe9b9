package ocr

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// modelExt is the file extension of Tesseract language model files.
const modelExt = ".traineddata"

// DefaultCacheDir returns the per-user directory models are provisioned into.
func DefaultCacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user cache directory: %w", err)
	}
	return filepath.Join(base, "title-triage", "tessdata"), nil
}

// Provision copies Tesseract model files from sourceDir into cacheDir.
//
// Files already present in cacheDir with the same size are left alone, so
// repeated calls are cheap. It returns the number of files copied.
//
// With an empty sourceDir nothing is copied and cacheDir is only created.
func Provision(sourceDir, cacheDir string) (int, error) {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create tessdata directory: %w", err)
	}

	if sourceDir == "" {
		return 0, nil
	}

	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		return 0, fmt.Errorf("failed to read model directory: %w", err)
	}

	copied := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), modelExt) {
			continue
		}

		srcPath := filepath.Join(sourceDir, entry.Name())
		dstPath := filepath.Join(cacheDir, entry.Name())

		srcInfo, err := entry.Info()
		if err != nil {
			return copied, fmt.Errorf("failed to stat %s: %w", entry.Name(), err)
		}

		// Skip if already exists with correct size
		if info, err := os.Stat(dstPath); err == nil && info.Size() == srcInfo.Size() {
			continue
		}

		if err := copyModel(srcPath, dstPath); err != nil {
			return copied, fmt.Errorf("failed to copy %s: %w", entry.Name(), err)
		}
		copied++
	}

	return copied, nil
}

// HasModel reports whether dir holds the model file for language.
func HasModel(dir, language string) bool {
	info, err := os.Stat(filepath.Join(dir, language+modelExt))
	return err == nil && !info.IsDir()
}

func copyModel(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}

	return out.Close()
}
