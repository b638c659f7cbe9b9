// Package report renders the outcome of a triage run: the one-line final
// summary, an optional per-category table and an optional YAML report file.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/ironsheep/title-triage/internal/triage"
)

// Folder statuses recorded in the report.
const (
	StatusCompleted   = "completed"
	StatusInterrupted = "interrupted"
	StatusNotFound    = "not_found"
	StatusFailed      = "failed"
)

// FolderResult is the outcome of one input folder.
type FolderResult struct {
	Path   string
	Status string
	// Stats is nil unless Status is StatusCompleted.
	Stats *triage.Stats
	Err   error
}

// FinalLine formats the aggregate summary printed at the end of every run.
func FinalLine(s *triage.Stats) string {
	if s == nil {
		s = triage.NewStats()
	}
	return fmt.Sprintf("FINAL_STATISTICS: TOTAL=%d, PROCESSED=%d, CATEGORIES=%d",
		s.Total, s.Processed, s.CategoryCount())
}

// WriteTable renders a per-category breakdown of s to w.
func WriteTable(w io.Writer, s *triage.Stats) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"Category", "Images"})
	for _, name := range s.CategoryNames() {
		t.AppendRow(table.Row{name, s.Categories[name]})
	}
	t.AppendFooter(table.Row{"Unclassified", s.Total - s.Processed})

	t.Render()
}

// Document is the YAML representation of a run.
type Document struct {
	GeneratedAt   time.Time       `yaml:"generated_at"`
	OutputRoot    string          `yaml:"output_root"`
	Total         int             `yaml:"total"`
	Processed     int             `yaml:"processed"`
	CategoryCount int             `yaml:"category_count"`
	Categories    []CategoryEntry `yaml:"categories"`
	Folders       []FolderEntry   `yaml:"folders"`
}

// CategoryEntry is one category in the report.
type CategoryEntry struct {
	Name   string `yaml:"name"`
	Images int    `yaml:"images"`
}

// FolderEntry is one input folder in the report.
type FolderEntry struct {
	Path      string `yaml:"path"`
	Status    string `yaml:"status"`
	Total     int    `yaml:"total"`
	Processed int    `yaml:"processed"`
	Error     string `yaml:"error,omitempty"`
}

// Build assembles the report document for an aggregate and its folders.
func Build(outputRoot string, agg *triage.Stats, folders []FolderResult, now time.Time) Document {
	doc := Document{
		GeneratedAt:   now,
		OutputRoot:    outputRoot,
		Total:         agg.Total,
		Processed:     agg.Processed,
		CategoryCount: agg.CategoryCount(),
		Categories:    make([]CategoryEntry, 0, agg.CategoryCount()),
		Folders:       make([]FolderEntry, 0, len(folders)),
	}

	for _, name := range agg.CategoryNames() {
		doc.Categories = append(doc.Categories, CategoryEntry{Name: name, Images: agg.Categories[name]})
	}

	for _, f := range folders {
		entry := FolderEntry{Path: f.Path, Status: f.Status}
		if f.Stats != nil {
			entry.Total = f.Stats.Total
			entry.Processed = f.Stats.Processed
		}
		if f.Err != nil {
			entry.Error = f.Err.Error()
		}
		doc.Folders = append(doc.Folders, entry)
	}

	return doc
}

// WriteYAML writes doc to path, creating parent directories as needed.
func WriteYAML(path string, doc Document) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create report directory: %w", err)
		}
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
