package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ironsheep/title-triage/internal/triage"
)

func sampleStats() *triage.Stats {
	s := triage.NewStats()
	s.Total = 5
	s.Processed = 3
	s.Categories["Settings"] = 1
	s.Categories["Inbox"] = 2
	return s
}

func TestFinalLine(t *testing.T) {
	assert.Equal(t, "FINAL_STATISTICS: TOTAL=5, PROCESSED=3, CATEGORIES=2", FinalLine(sampleStats()))
	assert.Equal(t, "FINAL_STATISTICS: TOTAL=0, PROCESSED=0, CATEGORIES=0", FinalLine(triage.NewStats()))
	assert.Equal(t, "FINAL_STATISTICS: TOTAL=0, PROCESSED=0, CATEGORIES=0", FinalLine(nil))
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	WriteTable(&buf, sampleStats())

	out := buf.String()
	assert.Contains(t, out, "Inbox")
	assert.Contains(t, out, "Settings")
	assert.Less(t, strings.Index(out, "Inbox"), strings.Index(out, "Settings"), "categories are sorted")
	assert.Contains(t, strings.ToLower(out), "unclassified")
}

func TestBuild(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	folders := []FolderResult{
		{Path: "/shots/a", Status: StatusCompleted, Stats: sampleStats()},
		{Path: "/shots/missing", Status: StatusNotFound, Err: errors.New("input folder not found")},
	}

	doc := Build("./res", sampleStats(), folders, now)

	assert.Equal(t, now, doc.GeneratedAt)
	assert.Equal(t, 5, doc.Total)
	assert.Equal(t, 3, doc.Processed)
	assert.Equal(t, 2, doc.CategoryCount)
	assert.Equal(t, []CategoryEntry{{"Inbox", 2}, {"Settings", 1}}, doc.Categories)
	require.Len(t, doc.Folders, 2)
	assert.Equal(t, 5, doc.Folders[0].Total)
	assert.Empty(t, doc.Folders[0].Error)
	assert.Equal(t, StatusNotFound, doc.Folders[1].Status)
	assert.Equal(t, "input folder not found", doc.Folders[1].Error)
}

func TestWriteYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "run.yaml")
	doc := Build("./res", sampleStats(), []FolderResult{
		{Path: "/shots/a", Status: StatusCompleted, Stats: sampleStats()},
	}, time.Now().UTC())

	require.NoError(t, WriteYAML(path, doc))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Document
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, doc.Categories, decoded.Categories)
	assert.Equal(t, doc.Folders, decoded.Folders)
	assert.Contains(t, string(data), "category_count: 2")
}
