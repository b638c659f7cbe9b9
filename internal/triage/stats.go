package triage

import "sort"

// Stats accumulates the outcome of one or more batches.
type Stats struct {
	// Total counts images that were seen.
	Total int
	// Processed counts images routed into a category folder.
	Processed int
	// Categories maps each normalized key to the number of images routed to it.
	Categories map[string]int
}

// NewStats returns empty statistics.
func NewStats() *Stats {
	return &Stats{Categories: make(map[string]int)}
}

// recordSeen counts one image.
func (s *Stats) recordSeen() {
	s.Total++
}

// recordRouted counts one image successfully routed to category.
func (s *Stats) recordRouted(category string) {
	s.Processed++
	s.Categories[category]++
}

// CategoryCount returns the number of distinct categories.
func (s *Stats) CategoryCount() int {
	return len(s.Categories)
}

// CategoryNames returns the distinct categories in sorted order.
func (s *Stats) CategoryNames() []string {
	names := make([]string, 0, len(s.Categories))
	for name := range s.Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Merge adds other into s: totals are summed and categories are unioned.
// A nil other is ignored.
func (s *Stats) Merge(other *Stats) {
	if other == nil {
		return
	}
	if s.Categories == nil {
		s.Categories = make(map[string]int)
	}

	s.Total += other.Total
	s.Processed += other.Processed
	for name, n := range other.Categories {
		s.Categories[name] += n
	}
}
