// Package aggregate combines per-source extension lists into a union set and
// a frequency table.
package aggregate

import (
	"maps"
	"slices"
)

// Summary is the cross-source view of a scan.
type Summary struct {
	Union     []string       // Every extension seen, sorted ascending
	Frequency map[string]int // Extension -> number of sources declaring it
}

// Row is one line of the frequency table.
type Row struct {
	Extension string
	Count     int
}

// Aggregate builds a Summary from one extension list per source.
//
// A source counts once per extension no matter how often the extension
// appears in its list. The result does not depend on the order of lists.
func Aggregate(lists [][]string) Summary {
	freq := make(map[string]int)
	for _, exts := range lists {
		seen := make(map[string]bool, len(exts))
		for _, ext := range exts {
			if seen[ext] {
				continue
			}
			seen[ext] = true
			freq[ext]++
		}
	}
	return Summary{
		Union:     slices.Sorted(maps.Keys(freq)),
		Frequency: freq,
	}
}

// Rows returns the frequency table sorted by extension name.
func (s Summary) Rows() []Row {
	rows := make([]Row, 0, len(s.Frequency))
	for _, ext := range slices.Sorted(maps.Keys(s.Frequency)) {
		rows = append(rows, Row{Extension: ext, Count: s.Frequency[ext]})
	}
	return rows
}
