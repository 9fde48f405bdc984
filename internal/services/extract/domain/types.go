// Package domain holds the extract service's types and ports
package domain

import (
	"taupe/internal/core/classify"
	"taupe/internal/core/projection"
)

// Options select what a run extracts
type Options struct {
	Mode      projection.Mode
	Canonical bool
}

// Counts tallies classified rows per category
type Counts map[classify.Category]int

// Total sums all categories
func (c Counts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// Result is the outcome of one extraction run
type Result struct {
	Handle string
	Mode   projection.Mode
	Rows   []classify.Row
	Lines  []string
	Counts Counts
}
