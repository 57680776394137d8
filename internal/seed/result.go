// Package seed loads reference data the API expects to exist.
package seed

import "fmt"

// SeedResult tracks counts and errors from a seeding operation.
type SeedResult struct {
	PositionsAdded   int
	PositionsSkipped int
	Errors           []string
}

// Add merges another SeedResult into this one.
func (r *SeedResult) Add(other SeedResult) {
	r.PositionsAdded += other.PositionsAdded
	r.PositionsSkipped += other.PositionsSkipped
	r.Errors = append(r.Errors, other.Errors...)
}

// AddErrorf records a formatted error message.
func (r *SeedResult) AddErrorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary of the seed operation.
func (r *SeedResult) Summary() string {
	return fmt.Sprintf(
		"positions_added=%d positions_skipped=%d errors=%d",
		r.PositionsAdded, r.PositionsSkipped, len(r.Errors),
	)
}
