package model

import "strings"

// Option is a candidate that can be voted for.
type Option struct {
	ID       string
	Title    string
	Composer string

	// Category is the normalized grouping, see CategoryOf.
	Category string
	// Section is the legacy grouping field kept for catalogs that predate
	// Category.
	Section string

	Order   int
	Enabled bool
	HasWon  bool
}

// CategoryOf returns the option category, falling back to the legacy section.
func CategoryOf(o Option) string {
	if c := strings.TrimSpace(o.Category); c != "" {
		return c
	}
	return strings.TrimSpace(o.Section)
}

// Normalize fills Category from the legacy field.
func (o Option) Normalize() Option {
	o.Category = CategoryOf(o)
	return o
}

// EligibleIn reports whether the option can receive votes in a round of the
// given category.
func (o Option) EligibleIn(category string) bool {
	return o.Enabled && !o.HasWon && CategoryOf(o) == category
}

// ResultRow is one line of a ranked round result.
type ResultRow struct {
	Rank     int
	OptionID string
	Title    string
	Composer string
	Count    int
	Vetoed   bool
	Winner   bool
}
