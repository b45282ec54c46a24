package model

import (
	"slices"
	"time"
)

type RoundID = string

const EmptyRoundID RoundID = ""

type RoundStatus string

const (
	StatusOpen   RoundStatus = "open"
	StatusClosed RoundStatus = "closed"
)

// Round is the canonical record of one timed, category-scoped voting window.
// The same shape is used for the current-round pointer, which mirrors the
// latest round for observers.
type Round struct {
	ID        RoundID
	Status    RoundStatus
	Category  string
	StartedAt time.Time
	EndsAt    time.Time

	Vetoed VetoSet

	// Written once, on close.
	Totals         Tally
	TotalVotes     int
	WinnerOptionID *string
	ClosedAt       *time.Time

	// Incremented on every write to the record.
	Version int64
}

func (r Round) IsOpen() bool {
	return r.Status == StatusOpen
}

func (r Round) IsClosed() bool {
	return r.Status == StatusClosed
}

// AcceptsVotesAt reports whether the round is open and its deadline has not
// passed at now.
func (r Round) AcceptsVotesAt(now time.Time) bool {
	return r.IsOpen() && now.Before(r.EndsAt)
}

func (r Round) Duration() time.Duration {
	return r.EndsAt.Sub(r.StartedAt)
}

func (r Round) HasWinner() bool {
	return r.WinnerOptionID != nil
}

// RoundResult is what closing a round writes back to its record.
type RoundResult struct {
	Totals         Tally
	TotalVotes     int
	// Votes is the number of vote records the totals were counted from. The
	// close only applies while the round still holds exactly that many.
	Votes          int
	WinnerOptionID *string
	Vetoed         VetoSet
	ClosedAt       time.Time
}

// VetoSet is a sorted, duplicate-free list of option ids.
type VetoSet []string

func NewVetoSet(ids ...string) VetoSet {
	set := make(VetoSet, 0, len(ids))
	for _, id := range ids {
		if id == "" || set.Has(id) {
			continue
		}
		set = append(set, id)
	}
	slices.Sort(set)
	return set
}

func (s VetoSet) Has(optionID string) bool {
	_, found := slices.BinarySearch(s, optionID)
	return found
}

// Toggle returns a new set with optionID added if it was absent or removed if
// it was present. The receiver is not modified.
func (s VetoSet) Toggle(optionID string) (VetoSet, bool) {
	i, found := slices.BinarySearch(s, optionID)
	next := slices.Clone(s)
	if found {
		return slices.Delete(next, i, i+1), false
	}
	return slices.Insert(next, i, optionID), true
}

// Tally maps option id to vote count. Missing ids count as zero.
type Tally map[string]int

func (t Tally) Total() int {
	total := 0
	for _, n := range t {
		total += n
	}
	return total
}

func (t Tally) Count(optionID string) int {
	return t[optionID]
}
