package tally

import (
	"cmp"
	"math"
	"slices"

	"github.com/humanbelnik/jukebox/internal/model"
)

// Count folds vote records into per-option totals.
// Votes without an option id are ignored.
func Count(votes []model.Vote) model.Tally {
	t := make(model.Tally, len(votes))
	for _, v := range votes {
		if v.OptionID == "" {
			continue
		}
		t[v.OptionID]++
	}
	return t
}

// Resolve returns the winning option id, or nil when no non-vetoed option
// received a vote.
//
// Equal counts are broken by catalog order and then by option id, so the
// result does not depend on map iteration order. Options missing from the
// catalog rank after every catalog option.
func Resolve(t model.Tally, vetoed model.VetoSet, catalog []model.Option) *string {
	order := orderIndex(catalog)

	var (
		winner string
		best   int
	)
	for optionID, n := range t {
		if n <= 0 || vetoed.Has(optionID) {
			continue
		}
		if n > best || (n == best && precedes(order, optionID, winner)) {
			winner, best = optionID, n
		}
	}

	if best == 0 {
		return nil
	}
	return &winner
}

// Rank builds the result list of a round: every option that received votes,
// every vetoed option and every still-eligible option of the round category.
// Vetoed rows go last, the rest by count descending.
func Rank(r model.Round, catalog []model.Option) []model.ResultRow {
	byID := make(map[string]model.Option, len(catalog))
	for _, o := range catalog {
		byID[o.ID] = o
	}

	ids := make(map[string]struct{}, len(r.Totals)+len(r.Vetoed))
	for id := range r.Totals {
		ids[id] = struct{}{}
	}
	for _, id := range r.Vetoed {
		ids[id] = struct{}{}
	}
	for _, o := range catalog {
		if !o.Enabled || model.CategoryOf(o) != r.Category {
			continue
		}
		if o.HasWon && !isWinner(r, o.ID) {
			continue
		}
		ids[o.ID] = struct{}{}
	}

	rows := make([]model.ResultRow, 0, len(ids))
	for id := range ids {
		o := byID[id]
		title := o.Title
		if title == "" {
			title = id
		}
		rows = append(rows, model.ResultRow{
			OptionID: id,
			Title:    title,
			Composer: o.Composer,
			Count:    r.Totals.Count(id),
			Vetoed:   r.Vetoed.Has(id),
			Winner:   isWinner(r, id),
		})
	}

	order := orderIndex(catalog)
	slices.SortFunc(rows, func(a, b model.ResultRow) int {
		if a.Vetoed != b.Vetoed {
			if a.Vetoed {
				return 1
			}
			return -1
		}
		if a.Count != b.Count {
			return cmp.Compare(b.Count, a.Count)
		}
		if c := cmp.Compare(orderOf(order, a.OptionID), orderOf(order, b.OptionID)); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Title, b.Title); c != 0 {
			return c
		}
		return cmp.Compare(a.OptionID, b.OptionID)
	})

	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

func isWinner(r model.Round, optionID string) bool {
	return r.WinnerOptionID != nil && *r.WinnerOptionID == optionID
}

func orderIndex(catalog []model.Option) map[string]int {
	order := make(map[string]int, len(catalog))
	for _, o := range catalog {
		order[o.ID] = o.Order
	}
	return order
}

func orderOf(order map[string]int, optionID string) int {
	if n, ok := order[optionID]; ok {
		return n
	}
	return math.MaxInt
}

func precedes(order map[string]int, a, b string) bool {
	if oa, ob := orderOf(order, a), orderOf(order, b); oa != ob {
		return oa < ob
	}
	return a < b
}
