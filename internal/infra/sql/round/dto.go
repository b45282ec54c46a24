package infra_sql_round

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/humanbelnik/jukebox/internal/model"
)

type roundDTO struct {
	ID             string  `db:"id"`
	Status         string  `db:"status"`
	Category       string  `db:"category"`
	StartedAt      int64   `db:"started_at"`
	EndsAt         int64   `db:"ends_at"`
	Vetoed         string  `db:"vetoed"`
	Totals         string  `db:"totals"`
	TotalVotes     int     `db:"total_votes"`
	WinnerOptionID *string `db:"winner_option_id"`
	Version        int64   `db:"version"`
	ClosedAt       *int64  `db:"closed_at"`
}

func toDTO(r model.Round) (roundDTO, error) {
	vetoed, err := json.Marshal(nonNilVetoes(r.Vetoed))
	if err != nil {
		return roundDTO{}, fmt.Errorf("encode vetoes: %w", err)
	}
	totals, err := json.Marshal(nonNilTally(r.Totals))
	if err != nil {
		return roundDTO{}, fmt.Errorf("encode totals: %w", err)
	}

	dto := roundDTO{
		ID:             r.ID,
		Status:         string(r.Status),
		Category:       r.Category,
		StartedAt:      r.StartedAt.UnixMilli(),
		EndsAt:         r.EndsAt.UnixMilli(),
		Vetoed:         string(vetoed),
		Totals:         string(totals),
		TotalVotes:     r.TotalVotes,
		WinnerOptionID: r.WinnerOptionID,
		Version:        r.Version,
	}
	if r.ClosedAt != nil {
		ms := r.ClosedAt.UnixMilli()
		dto.ClosedAt = &ms
	}
	return dto, nil
}

func (d roundDTO) toModel() (model.Round, error) {
	var vetoed []string
	if err := json.Unmarshal([]byte(d.Vetoed), &vetoed); err != nil {
		return model.Round{}, fmt.Errorf("decode vetoes of %s: %w", d.ID, err)
	}
	totals := model.Tally{}
	if err := json.Unmarshal([]byte(d.Totals), &totals); err != nil {
		return model.Round{}, fmt.Errorf("decode totals of %s: %w", d.ID, err)
	}

	r := model.Round{
		ID:             d.ID,
		Status:         model.RoundStatus(d.Status),
		Category:       d.Category,
		StartedAt:      time.UnixMilli(d.StartedAt).UTC(),
		EndsAt:         time.UnixMilli(d.EndsAt).UTC(),
		Vetoed:         model.NewVetoSet(vetoed...),
		Totals:         totals,
		TotalVotes:     d.TotalVotes,
		WinnerOptionID: d.WinnerOptionID,
		Version:        d.Version,
	}
	if d.ClosedAt != nil {
		at := time.UnixMilli(*d.ClosedAt).UTC()
		r.ClosedAt = &at
	}
	return r, nil
}

func nonNilVetoes(s model.VetoSet) model.VetoSet {
	if s == nil {
		return model.VetoSet{}
	}
	return s
}

func nonNilTally(t model.Tally) model.Tally {
	if t == nil {
		return model.Tally{}
	}
	return t
}
