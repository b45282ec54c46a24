package http_common

import (
	"errors"
	"net/http"
	"time"

	"github.com/humanbelnik/jukebox/internal/model"
	"github.com/humanbelnik/jukebox/internal/service/countdown"
)

type ErrorResponse struct {
	Message string `json:"message" example:"round is not open"`
}

// StatusOf maps domain errors to an HTTP status and a client-facing message.
// Unknown errors are reported as internal.
func StatusOf(err error) (int, string) {
	switch {
	case errors.Is(err, model.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, "store unavailable"
	case errors.Is(err, model.ErrNoParticipant):
		return http.StatusBadRequest, model.ErrNoParticipant.Error()
	case errors.Is(err, model.ErrInvalidDuration):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, model.ErrNoCategorySelected):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, model.ErrUnknownOption):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, model.ErrRoundNotOpen):
		return http.StatusConflict, model.ErrRoundNotOpen.Error()
	case errors.Is(err, model.ErrWindowExpired):
		return http.StatusConflict, model.ErrWindowExpired.Error()
	case errors.Is(err, model.ErrResultsSealed):
		return http.StatusForbidden, model.ErrResultsSealed.Error()
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound, "not found"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

// RoundDTO is the public view of a round. Totals are only filled for a
// closed round.
type RoundDTO struct {
	ID             string         `json:"id" example:"1f0c7a52-5d3e-4a2b-8f7e-0c1d2e3f4a5b"`
	Status         string         `json:"status" example:"open" enums:"open,closed"`
	Category       string         `json:"category" example:"waltz"`
	StartedAt      time.Time      `json:"started_at"`
	EndsAt         time.Time      `json:"ends_at"`
	Vetoed         []string       `json:"vetoed"`
	Totals         map[string]int `json:"totals,omitempty"`
	TotalVotes     int            `json:"total_votes"`
	WinnerOptionID *string        `json:"winner_option_id"`
	ClosedAt       *time.Time     `json:"closed_at,omitempty"`

	Countdown countdown.Countdown `json:"countdown"`
}

func NewRoundDTO(r model.Round, now time.Time) RoundDTO {
	dto := RoundDTO{
		ID:             r.ID,
		Status:         string(r.Status),
		Category:       r.Category,
		StartedAt:      r.StartedAt,
		EndsAt:         r.EndsAt,
		Vetoed:         []string(r.Vetoed),
		WinnerOptionID: r.WinnerOptionID,
		ClosedAt:       r.ClosedAt,
		Countdown:      countdown.ForRound(&r, now),
	}
	if dto.Vetoed == nil {
		dto.Vetoed = []string{}
	}
	if r.IsClosed() {
		dto.Totals = r.Totals
		dto.TotalVotes = r.TotalVotes
	}
	return dto
}

type OptionDTO struct {
	ID       string `json:"id" example:"blue-danube"`
	Title    string `json:"title" example:"The Blue Danube"`
	Composer string `json:"composer" example:"Johann Strauss II"`
	Category string `json:"category" example:"waltz"`
	Order    int    `json:"order" example:"1"`
	Enabled  bool   `json:"enabled" example:"true"`
	HasWon   bool   `json:"has_won" example:"false"`
}

func NewOptionDTO(o model.Option) OptionDTO {
	return OptionDTO{
		ID:       o.ID,
		Title:    o.Title,
		Composer: o.Composer,
		Category: model.CategoryOf(o),
		Order:    o.Order,
		Enabled:  o.Enabled,
		HasWon:   o.HasWon,
	}
}

func NewOptionDTOs(options []model.Option) []OptionDTO {
	out := make([]OptionDTO, 0, len(options))
	for _, o := range options {
		out = append(out, NewOptionDTO(o))
	}
	return out
}
