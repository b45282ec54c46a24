package countdown

import (
	"time"

	"github.com/humanbelnik/jukebox/internal/model"
)

type Countdown struct {
	MsLeft          int64   `json:"ms_left"`
	FractionElapsed float64 `json:"fraction_elapsed"`
	Done            bool    `json:"done"`
}

// Remaining derives the countdown of a window at now. MsLeft is rounded up,
// so Done becomes true exactly when now reaches endsAt.
// A window with a non-positive duration is treated as already elapsed.
func Remaining(now, startedAt, endsAt time.Time) Countdown {
	left := endsAt.Sub(now)
	var msLeft int64
	if left > 0 {
		msLeft = int64((left + time.Millisecond - 1) / time.Millisecond)
	}

	return Countdown{
		MsLeft:          msLeft,
		FractionElapsed: fraction(now, startedAt, endsAt),
		Done:            msLeft == 0,
	}
}

// ForRound is Remaining for a round. A missing or closed round is done.
func ForRound(r *model.Round, now time.Time) Countdown {
	if r == nil || !r.IsOpen() {
		return Countdown{FractionElapsed: 1, Done: true}
	}
	return Remaining(now, r.StartedAt, r.EndsAt)
}

func fraction(now, startedAt, endsAt time.Time) float64 {
	total := endsAt.Sub(startedAt)
	if total <= 0 {
		return 1
	}

	elapsed := now.Sub(startedAt)
	switch {
	case elapsed <= 0:
		return 0
	case elapsed >= total:
		return 1
	}
	return float64(elapsed) / float64(total)
}
