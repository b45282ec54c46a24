package countdown

import (
	"testing"
	"time"

	"github.com/humanbelnik/jukebox/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestRemaining(t *testing.T) {
	start := time.UnixMilli(1_700_000_000_000)
	end := start.Add(30 * time.Second)

	tt := []struct {
		name string
		now  time.Time
		want Countdown
	}{
		{
			name: "at start",
			now:  start,
			want: Countdown{MsLeft: 30_000, FractionElapsed: 0, Done: false},
		},
		{
			name: "halfway",
			now:  start.Add(15 * time.Second),
			want: Countdown{MsLeft: 15_000, FractionElapsed: 0.5, Done: false},
		},
		{
			name: "sub-millisecond left is not done",
			now:  end.Add(-time.Microsecond),
			want: Countdown{MsLeft: 1, FractionElapsed: float64(30*time.Second-time.Microsecond) / float64(30*time.Second), Done: false},
		},
		{
			name: "at deadline",
			now:  end,
			want: Countdown{MsLeft: 0, FractionElapsed: 1, Done: true},
		},
		{
			name: "after deadline",
			now:  end.Add(time.Hour),
			want: Countdown{MsLeft: 0, FractionElapsed: 1, Done: true},
		},
		{
			name: "before start",
			now:  start.Add(-time.Second),
			want: Countdown{MsLeft: 31_000, FractionElapsed: 0, Done: false},
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			got := Remaining(tc.now, start, end)
			assert.Equal(t, tc.want.MsLeft, got.MsLeft)
			assert.Equal(t, tc.want.Done, got.Done)
			assert.InDelta(t, tc.want.FractionElapsed, got.FractionElapsed, 1e-9)
		})
	}
}

func TestRemainingZeroDuration(t *testing.T) {
	at := time.UnixMilli(1_700_000_000_000)

	got := Remaining(at.Add(-time.Second), at, at)
	assert.Equal(t, 1.0, got.FractionElapsed)

	got = Remaining(at, at, at.Add(-time.Second))
	assert.Equal(t, 1.0, got.FractionElapsed)
	assert.True(t, got.Done)
}

func TestRemainingIsMonotonic(t *testing.T) {
	start := time.UnixMilli(1_700_000_000_000)
	end := start.Add(2 * time.Second)

	prev := Remaining(start.Add(-time.Second), start, end)
	for now := start.Add(-time.Second); now.Before(end.Add(time.Second)); now = now.Add(7 * time.Millisecond) {
		cur := Remaining(now, start, end)
		assert.LessOrEqual(t, cur.MsLeft, prev.MsLeft)
		assert.GreaterOrEqual(t, cur.FractionElapsed, prev.FractionElapsed)
		if !now.Before(end) {
			assert.True(t, cur.Done)
		}
		prev = cur
	}
}

func TestForRound(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)

	assert.True(t, ForRound(nil, now).Done)

	closed := &model.Round{Status: model.StatusClosed, StartedAt: now, EndsAt: now.Add(time.Minute)}
	assert.True(t, ForRound(closed, now).Done)

	open := &model.Round{Status: model.StatusOpen, StartedAt: now, EndsAt: now.Add(time.Minute)}
	got := ForRound(open, now)
	assert.False(t, got.Done)
	assert.Equal(t, int64(60_000), got.MsLeft)
}
