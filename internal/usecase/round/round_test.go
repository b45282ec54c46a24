package usecase_round

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/humanbelnik/jukebox/internal/model"
	archive_mocks "github.com/humanbelnik/jukebox/internal/usecase/round/mocks/round/archive"
	catalog_mocks "github.com/humanbelnik/jukebox/internal/usecase/round/mocks/round/catalog"
	notifier_mocks "github.com/humanbelnik/jukebox/internal/usecase/round/mocks/round/notifier"
	repo_mocks "github.com/humanbelnik/jukebox/internal/usecase/round/mocks/round/repository"
	votes_mocks "github.com/humanbelnik/jukebox/internal/usecase/round/mocks/round/votes"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type UsecaseRoundUnitSuite struct {
	suite.Suite
}

type resources struct {
	usecase  *Usecase
	rounds   *repo_mocks.RoundRepository
	votes    *votes_mocks.VoteRepository
	catalog  *catalog_mocks.Catalog
	notifier *notifier_mocks.Notifier
	now      time.Time
	ctx      context.Context
}

func initResources(t provider.T) *resources {
	r := &resources{
		rounds:   repo_mocks.NewRoundRepository(t),
		votes:    votes_mocks.NewVoteRepository(t),
		catalog:  catalog_mocks.NewCatalog(t),
		notifier: notifier_mocks.NewNotifier(t),
		now:      time.Date(2026, 5, 1, 20, 0, 0, 0, time.UTC),
		ctx:      context.Background(),
	}
	r.usecase = New(r.rounds, r.votes, r.catalog, r.notifier,
		WithClock(func() time.Time { return r.now }),
		WithIDGenerator(func() model.RoundID { return "round-new" }),
		WithMaxAttempts(3),
	)
	return r
}

func openRound(id model.RoundID) model.Round {
	start := time.Date(2026, 5, 1, 19, 59, 0, 0, time.UTC)
	return model.Round{
		ID:        id,
		Status:    model.StatusOpen,
		Category:  "waltz",
		StartedAt: start,
		EndsAt:    start.Add(time.Minute),
		Vetoed:    model.VetoSet{},
		Version:   1,
	}
}

func catalog() []model.Option {
	return []model.Option{
		{ID: "a", Title: "A", Category: "waltz", Order: 1, Enabled: true},
		{ID: "b", Title: "B", Category: "waltz", Order: 2, Enabled: true},
		{ID: "c", Title: "C", Category: "waltz", Order: 3, Enabled: true},
	}
}

func votesFor(roundID model.RoundID, options ...string) []model.Vote {
	votes := make([]model.Vote, 0, len(options))
	for i, o := range options {
		votes = append(votes, model.Vote{RoundID: roundID, ParticipantID: string(rune('p' + i)), OptionID: o})
	}
	return votes
}

func anyEvent(t model.EventType) any {
	return mock.MatchedBy(func(e model.Event) bool { return e.Type == t })
}

func (s *UsecaseRoundUnitSuite) TestStartValidation(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		category      string
		duration      time.Duration
		setupMocks    func(r *resources)
		expectedError error
	}{
		{
			name:          "Should reject empty category",
			category:      " ",
			duration:      time.Minute,
			setupMocks:    func(r *resources) {},
			expectedError: model.ErrNoCategorySelected,
		},
		{
			name:          "Should reject zero duration",
			category:      "waltz",
			duration:      0,
			setupMocks:    func(r *resources) {},
			expectedError: model.ErrInvalidDuration,
		},
		{
			name:          "Should reject negative duration",
			category:      "waltz",
			duration:      -time.Second,
			setupMocks:    func(r *resources) {},
			expectedError: model.ErrInvalidDuration,
		},
		{
			name:     "Should reject category missing from catalog",
			category: "polka",
			duration: time.Minute,
			setupMocks: func(r *resources) {
				r.catalog.On("HasCategory", r.ctx, "polka").Return(false, nil).Once()
			},
			expectedError: model.ErrNoCategorySelected,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			tc.setupMocks(r)

			_, err := r.usecase.Start(r.ctx, tc.category, tc.duration)

			assert.ErrorIs(t, err, tc.expectedError)
		})
	}
}

func (s *UsecaseRoundUnitSuite) TestStart(t provider.T) {
	t.Run("Should open a round when none is open", func(t provider.T) {
		r := initResources(t)
		r.catalog.On("HasCategory", r.ctx, "waltz").Return(true, nil).Once()
		r.rounds.On("LoadOpenRound", r.ctx).Return(model.Round{}, model.ErrNotFound).Once()
		r.rounds.On("CreateRound", r.ctx, mock.AnythingOfType("model.Round")).Return(nil).Once()
		r.rounds.On("PublishCurrent", r.ctx, mock.AnythingOfType("model.Round")).Return(nil).Once()
		r.notifier.On("Notify", r.ctx, anyEvent(model.EventRoundStarted)).Return(nil).Once()

		round, err := r.usecase.Start(r.ctx, "waltz", 90*time.Second)

		require.NoError(t, err)
		assert.Equal(t, "round-new", round.ID)
		assert.Equal(t, model.StatusOpen, round.Status)
		assert.Equal(t, r.now, round.StartedAt)
		assert.Equal(t, r.now.Add(90*time.Second), round.EndsAt)
		assert.Empty(t, round.Vetoed)
	})

	t.Run("Should close the open round before opening the next", func(t provider.T) {
		r := initResources(t)
		prev := openRound("round-old")
		closed := prev
		closed.Status = model.StatusClosed
		closed.WinnerOptionID = ptr("a")

		r.catalog.On("HasCategory", r.ctx, "waltz").Return(true, nil).Once()
		r.rounds.On("LoadOpenRound", r.ctx).Return(prev, nil).Once()
		r.rounds.On("LoadRound", r.ctx, "round-old").Return(prev, nil).Once()
		r.votes.On("ListVotes", r.ctx, "round-old").Return(votesFor("round-old", "a"), nil).Once()
		r.catalog.On("Options", r.ctx).Return(catalog(), nil).Once()
		r.rounds.On("CloseRound", r.ctx, "round-old", int64(1), mock.AnythingOfType("model.RoundResult")).Return(closed, nil).Once()
		r.rounds.On("PublishCurrent", r.ctx, closed).Return(nil).Once()
		r.notifier.On("Notify", r.ctx, anyEvent(model.EventRoundClosed)).Return(nil).Once()
		r.rounds.On("CreateRound", r.ctx, mock.AnythingOfType("model.Round")).Return(nil).Once()
		r.rounds.On("PublishCurrent", r.ctx, mock.MatchedBy(func(x model.Round) bool { return x.ID == "round-new" })).Return(nil).Once()
		r.notifier.On("Notify", r.ctx, anyEvent(model.EventRoundStarted)).Return(nil).Once()

		round, err := r.usecase.Start(r.ctx, "waltz", time.Minute)

		require.NoError(t, err)
		assert.Equal(t, "round-new", round.ID)
	})

	t.Run("Should retry when a concurrent start opened a round", func(t provider.T) {
		r := initResources(t)
		r.catalog.On("HasCategory", r.ctx, "waltz").Return(true, nil).Once()
		r.rounds.On("LoadOpenRound", r.ctx).Return(model.Round{}, model.ErrNotFound).Times(3)
		r.rounds.On("CreateRound", r.ctx, mock.AnythingOfType("model.Round")).Return(model.ErrVersionConflict).Times(3)

		_, err := r.usecase.Start(r.ctx, "waltz", time.Minute)

		assert.ErrorIs(t, err, ErrContended)
	})

	t.Run("Should surface store failure", func(t provider.T) {
		r := initResources(t)
		r.catalog.On("HasCategory", r.ctx, "waltz").Return(true, nil).Once()
		r.rounds.On("LoadOpenRound", r.ctx).Return(model.Round{}, errors.New("timeout")).Once()

		_, err := r.usecase.Start(r.ctx, "waltz", time.Minute)

		assert.ErrorIs(t, err, model.ErrStoreUnavailable)
	})
}

func (s *UsecaseRoundUnitSuite) TestClose(t provider.T) {
	t.Run("Should tally votes and skip vetoed leader", func(t provider.T) {
		r := initResources(t)
		cur := openRound("round-1")
		cur.Vetoed = model.NewVetoSet("a")

		var written model.RoundResult
		r.rounds.On("LoadCurrent", r.ctx).Return(cur, nil).Once()
		r.rounds.On("LoadRound", r.ctx, "round-1").Return(cur, nil).Once()
		r.votes.On("ListVotes", r.ctx, "round-1").Return(votesFor("round-1", "a", "a", "a", "b", "b", "c"), nil).Once()
		r.catalog.On("Options", r.ctx).Return(catalog(), nil).Once()
		r.rounds.On("CloseRound", r.ctx, "round-1", int64(1), mock.AnythingOfType("model.RoundResult")).
			Run(func(args mock.Arguments) { written = args.Get(3).(model.RoundResult) }).
			Return(func(_ context.Context, id model.RoundID, _ int64, res model.RoundResult) (model.Round, error) {
				closed := cur
				closed.Status = model.StatusClosed
				closed.Totals = res.Totals
				closed.TotalVotes = res.TotalVotes
				closed.WinnerOptionID = res.WinnerOptionID
				return closed, nil
			}).Once()
		r.rounds.On("PublishCurrent", r.ctx, mock.AnythingOfType("model.Round")).Return(nil).Once()
		r.notifier.On("Notify", r.ctx, anyEvent(model.EventRoundClosed)).Return(nil).Once()

		closed, err := r.usecase.Close(r.ctx)

		require.NoError(t, err)
		assert.Equal(t, model.StatusClosed, closed.Status)
		assert.Equal(t, model.Tally{"a": 3, "b": 2, "c": 1}, written.Totals)
		assert.Equal(t, 6, written.TotalVotes)
		assert.Equal(t, 6, written.Votes)
		require.NotNil(t, written.WinnerOptionID)
		assert.Equal(t, "b", *written.WinnerOptionID)
		assert.Equal(t, r.now, written.ClosedAt)
	})

	t.Run("Should close without winner when nobody voted", func(t provider.T) {
		r := initResources(t)
		cur := openRound("round-1")
		closed := cur
		closed.Status = model.StatusClosed

		r.rounds.On("LoadRound", r.ctx, "round-1").Return(cur, nil).Once()
		r.votes.On("ListVotes", r.ctx, "round-1").Return([]model.Vote{}, nil).Once()
		r.catalog.On("Options", r.ctx).Return(catalog(), nil).Once()
		r.rounds.On("CloseRound", r.ctx, "round-1", int64(1), mock.MatchedBy(func(res model.RoundResult) bool {
			return res.WinnerOptionID == nil && res.TotalVotes == 0
		})).Return(closed, nil).Once()
		r.rounds.On("PublishCurrent", r.ctx, closed).Return(nil).Once()
		r.notifier.On("Notify", r.ctx, anyEvent(model.EventRoundClosed)).Return(nil).Once()

		got, err := r.usecase.CloseRound(r.ctx, "round-1")

		require.NoError(t, err)
		assert.Nil(t, got.WinnerOptionID)
	})

	t.Run("Should treat closing a closed round as a no-op", func(t provider.T) {
		r := initResources(t)
		closed := openRound("round-1")
		closed.Status = model.StatusClosed
		closed.WinnerOptionID = ptr("a")

		r.rounds.On("LoadRound", r.ctx, "round-1").Return(closed, nil).Once()
		r.rounds.On("PublishCurrent", r.ctx, closed).Return(nil).Once()

		got, err := r.usecase.CloseRound(r.ctx, "round-1")

		require.NoError(t, err)
		assert.Equal(t, closed, got)
	})

	t.Run("Should reload after a veto raced the close", func(t provider.T) {
		r := initResources(t)
		v1 := openRound("round-1")
		v2 := v1
		v2.Version = 2
		v2.Vetoed = model.NewVetoSet("a")
		closed := v2
		closed.Status = model.StatusClosed
		closed.WinnerOptionID = ptr("b")

		r.rounds.On("LoadRound", r.ctx, "round-1").Return(v1, nil).Once()
		r.rounds.On("LoadRound", r.ctx, "round-1").Return(v2, nil).Once()
		r.votes.On("ListVotes", r.ctx, "round-1").Return(votesFor("round-1", "a", "a", "b"), nil).Twice()
		r.catalog.On("Options", r.ctx).Return(catalog(), nil).Twice()
		r.rounds.On("CloseRound", r.ctx, "round-1", int64(1), mock.AnythingOfType("model.RoundResult")).
			Return(model.Round{}, model.ErrVersionConflict).Once()
		r.rounds.On("CloseRound", r.ctx, "round-1", int64(2), mock.MatchedBy(func(res model.RoundResult) bool {
			return res.WinnerOptionID != nil && *res.WinnerOptionID == "b"
		})).Return(closed, nil).Once()
		r.rounds.On("PublishCurrent", r.ctx, closed).Return(nil).Once()
		r.notifier.On("Notify", r.ctx, anyEvent(model.EventRoundClosed)).Return(nil).Once()

		got, err := r.usecase.CloseRound(r.ctx, "round-1")

		require.NoError(t, err)
		assert.Equal(t, "b", *got.WinnerOptionID)
	})

	t.Run("Should return the round closed by a concurrent close", func(t provider.T) {
		r := initResources(t)
		cur := openRound("round-1")
		closed := cur
		closed.Status = model.StatusClosed
		closed.WinnerOptionID = ptr("a")

		r.rounds.On("LoadRound", r.ctx, "round-1").Return(cur, nil).Once()
		r.votes.On("ListVotes", r.ctx, "round-1").Return(votesFor("round-1", "a"), nil).Once()
		r.catalog.On("Options", r.ctx).Return(catalog(), nil).Once()
		r.rounds.On("CloseRound", r.ctx, "round-1", int64(1), mock.AnythingOfType("model.RoundResult")).
			Return(model.Round{}, model.ErrAlreadyClosed).Once()
		r.rounds.On("LoadRound", r.ctx, "round-1").Return(closed, nil).Once()
		r.rounds.On("PublishCurrent", r.ctx, closed).Return(nil).Once()

		got, err := r.usecase.CloseRound(r.ctx, "round-1")

		require.NoError(t, err)
		assert.Equal(t, closed, got)
	})

	t.Run("Should recount when a vote landed after the count", func(t provider.T) {
		r := initResources(t)
		cur := openRound("round-1")
		closed := cur
		closed.Status = model.StatusClosed
		closed.WinnerOptionID = ptr("b")

		r.rounds.On("LoadRound", r.ctx, "round-1").Return(cur, nil).Twice()
		r.votes.On("ListVotes", r.ctx, "round-1").Return(votesFor("round-1", "a"), nil).Once()
		r.votes.On("ListVotes", r.ctx, "round-1").Return(votesFor("round-1", "a", "b", "b"), nil).Once()
		r.catalog.On("Options", r.ctx).Return(catalog(), nil).Twice()
		r.rounds.On("CloseRound", r.ctx, "round-1", int64(1), mock.MatchedBy(func(res model.RoundResult) bool {
			return res.Votes == 1
		})).Return(model.Round{}, model.ErrVersionConflict).Once()
		r.rounds.On("CloseRound", r.ctx, "round-1", int64(1), mock.MatchedBy(func(res model.RoundResult) bool {
			return res.Votes == 3 && res.TotalVotes == 3 && *res.WinnerOptionID == "b"
		})).Return(closed, nil).Once()
		r.rounds.On("PublishCurrent", r.ctx, closed).Return(nil).Once()
		r.notifier.On("Notify", r.ctx, anyEvent(model.EventRoundClosed)).Return(nil).Once()

		got, err := r.usecase.CloseRound(r.ctx, "round-1")

		require.NoError(t, err)
		assert.Equal(t, "b", *got.WinnerOptionID)
	})

	t.Run("Should close the open round behind a stale pointer", func(t provider.T) {
		r := initResources(t)
		prev := openRound("round-0")
		prev.Status = model.StatusClosed
		stranded := openRound("round-1")
		closed := stranded
		closed.Status = model.StatusClosed

		r.rounds.On("LoadCurrent", r.ctx).Return(prev, nil).Once()
		r.rounds.On("LoadOpenRound", r.ctx).Return(stranded, nil).Once()
		r.rounds.On("LoadRound", r.ctx, "round-1").Return(stranded, nil).Once()
		r.votes.On("ListVotes", r.ctx, "round-1").Return([]model.Vote{}, nil).Once()
		r.catalog.On("Options", r.ctx).Return(catalog(), nil).Once()
		r.rounds.On("CloseRound", r.ctx, "round-1", int64(1), mock.AnythingOfType("model.RoundResult")).Return(closed, nil).Once()
		r.rounds.On("PublishCurrent", r.ctx, closed).Return(nil).Once()
		r.notifier.On("Notify", r.ctx, anyEvent(model.EventRoundClosed)).Return(nil).Once()

		got, err := r.usecase.Close(r.ctx)

		require.NoError(t, err)
		assert.Equal(t, "round-1", got.ID)
		assert.True(t, got.IsClosed())
	})

	t.Run("Should republish a closed current round when nothing is open", func(t provider.T) {
		r := initResources(t)
		prev := openRound("round-0")
		prev.Status = model.StatusClosed

		r.rounds.On("LoadCurrent", r.ctx).Return(prev, nil).Once()
		r.rounds.On("LoadOpenRound", r.ctx).Return(model.Round{}, model.ErrNotFound).Once()
		r.rounds.On("LoadRound", r.ctx, "round-0").Return(prev, nil).Once()
		r.rounds.On("PublishCurrent", r.ctx, prev).Return(nil).Once()

		got, err := r.usecase.Close(r.ctx)

		require.NoError(t, err)
		assert.Equal(t, prev, got)
	})

	t.Run("Should report missing current round", func(t provider.T) {
		r := initResources(t)
		r.rounds.On("LoadCurrent", r.ctx).Return(model.Round{}, model.ErrNotFound).Once()
		r.rounds.On("LoadOpenRound", r.ctx).Return(model.Round{}, model.ErrNotFound).Once()

		_, err := r.usecase.Close(r.ctx)

		assert.ErrorIs(t, err, model.ErrRoundNotOpen)
	})
}

func (s *UsecaseRoundUnitSuite) TestToggleVeto(t provider.T) {
	t.Run("Should add option to veto set", func(t provider.T) {
		r := initResources(t)
		cur := openRound("round-1")
		updated := cur
		updated.Vetoed = model.NewVetoSet("b")
		updated.Version = 2

		r.rounds.On("LoadCurrent", r.ctx).Return(cur, nil).Once()
		r.rounds.On("LoadRound", r.ctx, "round-1").Return(cur, nil).Once()
		r.rounds.On("UpdateVetoes", r.ctx, "round-1", int64(1), model.VetoSet{"b"}).Return(updated, nil).Once()
		r.rounds.On("PublishCurrent", r.ctx, updated).Return(nil).Once()
		r.notifier.On("Notify", r.ctx, anyEvent(model.EventVetoToggled)).Return(nil).Once()

		got, err := r.usecase.ToggleVeto(r.ctx, "b")

		require.NoError(t, err)
		assert.True(t, got.Vetoed.Has("b"))
	})

	t.Run("Should remove option already vetoed", func(t provider.T) {
		r := initResources(t)
		cur := openRound("round-1")
		cur.Vetoed = model.NewVetoSet("a", "b")
		updated := cur
		updated.Vetoed = model.NewVetoSet("a")
		updated.Version = 2

		r.rounds.On("LoadRound", r.ctx, "round-1").Return(cur, nil).Once()
		r.rounds.On("UpdateVetoes", r.ctx, "round-1", int64(1), model.VetoSet{"a"}).Return(updated, nil).Once()
		r.rounds.On("PublishCurrent", r.ctx, updated).Return(nil).Once()
		r.notifier.On("Notify", r.ctx, anyEvent(model.EventVetoToggled)).Return(nil).Once()

		got, err := r.usecase.ToggleRoundVeto(r.ctx, "round-1", "b")

		require.NoError(t, err)
		assert.False(t, got.Vetoed.Has("b"))
	})

	t.Run("Should reject veto on closed round", func(t provider.T) {
		r := initResources(t)
		closed := openRound("round-1")
		closed.Status = model.StatusClosed
		r.rounds.On("LoadRound", r.ctx, "round-1").Return(closed, nil).Once()

		_, err := r.usecase.ToggleRoundVeto(r.ctx, "round-1", "b")

		assert.ErrorIs(t, err, model.ErrRoundNotOpen)
	})

	t.Run("Should reject veto when close lands first", func(t provider.T) {
		r := initResources(t)
		cur := openRound("round-1")
		r.rounds.On("LoadRound", r.ctx, "round-1").Return(cur, nil).Once()
		r.rounds.On("UpdateVetoes", r.ctx, "round-1", int64(1), model.VetoSet{"b"}).Return(model.Round{}, model.ErrAlreadyClosed).Once()

		_, err := r.usecase.ToggleRoundVeto(r.ctx, "round-1", "b")

		assert.ErrorIs(t, err, model.ErrRoundNotOpen)
	})
}

func (s *UsecaseRoundUnitSuite) TestResults(t provider.T) {
	t.Run("Should seal results of open round", func(t provider.T) {
		r := initResources(t)
		r.rounds.On("LoadRound", r.ctx, "round-1").Return(openRound("round-1"), nil).Once()

		_, rows, err := r.usecase.Results(r.ctx, "round-1")

		assert.ErrorIs(t, err, model.ErrResultsSealed)
		assert.Nil(t, rows)
	})

	t.Run("Should rank closed round with vetoed last", func(t provider.T) {
		r := initResources(t)
		closed := openRound("round-1")
		closed.Status = model.StatusClosed
		closed.Vetoed = model.NewVetoSet("a")
		closed.Totals = model.Tally{"a": 3, "b": 1}
		closed.TotalVotes = 4
		closed.WinnerOptionID = ptr("b")

		r.rounds.On("LoadRound", r.ctx, "round-1").Return(closed, nil).Once()
		r.catalog.On("Options", r.ctx).Return(catalog(), nil).Once()

		_, rows, err := r.usecase.Results(r.ctx, "round-1")

		require.NoError(t, err)
		require.NotEmpty(t, rows)
		assert.Equal(t, "b", rows[0].OptionID)
		assert.True(t, rows[0].Winner)
		assert.Equal(t, "a", rows[len(rows)-1].OptionID)
		assert.True(t, rows[len(rows)-1].Vetoed)
	})
}

func (s *UsecaseRoundUnitSuite) TestLiveTally(t provider.T) {
	t.Run("Should count votes of open round", func(t provider.T) {
		r := initResources(t)
		r.rounds.On("LoadCurrent", r.ctx).Return(openRound("round-1"), nil).Once()
		r.votes.On("ListVotes", r.ctx, "round-1").Return(votesFor("round-1", "a", "b", "a"), nil).Once()

		_, totals, err := r.usecase.LiveTally(r.ctx)

		require.NoError(t, err)
		assert.Equal(t, model.Tally{"a": 2, "b": 1}, totals)
	})
}

func (s *UsecaseRoundUnitSuite) TestResetEvent(t provider.T) {
	t.Run("Should purge rounds and votes", func(t provider.T) {
		r := initResources(t)
		r.votes.On("DeleteVotes", r.ctx).Return(nil).Once()
		r.rounds.On("DeleteRounds", r.ctx).Return(nil).Once()
		r.catalog.On("ResetHasWon", r.ctx).Return(nil).Once()
		r.notifier.On("Notify", r.ctx, anyEvent(model.EventReset)).Return(nil).Once()

		assert.NoError(t, r.usecase.ResetEvent(r.ctx))
	})

	t.Run("Should stop on store failure", func(t provider.T) {
		r := initResources(t)
		r.votes.On("DeleteVotes", r.ctx).Return(errors.New("timeout")).Once()

		assert.ErrorIs(t, r.usecase.ResetEvent(r.ctx), model.ErrStoreUnavailable)
	})
}

func ptr(s string) *string {
	return &s
}

func (s *UsecaseRoundUnitSuite) TestArchive(t provider.T) {
	t.Parallel()

	closeWith := func(r *resources, archive *archive_mocks.Archive) {
		cur := openRound("round-1")
		winner := "a"
		closed := cur
		closed.Status = model.StatusClosed
		closed.Totals = model.Tally{"a": 2}
		closed.TotalVotes = 2
		closed.WinnerOptionID = &winner

		r.usecase = New(r.rounds, r.votes, r.catalog, r.notifier,
			WithClock(func() time.Time { return r.now }),
			WithArchive(archive),
		)
		r.rounds.On("LoadRound", r.ctx, "round-1").Return(cur, nil).Once()
		r.votes.On("ListVotes", r.ctx, "round-1").Return(votesFor("round-1", "a", "a"), nil).Once()
		r.catalog.On("Options", r.ctx).Return(catalog(), nil).Once()
		r.rounds.On("CloseRound", r.ctx, "round-1", int64(1), mock.AnythingOfType("model.RoundResult")).Return(closed, nil).Once()
		r.rounds.On("PublishCurrent", r.ctx, closed).Return(nil).Once()
		r.notifier.On("Notify", r.ctx, anyEvent(model.EventRoundClosed)).Return(nil).Once()
	}

	t.Run("Should archive ranked result of a closed round", func(t provider.T) {
		r := initResources(t)
		archive := archive_mocks.NewArchive(t)
		closeWith(r, archive)
		archive.On("SaveResult", r.ctx, mock.MatchedBy(func(rd model.Round) bool { return rd.IsClosed() }),
			mock.MatchedBy(func(rows []model.ResultRow) bool {
				return len(rows) == 3 && rows[0].OptionID == "a" && rows[0].Winner
			})).Return(nil).Once()

		_, err := r.usecase.CloseRound(r.ctx, "round-1")

		assert.NoError(t, err)
	})

	t.Run("Should close even if archive fails", func(t provider.T) {
		r := initResources(t)
		archive := archive_mocks.NewArchive(t)
		closeWith(r, archive)
		archive.On("SaveResult", r.ctx, mock.Anything, mock.Anything).Return(errors.New("bucket gone")).Once()

		closed, err := r.usecase.CloseRound(r.ctx, "round-1")

		assert.NoError(t, err)
		assert.True(t, closed.IsClosed())
	})
}

func TestUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseRoundUnitSuite))
}
