package integrationtest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	infra_sql_init "github.com/humanbelnik/jukebox/internal/infra/sql/init"
	infra_sql_option "github.com/humanbelnik/jukebox/internal/infra/sql/option"
	infra_sql_round "github.com/humanbelnik/jukebox/internal/infra/sql/round"
	infra_sql_vote "github.com/humanbelnik/jukebox/internal/infra/sql/vote"
	"github.com/humanbelnik/jukebox/internal/model"
	usecase_catalog "github.com/humanbelnik/jukebox/internal/usecase/catalog"
	usecase_round "github.com/humanbelnik/jukebox/internal/usecase/round"
	usecase_vote "github.com/humanbelnik/jukebox/internal/usecase/vote"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type UsecaseRoundIntegrationSuite struct {
	suite.Suite
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type resources struct {
	rounds  *usecase_round.Usecase
	votes   *usecase_vote.Usecase
	catalog *usecase_catalog.Usecase
	store   *infra_sql_vote.Driver
	rstore  *infra_sql_round.Driver
	clock   *clock
	ctx     context.Context
}

func initResources(t provider.T) *resources {
	ctx := context.Background()

	db, err := infra_sql_init.Open(getConfig().Store)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, infra_sql_init.Migrate(ctx, db))

	c := &clock{now: time.Date(2026, 5, 1, 20, 0, 0, 0, time.UTC)}
	optionRepository := infra_sql_option.New(db)
	roundRepository := infra_sql_round.New(db)
	voteRepository := infra_sql_vote.New(db)

	r := &resources{
		catalog: usecase_catalog.New(optionRepository),
		store:   voteRepository,
		rstore:  roundRepository,
		clock:   c,
		ctx:     ctx,
	}
	r.rounds = usecase_round.New(roundRepository, voteRepository, r.catalog, nil, usecase_round.WithClock(c.Now))
	r.votes = usecase_vote.New(voteRepository, roundRepository, r.catalog, nil, usecase_vote.WithClock(c.Now))

	require.NoError(t, r.rounds.ResetEvent(ctx))
	require.NoError(t, r.catalog.Seed(ctx, []model.Option{
		{ID: "A", Title: "Fanfare", Category: "Brass", Order: 1, Enabled: true},
		{ID: "B", Title: "Chorale", Category: "Brass", Order: 2, Enabled: true},
		{ID: "C", Title: "Intrada", Section: "Brass", Order: 3, Enabled: true},
		{ID: "S", Title: "Adagio", Category: "Strings", Order: 1, Enabled: true},
	}))
	return r
}

func (r *resources) vote(t provider.T, device, option string) model.Admission {
	a, err := r.votes.SubmitCurrent(r.ctx, device, option)
	require.NoError(t, err)
	return a
}

// lateVotes casts one more vote right after the close has read the votes.
type lateVotes struct {
	usecase_round.VoteRepository
	once sync.Once
	cast func()
}

func (l *lateVotes) ListVotes(ctx context.Context, id model.RoundID) ([]model.Vote, error) {
	votes, err := l.VoteRepository.ListVotes(ctx, id)
	l.once.Do(l.cast)
	return votes, err
}

func (s *UsecaseRoundIntegrationSuite) TestVoteDuringCloseIsCounted(t provider.T) {
	r := initResources(t)

	_, err := r.rounds.Start(r.ctx, "Brass", 30*time.Second)
	require.NoError(t, err)
	assert.True(t, r.vote(t, "device1", "A").Accepted)

	var late model.Admission
	votes := &lateVotes{VoteRepository: r.store, cast: func() { late = r.vote(t, "device2", "B") }}
	rounds := usecase_round.New(r.rstore, votes, r.catalog, nil, usecase_round.WithClock(r.clock.Now))

	closed, err := rounds.Close(r.ctx)
	require.NoError(t, err)

	assert.True(t, late.Accepted)
	stored, err := r.store.ListVotes(r.ctx, closed.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
	assert.Equal(t, 2, closed.TotalVotes)
	assert.Equal(t, model.Tally{"A": 1, "B": 1}, closed.Totals)
	require.NotNil(t, closed.WinnerOptionID)
	assert.Equal(t, "A", *closed.WinnerOptionID)
}

func (s *UsecaseRoundIntegrationSuite) TestScenarioWinnerByCount(t provider.T) {
	r := initResources(t)

	round, err := r.rounds.Start(r.ctx, "Brass", 30*time.Second)
	require.NoError(t, err)

	assert.True(t, r.vote(t, "device1", "A").Accepted)
	assert.True(t, r.vote(t, "device2", "B").Accepted)
	assert.True(t, r.vote(t, "device3", "B").Accepted)
	retry := r.vote(t, "device2", "A")
	assert.False(t, retry.Accepted)
	assert.Equal(t, "B", retry.ChosenOptionID)

	closed, err := r.rounds.Close(r.ctx)
	require.NoError(t, err)

	assert.Equal(t, round.ID, closed.ID)
	assert.Equal(t, model.StatusClosed, closed.Status)
	assert.Equal(t, model.Tally{"A": 1, "B": 2}, closed.Totals)
	assert.Equal(t, 3, closed.TotalVotes)
	require.NotNil(t, closed.WinnerOptionID)
	assert.Equal(t, "B", *closed.WinnerOptionID)

	b, err := r.catalog.Option(r.ctx, "B")
	require.NoError(t, err)
	assert.True(t, b.HasWon)
	a, err := r.catalog.Option(r.ctx, "A")
	require.NoError(t, err)
	assert.False(t, a.HasWon)
}

func (s *UsecaseRoundIntegrationSuite) TestScenarioVetoedLeader(t provider.T) {
	r := initResources(t)

	_, err := r.rounds.Start(r.ctx, "Brass", 30*time.Second)
	require.NoError(t, err)
	r.vote(t, "device1", "A")
	r.vote(t, "device2", "B")
	r.vote(t, "device3", "B")

	vetoed, err := r.rounds.ToggleVeto(r.ctx, "B")
	require.NoError(t, err)
	assert.True(t, vetoed.Vetoed.Has("B"))

	closed, err := r.rounds.Close(r.ctx)
	require.NoError(t, err)
	require.NotNil(t, closed.WinnerOptionID)
	assert.Equal(t, "A", *closed.WinnerOptionID)
	assert.Equal(t, model.VetoSet{"B"}, closed.Vetoed)

	_, rows, err := r.rounds.Results(r.ctx, closed.ID)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "A", rows[0].OptionID)
	assert.Equal(t, "B", rows[2].OptionID)
	assert.True(t, rows[2].Vetoed)
}

func (s *UsecaseRoundIntegrationSuite) TestScenarioNoVotes(t provider.T) {
	r := initResources(t)

	_, err := r.rounds.Start(r.ctx, "Brass", 30*time.Second)
	require.NoError(t, err)

	closed, err := r.rounds.Close(r.ctx)
	require.NoError(t, err)

	assert.Equal(t, model.StatusClosed, closed.Status)
	assert.Nil(t, closed.WinnerOptionID)
	assert.Equal(t, 0, closed.TotalVotes)
	assert.Empty(t, closed.Totals)
}

func (s *UsecaseRoundIntegrationSuite) TestScenarioWindowExpired(t provider.T) {
	r := initResources(t)

	_, err := r.rounds.Start(r.ctx, "Brass", 30*time.Second)
	require.NoError(t, err)
	r.clock.Advance(31 * time.Second)

	_, err = r.votes.SubmitCurrent(r.ctx, "device1", "A")
	assert.ErrorIs(t, err, model.ErrWindowExpired)

	cur, err := r.rounds.Current(r.ctx)
	require.NoError(t, err)
	assert.True(t, cur.IsOpen())
}

func (s *UsecaseRoundIntegrationSuite) TestDoubleTap(t provider.T) {
	r := initResources(t)

	round, err := r.rounds.Start(r.ctx, "Brass", 30*time.Second)
	require.NoError(t, err)

	const taps = 16
	admissions := make([]model.Admission, taps)
	errs := make([]error, taps)
	var wg sync.WaitGroup
	for i := 0; i < taps; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			option := []string{"A", "B", "C"}[i%3]
			admissions[i], errs[i] = r.votes.SubmitCurrent(r.ctx, "device1", option)
		}(i)
	}
	wg.Wait()

	accepted := 0
	for i := 0; i < taps; i++ {
		require.NoError(t, errs[i])
		if admissions[i].Accepted {
			accepted++
		}
		assert.Equal(t, admissions[0].ChosenOptionID, admissions[i].ChosenOptionID)
	}
	assert.Equal(t, 1, accepted)

	stored, err := r.store.ListVotes(r.ctx, round.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, admissions[0].ChosenOptionID, stored[0].OptionID)
}

func (s *UsecaseRoundIntegrationSuite) TestImplicitCloseOnStart(t provider.T) {
	r := initResources(t)

	first, err := r.rounds.Start(r.ctx, "Brass", 30*time.Second)
	require.NoError(t, err)
	r.vote(t, "device1", "C")

	r.clock.Advance(10 * time.Second)
	second, err := r.rounds.Start(r.ctx, "Strings", 45*time.Second)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	prev, err := r.rounds.Round(r.ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, prev.IsClosed())
	require.NotNil(t, prev.WinnerOptionID)
	assert.Equal(t, "C", *prev.WinnerOptionID)

	cur, err := r.rounds.Current(r.ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, cur.ID)
	assert.True(t, cur.IsOpen())
	assert.Equal(t, "Strings", cur.Category)

	history, err := r.rounds.History(r.ctx)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, second.ID, history[0].ID)
}

func (s *UsecaseRoundIntegrationSuite) TestClosedRoundRejectsWrites(t provider.T) {
	r := initResources(t)

	_, err := r.rounds.Start(r.ctx, "Brass", 30*time.Second)
	require.NoError(t, err)
	r.vote(t, "device1", "A")
	first, err := r.rounds.Close(r.ctx)
	require.NoError(t, err)

	again, err := r.rounds.Close(r.ctx)
	require.NoError(t, err)
	assert.Equal(t, first.WinnerOptionID, again.WinnerOptionID)
	assert.Equal(t, first.Version, again.Version)

	_, err = r.rounds.ToggleVeto(r.ctx, "A")
	assert.ErrorIs(t, err, model.ErrRoundNotOpen)

	_, err = r.votes.SubmitCurrent(r.ctx, "device2", "B")
	assert.ErrorIs(t, err, model.ErrRoundNotOpen)
}

func (s *UsecaseRoundIntegrationSuite) TestWinnerLeavesPool(t provider.T) {
	r := initResources(t)

	_, err := r.rounds.Start(r.ctx, "Brass", 30*time.Second)
	require.NoError(t, err)
	r.vote(t, "device1", "A")
	_, err = r.rounds.Close(r.ctx)
	require.NoError(t, err)

	_, err = r.rounds.Start(r.ctx, "Brass", 30*time.Second)
	require.NoError(t, err)
	_, err = r.votes.SubmitCurrent(r.ctx, "device1", "A")
	assert.ErrorIs(t, err, model.ErrUnknownOption)

	_, options, err := r.rounds.CurrentOptions(r.ctx)
	require.NoError(t, err)
	ids := make([]string, 0, len(options))
	for _, o := range options {
		ids = append(ids, o.ID)
	}
	assert.Equal(t, []string{"B", "C"}, ids)

	require.NoError(t, r.rounds.ResetHasWon(r.ctx))
	assert.True(t, r.vote(t, "device1", "A").Accepted)
}

func (s *UsecaseRoundIntegrationSuite) TestResetEvent(t provider.T) {
	r := initResources(t)

	for i, option := range []string{"A", "B", "C"} {
		_, err := r.rounds.Start(r.ctx, "Brass", 30*time.Second)
		require.NoError(t, err)
		r.vote(t, fmt.Sprintf("device%d", i), option)
	}

	require.NoError(t, r.rounds.ResetEvent(r.ctx))

	history, err := r.rounds.History(r.ctx)
	require.NoError(t, err)
	assert.Empty(t, history)
	_, err = r.rounds.Current(r.ctx)
	assert.ErrorIs(t, err, model.ErrNotFound)
	options, err := r.catalog.Options(r.ctx)
	require.NoError(t, err)
	for _, o := range options {
		assert.False(t, o.HasWon, o.ID)
	}
}

func TestIntegrationSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseRoundIntegrationSuite))
}
