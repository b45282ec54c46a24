package usecase_round

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/humanbelnik/jukebox/internal/model"
	"github.com/humanbelnik/jukebox/internal/service/tally"
)

// Compare-and-swap writes on a round are retried this many times before the
// contention is reported to the caller.
const defaultMaxAttempts = 5

var ErrContended = errors.New("round state contended")

//go:generate mockery --name=RoundRepository --output=./mocks/round/repository --filename=repository.go
type RoundRepository interface {
	// CreateRound fails with model.ErrVersionConflict when another round is open.
	CreateRound(ctx context.Context, r model.Round) error
	LoadRound(ctx context.Context, id model.RoundID) (model.Round, error)
	LoadOpenRound(ctx context.Context) (model.Round, error)
	ListRounds(ctx context.Context) ([]model.Round, error)
	// UpdateVetoes and CloseRound only apply when the stored version equals
	// version and the round is open. A closed round yields
	// model.ErrAlreadyClosed, a stale version model.ErrVersionConflict.
	// CloseRound also reports model.ErrVersionConflict when the round holds
	// more votes than result.Votes, and flags the winner as a past winner
	// atomically with the close.
	UpdateVetoes(ctx context.Context, id model.RoundID, version int64, vetoed model.VetoSet) (model.Round, error)
	CloseRound(ctx context.Context, id model.RoundID, version int64, result model.RoundResult) (model.Round, error)

	LoadCurrent(ctx context.Context) (model.Round, error)
	// PublishCurrent mirrors r into the current-round pointer unless the
	// pointer already holds a newer round.
	PublishCurrent(ctx context.Context, r model.Round) error

	DeleteRounds(ctx context.Context) error
}

//go:generate mockery --name=VoteRepository --output=./mocks/round/votes --filename=votes.go
type VoteRepository interface {
	ListVotes(ctx context.Context, roundID model.RoundID) ([]model.Vote, error)
	DeleteVotes(ctx context.Context) error
}

//go:generate mockery --name=Catalog --output=./mocks/round/catalog --filename=catalog.go
type Catalog interface {
	Options(ctx context.Context) ([]model.Option, error)
	HasCategory(ctx context.Context, category string) (bool, error)
	Eligible(ctx context.Context, category string) ([]model.Option, error)
	ResetHasWon(ctx context.Context) error
}

//go:generate mockery --name=Notifier --output=./mocks/round/notifier --filename=notifier.go
type Notifier interface {
	Notify(ctx context.Context, e model.Event) error
}

//go:generate mockery --name=Archive --output=./mocks/round/archive --filename=archive.go
type Archive interface {
	SaveResult(ctx context.Context, r model.Round, rows []model.ResultRow) error
}

// Usecase is the round state machine. It is the only writer of round
// records, the current-round pointer and the has-won flag.
type Usecase struct {
	rounds   RoundRepository
	votes    VoteRepository
	catalog  Catalog
	notifier Notifier
	archive  Archive

	logger      *slog.Logger
	now         func() time.Time
	newID       func() model.RoundID
	maxAttempts int
}

type Option func(*Usecase)

func WithLogger(logger *slog.Logger) Option {
	return func(u *Usecase) {
		u.logger = logger
	}
}

func WithClock(now func() time.Time) Option {
	return func(u *Usecase) {
		u.now = now
	}
}

func WithIDGenerator(newID func() model.RoundID) Option {
	return func(u *Usecase) {
		u.newID = newID
	}
}

// WithArchive stores a copy of every result when a round closes.
func WithArchive(archive Archive) Option {
	return func(u *Usecase) {
		u.archive = archive
	}
}

func WithMaxAttempts(n int) Option {
	return func(u *Usecase) {
		if n > 0 {
			u.maxAttempts = n
		}
	}
}

func New(
	rounds RoundRepository,
	votes VoteRepository,
	catalog Catalog,
	notifier Notifier,
	opts ...Option,
) *Usecase {
	u := &Usecase{
		rounds:      rounds,
		votes:       votes,
		catalog:     catalog,
		notifier:    notifier,
		logger:      slog.Default(),
		now:         time.Now,
		newID:       uuid.NewString,
		maxAttempts: defaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Start opens a new round. A round that is still open is closed first,
// winner included.
func (u *Usecase) Start(ctx context.Context, category string, duration time.Duration) (model.Round, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return model.Round{}, model.ErrNoCategorySelected
	}
	if duration <= 0 {
		return model.Round{}, fmt.Errorf("%w: %s", model.ErrInvalidDuration, duration)
	}

	known, err := u.catalog.HasCategory(ctx, category)
	if err != nil {
		return model.Round{}, err
	}
	if !known {
		return model.Round{}, fmt.Errorf("%w: %q is not in the catalog", model.ErrNoCategorySelected, category)
	}

	for attempt := 0; attempt < u.maxAttempts; attempt++ {
		if err := u.closeOpen(ctx); err != nil {
			return model.Round{}, err
		}

		now := u.now()
		r := model.Round{
			ID:        u.newID(),
			Status:    model.StatusOpen,
			Category:  category,
			StartedAt: now,
			EndsAt:    now.Add(duration),
			Vetoed:    model.VetoSet{},
			Totals:    model.Tally{},
			Version:   1,
		}

		err := u.rounds.CreateRound(ctx, r)
		if errors.Is(err, model.ErrVersionConflict) {
			// Another start won the race; close its round and try again.
			u.logger.Warn("round start raced", slog.String("category", category))
			continue
		}
		if err != nil {
			return model.Round{}, errors.Join(model.ErrStoreUnavailable, err)
		}

		if err := u.rounds.PublishCurrent(ctx, r); err != nil {
			return r, errors.Join(model.ErrStoreUnavailable, err)
		}

		u.logger.Info("round started",
			slog.String("round_id", r.ID),
			slog.String("category", r.Category),
			slog.Time("ends_at", r.EndsAt),
		)
		u.notify(ctx, model.EventRoundStarted, r.ID)
		return r, nil
	}

	return model.Round{}, ErrContended
}

// Close closes the current round. Closing a round that is already closed
// returns it unchanged. A round left open behind a stale pointer is closed
// instead.
func (u *Usecase) Close(ctx context.Context) (model.Round, error) {
	cur, err := u.rounds.LoadCurrent(ctx)
	switch {
	case errors.Is(err, model.ErrNotFound):
		cur = model.Round{Status: model.StatusClosed}
	case err != nil:
		return model.Round{}, errors.Join(model.ErrStoreUnavailable, err)
	}

	if cur.IsClosed() {
		open, err := u.rounds.LoadOpenRound(ctx)
		switch {
		case err == nil:
			return u.CloseRound(ctx, open.ID)
		case !errors.Is(err, model.ErrNotFound):
			return model.Round{}, errors.Join(model.ErrStoreUnavailable, err)
		case cur.ID == model.EmptyRoundID:
			return model.Round{}, model.ErrRoundNotOpen
		}
	}
	return u.CloseRound(ctx, cur.ID)
}

// CloseRound tallies the votes of a round, resolves the winner against the
// veto set and writes the result once. A veto or a vote landing between the
// count and the write makes it recount.
func (u *Usecase) CloseRound(ctx context.Context, id model.RoundID) (model.Round, error) {
	for attempt := 0; attempt < u.maxAttempts; attempt++ {
		r, err := u.rounds.LoadRound(ctx, id)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.Round{}, fmt.Errorf("%w: round %s not found", model.ErrRoundNotOpen, id)
			}
			return model.Round{}, errors.Join(model.ErrStoreUnavailable, err)
		}
		if r.IsClosed() {
			return u.alreadyClosed(ctx, r)
		}

		votes, err := u.votes.ListVotes(ctx, id)
		if err != nil {
			return model.Round{}, errors.Join(model.ErrStoreUnavailable, err)
		}
		options, err := u.catalog.Options(ctx)
		if err != nil {
			return model.Round{}, err
		}

		totals := tally.Count(votes)
		result := model.RoundResult{
			Totals:         totals,
			TotalVotes:     totals.Total(),
			Votes:          len(votes),
			WinnerOptionID: tally.Resolve(totals, r.Vetoed, options),
			Vetoed:         r.Vetoed,
			ClosedAt:       u.now(),
		}

		closed, err := u.rounds.CloseRound(ctx, id, r.Version, result)
		switch {
		case errors.Is(err, model.ErrVersionConflict), errors.Is(err, model.ErrAlreadyClosed):
			// A veto, a vote or another close landed in between; reload.
			continue
		case err != nil:
			return model.Round{}, errors.Join(model.ErrStoreUnavailable, err)
		}

		if err := u.rounds.PublishCurrent(ctx, closed); err != nil {
			return closed, errors.Join(model.ErrStoreUnavailable, err)
		}

		winner := ""
		if closed.WinnerOptionID != nil {
			winner = *closed.WinnerOptionID
		}
		u.logger.Info("round closed",
			slog.String("round_id", closed.ID),
			slog.Int("total_votes", closed.TotalVotes),
			slog.String("winner_option_id", winner),
		)
		u.notify(ctx, model.EventRoundClosed, closed.ID)
		u.archiveResult(ctx, closed, options)
		return closed, nil
	}

	return model.Round{}, ErrContended
}

// ToggleVeto adds optionID to the veto set of the current round, or removes
// it when already present.
func (u *Usecase) ToggleVeto(ctx context.Context, optionID string) (model.Round, error) {
	cur, err := u.rounds.LoadCurrent(ctx)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Round{}, model.ErrRoundNotOpen
		}
		return model.Round{}, errors.Join(model.ErrStoreUnavailable, err)
	}
	return u.ToggleRoundVeto(ctx, cur.ID, optionID)
}

func (u *Usecase) ToggleRoundVeto(ctx context.Context, id model.RoundID, optionID string) (model.Round, error) {
	optionID = strings.TrimSpace(optionID)
	if optionID == "" {
		return model.Round{}, model.ErrUnknownOption
	}

	for attempt := 0; attempt < u.maxAttempts; attempt++ {
		r, err := u.rounds.LoadRound(ctx, id)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.Round{}, model.ErrRoundNotOpen
			}
			return model.Round{}, errors.Join(model.ErrStoreUnavailable, err)
		}
		if !r.IsOpen() {
			return model.Round{}, model.ErrRoundNotOpen
		}

		next, added := r.Vetoed.Toggle(optionID)
		updated, err := u.rounds.UpdateVetoes(ctx, id, r.Version, next)
		switch {
		case errors.Is(err, model.ErrAlreadyClosed):
			return model.Round{}, model.ErrRoundNotOpen
		case errors.Is(err, model.ErrVersionConflict):
			continue
		case err != nil:
			return model.Round{}, errors.Join(model.ErrStoreUnavailable, err)
		}

		if err := u.rounds.PublishCurrent(ctx, updated); err != nil {
			return updated, errors.Join(model.ErrStoreUnavailable, err)
		}

		u.logger.Info("veto toggled",
			slog.String("round_id", id),
			slog.String("option_id", optionID),
			slog.Bool("vetoed", added),
		)
		u.notify(ctx, model.EventVetoToggled, id)
		return updated, nil
	}

	return model.Round{}, ErrContended
}

// Current returns the current-round pointer.
func (u *Usecase) Current(ctx context.Context) (model.Round, error) {
	cur, err := u.rounds.LoadCurrent(ctx)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Round{}, model.ErrNotFound
		}
		return model.Round{}, errors.Join(model.ErrStoreUnavailable, err)
	}
	return cur, nil
}

// Round returns the canonical record of a round.
func (u *Usecase) Round(ctx context.Context, id model.RoundID) (model.Round, error) {
	r, err := u.rounds.LoadRound(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Round{}, model.ErrNotFound
		}
		return model.Round{}, errors.Join(model.ErrStoreUnavailable, err)
	}
	return r, nil
}

// History lists every round, newest first.
func (u *Usecase) History(ctx context.Context) ([]model.Round, error) {
	rounds, err := u.rounds.ListRounds(ctx)
	if err != nil {
		return nil, errors.Join(model.ErrStoreUnavailable, err)
	}
	return rounds, nil
}

// CurrentOptions returns the options participants may vote for in the open
// round.
func (u *Usecase) CurrentOptions(ctx context.Context) (model.Round, []model.Option, error) {
	cur, err := u.Current(ctx)
	if err != nil {
		return model.Round{}, nil, err
	}
	if !cur.IsOpen() {
		return cur, []model.Option{}, nil
	}

	options, err := u.catalog.Eligible(ctx, cur.Category)
	if err != nil {
		return model.Round{}, nil, err
	}
	return cur, options, nil
}

// LiveTally counts the votes of the current round as they stand. Operator
// view only.
func (u *Usecase) LiveTally(ctx context.Context) (model.Round, model.Tally, error) {
	cur, err := u.Current(ctx)
	if err != nil {
		return model.Round{}, nil, err
	}
	if cur.IsClosed() {
		return cur, cur.Totals, nil
	}

	votes, err := u.votes.ListVotes(ctx, cur.ID)
	if err != nil {
		return model.Round{}, nil, errors.Join(model.ErrStoreUnavailable, err)
	}
	return cur, tally.Count(votes), nil
}

// Results returns the ranked result of a closed round.
func (u *Usecase) Results(ctx context.Context, id model.RoundID) (model.Round, []model.ResultRow, error) {
	r, err := u.Round(ctx, id)
	if err != nil {
		return model.Round{}, nil, err
	}
	if !r.IsClosed() {
		return r, nil, model.ErrResultsSealed
	}

	options, err := u.catalog.Options(ctx)
	if err != nil {
		return model.Round{}, nil, err
	}
	return r, tally.Rank(r, options), nil
}

// ResetHasWon makes every option eligible again without touching rounds.
func (u *Usecase) ResetHasWon(ctx context.Context) error {
	if err := u.catalog.ResetHasWon(ctx); err != nil {
		return err
	}
	u.logger.Info("has-won flags reset")
	return nil
}

// ResetEvent purges every round and vote and makes all options eligible
// again.
func (u *Usecase) ResetEvent(ctx context.Context) error {
	if err := u.votes.DeleteVotes(ctx); err != nil {
		return errors.Join(model.ErrStoreUnavailable, err)
	}
	if err := u.rounds.DeleteRounds(ctx); err != nil {
		return errors.Join(model.ErrStoreUnavailable, err)
	}
	if err := u.catalog.ResetHasWon(ctx); err != nil {
		return err
	}

	u.logger.Info("event reset")
	u.notify(ctx, model.EventReset, model.EmptyRoundID)
	return nil
}

func (u *Usecase) closeOpen(ctx context.Context) error {
	open, err := u.rounds.LoadOpenRound(ctx)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil
		}
		return errors.Join(model.ErrStoreUnavailable, err)
	}

	u.logger.Info("closing round left open", slog.String("round_id", open.ID))
	_, err = u.CloseRound(ctx, open.ID)
	return err
}

// alreadyClosed re-publishes the pointer so that a retried close repairs a
// pointer write that failed after the round itself was closed.
func (u *Usecase) alreadyClosed(ctx context.Context, r model.Round) (model.Round, error) {
	u.logger.Debug("round already closed", slog.String("round_id", r.ID))
	if err := u.rounds.PublishCurrent(ctx, r); err != nil {
		return r, errors.Join(model.ErrStoreUnavailable, err)
	}
	return r, nil
}

func (u *Usecase) archiveResult(ctx context.Context, r model.Round, options []model.Option) {
	if u.archive == nil {
		return
	}
	if err := u.archive.SaveResult(ctx, r, tally.Rank(r, options)); err != nil {
		u.logger.Warn("failed to archive result",
			slog.String("round_id", r.ID),
			slog.String("error", err.Error()),
		)
	}
}

func (u *Usecase) notify(ctx context.Context, t model.EventType, id model.RoundID) {
	if u.notifier == nil {
		return
	}
	if err := u.notifier.Notify(ctx, model.Event{Type: t, RoundID: id, At: u.now()}); err != nil {
		u.logger.Warn("failed to notify observers",
			slog.String("event", string(t)),
			slog.String("error", err.Error()),
		)
	}
}
