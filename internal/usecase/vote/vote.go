package usecase_vote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/humanbelnik/jukebox/internal/model"
)

//go:generate mockery --name=VoteRepository --output=./mocks/vote/repository --filename=repository.go
type VoteRepository interface {
	// CreateVote stores v unless a vote for (v.RoundID, v.ParticipantID)
	// exists or the round is no longer open. It returns the stored vote and
	// whether this call created it. A closed round yields
	// model.ErrRoundNotOpen.
	CreateVote(ctx context.Context, v model.Vote) (model.Vote, bool, error)
	LoadVote(ctx context.Context, roundID model.RoundID, participantID model.ParticipantID) (model.Vote, error)
}

//go:generate mockery --name=RoundReader --output=./mocks/vote/rounds --filename=rounds.go
type RoundReader interface {
	LoadCurrent(ctx context.Context) (model.Round, error)
	LoadRound(ctx context.Context, id model.RoundID) (model.Round, error)
}

//go:generate mockery --name=OptionReader --output=./mocks/vote/options --filename=options.go
type OptionReader interface {
	Option(ctx context.Context, id string) (model.Option, error)
}

//go:generate mockery --name=Notifier --output=./mocks/vote/notifier --filename=notifier.go
type Notifier interface {
	Notify(ctx context.Context, e model.Event) error
}

// Usecase admits participant votes. It never modifies a stored vote.
type Usecase struct {
	votes    VoteRepository
	rounds   RoundReader
	options  OptionReader
	notifier Notifier

	logger *slog.Logger
	now    func() time.Time
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

func New(
	votes VoteRepository,
	rounds RoundReader,
	options OptionReader,
	notifier Notifier,
	opts ...Option,
) *Usecase {
	u := &Usecase{
		votes:    votes,
		rounds:   rounds,
		options:  options,
		notifier: notifier,
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// SubmitCurrent submits a vote to whichever round the current-round pointer
// names.
func (u *Usecase) SubmitCurrent(ctx context.Context, participantID model.ParticipantID, optionID string) (model.Admission, error) {
	cur, err := u.rounds.LoadCurrent(ctx)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Admission{}, model.ErrRoundNotOpen
		}
		return model.Admission{}, errors.Join(model.ErrStoreUnavailable, err)
	}
	return u.Submit(ctx, cur.ID, participantID, optionID)
}

// Submit records the first vote of a participant in a round. A repeated
// submission is not an error: it reports Accepted=false together with the
// option chosen the first time.
func (u *Usecase) Submit(ctx context.Context, roundID model.RoundID, participantID model.ParticipantID, optionID string) (model.Admission, error) {
	participantID = strings.TrimSpace(participantID)
	if participantID == "" {
		return model.Admission{}, model.ErrNoParticipant
	}

	r, err := u.openRound(ctx, roundID)
	if err != nil {
		return model.Admission{}, err
	}

	now := u.now()
	if !now.Before(r.EndsAt) {
		return model.Admission{}, fmt.Errorf("%w: round %s ended at %s", model.ErrWindowExpired, r.ID, r.EndsAt.Format(time.RFC3339))
	}

	if err := u.checkOption(ctx, r, optionID); err != nil {
		return model.Admission{}, err
	}

	stored, created, err := u.votes.CreateVote(ctx, model.Vote{
		RoundID:       r.ID,
		ParticipantID: participantID,
		OptionID:      optionID,
		CastAt:        now,
	})
	if err != nil {
		if errors.Is(err, model.ErrRoundNotOpen) {
			return model.Admission{}, model.ErrRoundNotOpen
		}
		return model.Admission{}, errors.Join(model.ErrStoreUnavailable, err)
	}

	if created {
		u.logger.Info("vote accepted",
			slog.String("round_id", r.ID),
			slog.String("option_id", stored.OptionID),
		)
		u.notify(ctx, r.ID)
	} else {
		u.logger.Debug("repeated vote ignored",
			slog.String("round_id", r.ID),
			slog.String("option_id", stored.OptionID),
		)
	}

	return model.Admission{
		Accepted:       created,
		ChosenOptionID: stored.OptionID,
		RoundID:        r.ID,
	}, nil
}

// MyVote returns the vote a participant cast in the current round.
func (u *Usecase) MyVote(ctx context.Context, participantID model.ParticipantID) (model.Vote, error) {
	participantID = strings.TrimSpace(participantID)
	if participantID == "" {
		return model.Vote{}, model.ErrNoParticipant
	}

	cur, err := u.rounds.LoadCurrent(ctx)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Vote{}, model.ErrNotFound
		}
		return model.Vote{}, errors.Join(model.ErrStoreUnavailable, err)
	}

	v, err := u.votes.LoadVote(ctx, cur.ID, participantID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Vote{}, model.ErrNotFound
		}
		return model.Vote{}, errors.Join(model.ErrStoreUnavailable, err)
	}
	return v, nil
}

// openRound requires roundID to be the round named by the pointer and its
// canonical record to be open.
func (u *Usecase) openRound(ctx context.Context, roundID model.RoundID) (model.Round, error) {
	cur, err := u.rounds.LoadCurrent(ctx)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Round{}, model.ErrRoundNotOpen
		}
		return model.Round{}, errors.Join(model.ErrStoreUnavailable, err)
	}
	if cur.ID != roundID || !cur.IsOpen() {
		return model.Round{}, model.ErrRoundNotOpen
	}

	r, err := u.rounds.LoadRound(ctx, roundID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Round{}, model.ErrRoundNotOpen
		}
		return model.Round{}, errors.Join(model.ErrStoreUnavailable, err)
	}
	if !r.IsOpen() {
		return model.Round{}, model.ErrRoundNotOpen
	}
	return r, nil
}

func (u *Usecase) checkOption(ctx context.Context, r model.Round, optionID string) error {
	if strings.TrimSpace(optionID) == "" {
		return model.ErrUnknownOption
	}

	o, err := u.options.Option(ctx, optionID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return fmt.Errorf("%w: %q", model.ErrUnknownOption, optionID)
		}
		return err
	}
	if !o.EligibleIn(r.Category) {
		return fmt.Errorf("%w: %q is not eligible in %q", model.ErrUnknownOption, optionID, r.Category)
	}
	return nil
}

func (u *Usecase) notify(ctx context.Context, id model.RoundID) {
	if u.notifier == nil {
		return
	}
	if err := u.notifier.Notify(ctx, model.Event{Type: model.EventVoteCast, RoundID: id, At: u.now()}); err != nil {
		u.logger.Warn("failed to notify observers", slog.String("error", err.Error()))
	}
}
