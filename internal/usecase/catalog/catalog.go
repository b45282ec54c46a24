package usecase_catalog

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/humanbelnik/jukebox/internal/model"
)

var ErrInvalidOption = errors.New("invalid option")

//go:generate mockery --name=OptionRepository --output=./mocks/catalog/repository --filename=repository.go
type OptionRepository interface {
	LoadOptions(ctx context.Context) ([]model.Option, error)
	LoadOption(ctx context.Context, id string) (model.Option, error)
	UpsertOption(ctx context.Context, o model.Option) error
	ResetHasWon(ctx context.Context) error
}

// Usecase is the catalog boundary. Every option leaving it has its category
// normalized.
type Usecase struct {
	repo   OptionRepository
	logger *slog.Logger
}

type Option func(*Usecase)

func WithLogger(logger *slog.Logger) Option {
	return func(u *Usecase) {
		u.logger = logger
	}
}

func New(repo OptionRepository, opts ...Option) *Usecase {
	u := &Usecase{
		repo:   repo,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Options returns the whole catalog sorted by category, order and id.
func (u *Usecase) Options(ctx context.Context) ([]model.Option, error) {
	options, err := u.repo.LoadOptions(ctx)
	if err != nil {
		return nil, errors.Join(model.ErrStoreUnavailable, err)
	}

	out := make([]model.Option, 0, len(options))
	for _, o := range options {
		out = append(out, o.Normalize())
	}
	slices.SortFunc(out, func(a, b model.Option) int {
		if c := cmp.Compare(a.Category, b.Category); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Order, b.Order); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (u *Usecase) Option(ctx context.Context, id string) (model.Option, error) {
	o, err := u.repo.LoadOption(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Option{}, model.ErrNotFound
		}
		return model.Option{}, errors.Join(model.ErrStoreUnavailable, err)
	}
	return o.Normalize(), nil
}

// Categories lists the distinct non-empty categories of the catalog.
func (u *Usecase) Categories(ctx context.Context) ([]string, error) {
	options, err := u.Options(ctx)
	if err != nil {
		return nil, err
	}

	categories := make([]string, 0)
	for _, o := range options {
		if o.Category == "" || slices.Contains(categories, o.Category) {
			continue
		}
		categories = append(categories, o.Category)
	}
	slices.Sort(categories)
	return categories, nil
}

// HasCategory reports whether at least one option belongs to category.
func (u *Usecase) HasCategory(ctx context.Context, category string) (bool, error) {
	categories, err := u.Categories(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(categories, category), nil
}

// Eligible returns the options that can receive votes in a round of category,
// in catalog order.
func (u *Usecase) Eligible(ctx context.Context, category string) ([]model.Option, error) {
	options, err := u.Options(ctx)
	if err != nil {
		return nil, err
	}

	eligible := make([]model.Option, 0)
	for _, o := range options {
		if o.EligibleIn(category) {
			eligible = append(eligible, o)
		}
	}
	return eligible, nil
}

// Upsert creates or replaces a single catalog entry.
func (u *Usecase) Upsert(ctx context.Context, o model.Option) error {
	o.ID = strings.TrimSpace(o.ID)
	o.Title = strings.TrimSpace(o.Title)
	if o.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidOption)
	}
	if o.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidOption)
	}

	if err := u.repo.UpsertOption(ctx, o); err != nil {
		return errors.Join(model.ErrStoreUnavailable, err)
	}
	u.logger.Info("option upserted", slog.String("option_id", o.ID))
	return nil
}

// Seed upserts every option and stops at the first one that is rejected.
func (u *Usecase) Seed(ctx context.Context, options []model.Option) error {
	for _, o := range options {
		if err := u.Upsert(ctx, o); err != nil {
			return fmt.Errorf("seed option %q: %w", o.ID, err)
		}
	}
	u.logger.Info("catalog seeded", slog.Int("options", len(options)))
	return nil
}

// ResetHasWon makes every previous winner eligible again.
func (u *Usecase) ResetHasWon(ctx context.Context) error {
	if err := u.repo.ResetHasWon(ctx); err != nil {
		return errors.Join(model.ErrStoreUnavailable, err)
	}
	u.logger.Info("has-won flags reset")
	return nil
}
