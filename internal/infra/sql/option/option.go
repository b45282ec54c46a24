package infra_sql_option

import (
	"context"
	"database/sql"
	"errors"

	"github.com/humanbelnik/jukebox/internal/model"
	"github.com/jmoiron/sqlx"
)

type Driver struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Driver {
	return &Driver{db: db}
}

type optionDTO struct {
	ID       string `db:"id"`
	Title    string `db:"title"`
	Composer string `db:"composer"`
	Category string `db:"category"`
	Section  string `db:"section"`
	Order    int    `db:"sort_order"`
	Enabled  bool   `db:"enabled"`
	HasWon   bool   `db:"has_won"`
}

func (d optionDTO) toModel() model.Option {
	return model.Option{
		ID:       d.ID,
		Title:    d.Title,
		Composer: d.Composer,
		Category: d.Category,
		Section:  d.Section,
		Order:    d.Order,
		Enabled:  d.Enabled,
		HasWon:   d.HasWon,
	}
}

func (d *Driver) LoadOptions(ctx context.Context) ([]model.Option, error) {
	var dtos []optionDTO

	query := `
		SELECT id, title, composer, category, section, sort_order, enabled, has_won
		FROM options
		ORDER BY sort_order, id
	`

	if err := d.db.SelectContext(ctx, &dtos, query); err != nil {
		return nil, err
	}

	options := make([]model.Option, 0, len(dtos))
	for _, dto := range dtos {
		options = append(options, dto.toModel())
	}
	return options, nil
}

func (d *Driver) LoadOption(ctx context.Context, id string) (model.Option, error) {
	var dto optionDTO

	query := d.db.Rebind(`
		SELECT id, title, composer, category, section, sort_order, enabled, has_won
		FROM options
		WHERE id = ?
	`)

	if err := d.db.GetContext(ctx, &dto, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Option{}, model.ErrNotFound
		}
		return model.Option{}, err
	}
	return dto.toModel(), nil
}

// UpsertOption writes catalog fields. The has-won flag of an existing option
// is left as stored.
func (d *Driver) UpsertOption(ctx context.Context, o model.Option) error {
	query := d.db.Rebind(`
		INSERT INTO options (id, title, composer, category, section, sort_order, enabled, has_won)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			composer = excluded.composer,
			category = excluded.category,
			section = excluded.section,
			sort_order = excluded.sort_order,
			enabled = excluded.enabled
	`)

	_, err := d.db.ExecContext(ctx, query,
		o.ID, o.Title, o.Composer, o.Category, o.Section, o.Order, o.Enabled, o.HasWon,
	)
	return err
}

func (d *Driver) ResetHasWon(ctx context.Context) error {
	query := d.db.Rebind(`UPDATE options SET has_won = ?`)

	_, err := d.db.ExecContext(ctx, query, false)
	return err
}
