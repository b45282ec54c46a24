package infra_sql_round

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/humanbelnik/jukebox/internal/model"
	"github.com/jmoiron/sqlx"
)

// The current-round pointer is a single row.
const currentSlot = "current"

const driverPostgres = "postgres"

const roundColumns = `id, status, category, started_at, ends_at, vetoed, totals, total_votes, winner_option_id, version, closed_at`

// Driver stores canonical round records and the current-round pointer. All
// writes to an existing round are conditional on its version.
type Driver struct {
	db *sqlx.DB
}

func New(
	db *sqlx.DB,
) *Driver {
	return &Driver{db: db}
}

func (d *Driver) CreateRound(ctx context.Context, r model.Round) error {
	dto, err := toDTO(r)
	if err != nil {
		return err
	}

	query := d.db.Rebind(`
		INSERT INTO rounds (` + roundColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`)

	result, err := d.db.ExecContext(ctx, query,
		dto.ID, dto.Status, dto.Category, dto.StartedAt, dto.EndsAt,
		dto.Vetoed, dto.Totals, dto.TotalVotes, dto.WinnerOptionID, dto.Version, dto.ClosedAt,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		// Another round is already open.
		return model.ErrVersionConflict
	}
	return nil
}

func (d *Driver) LoadRound(ctx context.Context, id model.RoundID) (model.Round, error) {
	var dto roundDTO

	query := d.db.Rebind(`SELECT ` + roundColumns + ` FROM rounds WHERE id = ?`)

	if err := d.db.GetContext(ctx, &dto, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Round{}, model.ErrNotFound
		}
		return model.Round{}, err
	}
	return dto.toModel()
}

func (d *Driver) LoadOpenRound(ctx context.Context) (model.Round, error) {
	var dto roundDTO

	query := d.db.Rebind(`SELECT ` + roundColumns + ` FROM rounds WHERE status = ?`)

	if err := d.db.GetContext(ctx, &dto, query, string(model.StatusOpen)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Round{}, model.ErrNotFound
		}
		return model.Round{}, err
	}
	return dto.toModel()
}

// ListRounds returns every round, newest first.
func (d *Driver) ListRounds(ctx context.Context) ([]model.Round, error) {
	var dtos []roundDTO

	query := `SELECT ` + roundColumns + ` FROM rounds ORDER BY started_at DESC, id`

	if err := d.db.SelectContext(ctx, &dtos, query); err != nil {
		return nil, err
	}

	rounds := make([]model.Round, 0, len(dtos))
	for _, dto := range dtos {
		r, err := dto.toModel()
		if err != nil {
			return nil, err
		}
		rounds = append(rounds, r)
	}
	return rounds, nil
}

func (d *Driver) UpdateVetoes(ctx context.Context, id model.RoundID, version int64, vetoed model.VetoSet) (model.Round, error) {
	dto, err := toDTO(model.Round{Vetoed: vetoed})
	if err != nil {
		return model.Round{}, err
	}

	query := d.db.Rebind(`
		UPDATE rounds
		SET vetoed = ?, version = version + 1
		WHERE id = ? AND version = ? AND status = ?
	`)

	result, err := d.db.ExecContext(ctx, query, dto.Vetoed, id, version, string(model.StatusOpen))
	if err != nil {
		return model.Round{}, err
	}
	return d.afterConditionalWrite(ctx, id, result)
}

// CloseRound writes the result and flags the winner as a past winner in one
// transaction. It matches no row when a vote was cast after the result was
// counted, so the caller recounts. On Postgres the round row is locked first
// and concurrent vote inserts wait for the close to finish.
func (d *Driver) CloseRound(ctx context.Context, id model.RoundID, version int64, res model.RoundResult) (model.Round, error) {
	closedAt := res.ClosedAt
	dto, err := toDTO(model.Round{
		Vetoed:         res.Vetoed,
		Totals:         res.Totals,
		TotalVotes:     res.TotalVotes,
		WinnerOptionID: res.WinnerOptionID,
		ClosedAt:       &closedAt,
	})
	if err != nil {
		return model.Round{}, err
	}

	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Round{}, err
	}
	defer tx.Rollback()

	if d.db.DriverName() == driverPostgres {
		if _, err := tx.ExecContext(ctx, tx.Rebind(`SELECT id FROM rounds WHERE id = ? FOR UPDATE`), id); err != nil {
			return model.Round{}, err
		}
	}

	query := tx.Rebind(`
		UPDATE rounds
		SET status = ?, vetoed = ?, totals = ?, total_votes = ?, winner_option_id = ?,
			closed_at = ?, version = version + 1
		WHERE id = ? AND version = ? AND status = ?
			AND (SELECT COUNT(*) FROM votes WHERE round_id = ?) = ?
	`)

	result, err := tx.ExecContext(ctx, query,
		string(model.StatusClosed), dto.Vetoed, dto.Totals, dto.TotalVotes, dto.WinnerOptionID,
		dto.ClosedAt, id, version, string(model.StatusOpen),
		id, res.Votes,
	)
	if err != nil {
		return model.Round{}, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return model.Round{}, err
	}

	if rowsAffected > 0 && res.WinnerOptionID != nil {
		// Unknown ids are ignored, a winner may have left the catalog.
		if _, err := tx.ExecContext(ctx, tx.Rebind(`UPDATE options SET has_won = ? WHERE id = ?`), true, *res.WinnerOptionID); err != nil {
			return model.Round{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return model.Round{}, err
	}

	return d.afterConditionalWrite(ctx, id, result)
}

// afterConditionalWrite reloads the round and explains a write that matched
// no row.
func (d *Driver) afterConditionalWrite(ctx context.Context, id model.RoundID, result sql.Result) (model.Round, error) {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return model.Round{}, err
	}

	r, err := d.LoadRound(ctx, id)
	if err != nil {
		return model.Round{}, err
	}
	if rowsAffected > 0 {
		return r, nil
	}
	if r.IsClosed() {
		return model.Round{}, model.ErrAlreadyClosed
	}
	return model.Round{}, model.ErrVersionConflict
}

func (d *Driver) LoadCurrent(ctx context.Context) (model.Round, error) {
	var dto roundDTO

	query := d.db.Rebind(`
		SELECT round_id AS id, status, category, started_at, ends_at, vetoed, totals, total_votes,
			winner_option_id, version, closed_at
		FROM current_round
		WHERE slot = ?
	`)

	if err := d.db.GetContext(ctx, &dto, query, currentSlot); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Round{}, model.ErrNotFound
		}
		return model.Round{}, err
	}
	return dto.toModel()
}

// PublishCurrent upserts the pointer. The update only applies to a newer
// version of the same round or to a round started no earlier than the one
// the pointer holds, so a slow writer cannot move the pointer backwards.
func (d *Driver) PublishCurrent(ctx context.Context, r model.Round) error {
	dto, err := toDTO(r)
	if err != nil {
		return err
	}

	query := d.db.Rebind(`
		INSERT INTO current_round (slot, round_id, status, category, started_at, ends_at, vetoed,
			totals, total_votes, winner_option_id, version, closed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (slot) DO UPDATE SET
			round_id = excluded.round_id,
			status = excluded.status,
			category = excluded.category,
			started_at = excluded.started_at,
			ends_at = excluded.ends_at,
			vetoed = excluded.vetoed,
			totals = excluded.totals,
			total_votes = excluded.total_votes,
			winner_option_id = excluded.winner_option_id,
			version = excluded.version,
			closed_at = excluded.closed_at
		WHERE (current_round.round_id = excluded.round_id AND current_round.version <= excluded.version)
			OR (current_round.round_id <> excluded.round_id AND current_round.started_at <= excluded.started_at)
	`)

	_, err = d.db.ExecContext(ctx, query,
		currentSlot, dto.ID, dto.Status, dto.Category, dto.StartedAt, dto.EndsAt, dto.Vetoed,
		dto.Totals, dto.TotalVotes, dto.WinnerOptionID, dto.Version, dto.ClosedAt,
	)
	if err != nil {
		return fmt.Errorf("publish current round: %w", err)
	}
	return nil
}

// DeleteRounds removes every round record and the pointer.
func (d *Driver) DeleteRounds(ctx context.Context) error {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM current_round`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM rounds`); err != nil {
		return err
	}
	return tx.Commit()
}
