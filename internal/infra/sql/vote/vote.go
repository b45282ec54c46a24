package infra_sql_vote

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/humanbelnik/jukebox/internal/model"
	"github.com/jmoiron/sqlx"
)

type Driver struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Driver {
	return &Driver{db: db}
}

type voteDTO struct {
	RoundID       string `db:"round_id"`
	ParticipantID string `db:"participant_id"`
	OptionID      string `db:"option_id"`
	CastAt        int64  `db:"cast_at"`
}

func (d voteDTO) toModel() model.Vote {
	return model.Vote{
		RoundID:       d.RoundID,
		ParticipantID: d.ParticipantID,
		OptionID:      d.OptionID,
		CastAt:        time.UnixMilli(d.CastAt).UTC(),
	}
}

// CreateVote inserts v only if no vote exists for the participant in that
// round and the round is still open. The existing vote is never replaced.
// On Postgres the insert share-locks the round row, so it either commits
// before a close counts the votes or sees the round closed.
func (d *Driver) CreateVote(ctx context.Context, v model.Vote) (model.Vote, bool, error) {
	lock := ""
	if d.db.DriverName() == "postgres" {
		lock = " FOR SHARE"
	}
	query := d.db.Rebind(`
		INSERT INTO votes (round_id, participant_id, option_id, cast_at)
		SELECT ?, ?, ?, CAST(? AS BIGINT)
		WHERE EXISTS (SELECT 1 FROM rounds WHERE id = ? AND status = ?` + lock + `)
		ON CONFLICT (round_id, participant_id) DO NOTHING
	`)

	result, err := d.db.ExecContext(ctx, query,
		v.RoundID, v.ParticipantID, v.OptionID, v.CastAt.UnixMilli(),
		v.RoundID, string(model.StatusOpen),
	)
	if err != nil {
		return model.Vote{}, false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return model.Vote{}, false, err
	}
	if rowsAffected > 0 {
		v.CastAt = time.UnixMilli(v.CastAt.UnixMilli()).UTC()
		return v, true, nil
	}

	existing, err := d.LoadVote(ctx, v.RoundID, v.ParticipantID)
	if errors.Is(err, model.ErrNotFound) {
		// Nothing stored and nothing inserted: the round closed first.
		return model.Vote{}, false, model.ErrRoundNotOpen
	}
	if err != nil {
		return model.Vote{}, false, err
	}
	return existing, false, nil
}

func (d *Driver) LoadVote(ctx context.Context, roundID model.RoundID, participantID model.ParticipantID) (model.Vote, error) {
	var dto voteDTO

	query := d.db.Rebind(`
		SELECT round_id, participant_id, option_id, cast_at
		FROM votes
		WHERE round_id = ? AND participant_id = ?
	`)

	if err := d.db.GetContext(ctx, &dto, query, roundID, participantID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Vote{}, model.ErrNotFound
		}
		return model.Vote{}, err
	}
	return dto.toModel(), nil
}

func (d *Driver) ListVotes(ctx context.Context, roundID model.RoundID) ([]model.Vote, error) {
	var dtos []voteDTO

	query := d.db.Rebind(`
		SELECT round_id, participant_id, option_id, cast_at
		FROM votes
		WHERE round_id = ?
		ORDER BY cast_at, participant_id
	`)

	if err := d.db.SelectContext(ctx, &dtos, query, roundID); err != nil {
		return nil, err
	}

	votes := make([]model.Vote, 0, len(dtos))
	for _, dto := range dtos {
		votes = append(votes, dto.toModel())
	}
	return votes, nil
}

func (d *Driver) DeleteVotes(ctx context.Context) error {
	_, err := d.db.ExecContext(ctx, `DELETE FROM votes`)
	return err
}
