package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/bossygit/vibes-arc-sub000/internal/core/domain"

	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed schema.sql
var schemaSQL string

// EnsureSchema creates the tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

var _ domain.HabitRepository = (*PostgresHabitRepository)(nil)

type PostgresHabitRepository struct {
	db sqlx.ExtContext
}

// NewPostgresHabitRepository accepts a *sqlx.DB or a *sqlx.Tx.
func NewPostgresHabitRepository(db sqlx.ExtContext) *PostgresHabitRepository {
	return &PostgresHabitRepository{db: db}
}

type habitRow struct {
	ID               int64         `db:"id"`
	Name             string        `db:"name"`
	Type             string        `db:"type"`
	TotalDays        int           `db:"total_days"`
	StartDayIndex    int           `db:"start_day_index"`
	LinkedIdentities pq.Int64Array `db:"linked_identities"`
	Progress         pq.BoolArray  `db:"progress"`
	SkippedDays      pq.Int64Array `db:"skipped_days"`
	CreatedAt        time.Time     `db:"created_at"`
	UpdatedAt        time.Time     `db:"updated_at"`
}

func toHabitRow(h *domain.Habit) habitRow {
	skipped := make(pq.Int64Array, 0, len(h.SkippedDays))
	for _, d := range h.SkippedDays {
		skipped = append(skipped, int64(d))
	}

	linked := pq.Int64Array(h.LinkedIdentities)
	if linked == nil {
		linked = pq.Int64Array{}
	}
	progress := pq.BoolArray(h.Progress)
	if progress == nil {
		progress = pq.BoolArray{}
	}

	return habitRow{
		ID:               h.ID,
		Name:             h.Name,
		Type:             h.Type,
		TotalDays:        h.TotalDays,
		StartDayIndex:    h.StartDayIndex,
		LinkedIdentities: linked,
		Progress:         progress,
		SkippedDays:      skipped,
		CreatedAt:        h.CreatedAt,
		UpdatedAt:        h.UpdatedAt,
	}
}

func (row habitRow) toDomain() *domain.Habit {
	h := &domain.Habit{
		ID:               row.ID,
		Name:             row.Name,
		Type:             row.Type,
		TotalDays:        row.TotalDays,
		StartDayIndex:    row.StartDayIndex,
		LinkedIdentities: []int64(row.LinkedIdentities),
		Progress:         []bool(row.Progress),
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}
	if h.LinkedIdentities == nil {
		h.LinkedIdentities = []int64{}
	}
	if h.Progress == nil {
		h.Progress = []bool{}
	}
	for _, d := range row.SkippedDays {
		h.SkippedDays = append(h.SkippedDays, int(d))
	}
	h.NormalizeSkippedDays()
	return h
}

const habitColumns = `id, name, type, total_days, start_day_index,
        linked_identities, progress, skipped_days, created_at, updated_at`

func (r *PostgresHabitRepository) Create(ctx context.Context, h *domain.Habit) error {
	query := `
        INSERT INTO habits (
            name, type, total_days, start_day_index,
            linked_identities, progress, skipped_days, created_at, updated_at
        ) VALUES (
            :name, :type, :total_days, :start_day_index,
            :linked_identities, :progress, :skipped_days, :created_at, :updated_at
        ) RETURNING id`

	rows, err := sqlx.NamedQueryContext(ctx, r.db, query, toHabitRow(h))
	if err != nil {
		return fmt.Errorf("failed to insert habit: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return fmt.Errorf("failed to insert habit: %w", err)
		}
		return errors.New("failed to insert habit: no id returned")
	}

	return rows.Scan(&h.ID)
}

func (r *PostgresHabitRepository) GetByID(ctx context.Context, id int64) (*domain.Habit, error) {
	var row habitRow
	query := `SELECT ` + habitColumns + ` FROM habits WHERE id = $1`

	if err := sqlx.GetContext(ctx, r.db, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrHabitNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}

	return row.toDomain(), nil
}

func (r *PostgresHabitRepository) List(ctx context.Context) ([]*domain.Habit, error) {
	var rows []habitRow
	query := `SELECT ` + habitColumns + ` FROM habits ORDER BY id ASC`

	if err := sqlx.SelectContext(ctx, r.db, &rows, query); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}

	habits := make([]*domain.Habit, 0, len(rows))
	for _, row := range rows {
		habits = append(habits, row.toDomain())
	}
	return habits, nil
}

func (r *PostgresHabitRepository) Update(ctx context.Context, h *domain.Habit) error {
	query := `
        UPDATE habits SET
            name = :name, type = :type, total_days = :total_days,
            start_day_index = :start_day_index, linked_identities = :linked_identities,
            progress = :progress, skipped_days = :skipped_days, updated_at = :updated_at
        WHERE id = :id`

	res, err := sqlx.NamedExecContext(ctx, r.db, query, toHabitRow(h))
	if err != nil {
		return fmt.Errorf("update query failed: %w", err)
	}

	return expectOneRow(res, domain.ErrHabitNotFound)
}

func (r *PostgresHabitRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM habits WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete query failed: %w", err)
	}

	return expectOneRow(res, domain.ErrHabitNotFound)
}

func (r *PostgresHabitRepository) UnlinkIdentity(ctx context.Context, identityID int64) error {
	query := `
        UPDATE habits
        SET linked_identities = array_remove(linked_identities, $1), updated_at = NOW()
        WHERE $1 = ANY(linked_identities)`

	if _, err := r.db.ExecContext(ctx, query, identityID); err != nil {
		return fmt.Errorf("unlink identity failed: %w", err)
	}
	return nil
}

func expectOneRow(res sql.Result, notFound error) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
