package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/bossygit/vibes-arc-sub000/internal/core/domain"
)

const uniqueViolation = "23505"

var _ domain.IdentityRepository = (*PostgresIdentityRepository)(nil)

type PostgresIdentityRepository struct {
	db sqlx.ExtContext
}

func NewPostgresIdentityRepository(db sqlx.ExtContext) *PostgresIdentityRepository {
	return &PostgresIdentityRepository{db: db}
}

type identityRow struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Color       string    `db:"color"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (row identityRow) toDomain() *domain.Identity {
	return &domain.Identity{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Color:       row.Color,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

// sqlState extracts the SQLSTATE code from either driver's error type.
func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func (r *PostgresIdentityRepository) Create(ctx context.Context, identity *domain.Identity) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `
		INSERT INTO identities (name, description, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRowxContext(ctx, query,
		identity.Name,
		identity.Description,
		identity.Color,
		identity.CreatedAt,
		identity.UpdatedAt,
	).Scan(&identity.ID)

	if err != nil {
		if sqlState(err) == uniqueViolation {
			return domain.ErrIdentityExists
		}
		return fmt.Errorf("repository: create identity failed: %w", err)
	}

	return nil
}

func (r *PostgresIdentityRepository) GetByID(ctx context.Context, id int64) (*domain.Identity, error) {
	var row identityRow
	query := `SELECT id, name, description, color, created_at, updated_at FROM identities WHERE id = $1`

	if err := sqlx.GetContext(ctx, r.db, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("repository: get identity failed: %w", err)
	}

	return row.toDomain(), nil
}

func (r *PostgresIdentityRepository) List(ctx context.Context) ([]*domain.Identity, error) {
	var rows []identityRow
	query := `SELECT id, name, description, color, created_at, updated_at FROM identities ORDER BY id ASC`

	if err := sqlx.SelectContext(ctx, r.db, &rows, query); err != nil {
		return nil, fmt.Errorf("repository: list identities failed: %w", err)
	}

	identities := make([]*domain.Identity, 0, len(rows))
	for _, row := range rows {
		identities = append(identities, row.toDomain())
	}
	return identities, nil
}

func (r *PostgresIdentityRepository) Update(ctx context.Context, identity *domain.Identity) error {
	query := `
		UPDATE identities
		SET name = $1, description = $2, color = $3, updated_at = $4
		WHERE id = $5
	`

	res, err := r.db.ExecContext(ctx, query,
		identity.Name, identity.Description, identity.Color, identity.UpdatedAt, identity.ID)
	if err != nil {
		if sqlState(err) == uniqueViolation {
			return domain.ErrIdentityExists
		}
		return fmt.Errorf("repository: update identity failed: %w", err)
	}

	return expectOneRow(res, domain.ErrIdentityNotFound)
}

func (r *PostgresIdentityRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM identities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repository: delete identity failed: %w", err)
	}

	return expectOneRow(res, domain.ErrIdentityNotFound)
}
