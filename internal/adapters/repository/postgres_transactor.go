package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	log "github.com/sirupsen/logrus"

	"github.com/bossygit/vibes-arc-sub000/internal/core/domain"
)

var _ domain.Transactor = (*PostgresTransactor)(nil)

type PostgresTransactor struct {
	db *sqlx.DB
}

func NewPostgresTransactor(db *sqlx.DB) *PostgresTransactor {
	return &PostgresTransactor{db: db}
}

// WithinTx hands fn repositories bound to one transaction. The transaction is
// committed when fn succeeds and rolled back otherwise.
func (t *PostgresTransactor) WithinTx(ctx context.Context, fn func(domain.HabitRepository, domain.IdentityRepository) error) error {
	tx, err := t.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("repository: begin transaction failed: %w", err)
	}

	if err := fn(NewPostgresHabitRepository(tx), NewPostgresIdentityRepository(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.WithError(rbErr).Error("repository: rollback failed")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("repository: commit failed: %w", err)
	}
	return nil
}
