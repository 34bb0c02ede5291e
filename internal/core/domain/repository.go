package domain

import (
	"context"
	"errors"
)

var (
	ErrHabitNotFound    = errors.New("habit not found")
	ErrIdentityNotFound = errors.New("identity not found")
	ErrIdentityExists   = errors.New("an identity with this name already exists")
)

type HabitRepository interface {
	// Create persists a new habit and assigns its ID.
	Create(ctx context.Context, habit *Habit) error

	// GetByID retrieves a habit by its identifier.
	GetByID(ctx context.Context, id int64) (*Habit, error)

	// List returns every habit ordered by ID. This is the snapshot the
	// analytics engine reads.
	List(ctx context.Context) ([]*Habit, error)

	// Update replaces the stored state of an existing habit.
	Update(ctx context.Context, habit *Habit) error

	// Delete permanently removes a habit and its identity links.
	Delete(ctx context.Context, id int64) error

	// UnlinkIdentity removes identityID from every habit that references it.
	UnlinkIdentity(ctx context.Context, identityID int64) error
}

type IdentityRepository interface {
	Create(ctx context.Context, identity *Identity) error
	GetByID(ctx context.Context, id int64) (*Identity, error)
	List(ctx context.Context) ([]*Identity, error)
	Update(ctx context.Context, identity *Identity) error
	Delete(ctx context.Context, id int64) error
}

// Transactor runs fn against repositories whose writes commit together, or not
// at all when fn returns an error.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(habits HabitRepository, identities IdentityRepository) error) error
}
