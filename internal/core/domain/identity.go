package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

var (
	ErrIdentityNameEmpty   = errors.New("identity name cannot be empty")
	ErrIdentityNameTooLong = errors.New("identity name is too long (max 100 chars)")
	ErrIdentityDescTooLong = errors.New("identity description is too long (max 500 chars)")
	ErrInvalidColor        = errors.New("invalid color format (must be #RRGGBB)")
)

var colorRegex = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

const MaxDescLen = 500

// Identity is a persona that habits can support. Habits reference it by id only.
type Identity struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func validateIdentity(name, desc, color string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrIdentityNameEmpty
	}
	if len(trimmed) > MaxNameLen {
		return ErrIdentityNameTooLong
	}
	if len(strings.TrimSpace(desc)) > MaxDescLen {
		return ErrIdentityDescTooLong
	}
	if color != "" && !colorRegex.MatchString(color) {
		return ErrInvalidColor
	}
	return nil
}

func NewIdentity(name, description, color string) (*Identity, error) {
	if err := validateIdentity(name, description, color); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	return &Identity{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Color:       color,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (i *Identity) Update(name, description, color string) error {
	if err := validateIdentity(name, description, color); err != nil {
		return err
	}

	i.Name = strings.TrimSpace(name)
	i.Description = strings.TrimSpace(description)
	i.Color = color
	i.UpdatedAt = time.Now().UTC()
	return nil
}
