package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/bossygit/vibes-arc-sub000/internal/core/domain"
)

var ErrInvalidFormat = errors.New("format invalide")

// DecodeBackup reads a {habits, identities} document. Any syntax or shape problem
// is reported as ErrInvalidFormat.
func DecodeBackup(r io.Reader) (*domain.Backup, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var backup domain.Backup
	if err := dec.Decode(&backup); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after backup document", ErrInvalidFormat)
	}
	if backup.Habits == nil && backup.Identities == nil {
		return nil, fmt.Errorf("%w: missing habits and identities", ErrInvalidFormat)
	}

	return &backup, nil
}

func EncodeBackup(w io.Writer, backup *domain.Backup) error {
	return WriteJSON(w, backup)
}
