package domain

import "errors"

var ErrEmptyBackup = errors.New("backup contains no habits and no identities")

// Backup is the portable snapshot of everything the engine reads. Identity ids in
// habits refer to ids inside the same backup.
type Backup struct {
	Habits     []*Habit    `json:"habits"`
	Identities []*Identity `json:"identities"`
}

// Validate checks every record with the same rules as creation and rejects
// habits pointing at identities the backup does not carry.
func (b *Backup) Validate() error {
	if len(b.Habits) == 0 && len(b.Identities) == 0 {
		return ErrEmptyBackup
	}

	known := make(map[int64]bool, len(b.Identities))
	for _, identity := range b.Identities {
		if identity == nil {
			return ErrIdentityNameEmpty
		}
		if err := validateIdentity(identity.Name, identity.Description, identity.Color); err != nil {
			return err
		}
		known[identity.ID] = true
	}

	for _, h := range b.Habits {
		if h == nil {
			return ErrHabitNameEmpty
		}
		if err := validateHabit(h.Name, h.Type, h.TotalDays, h.StartDayIndex, h.LinkedIdentities); err != nil {
			return err
		}
		for _, id := range h.LinkedIdentities {
			if !known[id] {
				return ErrIdentityNotFound
			}
		}
		for _, d := range h.SkippedDays {
			if d < 0 || d >= h.TotalDays {
				return ErrDayOutOfRange
			}
		}
	}

	return nil
}
