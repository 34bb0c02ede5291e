package domain

import "time"

const ISODate = "2006-01-02"

// Calendar maps calendar dates to integer day offsets from a fixed epoch.
type Calendar struct {
	epoch time.Time
	loc   *time.Location
}

func NewCalendar(epoch time.Time, loc *time.Location) Calendar {
	if loc == nil {
		loc = time.UTC
	}
	e := epoch.In(loc)
	return Calendar{
		epoch: time.Date(e.Year(), e.Month(), e.Day(), 0, 0, 0, 0, loc),
		loc:   loc,
	}
}

func (c Calendar) Epoch() time.Time {
	return c.epoch
}

func (c Calendar) Location() *time.Location {
	if c.loc == nil {
		return time.UTC
	}
	return c.loc
}

// DateForDayIndex returns local midnight of the i-th day after the epoch.
// Negative indices resolve to days before the epoch.
func (c Calendar) DateForDayIndex(i int) time.Time {
	return c.epoch.AddDate(0, 0, i)
}

// DayIndexForDate returns the number of whole local days between the epoch and t.
// The difference is taken on civil dates so DST transitions never shift the index.
func (c Calendar) DayIndexForDate(t time.Time) int {
	local := t.In(c.Location())
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	epoch := time.Date(c.epoch.Year(), c.epoch.Month(), c.epoch.Day(), 0, 0, 0, 0, time.UTC)

	return int(day.Sub(epoch).Hours() / 24)
}

func (c Calendar) ISO(i int) string {
	return c.DateForDayIndex(i).Format(ISODate)
}
