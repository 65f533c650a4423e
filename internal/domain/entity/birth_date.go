package entity

import "time"

// Layouts accepted and produced for birth dates.
const (
	BirthDateLayout        = "2006-01-02"
	BirthDateCompactLayout = "20060102"
)

var earliestBirthDate = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// BirthDate is a calendar date between 1900-01-01 and today, inclusive.
// Only the year, month and day of the input are kept.
type BirthDate struct {
	value time.Time
}

func NewBirthDate(value time.Time) (BirthDate, error) {
	return newBirthDate(value, time.Now())
}

func newBirthDate(value, now time.Time) (BirthDate, error) {
	if value.IsZero() {
		return BirthDate{}, invalid("birthday", "birthday is required")
	}
	d := dateOf(value)
	if d.After(dateOf(now)) {
		return BirthDate{}, invalid("birthday", "birthday cannot be in the future")
	}
	if d.Before(earliestBirthDate) {
		return BirthDate{}, invalid("birthday", "birthday must be on or after 1900-01-01")
	}
	return BirthDate{value: d}, nil
}

// ParseBirthDate parses a yyyy-MM-dd string and validates it.
func ParseBirthDate(raw string) (BirthDate, error) {
	if raw == "" {
		return BirthDate{}, invalid("birthday", "birthday is required")
	}
	t, err := time.Parse(BirthDateLayout, raw)
	if err != nil {
		return BirthDate{}, invalid("birthday", "birthday must use the yyyy-MM-dd format")
	}
	return NewBirthDate(t)
}

// Time returns the date at midnight UTC.
func (b BirthDate) Time() time.Time { return b.value }

// Format renders the date with a time layout.
func (b BirthDate) Format(layout string) string { return b.value.Format(layout) }

func (b BirthDate) String() string { return b.value.Format(BirthDateLayout) }

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
