package datekey

import (
	"fmt"
	"time"

	"github.com/julianstephens/dayplan/internal/constants"
)

// Key identifies a single calendar day. It carries no time-of-day and no
// timezone once captured: two keys are equal iff year, month and day match.
type Key struct {
	Year  int
	Month time.Month
	Day   int
}

// FromTime truncates an instant to its calendar day in the instant's location.
func FromTime(t time.Time) Key {
	return Key{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Today returns the key for the current calendar day in the given location.
// A nil location means the system's local timezone.
func Today(loc *time.Location) Key {
	if loc == nil {
		loc = time.Local
	}
	return FromTime(time.Now().In(loc))
}

// Parse parses a YYYY-MM-DD string.
func Parse(s string) (Key, error) {
	t, err := time.Parse(constants.DateFormat, s)
	if err != nil {
		return Key{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return FromTime(t), nil
}

// String returns the canonical YYYY-MM-DD form, which is also the
// lexicographically sortable filename stem for the plan store.
func (k Key) String() string {
	return k.Time(time.UTC).Format(constants.DateFormat)
}

// Time returns local midnight of the day in the given location.
func (k Key) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(k.Year, k.Month, k.Day, 0, 0, 0, 0, loc)
}

// IsZero reports whether the key is the zero value.
func (k Key) IsZero() bool {
	return k == Key{}
}

// Compare orders keys by (year, month, day). It returns a negative number
// when k sorts before other, zero when equal, positive otherwise.
func (k Key) Compare(other Key) int {
	if k.Year != other.Year {
		return k.Year - other.Year
	}
	if k.Month != other.Month {
		return int(k.Month) - int(other.Month)
	}
	return k.Day - other.Day
}

// Before reports whether k is strictly earlier than other.
func (k Key) Before(other Key) bool {
	return k.Compare(other) < 0
}

// WithMonth returns the key moved to the given month of the same year,
// clamping the day to the last valid day of the target month (Jan 31 ->
// Feb 28, or Feb 29 in leap years).
func (k Key) WithMonth(month time.Month) Key {
	day := k.Day
	if last := daysIn(k.Year, month); day > last {
		day = last
	}
	return Key{Year: k.Year, Month: month, Day: day}
}

// Weekday returns the day of the week.
func (k Key) Weekday() time.Weekday {
	return k.Time(time.UTC).Weekday()
}

func daysIn(year int, month time.Month) int {
	// Day 0 of the next month normalizes to the last day of this month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MarshalText encodes the key as YYYY-MM-DD for use in JSON documents.
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a YYYY-MM-DD string.
func (k *Key) UnmarshalText(data []byte) error {
	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
