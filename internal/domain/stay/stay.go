// Package stay holds the date arithmetic shared by availability, pricing and
// refunds. Stays are half-open intervals [checkIn, checkOut) of UTC midnights,
// so a checkout day can be sold again as the next guest's checkin day.
package stay

import (
	"errors"
	"fmt"
	"time"
)

const (
	dateLayout = "2006-01-02"
	day        = 24 * time.Hour
)

var (
	ErrInvalidDate = errors.New("stay: invalid date")
	ErrInvalidStay = errors.New("check-out must be later than check-in")
)

// ToDateOnly parses a "YYYY-MM-DD" value as UTC midnight and anything else as
// an RFC3339 timestamp. The result never depends on the process time zone.
func ToDateOnly(value string) (time.Time, error) {
	if len(value) == len(dateLayout) {
		t, err := time.ParseInLocation(dateLayout, value, time.UTC)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
		}
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return t.UTC(), nil
}

// Nights is ceil((checkOut - checkIn) / 24h).
func Nights(checkIn, checkOut time.Time) int {
	d := checkOut.Sub(checkIn)
	n := d / day
	if d%day > 0 {
		n++
	}
	return int(n)
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Validate returns the number of nights or ErrInvalidStay when it is not positive.
func Validate(checkIn, checkOut time.Time) (int, error) {
	if checkIn.IsZero() || checkOut.IsZero() {
		return 0, ErrInvalidStay
	}
	nights := Nights(checkIn, checkOut)
	if nights <= 0 {
		return 0, ErrInvalidStay
	}
	return nights, nil
}

// ValidateStrings parses both ends with ToDateOnly before validating.
func ValidateStrings(checkIn, checkOut string) (Date, Date, int, error) {
	in, err := ParseDate(checkIn)
	if err != nil {
		return Date{}, Date{}, 0, ErrInvalidStay
	}
	out, err := ParseDate(checkOut)
	if err != nil {
		return Date{}, Date{}, 0, ErrInvalidStay
	}
	nights, err := Validate(in.Time(), out.Time())
	if err != nil {
		return Date{}, Date{}, 0, err
	}
	return in, out, nights, nil
}
