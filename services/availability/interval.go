package availability

import (
	"time"

	"staybook/models"
)

// Interval is a half-open date range [CheckIn, CheckOut).
type Interval struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// NewInterval normalizes both ends to start-of-day in loc and requires the
// check-out to fall strictly after the check-in.
func NewInterval(checkIn, checkOut time.Time, loc *time.Location) (Interval, error) {
	if checkIn.IsZero() || checkOut.IsZero() {
		return Interval{}, invalidRange("dates are required")
	}
	iv := Interval{
		CheckIn:  StartOfDay(checkIn, loc),
		CheckOut: StartOfDay(checkOut, loc),
	}
	if !iv.CheckOut.After(iv.CheckIn) {
		return Interval{}, invalidRange("check-out must be after check-in")
	}
	return iv, nil
}

// Of returns the stored interval of a booking.
func Of(b models.Booking) Interval {
	return Interval{CheckIn: b.CheckInDate, CheckOut: b.CheckOutDate}
}

// Overlaps reports whether two half-open intervals share at least one instant.
// Touching intervals (one ends where the other starts) do not overlap.
func (i Interval) Overlaps(o Interval) bool {
	return i.CheckIn.Before(o.CheckOut) && o.CheckIn.Before(i.CheckOut)
}

// StartOfDay strips the time of day from t as observed in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
