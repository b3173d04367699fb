package attendance

import (
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"

	// InvalidTimes is stored as the duration when check-out is not after check-in.
	InvalidTimes = "Invalid times"

	lateCutoffHour = 12
)

// RecordID derives the one-per-day key of an attendance record.
func RecordID(employeeID string, date string) string {
	return employeeID + "-" + date
}

// StatusAt applies the late cutoff: strictly after local noon is Late.
func StatusAt(t time.Time) Status {
	cutoff := time.Date(t.Year(), t.Month(), t.Day(), lateCutoffHour, 0, 0, 0, t.Location())
	if t.After(cutoff) {
		return StatusLate
	}
	return StatusPresent
}

// ParseClock combines a YYYY-MM-DD date and an HH:mm:ss time into a timestamp in loc.
func ParseClock(date string, clock string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+clock, loc)
}

// StatusForCheckIn derives Present/Late from a recorded check-in time.
func StatusForCheckIn(date string, checkIn string, loc *time.Location) (Status, error) {
	t, err := ParseClock(date, checkIn, loc)
	if err != nil {
		return "", err
	}
	return StatusAt(t), nil
}

// CalculateTotalHours returns "{h}h {m}m" for the whole minutes between
// check-in and check-out, or InvalidTimes when either is unparsable or
// check-out is not strictly after check-in.
func CalculateTotalHours(checkIn string, checkOut string, date string, loc *time.Location) string {
	in, err := ParseClock(date, checkIn, loc)
	if err != nil {
		return InvalidTimes
	}
	out, err := ParseClock(date, checkOut, loc)
	if err != nil {
		return InvalidTimes
	}
	if !out.After(in) {
		return InvalidTimes
	}

	minutes := int(out.Sub(in) / time.Minute)
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
