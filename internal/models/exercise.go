package models

import "time"

// DateLayout is the calendar rendering used on the wire for exercise dates,
// e.g. "Mon Jan 01 2024".
const DateLayout = "Mon Jan 02 2006"

// Exercise is a single logged exercise event. Username is a snapshot of the
// owning user's name taken at write time, not a live reference. Records are
// immutable once created.
type Exercise struct {
	ID          string
	UserID      string
	Username    string
	Description string
	Duration    int
	Date        time.Time
	CreatedAt   time.Time
}
