package booking

import "time"

// Clock supplies the current instant in the salon's time zone.
type Clock interface {
	Now() time.Time
}

type SystemClock struct {
	Location *time.Location
}

func NewSystemClock(loc *time.Location) SystemClock {
	if loc == nil {
		loc = time.Local
	}
	return SystemClock{Location: loc}
}

func (c SystemClock) Now() time.Time {
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}
	return time.Now().In(loc)
}
