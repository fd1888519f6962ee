package survey

import (
	"errors"
	"time"

	"github.com/surveyportal/surveyportal/internal/model"
)

// Status is the temporal state of a survey.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusActive     Status = "active"
	StatusExpired    Status = "expired"
)

const combinedLayout = "2006-01-02 15:04"

var errEmptyInstant = errors.New("empty date or time")

// CombineDateTime builds an instant from a "2006-01-02" date and a "15:04"
// clock. Dates arriving as full ISO timestamps are truncated to the date
// part; clock values longer than "HH:MM" are truncated as well.
func CombineDateTime(date, clock string) (time.Time, error) {
	if date == "" || clock == "" {
		return time.Time{}, errEmptyInstant
	}
	if len(date) > 10 {
		date = date[:10]
	}
	if len(clock) > 5 {
		clock = clock[:5]
	}
	return time.ParseInLocation(combinedLayout, date+" "+clock, time.Local)
}

// ClassifyAt computes the survey status at the given instant. The manual
// force-active override wins unconditionally; unparseable window bounds fail
// safe toward expired.
func ClassifyAt(s *model.Survey, now time.Time) Status {
	if s == nil {
		return StatusExpired
	}
	if s.ForceActive {
		return StatusActive
	}

	start, err := CombineDateTime(s.StartDate, s.StartTime)
	if err != nil {
		return StatusExpired
	}
	finish, err := CombineDateTime(s.FinishDate, s.FinishTime)
	if err != nil {
		return StatusExpired
	}

	switch {
	case now.Before(start):
		return StatusNotStarted
	case now.After(finish):
		return StatusExpired
	default:
		return StatusActive
	}
}

// Classify computes the survey status at the current time.
func Classify(s *model.Survey) Status {
	return ClassifyAt(s, time.Now())
}

// WindowExpiredAt reports whether the survey's date window has passed its
// finish instant, ignoring the force-active override. The lazy expiry sweep
// uses this to flip the stored open flag.
func WindowExpiredAt(s *model.Survey, now time.Time) bool {
	finish, err := CombineDateTime(s.FinishDate, s.FinishTime)
	if err != nil {
		return false
	}
	return now.After(finish)
}
