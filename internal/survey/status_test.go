package survey

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/surveyportal/surveyportal/internal/model"
)

func windowSurvey() *model.Survey {
	return &model.Survey{
		StartDate:  "2025-03-10",
		StartTime:  "09:00",
		FinishDate: "2025-03-10",
		FinishTime: "18:00",
	}
}

func at(hour, minute int) time.Time {
	return time.Date(2025, 3, 10, hour, minute, 0, 0, time.Local)
}

func TestClassifyAt_WindowPhases(t *testing.T) {
	s := windowSurvey()

	assert.Equal(t, StatusNotStarted, ClassifyAt(s, at(7, 0)))
	assert.Equal(t, StatusActive, ClassifyAt(s, at(9, 0)))
	assert.Equal(t, StatusActive, ClassifyAt(s, at(12, 0)))
	assert.Equal(t, StatusActive, ClassifyAt(s, at(18, 0)))
	assert.Equal(t, StatusExpired, ClassifyAt(s, at(19, 0)))
}

func TestClassifyAt_ForceActiveOverridesEverything(t *testing.T) {
	s := windowSurvey()
	s.ForceActive = true
	assert.Equal(t, StatusActive, ClassifyAt(s, at(7, 0)))
	assert.Equal(t, StatusActive, ClassifyAt(s, at(19, 0)))

	// Even a survey with garbage window data is active when forced.
	broken := &model.Survey{StartDate: "not a date", FinishDate: "???", ForceActive: true}
	assert.Equal(t, StatusActive, ClassifyAt(broken, at(12, 0)))
}

func TestClassifyAt_UnparseableWindowIsExpired(t *testing.T) {
	cases := []model.Survey{
		{StartDate: "garbage", StartTime: "09:00", FinishDate: "2025-03-10", FinishTime: "18:00"},
		{StartDate: "2025-03-10", StartTime: "09:00", FinishDate: "2025-99-99", FinishTime: "18:00"},
		{StartDate: "2025-03-10", StartTime: "", FinishDate: "2025-03-10", FinishTime: "18:00"},
		{},
	}
	for i := range cases {
		assert.Equal(t, StatusExpired, ClassifyAt(&cases[i], at(12, 0)), "case %d", i)
	}
}

func TestClassifyAt_NilSurvey(t *testing.T) {
	assert.Equal(t, StatusExpired, ClassifyAt(nil, at(12, 0)))
}

func TestClassifyAt_IsPure(t *testing.T) {
	s := windowSurvey()
	before := *s
	ClassifyAt(s, at(12, 0))
	assert.Equal(t, before, *s)
}

func TestCombineDateTime(t *testing.T) {
	instant, err := CombineDateTime("2025-03-10", "09:30")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 9, 30, 0, 0, time.Local), instant)

	// ISO timestamps and long clock values are truncated, not rejected.
	instant, err = CombineDateTime("2025-03-10T00:00:00.000Z", "09:30:45")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 9, 30, 0, 0, time.Local), instant)

	_, err = CombineDateTime("", "09:30")
	assert.Error(t, err)
	_, err = CombineDateTime("2025-03-10", "")
	assert.Error(t, err)
	_, err = CombineDateTime("10.03.2025", "09:30")
	assert.Error(t, err)
}

func TestWindowExpiredAt(t *testing.T) {
	s := windowSurvey()
	assert.False(t, WindowExpiredAt(s, at(12, 0)))
	assert.True(t, WindowExpiredAt(s, at(19, 0)))

	// The sweep flips the stored flag regardless of the override; the
	// classifier still reports forced surveys active.
	s.ForceActive = true
	assert.True(t, WindowExpiredAt(s, at(19, 0)))
	assert.Equal(t, StatusActive, ClassifyAt(s, at(19, 0)))

	// Unparseable finish never expires via the sweep.
	broken := &model.Survey{FinishDate: "garbage", FinishTime: "18:00"}
	assert.False(t, WindowExpiredAt(broken, at(19, 0)))
}
