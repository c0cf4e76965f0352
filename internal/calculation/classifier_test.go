package calculation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tolga/terp/internal/calculation"
	"github.com/tolga/terp/internal/model"
)

func punch(kind model.EventKind, hour, minute int) model.PunchEvent {
	return model.PunchEvent{
		EventKind: kind,
		TimeOfDay: time.Date(0, 1, 1, hour, minute, 0, 0, time.UTC),
	}
}

func TestClassify_NoRecords(t *testing.T) {
	totals := calculation.Classify(nil, time.Date(2026, 7, 29, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "no records", totals.Message)
	assert.Zero(t, totals.HoursWorked)
	assert.Empty(t, totals.Intervals)
}

func TestClassify_SingleSimpleDay(t *testing.T) {
	// Wednesday 2026-07-29, [ENTRY 08:00, EXIT 17:00].
	date := time.Date(2026, 7, 29, 0, 0, 0, 0, time.UTC)
	events := []model.PunchEvent{
		punch(model.EventEntry, 8, 0),
		punch(model.EventExit, 17, 0),
	}

	totals := calculation.Classify(events, date)

	assert.Equal(t, 9.0, totals.HoursWorked)
	assert.Equal(t, 8.0, totals.HoursOrdinary)
	assert.Equal(t, 1.0, totals.HoursOvertimeDay)
	assert.Equal(t, 0.0, totals.HoursOvertimeNight)
	assert.Equal(t, 0.0, totals.HoursNightSurcharge)
	assert.Equal(t, 0.0, totals.HoursSunday)
	assert.False(t, totals.IsSunday)
	assert.Len(t, totals.Intervals, 1)
}

func TestClassify_NightShiftWithOvertime(t *testing.T) {
	// [ENTRY 21:00, EXIT 06:00] -> 9 hours, all nocturnal.
	date := time.Date(2026, 7, 29, 0, 0, 0, 0, time.UTC)
	events := []model.PunchEvent{
		punch(model.EventEntry, 21, 0),
		punch(model.EventExit, 6, 0),
	}

	totals := calculation.Classify(events, date)

	assert.Equal(t, 9.0, totals.HoursWorked)
	assert.Equal(t, 8.0, totals.HoursOrdinary)
	assert.Equal(t, 1.0, totals.HoursOvertimeNight)
	assert.Equal(t, 0.0, totals.HoursOvertimeDay)
	assert.Equal(t, 9.0, totals.HoursNightSurcharge)
}

func TestClassify_SplitShift(t *testing.T) {
	// [ENTRY 09:00, EXIT 12:00, ENTRY 13:00, EXIT 18:00] -> 8h, two intervals.
	date := time.Date(2026, 7, 29, 0, 0, 0, 0, time.UTC)
	events := []model.PunchEvent{
		punch(model.EventEntry, 9, 0),
		punch(model.EventExit, 12, 0),
		punch(model.EventEntry, 13, 0),
		punch(model.EventExit, 18, 0),
	}

	totals := calculation.Classify(events, date)

	assert.Equal(t, 8.0, totals.HoursWorked)
	assert.Equal(t, 8.0, totals.HoursOrdinary)
	assert.Equal(t, 0.0, totals.HoursOvertimeDay)
	assert.Equal(t, 0.0, totals.HoursOvertimeNight)
	assert.Len(t, totals.Intervals, 2)
}

func TestClassify_Sunday(t *testing.T) {
	// 2026-08-02 is a Sunday. [ENTRY 10:00, EXIT 16:00] -> 6 Sunday hours.
	date := time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)
	events := []model.PunchEvent{
		punch(model.EventEntry, 10, 0),
		punch(model.EventExit, 16, 0),
	}

	totals := calculation.Classify(events, date)

	assert.True(t, totals.IsSunday)
	assert.Equal(t, 6.0, totals.HoursSunday)
	assert.Equal(t, 6.0, totals.HoursWorked)
}

func TestClassify_OrphanEntry(t *testing.T) {
	date := time.Date(2026, 7, 29, 0, 0, 0, 0, time.UTC)
	events := []model.PunchEvent{
		punch(model.EventEntry, 8, 0),
	}

	totals := calculation.Classify(events, date)

	assert.Equal(t, 0.0, totals.HoursWorked)
	assert.Empty(t, totals.Intervals)
}

func TestClassify_OrderIndependent(t *testing.T) {
	date := time.Date(2026, 7, 29, 0, 0, 0, 0, time.UTC)
	inOrder := []model.PunchEvent{
		punch(model.EventEntry, 9, 0),
		punch(model.EventExit, 12, 0),
		punch(model.EventEntry, 13, 0),
		punch(model.EventExit, 18, 0),
	}
	shuffled := []model.PunchEvent{
		punch(model.EventExit, 18, 0),
		punch(model.EventEntry, 9, 0),
		punch(model.EventExit, 12, 0),
		punch(model.EventEntry, 13, 0),
	}

	assert.Equal(t, calculation.Classify(inOrder, date), calculation.Classify(shuffled, date))
}
