package calculation

import (
	"math"
	"sort"
	"time"

	"github.com/tolga/terp/internal/model"
	"github.com/tolga/terp/internal/timeutil"
)

// Interval is one paired ENTRY/EXIT span within a single day.
type Interval struct {
	EntryMinutes int
	ExitMinutes  int
	TotalHours   float64
	NightHours   float64
	DayHours     float64
}

// DayTotals is the category breakdown for one employee on one date.
type DayTotals struct {
	IsSunday            bool
	HoursWorked         float64
	HoursOrdinary       float64
	HoursOvertimeDay    float64
	HoursOvertimeNight  float64
	HoursNightSurcharge float64
	HoursSunday         float64
	Intervals           []Interval
	Message             string
}

// JornadaOrdinaria is the ordinary workday length, in hours.
const JornadaOrdinaria = 8.0

// Classify pairs ENTRY/EXIT punches for one (employee, date) and
// splits the summed hours into ordinary, overtime-diurnal,
// overtime-nocturnal, night-surcharge and Sunday categories.
//
// Events must already be scoped to a single employee and calendar
// date; Classify sorts them by time-of-day before pairing so input
// order does not affect the result.
func Classify(events []model.PunchEvent, date time.Time) DayTotals {
	if len(events) == 0 {
		return DayTotals{IsSunday: timeutil.IsSunday(date), Message: "no records"}
	}

	sorted := make([]model.PunchEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return timeutil.TimeToMinutes(sorted[i].TimeOfDay) < timeutil.TimeToMinutes(sorted[j].TimeOfDay)
	})

	intervals := pairEntriesAndExits(sorted)

	var hoursWorked, nightMinutesTotal float64
	for _, iv := range intervals {
		hoursWorked += iv.TotalHours
		nightMinutesTotal += iv.NightHours * 60
	}

	totals := DayTotals{
		IsSunday:    timeutil.IsSunday(date),
		HoursWorked: round2(hoursWorked),
		Intervals:   intervals,
	}

	totals.HoursOrdinary = round2(minFloat(hoursWorked, JornadaOrdinaria))
	overtime := maxFloat(0, hoursWorked-JornadaOrdinaria)

	if overtime > 0 && hoursWorked > 0 {
		nightRatio := (nightMinutesTotal / 60) / hoursWorked
		totals.HoursOvertimeNight = round2(overtime * nightRatio)
		totals.HoursOvertimeDay = round2(overtime - totals.HoursOvertimeNight)
	}

	totals.HoursNightSurcharge = round2(nightMinutesTotal / 60)

	if totals.IsSunday {
		totals.HoursSunday = totals.HoursWorked
	}

	return totals
}

// pairEntriesAndExits walks time-ordered events, pairing each ENTRY
// with the first following EXIT and resuming after it. Orphan ENTRYs
// with no following EXIT, and orphan EXITs with no preceding ENTRY,
// are dropped silently — they surface as anomalies via the
// employees-without-exit query, not here.
func pairEntriesAndExits(sorted []model.PunchEvent) []Interval {
	var intervals []Interval
	for i := 0; i < len(sorted); i++ {
		if sorted[i].EventKind != model.EventEntry {
			continue
		}
		for j := i + 1; j < len(sorted); j++ {
			if sorted[j].EventKind == model.EventExit {
				entry := timeutil.TimeToMinutes(sorted[i].TimeOfDay)
				exit := timeutil.TimeToMinutes(sorted[j].TimeOfDay)

				hours, err := timeutil.IntervalHours(entry, exit)
				if err != nil {
					i = j
					break
				}
				nightMinutes := timeutil.NocturnalMinutes(entry, exit)

				intervals = append(intervals, Interval{
					EntryMinutes: entry,
					ExitMinutes:  exit,
					TotalHours:   round2(hours),
					NightHours:   round2(float64(nightMinutes) / 60),
					DayHours:     round2(hours - float64(nightMinutes)/60),
				})
				i = j
				break
			}
		}
	}
	return intervals
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
