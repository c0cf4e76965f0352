package calculation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tolga/terp/internal/model"
	"github.com/tolga/terp/internal/timeutil"
)

// EventSource fetches punch events for one employee over an inclusive
// date range. The query layer implements this; the aggregator does
// not know how the rows were obtained.
type EventSource interface {
	PunchesForEmployeeInRange(ctx context.Context, employeeID uuid.UUID, start, end time.Time) ([]model.PunchEvent, error)
}

// PeriodTotals is the sum of per-day DayTotals over an inclusive date
// range for one employee, plus its monetary Valuation.
type PeriodTotals struct {
	Employee       model.Employee
	Days           map[string]DayTotals // keyed by "2006-01-02"
	DaysWorked     int
	HoursWorked    float64
	Ordinary       float64
	OvertimeDay    float64
	OvertimeNight  float64
	NightSurcharge float64
	Sunday         float64
	Valuation      Valuation
}

// WeekReport aggregates one employee's attendance over the Monday-
// Sunday week containing reference, and flags exceso_semanal when
// total worked hours exceed 48.
func WeekReport(ctx context.Context, source EventSource, employee model.Employee, reference time.Time, rates Rates) (PeriodTotals, bool, error) {
	start, end := timeutil.WeekRange(reference)
	totals, err := periodReport(ctx, source, employee, start, end, rates)
	if err != nil {
		return PeriodTotals{}, false, err
	}
	return totals, totals.HoursWorked > 48, nil
}

// MonthReport aggregates one employee's attendance over a calendar
// month.
func MonthReport(ctx context.Context, source EventSource, employee model.Employee, year int, month time.Month, loc *time.Location, rates Rates) (PeriodTotals, error) {
	start, end := timeutil.MonthRange(year, month, loc)
	return periodReport(ctx, source, employee, start, end, rates)
}

// QuincenaReport aggregates one employee's attendance over a
// fortnight (days 1-15 or 16-end of month).
func QuincenaReport(ctx context.Context, source EventSource, employee model.Employee, year int, month time.Month, quincena int, loc *time.Location, rates Rates) (PeriodTotals, error) {
	start, end, err := timeutil.QuincenaRange(year, month, quincena, loc)
	if err != nil {
		return PeriodTotals{}, err
	}
	return periodReport(ctx, source, employee, start, end, rates)
}

func periodReport(ctx context.Context, source EventSource, employee model.Employee, start, end time.Time, rates Rates) (PeriodTotals, error) {
	events, err := source.PunchesForEmployeeInRange(ctx, employee.ID, start, end)
	if err != nil {
		return PeriodTotals{}, err
	}

	byDate := make(map[string][]model.PunchEvent)
	for _, e := range events {
		key := e.Date.Format("2006-01-02")
		byDate[key] = append(byDate[key], e)
	}

	result := PeriodTotals{Employee: employee, Days: make(map[string]DayTotals)}

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		day := Classify(byDate[key], d)
		result.Days[key] = day

		if len(byDate[key]) > 0 {
			result.DaysWorked++
		}
		result.HoursWorked += day.HoursWorked
		result.Ordinary += day.HoursOrdinary
		result.OvertimeDay += day.HoursOvertimeDay
		result.OvertimeNight += day.HoursOvertimeNight
		result.NightSurcharge += day.HoursNightSurcharge
		result.Sunday += day.HoursSunday

		v := Value(day, rates, employee.LiquidatesSunday)
		result.Valuation.Ordinary = result.Valuation.Ordinary.Add(v.Ordinary)
		result.Valuation.OvertimeDay = result.Valuation.OvertimeDay.Add(v.OvertimeDay)
		result.Valuation.OvertimeNight = result.Valuation.OvertimeNight.Add(v.OvertimeNight)
		result.Valuation.NightSurcharge = result.Valuation.NightSurcharge.Add(v.NightSurcharge)
		result.Valuation.Sunday = result.Valuation.Sunday.Add(v.Sunday)
		result.Valuation.Total = result.Valuation.Total.Add(v.Total)
	}

	result.HoursWorked = round2(result.HoursWorked)
	result.Ordinary = round2(result.Ordinary)
	result.OvertimeDay = round2(result.OvertimeDay)
	result.OvertimeNight = round2(result.OvertimeNight)
	result.NightSurcharge = round2(result.NightSurcharge)
	result.Sunday = round2(result.Sunday)

	return result, nil
}

// FanOutPeriodReports runs fn once per employee concurrently, bounded
// by the DB pool rather than by this function, and returns results in
// the same order as employees. The first handler error cancels the
// remaining in-flight work and is returned.
func FanOutPeriodReports(ctx context.Context, employees []model.Employee, fn func(ctx context.Context, employee model.Employee) (PeriodTotals, error)) ([]PeriodTotals, error) {
	results := make([]PeriodTotals, len(employees))

	g, gctx := errgroup.WithContext(ctx)
	for i, employee := range employees {
		i, employee := i, employee
		g.Go(func() error {
			totals, err := fn(gctx, employee)
			if err != nil {
				return err
			}
			results[i] = totals
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
