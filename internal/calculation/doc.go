// Package calculation provides pure attendance calculations for the
// Colombian labor-law reporting domain. It has no database or HTTP
// dependencies - it operates purely on punch events and produces
// classified, priced day and period totals.
//
// # Data Flow
//
// Input:
//   - []model.PunchEvent: raw ENTRADA/SALIDA scans for one employee
//   - A date or date range to classify them over
//
// Output:
//   - DayTotals: one day's hours split into ordinary, overtime-diurnal,
//     overtime-nocturnal, night-surcharge, and Sunday categories
//   - PeriodTotals: the sum of DayTotals over a week, month, or
//     fortnight, plus its monetary Valuation
//
// # Time Representation
//
// All times are represented as minutes from midnight (0-1439). The
// night window is [21:00, 06:00).
//
// # Usage
//
//	totals := calculation.Classify(events, date)
//	valuation := calculation.Value(totals, rates, employee.LiquidatesSunday)
package calculation
