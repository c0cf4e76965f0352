package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/tolga/terp/internal/model"
)

// Surcharge and premium factors fixed by Colombian labor law.
const (
	FactorOvertimeDay    = 1.25
	FactorOvertimeNight  = 1.75
	FactorNightSurcharge = 0.35
	FactorSunday         = 1.75
)

// DefaultHourlyOrdinary is the fallback ordinary hourly rate used when
// the configuration table carries no valor_hora_ordinaria entry.
const DefaultHourlyOrdinary = 5833.33

// Rates holds the hourly values used to price a DayTotals. Zero-value
// Rates is invalid; use RatesFromConfig to build one with defaults
// filled in.
type Rates struct {
	Ordinary      decimal.Decimal
	OvertimeDay   decimal.Decimal
	OvertimeNight decimal.Decimal
}

// RatesFromConfig builds Rates from a configuration map (key -> value
// string, as read from the configuracion table), falling back to the
// spec defaults for any key that is absent or unparseable.
func RatesFromConfig(entries map[string]model.ConfigEntry) Rates {
	ordinary := decimalOrDefault(entries[model.ConfigHourlyOrdinary].Value, decimal.NewFromFloat(DefaultHourlyOrdinary))

	overtimeDayDefault := ordinary.Mul(decimal.NewFromFloat(FactorOvertimeDay))
	overtimeNightDefault := ordinary.Mul(decimal.NewFromFloat(FactorOvertimeNight))

	return Rates{
		Ordinary:      ordinary,
		OvertimeDay:   decimalOrDefault(entries[model.ConfigHourlyOvertimeDay].Value, overtimeDayDefault),
		OvertimeNight: decimalOrDefault(entries[model.ConfigHourlyOvertimeNight].Value, overtimeNightDefault),
	}
}

func decimalOrDefault(raw string, fallback decimal.Decimal) decimal.Decimal {
	if raw == "" {
		return fallback
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return fallback
	}
	return d
}

// Valuation is the monetary breakdown of one DayTotals under a set of
// Rates, each line item and the total rounded to two decimal places.
type Valuation struct {
	Ordinary       decimal.Decimal
	OvertimeDay    decimal.Decimal
	OvertimeNight  decimal.Decimal
	NightSurcharge decimal.Decimal
	Sunday         decimal.Decimal
	Total          decimal.Decimal
}

// Value prices totals under rates. The Sunday line item is only
// nonzero when liquidatesSunday is true, matching the employee's
// liquida_dominical flag.
func Value(totals DayTotals, rates Rates, liquidatesSunday bool) Valuation {
	v := Valuation{
		Ordinary:       decimal.NewFromFloat(totals.HoursOrdinary).Mul(rates.Ordinary).Round(2),
		OvertimeDay:    decimal.NewFromFloat(totals.HoursOvertimeDay).Mul(rates.OvertimeDay).Round(2),
		OvertimeNight:  decimal.NewFromFloat(totals.HoursOvertimeNight).Mul(rates.OvertimeNight).Round(2),
		NightSurcharge: decimal.NewFromFloat(totals.HoursNightSurcharge).Mul(rates.Ordinary).Mul(decimal.NewFromFloat(FactorNightSurcharge)).Round(2),
	}

	if totals.IsSunday && liquidatesSunday {
		v.Sunday = decimal.NewFromFloat(totals.HoursSunday).Mul(rates.Ordinary).Mul(decimal.NewFromFloat(FactorSunday)).Round(2)
	}

	v.Total = v.Ordinary.Add(v.OvertimeDay).Add(v.OvertimeNight).Add(v.NightSurcharge).Add(v.Sunday)
	return v
}
