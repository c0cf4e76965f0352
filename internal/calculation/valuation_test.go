package calculation_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tolga/terp/internal/calculation"
	"github.com/tolga/terp/internal/model"
)

func TestRatesFromConfig_Defaults(t *testing.T) {
	rates := calculation.RatesFromConfig(nil)

	assert.True(t, rates.Ordinary.Equal(decimal.NewFromFloat(calculation.DefaultHourlyOrdinary)))
	assert.True(t, rates.OvertimeDay.Equal(rates.Ordinary.Mul(decimal.NewFromFloat(calculation.FactorOvertimeDay))))
	assert.True(t, rates.OvertimeNight.Equal(rates.Ordinary.Mul(decimal.NewFromFloat(calculation.FactorOvertimeNight))))
}

func TestRatesFromConfig_Overrides(t *testing.T) {
	entries := map[string]model.ConfigEntry{
		model.ConfigHourlyOrdinary: {Key: model.ConfigHourlyOrdinary, Value: "10000"},
	}

	rates := calculation.RatesFromConfig(entries)

	assert.True(t, rates.Ordinary.Equal(decimal.NewFromInt(10000)))
	assert.True(t, rates.OvertimeDay.Equal(decimal.NewFromInt(12500)))
}

func TestValue_SundayScenario(t *testing.T) {
	// Scenario 4: Sunday, liquidates-Sunday=true, [ENTRY 10:00, EXIT 16:00].
	totals := calculation.DayTotals{
		IsSunday:      true,
		HoursWorked:   6,
		HoursOrdinary: 6,
		HoursSunday:   6,
	}
	rates := calculation.RatesFromConfig(nil)

	v := calculation.Value(totals, rates, true)

	expectedSunday := decimal.NewFromFloat(6).Mul(rates.Ordinary).Mul(decimal.NewFromFloat(1.75)).Round(2)
	assert.True(t, v.Sunday.Equal(expectedSunday))
}

func TestValue_SundayNotLiquidated(t *testing.T) {
	totals := calculation.DayTotals{IsSunday: true, HoursWorked: 6, HoursOrdinary: 6, HoursSunday: 6}
	rates := calculation.RatesFromConfig(nil)

	v := calculation.Value(totals, rates, false)

	assert.True(t, v.Sunday.IsZero())
}
