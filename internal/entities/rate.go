package entities

import (
	"math"
	"time"
)

const DateLayout = "2006-01-02"

type CurrencyCode string

func (c CurrencyCode) String() string {
	return string(c)
}

type ConversionResult struct {
	Amount    float64
	Base      CurrencyCode
	Target    CurrencyCode
	Converted float64
	Rate      float64
}

// NewConversion derives the unit rate from the converted amount; a zero amount yields NaN.
func NewConversion(amount float64, base, target CurrencyCode, converted float64) ConversionResult {
	rate := math.NaN()
	if amount != 0 {
		rate = converted / amount
	}

	return ConversionResult{
		Amount:    amount,
		Base:      base,
		Target:    target,
		Converted: converted,
		Rate:      rate,
	}
}

func IdentityConversion(amount float64, code CurrencyCode) ConversionResult {
	return ConversionResult{
		Amount:    amount,
		Base:      code,
		Target:    code,
		Converted: amount,
		Rate:      1,
	}
}

type RatePoint struct {
	Date time.Time
	Rate float64
}

// RateSeries is ordered by Date ascending with unique dates.
type RateSeries []RatePoint

func (s RateSeries) Values() []float64 {
	values := make([]float64, len(s))
	for i, p := range s {
		values[i] = p.Rate
	}
	return values
}

func (s RateSeries) Last() (RatePoint, bool) {
	if len(s) == 0 {
		return RatePoint{}, false
	}
	return s[len(s)-1], true
}

func SameDay(a, b time.Time) bool {
	return a.Format(DateLayout) == b.Format(DateLayout)
}
