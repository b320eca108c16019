package service

import (
	"testing"
	"time"

	"github.com/langowen/calibrator/internal/entities"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2025, 11, 10, 9, 0, 0, 0, time.UTC)

func day(offset int) time.Time {
	return time.Date(2025, 11, 10+offset, 0, 0, 0, 0, time.UTC)
}

func TestPeriodAverage_ExcludesToday(t *testing.T) {
	series := entities.RateSeries{
		{Date: day(-2), Rate: 10},
		{Date: day(-1), Rate: 20},
		{Date: day(0), Rate: 99},
	}

	assert.True(t, IncludesToday(series, today))

	avg, err := PeriodAverage(series, today)
	require.NoError(t, err)
	assert.InDelta(t, 15.0, avg, 1e-12)
}

func TestPeriodAverage_IncludesAllWhenTodayMissing(t *testing.T) {
	series := entities.RateSeries{
		{Date: day(-2), Rate: 10},
		{Date: day(-1), Rate: 20},
	}

	assert.False(t, IncludesToday(series, today))

	avg, err := PeriodAverage(series, today)
	require.NoError(t, err)
	assert.InDelta(t, 15.0, avg, 1e-12)
}

func TestPeriodAverage_OnlyToday(t *testing.T) {
	series := entities.RateSeries{{Date: day(0), Rate: 42}}

	avg, err := PeriodAverage(series, today)
	require.NoError(t, err)
	assert.InDelta(t, 42.0, avg, 1e-12)
}

func TestPeriodAverage_Empty(t *testing.T) {
	_, err := PeriodAverage(nil, today)
	require.Error(t, err)
	assert.True(t, errors.Is(err, entities.ErrData))
	assert.False(t, IncludesToday(nil, today))
}

func TestBuildCharts(t *testing.T) {
	conv := entities.NewConversion(100, "INR", "USD", 1.2)
	series := entities.RateSeries{
		{Date: day(-1), Rate: 0.0119},
		{Date: day(0), Rate: 0.012},
	}

	charts := BuildCharts(conv, series, 0.0119)
	require.Len(t, charts, 3)

	history := charts[0]
	assert.Equal(t, entities.LineChart, history.Kind)
	assert.Equal(t, []string{"2025-11-09", "2025-11-10"}, history.Labels)
	assert.Equal(t, []float64{0.0119, 0.012}, history.Values)
	assert.Equal(t, "Exchange Rate: 1 INR in USD (Last 2 Days)", history.Title)

	rates := charts[1]
	assert.Equal(t, entities.BarChart, rates.Kind)
	assert.Equal(t, []string{"Today", "Period Avg"}, rates.Labels)
	assert.InDelta(t, 0.012, rates.Values[0], 1e-12)
	assert.InDelta(t, 0.0119, rates.Values[1], 1e-12)

	amounts := charts[2]
	assert.Equal(t, []string{"Original (INR)", "Converted (USD)"}, amounts.Labels)
	assert.Equal(t, []float64{100, 1.2}, amounts.Values)
}

func TestSummary(t *testing.T) {
	conv := entities.NewConversion(100, "INR", "USD", 1.2)

	text := Summary(conv, 0.0119, 30)

	assert.Contains(t, text, "Amount : 100.0000 INR")
	assert.Contains(t, text, "Current rate : 1 INR = 0.012000 USD")
	assert.Contains(t, text, "Converted : 1.2000 USD")
	assert.Contains(t, text, separator)
	assert.Contains(t, text, "Avg rate (30d window): 0.011900 USD/INR")
}
