package service

import (
	"context"

	"github.com/langowen/calibrator/internal/entities"
)

type RateClient interface {
	FetchConversion(ctx context.Context, amount float64, base, target entities.CurrencyCode) (entities.ConversionResult, error)
	FetchTimeseries(ctx context.Context, base, target entities.CurrencyCode, days int) (entities.RateSeries, error)
}
