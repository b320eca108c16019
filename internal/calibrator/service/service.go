package service

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/langowen/calibrator/deploy/config"
	"github.com/langowen/calibrator/internal/calibrator/metrics"
	"github.com/langowen/calibrator/internal/entities"
	"github.com/pkg/errors"
)

// Input carries the raw form values exactly as the user typed them.
type Input struct {
	Amount string
	Base   string
	Target string
	Days   string
}

type Request struct {
	Amount float64
	Base   entities.CurrencyCode
	Target entities.CurrencyCode
	Days   int
}

type Report struct {
	Request       Request
	Conversion    entities.ConversionResult
	Series        entities.RateSeries
	Average       float64
	TodayIncluded bool
	Text          string
	Charts        []entities.ChartSpec
}

type Service struct {
	client      RateClient
	publisher   Publisher
	defaultDays int
	maxDays     int
	now         func() time.Time
}

type Option func(s *Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(client RateClient, publisher Publisher, cfg *config.Config, opts ...Option) *Service {
	if publisher == nil {
		publisher = NopPublisher{}
	}

	s := &Service{
		client:      client,
		publisher:   publisher,
		defaultDays: DefaultDays,
		now:         time.Now,
	}

	if cfg != nil {
		if cfg.History.DefaultDays > 0 {
			s.defaultDays = cfg.History.DefaultDays
		}
		s.maxDays = cfg.History.MaxDays
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Validate turns raw input into a request without touching the network.
func (s *Service) Validate(in Input) (Request, error) {
	const op = "service.Validate"

	amount, err := ParseAmount(in.Amount)
	if err != nil {
		return Request{}, errors.Wrap(err, op)
	}

	base, err := NormalizeCode(in.Base)
	if err != nil {
		return Request{}, errors.Wrap(err, op)
	}

	target, err := NormalizeCode(in.Target)
	if err != nil {
		return Request{}, errors.Wrap(err, op)
	}

	days, err := ParseDays(in.Days, s.defaultDays, s.maxDays)
	if err != nil {
		return Request{}, errors.Wrap(err, op)
	}

	return Request{Amount: amount, Base: base, Target: target, Days: days}, nil
}

// Calibrate runs the whole convert-and-plot pipeline. It returns a report only when every
// step succeeded, so callers never see a half-built result.
func (s *Service) Calibrate(ctx context.Context, in Input) (*Report, error) {
	const op = "service.Calibrate"

	report, err := s.calibrate(ctx, in)
	metrics.PipelineRuns.WithLabelValues(Outcome(err)).Inc()
	if err != nil {
		slog.Warn("Calibration failed", "op", op, "input", in, "error", err)
		return nil, errors.Wrap(err, op)
	}

	return report, nil
}

func (s *Service) calibrate(ctx context.Context, in Input) (*Report, error) {
	req, err := s.Validate(in)
	if err != nil {
		return nil, err
	}

	conv, err := s.client.FetchConversion(ctx, req.Amount, req.Base, req.Target)
	if err != nil {
		return nil, err
	}

	series, err := s.client.FetchTimeseries(ctx, req.Base, req.Target, req.Days)
	if err != nil {
		return nil, err
	}

	today := s.now()

	average, err := PeriodAverage(series, today)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Request:       req,
		Conversion:    conv,
		Series:        series,
		Average:       average,
		TodayIncluded: IncludesToday(series, today),
		Text:          Summary(conv, average, req.Days),
		Charts:        BuildCharts(conv, series, average),
	}

	slog.Info("Calibration completed",
		"base", req.Base, "target", req.Target, "amount", req.Amount,
		"converted", conv.Converted, "average", average, "points", len(series))

	if err := s.publisher.PublishCalibration(ctx, NewCalibrationEvent(report, today)); err != nil {
		slog.Error("Failed to publish calibration", "error", err)
	}

	return report, nil
}

func NewCalibrationEvent(r *Report, at time.Time) CalibrationEvent {
	event := CalibrationEvent{
		Base:      r.Conversion.Base.String(),
		Target:    r.Conversion.Target.String(),
		Amount:    r.Conversion.Amount,
		Converted: r.Conversion.Converted,
		Average:   r.Average,
		Days:      r.Request.Days,
		Points:    len(r.Series),
		At:        at,
	}

	if !math.IsNaN(r.Conversion.Rate) {
		rate := r.Conversion.Rate
		event.Rate = &rate
	}

	return event
}

// Outcome maps an error onto the metric label of its kind.
func Outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, entities.ErrValidation):
		return metrics.OutcomeValidation
	case errors.Is(err, entities.ErrNetwork):
		return metrics.OutcomeNetwork
	default:
		return metrics.OutcomeData
	}
}
