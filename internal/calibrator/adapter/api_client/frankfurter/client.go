package frankfurter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/langowen/calibrator/internal/calibrator/metrics"
	"github.com/langowen/calibrator/internal/entities"
	"github.com/pkg/errors"
)

const maxErrorBody = 512

type HTTPClient struct {
	client            *http.Client
	baseURL           string
	conversionTimeout time.Duration
	historyTimeout    time.Duration
	now               func() time.Time
}

type Option func(c *HTTPClient)

func WithHTTPClient(client *http.Client) Option {
	return func(c *HTTPClient) {
		c.client = client
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *HTTPClient) {
		c.now = now
	}
}

func NewHTTPClient(baseURL string, conversionTimeout, historyTimeout time.Duration, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		client:            &http.Client{},
		baseURL:           strings.TrimRight(baseURL, "/"),
		conversionTimeout: conversionTimeout,
		historyTimeout:    historyTimeout,
		now:               time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type latestResponse struct {
	Amount float64            `json:"amount"`
	Base   string             `json:"base"`
	Date   string             `json:"date"`
	Rates  map[string]float64 `json:"rates"`
}

type timeseriesResponse struct {
	Amount    float64                       `json:"amount"`
	Base      string                        `json:"base"`
	StartDate string                        `json:"start_date"`
	EndDate   string                        `json:"end_date"`
	Rates     map[string]map[string]float64 `json:"rates"`
}

func (c *HTTPClient) FetchConversion(ctx context.Context, amount float64, base, target entities.CurrencyCode) (entities.ConversionResult, error) {
	const op = "frankfurter.FetchConversion"

	if base == target {
		return entities.IdentityConversion(amount, base), nil
	}

	q := url.Values{}
	q.Set("amount", strconv.FormatFloat(amount, 'f', -1, 64))
	q.Set("from", base.String())
	q.Set("to", target.String())

	var resp latestResponse
	if err := c.getJSON(ctx, metrics.EndpointLatest, c.baseURL+"/latest", q, c.conversionTimeout, &resp); err != nil {
		return entities.ConversionResult{}, errors.Wrap(err, op)
	}

	converted, ok := resp.Rates[target.String()]
	if !ok {
		return entities.ConversionResult{}, errors.Wrap(
			entities.DataError(fmt.Sprintf("no rate returned for %s->%s, response: %+v", base, target, resp), nil), op)
	}

	slog.Debug("Conversion fetched", "base", base, "target", target, "amount", amount, "converted", converted, "date", resp.Date)

	return entities.NewConversion(amount, base, target, converted), nil
}

func (c *HTTPClient) FetchTimeseries(ctx context.Context, base, target entities.CurrencyCode, days int) (entities.RateSeries, error) {
	const op = "frankfurter.FetchTimeseries"

	end := c.now()
	start := end.AddDate(0, 0, -days)
	endpoint := fmt.Sprintf("%s/%s..%s", c.baseURL, start.Format(entities.DateLayout), end.Format(entities.DateLayout))

	q := url.Values{}
	q.Set("from", base.String())
	q.Set("to", target.String())

	var resp timeseriesResponse
	if err := c.getJSON(ctx, metrics.EndpointTimeseries, endpoint, q, c.historyTimeout, &resp); err != nil {
		return nil, errors.Wrap(err, op)
	}

	if resp.Rates == nil {
		return nil, errors.Wrap(entities.DataError(fmt.Sprintf("timeseries failed: %+v", resp), nil), op)
	}

	dates := make([]string, 0, len(resp.Rates))
	for day := range resp.Rates {
		dates = append(dates, day)
	}
	sort.Strings(dates)

	series := make(entities.RateSeries, 0, len(dates))
	for _, day := range dates {
		value, ok := resp.Rates[day][target.String()]
		if !ok {
			continue
		}

		date, err := time.ParseInLocation(entities.DateLayout, day, end.Location())
		if err != nil {
			return nil, errors.Wrap(entities.DataError("bad date in timeseries", err), op)
		}

		series = append(series, entities.RatePoint{Date: date, Rate: value})
	}

	if len(series) == 0 {
		return nil, errors.Wrap(entities.DataError("no historical rates returned", nil), op)
	}

	slog.Debug("Timeseries fetched", "base", base, "target", target, "days", days, "points", len(series))

	return series, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, endpoint, rawURL string, q url.Values, timeout time.Duration, dst any) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	u := rawURL + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return entities.NetworkError("create request error", err)
	}

	started := time.Now()
	resp, err := c.client.Do(req)
	metrics.UpstreamDuration.WithLabelValues(endpoint).Observe(time.Since(started).Seconds())
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(endpoint, metrics.OutcomeNetwork).Inc()
		return entities.NetworkError("api_client get error", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.UpstreamRequests.WithLabelValues(endpoint, metrics.OutcomeNetwork).Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return entities.NetworkError(fmt.Sprintf("bad status: %s: %s", resp.Status, strings.TrimSpace(string(body))), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(endpoint, metrics.OutcomeNetwork).Inc()
		return entities.NetworkError("read body error", err)
	}

	if err := json.Unmarshal(body, dst); err != nil {
		metrics.UpstreamRequests.WithLabelValues(endpoint, metrics.OutcomeData).Inc()
		return entities.DataError("json unmarshal error", err)
	}

	metrics.UpstreamRequests.WithLabelValues(endpoint, metrics.OutcomeOK).Inc()

	return nil
}
