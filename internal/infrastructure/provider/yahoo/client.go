package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	marketdata "main/internal/domain/entity/marketdata"

	"github.com/sirupsen/logrus"
)

const (
	defaultBaseURL   = "https://query1.finance.yahoo.com"
	defaultTimeout   = 15 * time.Second
	defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"
)

// ErrNoData means the provider answered but had nothing for the symbol.
var ErrNoData = errors.New("yahoo: no data")

// Config holds client settings. Zero values fall back to defaults.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// Client talks to the Yahoo Finance chart/quote endpoints.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	logger    *logrus.Logger
}

func NewClient(cfg Config, logger *logrus.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		http:      &http.Client{Timeout: timeout},
		logger:    logger,
	}
}

type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  any           `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Open   []float64 `json:"open"`
			High   []float64 `json:"high"`
			Low    []float64 `json:"low"`
			Close  []float64 `json:"close"`
			Volume []int64   `json:"volume"`
		} `json:"quote"`
	} `json:"indicators"`
	Events struct {
		Dividends map[string]struct {
			Amount float64 `json:"amount"`
			Date   int64   `json:"date"`
		} `json:"dividends"`
	} `json:"events"`
}

// History fetches the full available OHLCV history plus dividend
// events. Bars come back ascending by date with null rows dropped; if
// the chart response carries no corporate-action feed, a dedicated
// dividends request is made instead.
func (c *Client) History(ctx context.Context, symbol string, interval marketdata.Interval) ([]marketdata.Bar, []marketdata.DividendEvent, error) {
	params := url.Values{}
	params.Set("interval", interval.String())
	params.Set("range", "max")
	params.Set("events", "div")

	result, err := c.chart(ctx, symbol, params)
	if err != nil {
		return nil, nil, err
	}

	bars := resultBars(result)
	dividends := resultDividends(result)
	if len(dividends) == 0 && interval != marketdata.IntervalDaily {
		// Some intervals omit the events feed entirely.
		dividends, err = c.dividends(ctx, symbol)
		if err != nil {
			c.logger.WithError(err).WithField("symbol", symbol).Warn("dividend fallback failed")
			dividends = nil
		}
	}

	c.logger.WithFields(logrus.Fields{
		"symbol":    symbol,
		"interval":  interval.String(),
		"bars":      len(bars),
		"dividends": len(dividends),
	}).Debug("fetched history")

	return bars, dividends, nil
}

// dividends fetches the corporate-action feed alone, over the maximum
// daily range.
func (c *Client) dividends(ctx context.Context, symbol string) ([]marketdata.DividendEvent, error) {
	params := url.Values{}
	params.Set("interval", "1d")
	params.Set("range", "max")
	params.Set("events", "div")

	result, err := c.chart(ctx, symbol, params)
	if err != nil {
		return nil, err
	}
	return resultDividends(result), nil
}

func (c *Client) chart(ctx context.Context, symbol string, params url.Values) (*chartResult, error) {
	reqURL := c.baseURL + "/v8/finance/chart/" + url.PathEscape(symbol) + "?" + params.Encode()

	var resp chartResponse
	if err := c.getJSON(ctx, reqURL, &resp); err != nil {
		return nil, err
	}
	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("chart %s: %w", symbol, ErrNoData)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("chart %s: %w", symbol, ErrNoData)
	}
	return &resp.Chart.Result[0], nil
}

func resultBars(result *chartResult) []marketdata.Bar {
	if len(result.Indicators.Quote) == 0 {
		return nil
	}
	quote := result.Indicators.Quote[0]

	bars := make([]marketdata.Bar, 0, len(result.Timestamp))
	var last time.Time
	for i, ts := range result.Timestamp {
		if i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) || i >= len(quote.Close) {
			continue
		}
		// Null rows decode as all-zero.
		if quote.Open[i] == 0 && quote.High[i] == 0 && quote.Low[i] == 0 && quote.Close[i] == 0 {
			continue
		}
		day := naiveDate(ts)
		if !day.After(last) {
			continue
		}
		last = day

		volume := int64(0)
		if i < len(quote.Volume) {
			volume = quote.Volume[i]
		}
		bars = append(bars, marketdata.Bar{
			Time:   day,
			Open:   quote.Open[i],
			High:   quote.High[i],
			Low:    quote.Low[i],
			Close:  quote.Close[i],
			Volume: volume,
		})
	}
	return bars
}

func resultDividends(result *chartResult) []marketdata.DividendEvent {
	if len(result.Events.Dividends) == 0 {
		return nil
	}
	events := make([]marketdata.DividendEvent, 0, len(result.Events.Dividends))
	for _, div := range result.Events.Dividends {
		if div.Amount <= 0 {
			continue
		}
		events = append(events, marketdata.DividendEvent{
			ExDate: naiveDate(div.Date),
			Amount: div.Amount,
		})
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].ExDate.Before(events[j].ExDate)
	})
	return events
}

type quoteResponse struct {
	QuoteResponse struct {
		Result []struct {
			LongName  string `json:"longName"`
			ShortName string `json:"shortName"`
		} `json:"result"`
		Error any `json:"error"`
	} `json:"quoteResponse"`
}

// QuoteNames fetches the instrument's descriptive metadata.
func (c *Client) QuoteNames(ctx context.Context, symbol string) (string, string, error) {
	params := url.Values{}
	params.Set("symbols", symbol)
	params.Set("fields", "symbol,longName,shortName")
	reqURL := c.baseURL + "/v7/finance/quote?" + params.Encode()

	var resp quoteResponse
	if err := c.getJSON(ctx, reqURL, &resp); err != nil {
		return "", "", err
	}
	if resp.QuoteResponse.Error != nil || len(resp.QuoteResponse.Result) == 0 {
		return "", "", fmt.Errorf("quote %s: %w", symbol, ErrNoData)
	}
	result := resp.QuoteResponse.Result[0]
	return result.LongName, result.ShortName, nil
}

func (c *Client) getJSON(ctx context.Context, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("yahoo http %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// naiveDate strips the intraday component, leaving a timezone-naive
// trading date.
func naiveDate(ts int64) time.Time {
	t := time.Unix(ts, 0).UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
