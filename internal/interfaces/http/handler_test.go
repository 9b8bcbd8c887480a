package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	appanalytics "main/internal/application/service/analytics"
	appranking "main/internal/application/service/ranking"
	appsymbols "main/internal/application/service/symbols"
	domainmarketdata "main/internal/domain/entity/marketdata"
	"main/internal/infrastructure/cache"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	closes    map[string][]float64
	bars      []domainmarketdata.Bar
	dividends []domainmarketdata.DividendEvent
}

func (p *stubProvider) BatchCloses(context.Context, []string) (map[string][]float64, error) {
	return p.closes, nil
}

func (p *stubProvider) History(context.Context, string, domainmarketdata.Interval) ([]domainmarketdata.Bar, []domainmarketdata.DividendEvent, error) {
	return p.bars, p.dividends, nil
}

func (p *stubProvider) QuoteNames(context.Context, string) (string, string, error) {
	return "Apple Inc.", "Apple", nil
}

func makeBars(n int) []domainmarketdata.Bar {
	base := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]domainmarketdata.Bar, n)
	for i := range bars {
		close := float64(i + 1)
		bars[i] = domainmarketdata.Bar{
			Time:   base.AddDate(0, 0, i),
			Open:   close,
			High:   close,
			Low:    close,
			Close:  close,
			Volume: int64(100 + i),
		}
	}
	return bars
}

func newTestHandler(provider *stubProvider) *Handler {
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	memo := cache.New()
	syms := appsymbols.NewService(provider, logger)
	rank := appranking.NewService(provider, memo, time.Hour, logger)
	analytics := appanalytics.NewService(provider, syms, memo, time.Hour, logger)

	return NewHandler(rank, analytics, nil, time.Minute, logger)
}

func doRequest(h *Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	h := newTestHandler(&stubProvider{})
	rec := doRequest(h, "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestGetLeaderboard(t *testing.T) {
	h := newTestHandler(&stubProvider{closes: map[string][]float64{
		"AAPL": {100, 110},
		"MSFT": {200, 180},
		"NVDA": {300, 315},
	}})
	rec := doRequest(h, "/api/v1/leaderboard?market=us&direction=gainers&limit=2")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Market    string `json:"market"`
		Direction string `json:"direction"`
		Rows      []struct {
			Symbol    string  `json:"symbol"`
			PctChange float64 `json:"pct_change"`
		} `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "us", resp.Market)
	assert.Equal(t, "gainers", resp.Direction)
	require.Len(t, resp.Rows, 2)
	assert.Equal(t, "AAPL", resp.Rows[0].Symbol)
	assert.InDelta(t, 10.0, resp.Rows[0].PctChange, 1e-9)
	assert.Equal(t, "NVDA", resp.Rows[1].Symbol)
}

func TestGetLeaderboardDefaults(t *testing.T) {
	h := newTestHandler(&stubProvider{closes: map[string][]float64{}})
	rec := doRequest(h, "/api/v1/leaderboard?market=tw")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Direction string            `json:"direction"`
		Rows      []json.RawMessage `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "gainers", resp.Direction)
	assert.NotNil(t, resp.Rows, "empty leaderboard encodes as [], not null")
}

func TestGetLeaderboardBadParams(t *testing.T) {
	h := newTestHandler(&stubProvider{})

	assert.Equal(t, http.StatusBadRequest, doRequest(h, "/api/v1/leaderboard").Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(h, "/api/v1/leaderboard?market=jp").Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(h, "/api/v1/leaderboard?market=us&direction=sideways").Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(h, "/api/v1/leaderboard?market=us&limit=-1").Code)
}

func TestGetAnalysis(t *testing.T) {
	h := newTestHandler(&stubProvider{
		bars: makeBars(300),
		dividends: []domainmarketdata.DividendEvent{
			{ExDate: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), Amount: 0.25},
		},
	})
	rec := doRequest(h, "/api/v1/analysis?symbol=aapl&market=us&period=1y&short=20&long=60")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Symbol    string            `json:"symbol"`
		Name      string            `json:"name"`
		Interval  string            `json:"interval"`
		Period    string            `json:"period"`
		Bars      []json.RawMessage `json:"bars"`
		MAShort   []*float64        `json:"ma_short"`
		MALong    []*float64        `json:"ma_long"`
		Volume    []int64           `json:"volume"`
		Labels    []string          `json:"labels"`
		Dividends []json.RawMessage `json:"dividends"`
		LastClose float64           `json:"last_close"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "AAPL", resp.Symbol)
	assert.Equal(t, "Apple Inc.", resp.Name)
	assert.Equal(t, "1d", resp.Interval)
	assert.Equal(t, "1y", resp.Period)
	assert.Len(t, resp.Bars, 252)
	assert.Len(t, resp.Volume, 252)
	assert.Len(t, resp.Labels, 252)
	assert.Equal(t, 300.0, resp.LastClose)
	assert.Len(t, resp.Dividends, 1)

	// Both windows are fully warmed up inside the displayed slice.
	require.Len(t, resp.MAShort, 252)
	require.Len(t, resp.MALong, 252)
	require.NotNil(t, resp.MAShort[251])
	require.NotNil(t, resp.MALong[251])
}

func TestGetAnalysisShortHistoryHasNulls(t *testing.T) {
	h := newTestHandler(&stubProvider{bars: makeBars(30)})
	rec := doRequest(h, "/api/v1/analysis?symbol=AAPL&market=us&period=max&short=5&long=20")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		MAShort []*float64 `json:"ma_short"`
		MALong  []*float64 `json:"ma_long"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.Len(t, resp.MALong, 30)
	assert.Nil(t, resp.MALong[0], "positions before the window fills encode as null")
	assert.Nil(t, resp.MALong[18])
	assert.NotNil(t, resp.MALong[19])
	assert.NotNil(t, resp.MAShort[4])
}

func TestGetAnalysisNotFound(t *testing.T) {
	h := newTestHandler(&stubProvider{})
	rec := doRequest(h, "/api/v1/analysis?symbol=NOPE&market=us")

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "no data found", resp["error"])
}

func TestGetAnalysisBadParams(t *testing.T) {
	h := newTestHandler(&stubProvider{bars: makeBars(30)})

	assert.Equal(t, http.StatusBadRequest, doRequest(h, "/api/v1/analysis?symbol=AAPL").Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(h, "/api/v1/analysis?market=us").Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(h, "/api/v1/analysis?symbol=AAPL&market=us&interval=1h").Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(h, "/api/v1/analysis?symbol=AAPL&market=us&period=3y").Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(h, "/api/v1/analysis?symbol=AAPL&market=us&short=0").Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(h, "/api/v1/analysis?symbol=AAPL&market=us&long=abc").Code)
}
