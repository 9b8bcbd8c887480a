// @title           Market Dashboard API
// @version         1.0
// @description     API for market leaderboards and instrument analysis

// @host      localhost:8080
// @BasePath  /api/v1

package http

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	appanalytics "main/internal/application/service/analytics"
	appranking "main/internal/application/service/ranking"
	appsymbols "main/internal/application/service/symbols"
	domaininstruments "main/internal/domain/entity/instruments"
	domainmarketdata "main/internal/domain/entity/marketdata"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const apiBasePath = "/api/v1"

const (
	defaultLeaderboardLimit = 10
	defaultShortWindow      = 20
	defaultLongWindow       = 60
)

var errNoData = errors.New("no data found")

type Handler struct {
	router    *gin.Engine
	ranking   *appranking.Service
	analytics *appanalytics.Service
	logger    *logrus.Logger
	cache     *redis.Client
	cacheTTL  time.Duration
}

func NewHandler(rank *appranking.Service, analytics *appanalytics.Service, cache *redis.Client, cacheTTL time.Duration, logger *logrus.Logger) *Handler {
	router := gin.New()
	router.Use(gin.Recovery())

	h := &Handler{
		router:    router,
		ranking:   rank,
		analytics: analytics,
		logger:    logger,
		cache:     cache,
		cacheTTL:  cacheTTL,
	}
	h.registerRoutes()
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.router.Use(h.requestLogger())
	h.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	h.router.GET("/healthz", h.health)

	api := h.router.Group(apiBasePath)
	if h.cache != nil {
		api.Use(h.cacheMiddleware())
	}
	{
		api.GET("/leaderboard", h.getLeaderboard)
		api.GET("/analysis", h.getAnalysis)
	}
}

// health reports liveness
// @Summary      Health check
// @Tags         service
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /healthz [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// getLeaderboard returns the ranked movers for one market
// @Summary      Market leaderboard
// @Description  Top gainers or losers by two-session percentage change
// @Tags         leaderboard
// @Produce      json
// @Param        market     query     string  true   "Market (tw|us)"
// @Param        direction  query     string  false  "Direction (gainers|losers)"
// @Param        limit      query     int     false  "Row limit"
// @Success      200        {object}  leaderboardResponse
// @Failure      400        {object}  map[string]string
// @Failure      500        {object}  map[string]string
// @Router       /leaderboard [get]
func (h *Handler) getLeaderboard(c *gin.Context) {
	market, err := domaininstruments.NewMarket(c.Query("market"))
	if err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}

	direction := appranking.Gainers
	if raw := c.Query("direction"); raw != "" {
		direction, err = appranking.NewDirection(raw)
		if err != nil {
			writeError(c, http.StatusBadRequest, err)
			return
		}
	}

	limit := defaultLeaderboardLimit
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			writeError(c, http.StatusBadRequest, fmt.Errorf("limit must be a positive integer"))
			return
		}
	}

	rows, err := h.ranking.Leaderboard(c.Request.Context(), market, direction, limit)
	if err != nil {
		writeError(c, http.StatusInternalServerError, err)
		return
	}
	if rows == nil {
		rows = []domainmarketdata.ChangeRow{}
	}
	c.JSON(http.StatusOK, leaderboardResponse{
		Market:    market.String(),
		Direction: string(direction),
		Rows:      rows,
	})
}

// getAnalysis returns the chart-and-dividend report for one instrument
// @Summary      Instrument analysis
// @Description  OHLCV bars, moving averages, volume and dividend estimates
// @Tags         analysis
// @Produce      json
// @Param        symbol    query     string  true   "Symbol or ticker digits"
// @Param        market    query     string  true   "Market (tw|us)"
// @Param        interval  query     string  false  "Bar interval (1d|1wk|1mo)"
// @Param        period    query     string  false  "Trailing period (6mo|1y|2y|5y|max)"
// @Param        short     query     int     false  "Short moving-average window"
// @Param        long      query     int     false  "Long moving-average window"
// @Success      200       {object}  analysisResponse
// @Failure      400       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Failure      500       {object}  map[string]string
// @Router       /analysis [get]
func (h *Handler) getAnalysis(c *gin.Context) {
	req, err := parseAnalysisRequest(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}

	report, err := h.analytics.Analyze(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, appsymbols.ErrEmptySymbol) ||
			errors.Is(err, appanalytics.ErrInvalidWindow) ||
			errors.Is(err, appanalytics.ErrInvalidPrice) {
			status = http.StatusBadRequest
		}
		writeError(c, status, err)
		return
	}
	if len(report.Bars) == 0 {
		writeError(c, http.StatusNotFound, errNoData)
		return
	}

	c.JSON(http.StatusOK, newAnalysisResponse(report, req))
}

func parseAnalysisRequest(c *gin.Context) (appanalytics.Request, error) {
	market, err := domaininstruments.NewMarket(c.Query("market"))
	if err != nil {
		return appanalytics.Request{}, err
	}

	interval := domainmarketdata.IntervalDaily
	if raw := c.Query("interval"); raw != "" {
		interval, err = domainmarketdata.NewInterval(raw)
		if err != nil {
			return appanalytics.Request{}, err
		}
	}

	period := domainmarketdata.PeriodOneYear
	if raw := c.Query("period"); raw != "" {
		period, err = domainmarketdata.NewPeriod(raw)
		if err != nil {
			return appanalytics.Request{}, err
		}
	}

	short, err := windowQuery(c, "short", defaultShortWindow)
	if err != nil {
		return appanalytics.Request{}, err
	}
	long, err := windowQuery(c, "long", defaultLongWindow)
	if err != nil {
		return appanalytics.Request{}, err
	}

	return appanalytics.Request{
		Symbol:      c.Query("symbol"),
		Market:      market,
		Interval:    interval,
		Period:      period,
		ShortWindow: short,
		LongWindow:  long,
	}, nil
}

func windowQuery(c *gin.Context, key string, fallback int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	window, err := strconv.Atoi(raw)
	if err != nil || window < 1 {
		return 0, fmt.Errorf("%s must be a positive integer", key)
	}
	return window, nil
}

// Response payloads

type leaderboardResponse struct {
	Market    string                       `json:"market"`
	Direction string                       `json:"direction"`
	Rows      []domainmarketdata.ChangeRow `json:"rows"`
}

type analysisResponse struct {
	Symbol    string                              `json:"symbol"`
	Name      string                              `json:"name"`
	Interval  string                              `json:"interval"`
	Period    string                              `json:"period"`
	Bars      []domainmarketdata.Bar              `json:"bars"`
	MAShort   []*float64                          `json:"ma_short"`
	MALong    []*float64                          `json:"ma_long"`
	Volume    []int64                             `json:"volume"`
	Labels    []string                            `json:"labels"`
	Dividends []domainmarketdata.DividendEstimate `json:"dividends"`
	LastClose float64                             `json:"last_close"`
}

func newAnalysisResponse(report *appanalytics.Report, req appanalytics.Request) analysisResponse {
	dividends := report.Dividends
	if dividends == nil {
		dividends = []domainmarketdata.DividendEstimate{}
	}
	return analysisResponse{
		Symbol:    report.Symbol,
		Name:      report.Name,
		Interval:  req.Interval.String(),
		Period:    req.Period.String(),
		Bars:      report.Bars,
		MAShort:   floatSeries(report.MAShort),
		MALong:    floatSeries(report.MALong),
		Volume:    report.Volume,
		Labels:    report.Labels,
		Dividends: dividends,
		LastClose: report.LastClose,
	}
}

// floatSeries renders NaN positions as JSON null.
func floatSeries(values []float64) []*float64 {
	out := make([]*float64, len(values))
	for i := range values {
		if math.IsNaN(values[i]) {
			continue
		}
		v := values[i]
		out[i] = &v
	}
	return out
}

func writeError(c *gin.Context, status int, err error) {
	if err == nil {
		status = http.StatusInternalServerError
		err = errors.New("unknown error")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// requestLogger tags every request with an id and logs its outcome.
func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()
		c.Header("X-Request-ID", requestID)
		start := time.Now()

		c.Next()

		h.logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start).String(),
		}).Info("request handled")
	}
}

// cacheMiddleware caches GET responses in Redis.
func (h *Handler) cacheMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.cache == nil || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := h.cacheKey(c)
		ctx := c.Request.Context()

		if cached, err := h.cache.Get(ctx, key).Result(); err == nil {
			c.Data(http.StatusOK, "application/json", []byte(cached))
			c.Abort()
			return
		}

		recorder := &responseRecorder{
			ResponseWriter: c.Writer,
			status:         http.StatusOK,
			body:           &bytes.Buffer{},
		}
		c.Writer = recorder

		c.Next()

		if recorder.status >= 200 && recorder.status < 300 && recorder.body.Len() > 0 {
			_ = h.cache.Set(ctx, key, recorder.body.Bytes(), h.cacheTTL).Err()
		}
	}
}

type responseRecorder struct {
	gin.ResponseWriter
	body   *bytes.Buffer
	status int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Write(data []byte) (int, error) {
	if len(data) > 0 {
		r.body.Write(data)
	}
	return r.ResponseWriter.Write(data)
}

func (h *Handler) cacheKey(c *gin.Context) string {
	return fmt.Sprintf("cache:%s:%s?%s", c.Request.Method, c.FullPath(), c.Request.URL.RawQuery)
}
