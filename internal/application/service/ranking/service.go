package ranking

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	symbols "main/internal/application/service/symbols"
	instruments "main/internal/domain/entity/instruments"
	marketdata "main/internal/domain/entity/marketdata"
	interfaces "main/internal/domain/interfaces"
	"main/internal/infrastructure/cache"

	"github.com/sirupsen/logrus"
)

// Direction orders a leaderboard.
type Direction string

const (
	Gainers Direction = "gainers"
	Losers  Direction = "losers"
)

func (d Direction) IsValid() bool {
	return d == Gainers || d == Losers
}

func NewDirection(s string) (Direction, error) {
	d := Direction(s)
	if !d.IsValid() {
		return "", fmt.Errorf("invalid direction: %s", s)
	}
	return d, nil
}

// Service computes two-session percentage changes for batches of
// instruments and ranks them into leaderboards.
type Service struct {
	provider interfaces.MarketDataProvider
	cache    *cache.Cache
	ttl      time.Duration
	logger   *logrus.Logger
}

func NewService(provider interfaces.MarketDataProvider, memo *cache.Cache, ttl time.Duration, logger *logrus.Logger) *Service {
	return &Service{
		provider: provider,
		cache:    memo,
		ttl:      ttl,
		logger:   logger,
	}
}

// Changes fetches the trailing closes for the whole batch in one
// provider call and computes the percentage change over the two most
// recent sessions. Instruments with fewer than two valid closes are
// excluded. A provider failure yields an empty result, never an error.
func (s *Service) Changes(ctx context.Context, syms []string) []marketdata.ChangeRow {
	if len(syms) == 0 {
		return nil
	}

	closes, err := s.provider.BatchCloses(ctx, syms)
	if err != nil {
		s.logger.WithError(err).WithField("symbols", len(syms)).Warn("batch close fetch failed")
		return nil
	}

	rows := make([]marketdata.ChangeRow, 0, len(syms))
	for _, symbol := range syms {
		series, ok := closes[symbol]
		if !ok || len(series) < 2 {
			continue
		}
		latest := series[len(series)-1]
		prev := series[len(series)-2]
		if prev == 0 || math.IsNaN(latest) || math.IsNaN(prev) {
			continue
		}
		rows = append(rows, marketdata.ChangeRow{
			Symbol:    symbol,
			Name:      symbols.TableName(symbol),
			PctChange: (latest - prev) / prev * 100,
		})
	}
	return rows
}

// Rank orders rows by percentage change, descending for gainers and
// ascending for losers, and truncates to limit. The sort is stable, so
// ties keep their insertion order.
func Rank(rows []marketdata.ChangeRow, direction Direction, limit int) []marketdata.ChangeRow {
	out := make([]marketdata.ChangeRow, len(rows))
	copy(out, rows)

	sort.SliceStable(out, func(i, j int) bool {
		if direction == Losers {
			return out[i].PctChange < out[j].PctChange
		}
		return out[i].PctChange > out[j].PctChange
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// MarketMovers computes the change rows for the market's scan list,
// memoized for the configured TTL.
func (s *Service) MarketMovers(ctx context.Context, market instruments.Market) ([]marketdata.ChangeRow, error) {
	key := cache.Key("movers", market.String())
	return cache.GetOrCompute(s.cache, key, s.ttl, func() ([]marketdata.ChangeRow, error) {
		return s.Changes(ctx, symbols.ScanList(market)), nil
	})
}

// Leaderboard is the full home-page query: scan the market, rank and
// truncate.
func (s *Service) Leaderboard(ctx context.Context, market instruments.Market, direction Direction, limit int) ([]marketdata.ChangeRow, error) {
	rows, err := s.MarketMovers(ctx, market)
	if err != nil {
		return nil, err
	}
	return Rank(rows, direction, limit), nil
}
