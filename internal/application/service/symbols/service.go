package symbols

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	instruments "main/internal/domain/entity/instruments"
	interfaces "main/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

var ErrEmptySymbol = errors.New("symbol is empty")

// Service normalizes user-entered symbols into the provider's canonical
// form and resolves display names.
type Service struct {
	provider interfaces.MarketDataProvider
	logger   *logrus.Logger
}

func NewService(provider interfaces.MarketDataProvider, logger *logrus.Logger) *Service {
	return &Service{provider: provider, logger: logger}
}

// Normalize maps a raw user token plus a market selector into the
// provider's canonical symbol. Pure string transform; idempotent.
func (s *Service) Normalize(raw string, market instruments.Market) (string, error) {
	token := strings.TrimSpace(raw)
	if token == "" {
		return "", ErrEmptySymbol
	}
	if market != instruments.MarketTaiwan {
		return strings.ToUpper(token), nil
	}
	if allDigits(token) {
		return token + instruments.TaiwanSuffix, nil
	}
	upper := strings.ToUpper(token)
	if strings.HasSuffix(upper, instruments.TaiwanSuffix) {
		return upper, nil
	}
	return upper + instruments.TaiwanSuffix, nil
}

// DisplayName resolves a human-readable name for the symbol: curated
// table first, provider metadata second, the symbol itself last. Never
// fails; provider errors degrade to the fallback.
func (s *Service) DisplayName(ctx context.Context, symbol string) string {
	upper := strings.ToUpper(symbol)
	if name, ok := taiwanNames[upper]; ok {
		return name
	}

	longName, shortName, err := s.provider.QuoteNames(ctx, upper)
	if err != nil {
		s.logger.WithError(err).WithField("symbol", upper).Warn("quote metadata unavailable")
		return upper
	}
	if longName != "" {
		return longName
	}
	if shortName != "" {
		return shortName
	}
	return upper
}

// TableName is the static-table-only name used in batch rankings, where
// a per-row metadata call would be far too slow. Unknown symbols fall
// back to the symbol with the market suffix stripped.
func TableName(symbol string) string {
	upper := strings.ToUpper(symbol)
	if name, ok := taiwanNames[upper]; ok {
		return name
	}
	return strings.TrimSuffix(upper, instruments.TaiwanSuffix)
}

// ScanList returns the market's leaderboard universe: for Taiwan the
// 0050..0099 ETF range merged with the curated table, de-duplicated and
// sorted; for the US a fixed large-cap list.
func ScanList(market instruments.Market) []string {
	if market != instruments.MarketTaiwan {
		out := make([]string, len(usScan))
		copy(out, usScan)
		return out
	}

	seen := make(map[string]struct{}, len(taiwanNames)+50)
	for i := 50; i < 100; i++ {
		seen[fmt.Sprintf("00%d.TW", i)] = struct{}{}
	}
	for symbol := range taiwanNames {
		seen[symbol] = struct{}{}
	}

	out := make([]string, 0, len(seen))
	for symbol := range seen {
		out = append(out, symbol)
	}
	sort.Strings(out)
	return out
}

func allDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
