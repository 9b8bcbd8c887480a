package interfaces

import (
	"context"

	marketdata "main/internal/domain/entity/marketdata"
)

// MarketDataProvider is the upstream market-data source. Implementations
// return real errors; converting failures into empty results is the
// callers' responsibility.
type MarketDataProvider interface {
	// BatchCloses fetches the trailing daily closes for a whole batch of
	// symbols in one request. The returned sequences are ordered
	// ascending by date and may be shorter than two entries for thinly
	// traded or unknown symbols.
	BatchCloses(ctx context.Context, symbols []string) (map[string][]float64, error)

	// History fetches the full available OHLCV history at the given
	// interval together with the instrument's dividend events.
	History(ctx context.Context, symbol string, interval marketdata.Interval) ([]marketdata.Bar, []marketdata.DividendEvent, error)

	// QuoteNames fetches the instrument's descriptive metadata.
	QuoteNames(ctx context.Context, symbol string) (longName, shortName string, err error)
}
