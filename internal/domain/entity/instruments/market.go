package instruments

import "fmt"

// Market selects which exchange universe a symbol belongs to.
type Market string

const (
	MarketTaiwan Market = "tw"
	MarketUS     Market = "us"
)

// TaiwanSuffix is the provider's market suffix for Taiwan-listed
// instruments.
const TaiwanSuffix = ".TW"

func (m Market) String() string {
	return string(m)
}

func (m Market) IsValid() bool {
	switch m {
	case MarketTaiwan, MarketUS:
		return true
	default:
		return false
	}
}

func NewMarket(s string) (Market, error) {
	m := Market(s)
	if !m.IsValid() {
		return "", fmt.Errorf("invalid market: %s", s)
	}
	return m, nil
}

// Instrument is a resolved instrument: the provider's canonical symbol
// plus a human-readable display name. Built fresh per request, never
// persisted.
type Instrument struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Market Market `json:"market"`
}
