package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
)

type sparkResponse struct {
	Spark struct {
		Result []struct {
			Symbol   string `json:"symbol"`
			Response []struct {
				Timestamp  []int64 `json:"timestamp"`
				Indicators struct {
					Quote []struct {
						Close []*float64 `json:"close"`
					} `json:"quote"`
				} `json:"indicators"`
			} `json:"response"`
		} `json:"result"`
		Error any `json:"error"`
	} `json:"spark"`
}

// BatchCloses fetches the trailing two days of daily closes for a whole
// batch of symbols in a single spark request. Null closes are dropped,
// so a symbol's sequence may come back shorter than two entries.
func (c *Client) BatchCloses(ctx context.Context, symbols []string) (map[string][]float64, error) {
	if len(symbols) == 0 {
		return map[string][]float64{}, nil
	}

	params := url.Values{}
	params.Set("symbols", strings.Join(symbols, ","))
	params.Set("range", "2d")
	params.Set("interval", "1d")
	reqURL := c.baseURL + "/v8/finance/spark?" + params.Encode()

	var resp sparkResponse
	if err := c.getJSON(ctx, reqURL, &resp); err != nil {
		return nil, err
	}
	if resp.Spark.Error != nil {
		return nil, fmt.Errorf("spark: %w", ErrNoData)
	}

	closes := make(map[string][]float64, len(resp.Spark.Result))
	for _, result := range resp.Spark.Result {
		if result.Symbol == "" || len(result.Response) == 0 {
			continue
		}
		chart := result.Response[0]
		if len(chart.Indicators.Quote) == 0 {
			continue
		}
		quote := chart.Indicators.Quote[0]

		series := make([]float64, 0, len(quote.Close))
		for _, close := range quote.Close {
			if close == nil {
				continue
			}
			series = append(series, *close)
		}
		closes[result.Symbol] = series
	}

	c.logger.WithFields(logrus.Fields{
		"requested": len(symbols),
		"returned":  len(closes),
	}).Debug("fetched batch closes")

	return closes, nil
}
