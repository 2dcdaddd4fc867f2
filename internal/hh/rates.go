package hh

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/avdonin/vacstat/internal/model"
)

// wireCurrency is one entry in the dictionaries currency list. Rate is units
// of the currency per one unit of the reference currency.
type wireCurrency struct {
	Code string  `json:"code"`
	Rate float64 `json:"rate"`
}

type dictionariesResponse struct {
	Currency []wireCurrency `json:"currency"`
}

// Rates fetches the dictionaries endpoint once and builds the code -> rate
// table. Any failure is fatal for the run: no salaried vacancy can be
// normalized without rates.
func (c *Client) Rates(ctx context.Context) (model.RateTable, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/dictionaries", nil)
	if err != nil {
		return nil, fmt.Errorf("fetching rates: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching rates: %w", &model.HTTPError{StatusCode: resp.StatusCode})
	}

	var dr dictionariesResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return nil, fmt.Errorf("fetching rates: decoding response: %w", err)
	}

	rates := make(model.RateTable, len(dr.Currency))
	for _, cur := range dr.Currency {
		rates[cur.Code] = cur.Rate
	}
	return rates, nil
}
