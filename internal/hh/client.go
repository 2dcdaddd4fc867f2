// Package hh is the adapter for the hh.ru listing API: per-employer vacancy
// search plus the dictionaries endpoint that carries currency rates.
package hh

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/avdonin/vacstat/internal/model"
	"github.com/avdonin/vacstat/internal/ratelimit"
)

// published_at comes back as "2023-01-26T14:01:14+0300".
const publishedAtLayout = "2006-01-02T15:04:05-0700"

// Ensure Client implements both source-facing interfaces.
var (
	_ model.VacancyFetcher = (*Client)(nil)
	_ model.RateProvider   = (*Client)(nil)
)

// Client queries the listing API. It implements both model.VacancyFetcher
// and model.RateProvider.
type Client struct {
	baseURL string
	perPage int
	client  *http.Client
	limiter *ratelimit.Limiter
}

// NewClient creates a client for the listing API rooted at baseURL.
// limiter may be nil to disable request spacing.
func NewClient(baseURL string, perPage int, httpClient *http.Client, limiter *ratelimit.Limiter) *Client {
	return &Client{
		baseURL: baseURL,
		perPage: perPage,
		client:  httpClient,
		limiter: limiter,
	}
}

// wireVacancy mirrors the fields we consume from one item in the vacancies
// search response.
type wireVacancy struct {
	Name         string       `json:"name"`
	Employer     wireEmployer `json:"employer"`
	Salary       *wireSalary  `json:"salary"`
	AlternateURL string       `json:"alternate_url"`
	PublishedAt  string       `json:"published_at"`
}

type wireEmployer struct {
	Name string `json:"name"`
}

type wireSalary struct {
	From     *int64 `json:"from"`
	Currency string `json:"currency"`
}

// searchResponse is the top-level vacancies search response.
type searchResponse struct {
	Items []wireVacancy `json:"items"`
}

// Fetch queries the API once per employer and returns one raw result set per
// employer, in roster order. Results past the configured page size are
// truncated by the API; there is no pagination loop. Any failed request fails
// the whole fetch.
func (c *Client) Fetch(ctx context.Context, employers []string) ([][]model.RawVacancy, error) {
	groups := make([][]model.RawVacancy, 0, len(employers))
	for _, employer := range employers {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		group, err := c.fetchEmployer(ctx, employer)
		if err != nil {
			return nil, fmt.Errorf("fetching vacancies for %s: %w", employer, err)
		}
		groups = append(groups, group)
	}
	return groups, nil
}

func (c *Client) fetchEmployer(ctx context.Context, employer string) ([]model.RawVacancy, error) {
	params := url.Values{}
	params.Set("text", employer)
	params.Set("search_field", "company_name")
	params.Set("per_page", strconv.Itoa(c.perPage))
	params.Set("archived", "false")

	reqURL := c.baseURL + "/vacancies?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &model.HTTPError{StatusCode: resp.StatusCode}
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	raws := make([]model.RawVacancy, 0, len(sr.Items))
	for _, item := range sr.Items {
		raw, err := toRawVacancy(item)
		if err != nil {
			return nil, err
		}
		raws = append(raws, raw)
	}
	return raws, nil
}

// toRawVacancy maps one wire item to the model. A salary object without a
// "from" amount counts as no salary at all: the currency is dropped with it
// so the salary fields stay jointly present-or-absent.
func toRawVacancy(item wireVacancy) (model.RawVacancy, error) {
	publishedAt, err := parsePublishedAt(item.PublishedAt)
	if err != nil {
		return model.RawVacancy{}, fmt.Errorf("vacancy %q: parsing published_at %q: %w", item.Name, item.PublishedAt, err)
	}

	raw := model.RawVacancy{
		Employer:    item.Employer.Name,
		Title:       item.Name,
		URL:         item.AlternateURL,
		PublishedAt: publishedAt,
	}
	if item.Salary != nil && item.Salary.From != nil {
		from := *item.Salary.From
		raw.SalaryFrom = &from
		raw.Currency = item.Salary.Currency
	}
	return raw, nil
}

// parsePublishedAt accepts the API's compact zone offset as well as RFC3339.
// The zone is passed through verbatim, no re-zoning.
func parsePublishedAt(value string) (time.Time, error) {
	t, err := time.Parse(publishedAtLayout, value)
	if err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
