// Package normalize turns raw per-employer result sets into canonical
// vacancies ready for the store.
package normalize

import (
	"time"

	"github.com/avdonin/vacstat/internal/model"
)

// Normalize flattens the grouped raw results into one ordered sequence of
// canonical vacancies. A vacancy without a salary gets salary, currency and
// rate all nil. A vacancy with a salary in a currency missing from rates
// aborts the whole normalization: the store replaces its full contents per
// run, so a partially normalized dataset must never be produced.
func Normalize(groups [][]model.RawVacancy, rates model.RateTable) ([]model.Vacancy, error) {
	var out []model.Vacancy
	for _, group := range groups {
		for _, raw := range group {
			v, err := one(raw, rates)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
	}
	return out, nil
}

func one(raw model.RawVacancy, rates model.RateTable) (model.Vacancy, error) {
	v := model.Vacancy{
		Title:     raw.Title,
		URL:       raw.URL,
		DateAdded: truncateToDate(raw.PublishedAt),
	}
	if raw.Employer != "" {
		employer := raw.Employer
		v.Employer = &employer
	}

	if raw.SalaryFrom == nil {
		return v, nil
	}

	rate, ok := rates[raw.Currency]
	if !ok {
		return model.Vacancy{}, &model.MissingRateError{Currency: raw.Currency, Title: raw.Title}
	}

	salary := *raw.SalaryFrom
	currency := raw.Currency
	v.Salary = &salary
	v.Currency = &currency
	v.Rate = &rate
	return v, nil
}

// truncateToDate drops the time-of-day, keeping the source's own zone.
func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
