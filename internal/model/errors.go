package model

import (
	"errors"
	"fmt"
)

// ErrNoSalaryData is returned by AverageSalary when the table holds no rows
// with a declared salary, so no average can be computed.
var ErrNoSalaryData = errors.New("no vacancies with salary data")

// HTTPError wraps an unexpected HTTP status from the listing source.
type HTTPError struct {
	StatusCode int
	Err        error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("HTTP %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// MissingRateError means a vacancy declared a salary in a currency the rate
// table does not know. Normalization cannot proceed past it: a partially
// normalized dataset must never reach the store.
type MissingRateError struct {
	Currency string
	Title    string
}

func (e *MissingRateError) Error() string {
	return fmt.Sprintf("no exchange rate for currency %q (vacancy %q)", e.Currency, e.Title)
}
