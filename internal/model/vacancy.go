package model

import (
	"context"
	"time"
)

// RawVacancy holds the fields consumed from one listing-source item.
// The source returns many more fields; everything else is ignored.
type RawVacancy struct {
	Employer    string
	Title       string
	SalaryFrom  *int64 // nil when the listing declares no salary
	Currency    string // currency code as declared, empty when no salary
	URL         string
	PublishedAt time.Time
}

// RateTable maps a currency code to its exchange rate: units of that currency
// per one unit of the reference currency. Built fresh per run, never cached.
type RateTable map[string]float64

// Vacancy is the normalized, store-ready representation of one job listing.
// Salary, Currency and Rate are all nil or all set: a vacancy either declares
// a salary (kept in its original currency, with the rate snapshotted at
// ingestion time) or it doesn't.
type Vacancy struct {
	Title     string
	Employer  *string
	Salary    *int64   // salary-from amount, original currency units
	Currency  *string  // 3-5 char currency code
	Rate      *float64 // snapshot of the currency's rate at ingestion
	URL       string
	DateAdded time.Time // publication timestamp truncated to a calendar date
}

// VacancyRow is the projection returned by the store's read queries.
type VacancyRow struct {
	Title     string
	Employer  *string
	Salary    *int64
	Currency  *string
	URL       string
	DateAdded string // MM.DD.YYYY
}

// RateProvider fetches the currency rate table from the listing source's
// dictionary endpoint.
type RateProvider interface {
	Rates(ctx context.Context) (RateTable, error)
}

// VacancyFetcher fetches raw vacancies for a roster of employers, one result
// set per employer, in roster order.
type VacancyFetcher interface {
	Fetch(ctx context.Context, employers []string) ([][]RawVacancy, error)
}

// VacancyStore owns the vacancy table: schema, bulk replace, and the
// analytical read queries.
type VacancyStore interface {
	EnsureSchema(ctx context.Context) error
	ReplaceAll(ctx context.Context, vacancies []Vacancy) error
	CountByEmployer(ctx context.Context) (map[string]int, error)
	AverageSalary(ctx context.Context) (int64, error)
	ListAll(ctx context.Context) ([]VacancyRow, error)
	AboveAverage(ctx context.Context) ([]VacancyRow, error)
	SearchTitle(ctx context.Context, keyword string) ([]VacancyRow, error)
}
