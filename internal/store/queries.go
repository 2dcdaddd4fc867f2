package store

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/avdonin/vacstat/internal/model"
)

// convertedAvgExpr is the converted-to-reference-currency mean over rows with
// a declared salary, used as the AboveAverage subquery.
const convertedAvgExpr = `SELECT SUM(salary * 1.0 / rate) / COUNT(salary) FROM %s WHERE salary IS NOT NULL`

// CountByEmployer returns the number of vacancies per distinct employer.
// Rows with an unknown employer are grouped under the empty string.
func (s *SQLStore) CountByEmployer(ctx context.Context) (map[string]int, error) {
	query := fmt.Sprintf(`SELECT employer, COUNT(*) FROM %s GROUP BY employer`, s.table)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("counting by employer: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var employer sql.NullString
		var count int
		if err := rows.Scan(&employer, &count); err != nil {
			return nil, fmt.Errorf("counting by employer: %w", err)
		}
		counts[employer.String] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("counting by employer: %w", err)
	}
	return counts, nil
}

// AverageSalary returns the mean salary across rows with a declared salary,
// with every salary converted into the reference currency via its snapshotted
// rate, rounded up to the nearest integer. Rows without a salary are excluded
// from both the sum and the count. Returns model.ErrNoSalaryData when no
// salaried rows exist.
func (s *SQLStore) AverageSalary(ctx context.Context) (int64, error) {
	query := fmt.Sprintf(
		`SELECT SUM(salary * 1.0 / rate), COUNT(salary) FROM %s WHERE salary IS NOT NULL`,
		s.table,
	)

	var sum sql.NullFloat64
	var count int64
	if err := s.db.QueryRowContext(ctx, query).Scan(&sum, &count); err != nil {
		return 0, fmt.Errorf("computing average salary: %w", err)
	}
	if count == 0 || !sum.Valid {
		return 0, model.ErrNoSalaryData
	}
	return int64(math.Ceil(sum.Float64 / float64(count))), nil
}

// ListAll returns every vacancy in storage order.
func (s *SQLStore) ListAll(ctx context.Context) ([]model.VacancyRow, error) {
	query := fmt.Sprintf(
		`SELECT title, employer, salary, currency, url, date_added FROM %s`,
		s.table,
	)
	return s.queryRows(ctx, query)
}

// AboveAverage returns vacancies whose salary, in its original currency, is
// strictly greater than the converted average. The raw-versus-converted
// comparison mirrors the original report.
func (s *SQLStore) AboveAverage(ctx context.Context) ([]model.VacancyRow, error) {
	query := fmt.Sprintf(
		`SELECT title, employer, salary, currency, url, date_added FROM %s WHERE salary > (`+convertedAvgExpr+`)`,
		s.table, s.table,
	)
	return s.queryRows(ctx, query)
}

// SearchTitle returns vacancies whose title contains keyword as a substring.
// The keyword is bound as a parameter with LIKE metacharacters escaped, so
// quotes and wildcards in it are matched literally.
func (s *SQLStore) SearchTitle(ctx context.Context, keyword string) ([]model.VacancyRow, error) {
	pattern := "%" + escapeLike(keyword) + "%"
	query := fmt.Sprintf(s.dialect.searchTitle, s.table)
	return s.queryRows(ctx, query, pattern)
}

func (s *SQLStore) queryRows(ctx context.Context, query string, args ...any) ([]model.VacancyRow, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying vacancies: %w", err)
	}
	defer rows.Close()

	var out []model.VacancyRow
	for rows.Next() {
		var (
			row      model.VacancyRow
			employer sql.NullString
			salary   sql.NullInt64
			currency sql.NullString
			date     calDate
		)
		if err := rows.Scan(&row.Title, &employer, &salary, &currency, &row.URL, &date); err != nil {
			return nil, fmt.Errorf("scanning vacancy row: %w", err)
		}
		if employer.Valid {
			row.Employer = &employer.String
		}
		if salary.Valid {
			row.Salary = &salary.Int64
		}
		if currency.Valid {
			row.Currency = &currency.String
		}
		row.DateAdded = date.t.Format("01.02.2006")
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("querying vacancies: %w", err)
	}
	return out, nil
}

// calDate scans a calendar date regardless of driver: pgx hands back
// time.Time for DATE columns, SQLite hands back the stored text.
type calDate struct {
	t time.Time
}

func (d *calDate) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		d.t = time.Time{}
		return nil
	case time.Time:
		d.t = v
		return nil
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	default:
		return fmt.Errorf("cannot scan %T into calendar date", src)
	}
}

func (d *calDate) parse(s string) error {
	t, err := time.Parse(dateColumnLayout, s)
	if err != nil {
		return fmt.Errorf("parsing date %q: %w", s, err)
	}
	d.t = t
	return nil
}

// escapeLike escapes LIKE metacharacters so the keyword is matched literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
