package store

import (
	"context"
	"fmt"

	"github.com/avdonin/vacstat/internal/model"
)

// dateColumnLayout is how date_added is bound on insert. Both drivers accept
// it for a DATE column.
const dateColumnLayout = "2006-01-02"

// ReplaceAll atomically discards every row, resets the identity sequence, and
// inserts the given vacancies in order. On any failure the transaction rolls
// back and the table keeps its prior contents; the store is never left
// half-loaded.
func (s *SQLStore) ReplaceAll(ctx context.Context, vacancies []model.Vacancy) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replacing vacancies: begin: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range s.dialect.reset {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(stmt, s.table)); err != nil {
			return fmt.Errorf("replacing vacancies: reset: %w", err)
		}
	}

	insert, err := tx.PrepareContext(ctx, fmt.Sprintf(s.dialect.insert, s.table))
	if err != nil {
		return fmt.Errorf("replacing vacancies: prepare insert: %w", err)
	}
	defer insert.Close()

	for _, v := range vacancies {
		_, err := insert.ExecContext(ctx,
			v.Title, v.Employer, v.Salary, v.Currency, v.Rate, v.URL,
			v.DateAdded.Format(dateColumnLayout),
		)
		if err != nil {
			return fmt.Errorf("replacing vacancies: inserting %q: %w", v.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replacing vacancies: commit: %w", err)
	}
	return nil
}
