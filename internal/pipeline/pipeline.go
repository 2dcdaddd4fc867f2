// Package pipeline sequences one full ingestion run:
// rates → fetch → normalize → replace.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/avdonin/vacstat/internal/model"
	"github.com/avdonin/vacstat/internal/normalize"
)

// Pipeline owns one end-to-end ingestion pass for a fixed employer roster.
// Every run is all-or-nothing: any stage failure aborts before the store is
// touched, and the store's own transaction covers the replace itself.
type Pipeline struct {
	employers []string
	rates     model.RateProvider
	fetcher   model.VacancyFetcher
	store     model.VacancyStore
	logger    *slog.Logger
}

// New creates a pipeline wired with all its dependencies.
func New(
	employers []string,
	rates model.RateProvider,
	fetcher model.VacancyFetcher,
	store model.VacancyStore,
	logger *slog.Logger,
) *Pipeline {
	return &Pipeline{
		employers: employers,
		rates:     rates,
		fetcher:   fetcher,
		store:     store,
		logger:    logger,
	}
}

// Run executes one ingestion pass: fetch the rate table, fetch raw vacancies
// per employer, normalize, then replace the store's full contents.
func (p *Pipeline) Run(ctx context.Context) error {
	rates, err := p.rates.Rates(ctx)
	if err != nil {
		return fmt.Errorf("ingestion run: %w", err)
	}
	p.logger.Debug("fetched rate table", "currencies", len(rates))

	groups, err := p.fetcher.Fetch(ctx, p.employers)
	if err != nil {
		return fmt.Errorf("ingestion run: %w", err)
	}

	vacancies, err := normalize.Normalize(groups, rates)
	if err != nil {
		return fmt.Errorf("ingestion run: %w", err)
	}

	if err := p.store.ReplaceAll(ctx, vacancies); err != nil {
		return fmt.Errorf("ingestion run: %w", err)
	}

	salaried := 0
	for _, v := range vacancies {
		if v.Salary != nil {
			salaried++
		}
	}
	p.logger.Info("ingestion run complete",
		"employers", len(p.employers),
		"vacancies", len(vacancies),
		"salaried", salaried,
	)

	return nil
}
