package normalize

import (
	"errors"
	"testing"
	"time"

	"github.com/avdonin/vacstat/internal/model"
)

var msk = time.FixedZone("MSK", 3*60*60)

func int64p(v int64) *int64 { return &v }

func rawVacancy(title, employer string) model.RawVacancy {
	return model.RawVacancy{
		Employer:    employer,
		Title:       title,
		URL:         "https://hh.ru/vacancy/1",
		PublishedAt: time.Date(2026, 8, 20, 14, 1, 14, 0, msk),
	}
}

func TestNormalize_NoSalaryAllNil(t *testing.T) {
	raw := rawVacancy("QA Engineer", "Acme")

	got, err := Normalize([][]model.RawVacancy{{raw}}, model.RateTable{"RUR": 1.0})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 vacancy, got %d", len(got))
	}

	v := got[0]
	if v.Salary != nil || v.Currency != nil || v.Rate != nil {
		t.Errorf("expected salary/currency/rate all nil, got %+v", v)
	}
	if v.Title != "QA Engineer" {
		t.Errorf("Title = %q", v.Title)
	}
	if v.Employer == nil || *v.Employer != "Acme" {
		t.Errorf("Employer = %v, want Acme", v.Employer)
	}
}

func TestNormalize_SalaryKeptInOriginalCurrency(t *testing.T) {
	raw := rawVacancy("Go Developer", "Acme")
	raw.SalaryFrom = int64p(150000)
	raw.Currency = "RUR"

	got, err := Normalize([][]model.RawVacancy{{raw}}, model.RateTable{"RUR": 1.0, "USD": 0.0125})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	v := got[0]
	if v.Salary == nil || *v.Salary != 150000 {
		t.Errorf("Salary = %v, want 150000 (no conversion at normalization time)", v.Salary)
	}
	if v.Currency == nil || *v.Currency != "RUR" {
		t.Errorf("Currency = %v, want RUR", v.Currency)
	}
	if v.Rate == nil || *v.Rate != 1.0 {
		t.Errorf("Rate = %v, want 1.0", v.Rate)
	}
}

func TestNormalize_MissingRateAbortsEverything(t *testing.T) {
	ok := rawVacancy("Go Developer", "Acme")
	ok.SalaryFrom = int64p(150000)
	ok.Currency = "RUR"

	bad := rawVacancy("Erlang Developer", "Acme")
	bad.SalaryFrom = int64p(9000)
	bad.Currency = "XYZ"

	got, err := Normalize([][]model.RawVacancy{{ok, bad}}, model.RateTable{"RUR": 1.0})
	if err == nil {
		t.Fatal("expected error for unknown currency")
	}
	if got != nil {
		t.Errorf("expected no partial results, got %v", got)
	}

	var rateErr *model.MissingRateError
	if !errors.As(err, &rateErr) {
		t.Fatalf("expected MissingRateError, got %v", err)
	}
	if rateErr.Currency != "XYZ" {
		t.Errorf("Currency = %q, want XYZ", rateErr.Currency)
	}
}

func TestNormalize_FlattensInOrder(t *testing.T) {
	a1 := rawVacancy("A1", "A")
	a2 := rawVacancy("A2", "A")
	b1 := rawVacancy("B1", "B")

	got, err := Normalize([][]model.RawVacancy{{a1, a2}, {b1}}, model.RateTable{})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	titles := make([]string, len(got))
	for i, v := range got {
		titles[i] = v.Title
	}
	want := []string{"A1", "A2", "B1"}
	for i := range want {
		if titles[i] != want[i] {
			t.Fatalf("titles = %v, want %v", titles, want)
		}
	}
}

func TestNormalize_TruncatesDateKeepingZone(t *testing.T) {
	raw := rawVacancy("Go Developer", "Acme")
	raw.PublishedAt = time.Date(2026, 8, 20, 23, 59, 59, 0, msk)

	got, err := Normalize([][]model.RawVacancy{{raw}}, model.RateTable{})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	d := got[0].DateAdded
	if d.Year() != 2026 || d.Month() != 8 || d.Day() != 20 {
		t.Errorf("DateAdded = %v, want 2026-08-20", d)
	}
	if d.Hour() != 0 || d.Minute() != 0 || d.Second() != 0 {
		t.Errorf("DateAdded = %v, time of day not truncated", d)
	}
	if d.Location() != msk {
		t.Errorf("DateAdded zone = %v, want source zone", d.Location())
	}
}

func TestNormalize_EmptyEmployerIsNil(t *testing.T) {
	raw := rawVacancy("Anonymous Role", "")

	got, err := Normalize([][]model.RawVacancy{{raw}}, model.RateTable{})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got[0].Employer != nil {
		t.Errorf("Employer = %v, want nil", got[0].Employer)
	}
}
