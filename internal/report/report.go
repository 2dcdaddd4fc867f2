// Package report renders the analytical query results for the terminal.
package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/avdonin/vacstat/internal/model"
)

var (
	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")) // bright blue

	titleStyle = lipgloss.NewStyle().
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	numberStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))
)

// Renderer writes report sections to out.
type Renderer struct {
	out io.Writer
}

// NewRenderer creates a renderer writing to out.
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// Vacancies prints a section of vacancy rows in table order.
func (r *Renderer) Vacancies(section string, rows []model.VacancyRow) {
	fmt.Fprintln(r.out, sectionStyle.Render(fmt.Sprintf("%s (%d)", section, len(rows))))
	if len(rows) == 0 {
		fmt.Fprintln(r.out, dimStyle.Render("  nothing found"))
		return
	}
	for _, row := range rows {
		fmt.Fprintf(r.out, "  %s  %s\n",
			titleStyle.Render(row.Title),
			dimStyle.Render(employerOf(row)),
		)
		fmt.Fprintf(r.out, "  %s  %s  %s\n",
			salaryOf(row),
			row.DateAdded,
			dimStyle.Render(row.URL),
		)
	}
}

// EmployerCounts prints vacancy counts per employer, largest group first.
func (r *Renderer) EmployerCounts(counts map[string]int) {
	fmt.Fprintln(r.out, sectionStyle.Render("Vacancies per employer"))

	employers := make([]string, 0, len(counts))
	for e := range counts {
		employers = append(employers, e)
	}
	sort.Slice(employers, func(i, j int) bool {
		if counts[employers[i]] != counts[employers[j]] {
			return counts[employers[i]] > counts[employers[j]]
		}
		return employers[i] < employers[j]
	})

	for _, e := range employers {
		name := e
		if name == "" {
			name = "(unknown employer)"
		}
		fmt.Fprintf(r.out, "  %s  %s\n", numberStyle.Render(strconv.Itoa(counts[e])), name)
	}
}

// AverageSalary prints the converted average, or a no-data line when the
// table holds no salaried vacancies.
func (r *Renderer) AverageSalary(avg int64, err error) {
	if errors.Is(err, model.ErrNoSalaryData) {
		fmt.Fprintln(r.out, sectionStyle.Render("Average salary"))
		fmt.Fprintln(r.out, dimStyle.Render("  no vacancies with salary data"))
		return
	}
	fmt.Fprintf(r.out, "%s %s\n",
		sectionStyle.Render("Average salary"),
		numberStyle.Render(strconv.FormatInt(avg, 10)),
	)
}

// Full prints the complete report: every vacancy, the average salary,
// per-employer counts, keyword matches, and above-average vacancies.
func (r *Renderer) Full(ctx context.Context, st model.VacancyStore, keyword string) error {
	all, err := st.ListAll(ctx)
	if err != nil {
		return err
	}
	r.Vacancies("All vacancies", all)

	avg, err := st.AverageSalary(ctx)
	if err != nil && !errors.Is(err, model.ErrNoSalaryData) {
		return err
	}
	r.AverageSalary(avg, err)

	counts, err := st.CountByEmployer(ctx)
	if err != nil {
		return err
	}
	r.EmployerCounts(counts)

	matches, err := st.SearchTitle(ctx, keyword)
	if err != nil {
		return err
	}
	r.Vacancies(fmt.Sprintf("Vacancies matching %q", keyword), matches)

	higher, err := st.AboveAverage(ctx)
	if err != nil {
		return err
	}
	r.Vacancies("Vacancies with above-average salary", higher)

	return nil
}

func employerOf(row model.VacancyRow) string {
	if row.Employer == nil {
		return "(unknown employer)"
	}
	return *row.Employer
}

func salaryOf(row model.VacancyRow) string {
	if row.Salary == nil {
		return dimStyle.Render("salary not specified")
	}
	currency := ""
	if row.Currency != nil {
		currency = " " + *row.Currency
	}
	return fmt.Sprintf("from %d%s", *row.Salary, currency)
}
