// Package browse is an interactive terminal browser over the stored
// vacancies: scroll the list, open a vacancy's posting in the browser.
package browse

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/avdonin/vacstat/internal/model"
)

// Lines per vacancy item in the list (title + subtitle + blank separator).
const itemHeight = 3

var (
	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")) // bright blue

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Foreground(lipgloss.Color("39"))

	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))

	itemTitleStyle = lipgloss.NewStyle().
			Bold(true)

	itemSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245"))

	selectedTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")). // bright white
				Background(lipgloss.Color("24"))  // dark blue bg

	selectedSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252")).
				Background(lipgloss.Color("24"))
)

type browseModel struct {
	rows     []model.VacancyRow
	viewport viewport.Model
	cursor   int
	width    int
	height   int
	ready    bool
	status   string
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		headerHeight := 1
		statusHeight := 1
		vp := viewport.New(msg.Width-2, msg.Height-headerHeight-statusHeight-2)
		vp.SetContent(m.renderList())
		m.viewport = vp
		m.ready = true

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			m.moveCursor(-1)
		case "down", "j":
			m.moveCursor(1)
		case "g":
			m.cursor = 0
			m.syncViewport()
		case "G":
			m.cursor = len(m.rows) - 1
			m.syncViewport()
		case "enter", "o":
			if len(m.rows) > 0 {
				if err := openURL(m.rows[m.cursor].URL); err != nil {
					m.status = fmt.Sprintf("open failed: %v", err)
				} else {
					m.status = "opened " + m.rows[m.cursor].URL
				}
			}
		}
	}

	return m, nil
}

func (m *browseModel) moveCursor(delta int) {
	if len(m.rows) == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	m.syncViewport()
}

// syncViewport re-renders the list and keeps the cursor's item visible.
func (m *browseModel) syncViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderList())

	top := m.cursor * itemHeight
	bottom := top + itemHeight
	if top < m.viewport.YOffset {
		m.viewport.SetYOffset(top)
	} else if bottom > m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(bottom - m.viewport.Height)
	}
}

func (m browseModel) renderList() string {
	if len(m.rows) == 0 {
		return itemSubtitleStyle.Render("no vacancies stored — run an ingestion first")
	}

	var b strings.Builder
	for i, row := range m.rows {
		titleStyle, subtitleStyle := itemTitleStyle, itemSubtitleStyle
		if i == m.cursor {
			titleStyle, subtitleStyle = selectedTitleStyle, selectedSubtitleStyle
		}
		b.WriteString(titleStyle.Render(row.Title))
		b.WriteString("\n")
		b.WriteString(subtitleStyle.Render(subtitle(row)))
		b.WriteString("\n\n")
	}
	return b.String()
}

func subtitle(row model.VacancyRow) string {
	employer := "(unknown employer)"
	if row.Employer != nil {
		employer = *row.Employer
	}
	salary := "salary not specified"
	if row.Salary != nil {
		salary = fmt.Sprintf("from %d", *row.Salary)
		if row.Currency != nil {
			salary += " " + *row.Currency
		}
	}
	return fmt.Sprintf("%s · %s · %s", employer, salary, row.DateAdded)
}

func (m browseModel) View() string {
	if !m.ready {
		return "loading..."
	}

	header := headerStyle.Render(fmt.Sprintf("vacstat — %d vacancies", len(m.rows)))
	status := m.status
	if status == "" {
		status = "↑/↓ move · enter open · q quit"
	}
	bar := statusBarStyle.Width(m.width).Render(status)

	return header + "\n" + borderStyle.Render(m.viewport.View()) + "\n" + bar
}

// openURL launches the default browser for the given URL.
func openURL(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}

// Run starts the TUI over the given rows and blocks until the user quits.
func Run(rows []model.VacancyRow) error {
	m := browseModel{rows: rows}
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running vacancy browser: %w", err)
	}
	return nil
}
