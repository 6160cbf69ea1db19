// Package tui provides the live terminal view for stimer.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fentz26/stimer/internal/clock"
	"github.com/fentz26/stimer/internal/models"
	"github.com/fentz26/stimer/internal/tracker"
)

var (
	// Colors
	primaryColor = lipgloss.Color("#7C3AED")
	successColor = lipgloss.Color("#10B981")
	errorColor   = lipgloss.Color("#EF4444")
	mutedColor   = lipgloss.Color("#6B7280")

	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Padding(0, 1)

	runningStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	idleStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	totalStyle = lipgloss.NewStyle().
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1)
)

// StatusSource lists open tasks. *tracker.Lifecycle satisfies it.
type StatusSource interface {
	Status() ([]models.OpenTask, error)
}

// ReportSource computes daily reports. *tracker.Aggregator satisfies it.
type ReportSource interface {
	Report(day string) (*tracker.Report, error)
}

type snapshotMsg struct {
	open   []models.OpenTask
	report *tracker.Report
	err    error
}

type tickMsg time.Time

// App is the watch view model. It only reads from the store.
type App struct {
	status   StatusSource
	reports  ReportSource
	clock    clock.Clock
	interval time.Duration

	table  table.Model
	open   []models.OpenTask
	report *tracker.Report
	err    error
}

// New creates the watch view. interval is the refresh period.
func New(status StatusSource, reports ReportSource, c clock.Clock, interval time.Duration) *App {
	if interval <= 0 {
		interval = time.Second
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Record", Width: 30},
			{Title: "Duration", Width: 14},
		}),
		table.WithHeight(10),
		table.WithWidth(48),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(mutedColor).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.Foreground(lipgloss.NoColor{}).Bold(false)
	t.SetStyles(s)

	return &App{
		status:   status,
		reports:  reports,
		clock:    c,
		interval: interval,
		table:    t,
	}
}

// Run starts the TUI and blocks until the user quits.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.refresh(), a.tickCmd())
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return a, tea.Quit
		case "r":
			return a, a.refresh()
		}

	case tea.WindowSizeMsg:
		if h := msg.Height - 10; h > 3 {
			a.table.SetHeight(h)
		}

	case tickMsg:
		return a, tea.Batch(a.refresh(), a.tickCmd())

	case snapshotMsg:
		a.err = msg.err
		if msg.err == nil {
			a.open = msg.open
			a.report = msg.report
			a.table.SetRows(reportRows(msg.report))
		}
	}
	return a, nil
}

// View implements tea.Model
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("stimer"))
	b.WriteString("\n\n")

	if len(a.open) == 0 {
		b.WriteString(idleStyle.Render("No task running"))
	} else {
		now := a.clock.Now()
		for i, task := range a.open {
			if i > 0 {
				b.WriteString("\n")
			}
			since := time.Unix(task.Start, 0).Format("15:04:05")
			b.WriteString(runningStyle.Render("● " + task.Record))
			fmt.Fprintf(&b, "  %s (since %s)", tracker.FormatDuration(now-task.Start), since)
		}
	}
	b.WriteString("\n\n")

	day := "Today"
	var total int64
	if a.report != nil {
		day = a.report.Day.Format(tracker.DayLayout)
		total = a.report.Total
	}
	panel := a.table.View() + "\n" + totalStyle.Render("Total this day: "+tracker.FormatDuration(total))
	b.WriteString(titleStyle.Render(day))
	b.WriteString("\n")
	b.WriteString(panelStyle.Render(panel))
	b.WriteString("\n")

	if a.err != nil {
		b.WriteString(errorStyle.Render("Error: " + a.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("r refresh • q quit"))
	return b.String()
}

func (a *App) refresh() tea.Cmd {
	return func() tea.Msg {
		open, err := a.status.Status()
		if err != nil {
			return snapshotMsg{err: err}
		}
		report, err := a.reports.Report(tracker.Today)
		if err != nil {
			return snapshotMsg{err: err}
		}
		return snapshotMsg{open: open, report: report}
	}
}

func (a *App) tickCmd() tea.Cmd {
	return tea.Tick(a.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func reportRows(r *tracker.Report) []table.Row {
	if r == nil {
		return nil
	}
	records := r.Records()
	rows := make([]table.Row, 0, len(records))
	for _, rt := range records {
		rows = append(rows, table.Row{rt.Record, tracker.FormatDuration(rt.Seconds)})
	}
	return rows
}
