package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fentz26/stimer/internal/clock"
	"github.com/fentz26/stimer/internal/models"
	"github.com/fentz26/stimer/internal/tracker"
)

type fakeStatus struct {
	open []models.OpenTask
	err  error
}

func (f *fakeStatus) Status() ([]models.OpenTask, error) { return f.open, f.err }

type fakeReports struct {
	report *tracker.Report
	err    error
	days   []string
}

func (f *fakeReports) Report(day string) (*tracker.Report, error) {
	f.days = append(f.days, day)
	return f.report, f.err
}

func TestRefreshShowsRunningTaskAndReport(t *testing.T) {
	status := &fakeStatus{open: []models.OpenTask{{Record: "writing", Start: 1000}}}
	reports := &fakeReports{report: &tracker.Report{
		Day:       time.Date(2024, 5, 6, 0, 0, 0, 0, time.Local),
		PerRecord: map[string]int64{"reading": 900, "coding": 5400},
		Total:     6300,
	}}
	app := New(status, reports, clock.NewManual(4600), time.Second)

	msg := app.refresh()()
	app.Update(msg)

	if len(reports.days) != 1 || reports.days[0] != tracker.Today {
		t.Errorf("expected one report for today, got %v", reports.days)
	}

	view := app.View()
	for _, want := range []string{"writing", "1h 0m 0s", "coding", "1h 30m 0s", "reading", "0h 15m 0s", "Total this day: 1h 45m 0s", "2024-05-06"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestViewIdle(t *testing.T) {
	app := New(&fakeStatus{}, &fakeReports{report: &tracker.Report{PerRecord: map[string]int64{}}}, clock.NewManual(0), 0)
	app.Update(app.refresh()())

	view := app.View()
	if !strings.Contains(view, "No task running") {
		t.Errorf("expected idle message:\n%s", view)
	}
	if !strings.Contains(view, "Total this day: 0h 0m 0s") {
		t.Errorf("expected zero total:\n%s", view)
	}
}

func TestRefreshErrorKeepsLastSnapshot(t *testing.T) {
	status := &fakeStatus{open: []models.OpenTask{{Record: "first", Start: 0}}}
	reports := &fakeReports{report: &tracker.Report{PerRecord: map[string]int64{}}}
	app := New(status, reports, clock.NewManual(60), time.Second)
	app.Update(app.refresh()())

	status.err = errors.New("database is locked")
	app.Update(app.refresh()())

	view := app.View()
	if !strings.Contains(view, "database is locked") {
		t.Errorf("expected error in view:\n%s", view)
	}
	if !strings.Contains(view, "first") {
		t.Errorf("expected previous running task to stay visible:\n%s", view)
	}
}

func TestQuitKeys(t *testing.T) {
	app := New(&fakeStatus{}, &fakeReports{}, clock.NewManual(0), time.Second)

	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyCtrlC},
		{Type: tea.KeyEsc},
	} {
		_, cmd := app.Update(key)
		if cmd == nil {
			t.Fatalf("%s: expected quit command", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: expected tea.QuitMsg", key)
		}
	}
}

func TestTickSchedulesRefresh(t *testing.T) {
	app := New(&fakeStatus{}, &fakeReports{}, clock.NewManual(0), time.Second)
	_, cmd := app.Update(tickMsg(time.Now()))
	if cmd == nil {
		t.Fatal("expected tick to schedule refresh and next tick")
	}
}
