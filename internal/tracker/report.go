package tracker

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/fentz26/stimer/internal/clock"
	"github.com/fentz26/stimer/internal/models"
)

const (
	// Today selects the current local calendar date in Report.
	Today = "today"

	// DayLayout is the accepted explicit date format.
	DayLayout = "2006-01-02"

	// DaySeconds is the fixed report window width. Days with a DST change
	// are still treated as exactly this long.
	DaySeconds int64 = 24 * 60 * 60
)

// Report is the per-record total for one calendar day. Only closed tasks count.
type Report struct {
	Day       time.Time
	From      int64
	To        int64
	PerRecord map[string]int64
	Total     int64
}

// Records returns the per-record totals sorted by record label.
func (r *Report) Records() []models.RecordTotal {
	out := make([]models.RecordTotal, 0, len(r.PerRecord))
	for record, seconds := range r.PerRecord {
		out = append(out, models.RecordTotal{Record: record, Seconds: seconds})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Record < out[j].Record })
	return out
}

// Aggregator computes daily reports from the task table.
type Aggregator struct {
	store  TaskStore
	clock  clock.Clock
	loc    *time.Location
	logger *slog.Logger
}

// NewAggregator creates an Aggregator over s using the local time zone.
// A nil logger discards log output.
func NewAggregator(s TaskStore, c clock.Clock, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		store:  s,
		clock:  c,
		loc:    time.Local,
		logger: orDiscard(logger),
	}
}

// SetLocation overrides the zone used for calendar days.
func (a *Aggregator) SetLocation(loc *time.Location) {
	if loc != nil {
		a.loc = loc
	}
}

// Report sums closed task durations per record for day, which is either
// Today or a date in DayLayout form.
func (a *Aggregator) Report(day string) (*Report, error) {
	date, err := a.ResolveDay(day)
	if err != nil {
		return nil, err
	}

	from, to := DayWindow(date, a.loc)
	tasks, err := a.store.SelectClosedInRange(from, to)
	if err != nil {
		a.logger.Error("report query failed", "day", day, "error", err)
		return nil, storageErr("report", err)
	}

	report := &Report{
		Day:       date,
		From:      from,
		To:        to,
		PerRecord: make(map[string]int64),
	}
	for _, task := range tasks {
		d := task.Duration()
		report.PerRecord[task.Record] += d
		report.Total += d
	}

	a.logger.Debug("report computed", "day", date.Format(DayLayout), "tasks", len(tasks), "records", len(report.PerRecord), "total", report.Total)
	return report, nil
}

// ResolveDay turns Today or a DayLayout string into a local calendar date.
func (a *Aggregator) ResolveDay(day string) (time.Time, error) {
	if day == Today {
		now := time.Unix(a.clock.Now(), 0).In(a.loc)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, a.loc), nil
	}
	date, err := time.ParseInLocation(DayLayout, day, a.loc)
	if err != nil {
		return time.Time{}, &InvalidDateError{Input: day, Err: err}
	}
	return date, nil
}

// DayWindow returns the report window for the calendar date of day in loc:
// from is local midnight as a Unix timestamp and to is from + DaySeconds.
// Both bounds are inclusive.
func DayWindow(day time.Time, loc *time.Location) (from, to int64) {
	y, m, d := day.Date()
	from = time.Date(y, m, d, 0, 0, 0, 0, loc).Unix()
	return from, from + DaySeconds
}

// FormatDuration renders seconds as "Hh Mm Ss" with unbounded hours.
func FormatDuration(seconds int64) string {
	return fmt.Sprintf("%dh %dm %ds", seconds/3600, (seconds/60)%60, seconds%60)
}
