package main

import (
	"fmt"

	"github.com/fentz26/stimer/internal/tracker"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:     "report",
	Aliases: []string{"r"},
	Short:   "Show time spent per record for a day",
	Args:    cobra.NoArgs,
	RunE:    runReport,
}

var reportDate string

func init() {
	reportCmd.Flags().StringVarP(&reportDate, "date", "d", tracker.Today, `Day to report: "today" or YYYY-MM-DD`)
}

func runReport(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	report, err := s.reports.Report(reportDate)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, rt := range report.Records() {
		fmt.Fprintf(out, "Task: %s. Duration: %s\n", rt.Record, tracker.FormatDuration(rt.Seconds))
	}
	fmt.Fprintf(out, "Total this day: %s\n", tracker.FormatDuration(report.Total))
	return nil
}
