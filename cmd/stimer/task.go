package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/fentz26/stimer/internal/tui"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:     "start <record>",
	Aliases: []string{"st"},
	Short:   "Start timing a record",
	Args:    cobra.MatchAll(cobra.ExactArgs(1), nonEmptyRecord),
	RunE:    runStart,
}

var stopCmd = &cobra.Command{
	Use:     "stop",
	Aliases: []string{"sp"},
	Short:   "Stop the running task",
	Args:    cobra.NoArgs,
	RunE:    runStop,
}

var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"ss"},
	Short:   "Show the running task",
	Args:    cobra.NoArgs,
	RunE:    runStatus,
}

// nonEmptyRecord rejects a blank record label before anything is stored.
func nonEmptyRecord(cmd *cobra.Command, args []string) error {
	if args[0] == "" {
		return errors.New("record name must not be empty")
	}
	return nil
}

func runStart(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	record := args[0]

	warnIfRunning(cmd.ErrOrStderr(), s.logger, s.lifecycle)

	if err := s.lifecycle.Start(record); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Start %s\n", record)
	return nil
}

// warnIfRunning tells the user about tasks left open. Start itself does not
// refuse while something is running.
func warnIfRunning(w io.Writer, logger *slog.Logger, status tui.StatusSource) {
	open, err := status.Status()
	if err != nil {
		logger.Warn("running task check failed", "error", err)
		return
	}
	if len(open) > 0 {
		fmt.Fprintf(w, "Warning: %d task(s) already running, run stop first to close them\n", len(open))
	}
}

func runStop(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if _, err := s.lifecycle.Stop(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Stop")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	open, err := s.lifecycle.Status()
	if err != nil {
		return err
	}

	if len(open) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No task running")
		return nil
	}
	for _, t := range open {
		since := time.Unix(t.Start, 0).Format("2006-01-02 15:04:05")
		fmt.Fprintf(cmd.OutOrStdout(), "Current task: %s (since %s)\n", t.Record, since)
	}
	return nil
}
