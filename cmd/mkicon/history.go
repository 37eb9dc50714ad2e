package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Mavwarf/mkicon/internal/history"
	"github.com/Mavwarf/mkicon/internal/paths"
)

const defaultHistoryCount = 10

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [N]",
		Short: "Show the last N generation runs (default 10, 0 = all)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runHistory,
	}
	cmd.Flags().Bool("raw", false, "Print the whole history in its stored log format")
	cmd.AddCommand(
		&cobra.Command{
			Use:   "clear",
			Short: "Delete all recorded runs",
			Args:  cobra.NoArgs,
			RunE:  runHistoryClear,
		},
		&cobra.Command{
			Use:   "clean <days>",
			Short: "Keep only runs from the last <days> days",
			Args:  cobra.ExactArgs(1),
			RunE:  runHistoryClean,
		},
	)
	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	if raw, _ := cmd.Flags().GetBool("raw"); raw {
		if len(args) > 0 {
			return fmt.Errorf("--raw prints every run and takes no count")
		}
		return runHistoryRaw(cmd)
	}

	count := defaultHistoryCount
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return fmt.Errorf("count must be a non-negative integer")
		}
		count = n
	}

	store := history.Open(paths.DataDir())
	defer store.Close()

	runs, err := store.Runs(count)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded.")
		return nil
	}
	for i, r := range runs {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprint(out, renderRun(r))
	}
	return nil
}

func runHistoryRaw(cmd *cobra.Command) error {
	store := history.Open(paths.DataDir())
	defer store.Close()

	content, err := store.ReadContent()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if content == "" {
		fmt.Fprintln(out, "No runs recorded.")
		return nil
	}
	fmt.Fprint(out, content)
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	store := history.Open(paths.DataDir())
	defer store.Close()
	if err := store.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
	return nil
}

func runHistoryClean(cmd *cobra.Command, args []string) error {
	days, err := strconv.Atoi(args[0])
	if err != nil || days <= 0 {
		return fmt.Errorf("days must be a positive integer")
	}
	store := history.Open(paths.DataDir())
	defer store.Close()
	removed, err := store.Clean(days)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d runs older than %d days.\n", removed, days)
	return nil
}
