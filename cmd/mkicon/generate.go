package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Mavwarf/mkicon/internal/config"
	"github.com/Mavwarf/mkicon/internal/generate"
	"github.com/Mavwarf/mkicon/internal/history"
	"github.com/Mavwarf/mkicon/internal/paths"
	"github.com/Mavwarf/mkicon/internal/pngenc"
	"github.com/Mavwarf/mkicon/internal/report"
)

func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "", "Config file (default: mkicon-config.json lookup)")
	cmd.Flags().StringP("out", "o", "", "Output directory (overrides config)")
	cmd.Flags().String("color", "", "Fill color: #rrggbb, #rrggbbaa or r,g,b[,a]")
	cmd.Flags().Bool("ico", false, "Also write icon.ico")
	cmd.Flags().Bool("no-history", false, "Do not record this run in the history")
	cmd.Flags().Bool("dry-run", false, "List the files that would be written")
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if err := applyFlags(&cfg, cmd); err != nil {
		return cfg, err
	}
	return cfg, config.Validate(cfg)
}

// applyFlags overrides config values with flags the user set explicitly.
func applyFlags(cfg *config.Config, cmd *cobra.Command) error {
	flags := cmd.Flags()
	if flags.Changed("out") {
		cfg.OutputDir, _ = flags.GetString("out")
	}
	if flags.Changed("color") {
		s, _ := flags.GetString("color")
		c, err := pngenc.ParseColor(s)
		if err != nil {
			return fmt.Errorf("--color: %w", err)
		}
		cfg.Color = c
	}
	if flags.Changed("ico") {
		cfg.ICO, _ = flags.GetBool("ico")
	}
	if noHistory, _ := flags.GetBool("no-history"); noHistory {
		cfg.History = false
	}
	return nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		for _, p := range generate.Plan(cfg) {
			if p.Width > 0 {
				fmt.Fprintf(out, "Would create %s (%dx%d)\n", p.Path, p.Width, p.Height)
			} else {
				fmt.Fprintf(out, "Would create %s\n", p.Path)
			}
		}
		return nil
	}

	run, err := generate.Run(cfg)
	for _, f := range run.Files {
		fmt.Fprintf(out, "Created %s\n", filepath.Join(cfg.OutputDir, f.Name))
	}
	if err != nil {
		return err
	}

	if cfg.History {
		recordHistory(run)
	}

	if errs := report.Send(cfg.Notify, run); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(cmd.ErrOrStderr(), "notify: %v\n", e)
		}
		return fmt.Errorf("%d notification(s) failed", len(errs))
	}

	fmt.Fprintf(out, "\n%s %d icons in %s\n", green("Done:"), len(run.Files), cfg.OutputDir)
	return nil
}

// recordHistory appends run to the history store. Best-effort: failures
// are printed and otherwise ignored.
func recordHistory(run history.Run) {
	store := history.Open(paths.DataDir())
	defer store.Close()
	if err := store.Log(run); err != nil {
		fmt.Fprintf(os.Stderr, "history: %v\n", err)
	}
}
