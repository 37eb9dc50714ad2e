// mkicon writes solid-color placeholder icons for desktop app packaging.
//
// Usage:
//
//	mkicon [--out DIR] [--color #rrggbb] [--ico]
//	mkicon inspect <file.png>...
//	mkicon history [N] | history --raw | history clean <days> | history clear
//	mkicon preview [file.png]
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/Mavwarf/mkicon/internal/httputil"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "mkicon",
		Short:         "Generate solid-color placeholder app icons",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGenerate,
	}
	addGenerateFlags(root)

	gen := &cobra.Command{
		Use:   "generate",
		Short: "Write the configured icon set (default command)",
		Args:  cobra.NoArgs,
		RunE:  runGenerate,
	}
	addGenerateFlags(gen)

	root.AddCommand(gen, newInspectCmd(), newHistoryCmd(), newPreviewCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "mkicon %s (%s) %s/%s\n", version, buildDate, runtime.GOOS, runtime.GOARCH)
		},
	}
}

func userAgent() string {
	return "mkicon/" + version
}

func main() {
	httputil.UserAgent = userAgent()
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
