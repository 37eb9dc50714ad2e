package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Mavwarf/mkicon/internal/pngenc"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.png>...",
		Short: "Print the header and chunk list of PNG files, verifying CRCs",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runInspect,
	}
}

func runInspect(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for i, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		chunks, err := pngenc.ReadChunks(data)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		hdr, err := pngenc.ReadHeader(data)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "%s: %dx%d, %d-bit %s, %d bytes\n",
			bold(path), hdr.Width, hdr.Height, hdr.BitDepth, pngenc.ColorTypeName(hdr.ColorType), len(data))
		for _, c := range chunks {
			fmt.Fprintf(out, "  %s  %s  crc=%08x\n", cyan(c.Type), padL(fmt.Sprintf("%d bytes", len(c.Data)), 12), c.CRC)
		}
	}
	return nil
}
