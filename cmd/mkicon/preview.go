package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/energye/systray"
	"github.com/spf13/cobra"

	"github.com/Mavwarf/mkicon/internal/ico"
	"github.com/Mavwarf/mkicon/internal/pngenc"
)

// systray must run on the main OS thread (required on macOS), so pin
// the main goroutine before cobra dispatches any command.
func init() {
	runtime.LockOSThread()
}

// previewSize matches the generic tray icon (icon.png).
const previewSize = 128

func newPreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview [file.png]",
		Short: "Show an icon in the system tray until Quit is chosen",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPreview,
	}
	cmd.Flags().String("color", "", "Fill color when no file is given")
	return cmd
}

func runPreview(cmd *cobra.Command, args []string) error {
	data, err := previewPNG(cmd, args)
	if err != nil {
		return err
	}
	icon, err := trayIcon(data, runtime.GOOS)
	if err != nil {
		return err
	}

	systray.Run(func() { onPreviewReady(icon) }, func() {})
	return nil
}

// previewPNG returns the PNG named on the command line, or a freshly
// encoded tray-sized icon.
func previewPNG(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, err
		}
		if _, err := pngenc.ReadHeader(data); err != nil {
			return nil, fmt.Errorf("%s: %w", args[0], err)
		}
		return data, nil
	}

	c := pngenc.Accent
	if s, _ := cmd.Flags().GetString("color"); s != "" {
		parsed, err := pngenc.ParseColor(s)
		if err != nil {
			return nil, fmt.Errorf("--color: %w", err)
		}
		c = parsed
	}
	return pngenc.Encode(previewSize, previewSize, c)
}

// trayIcon converts PNG bytes into what systray.SetIcon expects on goos.
// Windows LoadImage(IMAGE_ICON) requires ICO; other platforms take PNG.
func trayIcon(data []byte, goos string) ([]byte, error) {
	if goos != "windows" {
		return data, nil
	}
	hdr, err := pngenc.ReadHeader(data)
	if err != nil {
		return nil, err
	}
	return ico.Encode([]ico.Image{{Width: int(hdr.Width), Height: int(hdr.Height), PNG: data}})
}

func onPreviewReady(icon []byte) {
	systray.SetIcon(icon)
	systray.SetTooltip("mkicon preview")

	mQuit := systray.AddMenuItem("Quit", "Close the preview")
	mQuit.Click(func() {
		systray.Quit()
	})
}
