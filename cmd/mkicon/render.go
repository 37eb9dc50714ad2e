package main

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"

	"github.com/Mavwarf/mkicon/internal/history"
)

// --- ANSI color helpers (disabled when NO_COLOR is set or stdout is not a terminal) ---

var noColor = os.Getenv("NO_COLOR") != "" || !term.IsTerminal(int(os.Stdout.Fd()))

func ansi(code, s string) string {
	if noColor {
		return s
	}
	return code + s + "\033[0m"
}

func bold(s string) string  { return ansi("\033[1m", s) }
func dim(s string) string   { return ansi("\033[2m", s) }
func cyan(s string) string  { return ansi("\033[36m", s) }
func green(s string) string { return ansi("\033[32m", s) }

// padL left-aligns s in a field of width runes.
func padL(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// padR right-aligns s in a field of width runes.
func padR(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return strings.Repeat(" ", width-n) + s
}

// fmtBytes renders a byte count as B, KB or MB.
func fmtBytes(n int) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%d B", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	}
}

// shortSum returns the first 12 hex digits of a checksum.
func shortSum(s string) string {
	if len(s) > 12 {
		return s[:12]
	}
	return s
}

// renderRun formats one history run: a header line and one line per file.
func renderRun(r history.Run) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s  %s  %d files\n",
		bold(r.Time.Local().Format("2006-01-02 15:04:05")), r.OutputDir, r.Color, len(r.Files))

	width := 0
	for _, f := range r.Files {
		if n := utf8.RuneCountInString(f.Name); n > width {
			width = n
		}
	}
	for _, f := range r.Files {
		size := ""
		if f.Width > 0 {
			size = fmt.Sprintf("%dx%d", f.Width, f.Height)
		}
		fmt.Fprintf(&b, "    %s  %s  %s  %s\n",
			padL(f.Name, width), padL(size, 9), padR(fmtBytes(f.Bytes), 9), dim("sha256:"+shortSum(f.SHA256)))
	}
	return b.String()
}
