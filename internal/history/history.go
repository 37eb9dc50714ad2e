// Package history records every generation run: when it happened, where
// the icons went, and the size and checksum of each written file.
package history

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Mavwarf/mkicon/internal/paths"
)

// File describes one written icon.
type File struct {
	Name   string
	Width  int
	Height int
	Bytes  int
	SHA256 string
}

// Run is a single invocation of the generator.
type Run struct {
	Time      time.Time
	OutputDir string
	Color     string
	Files     []File
}

// Open returns the SQLite store in dir, falling back to a FileStore when
// the database cannot be opened.
func Open(dir string) Store {
	s, err := NewSQLiteStore(filepath.Join(dir, paths.HistoryDBName))
	if err != nil {
		fmt.Fprintf(os.Stderr, "history: sqlite unavailable, using log file: %v\n", err)
		return NewFileStore(filepath.Join(dir, paths.HistoryFileName))
	}
	return s
}

// DayCutoff returns midnight (local time) of the oldest day kept when
// retaining the last days calendar days, today included.
func DayCutoff(days int) time.Time {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return today.AddDate(0, 0, -(days - 1))
}

// formatTime renders timestamps in UTC so stored values sort lexically.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// FormatRun renders a run as one summary line plus one detail line per
// file, terminated by a blank line.
func FormatRun(r Run) string {
	var b strings.Builder
	ts := formatTime(r.Time)
	fmt.Fprintf(&b, "%s  dir=%q  color=%s  files=%d\n", ts, r.OutputDir, r.Color, len(r.Files))
	for i, f := range r.Files {
		fmt.Fprintf(&b, "%s    file[%d] name=%q  size=%dx%d  bytes=%d  sha256=%s\n",
			ts, i+1, f.Name, f.Width, f.Height, f.Bytes, f.SHA256)
	}
	b.WriteString("\n")
	return b.String()
}

// ParseRuns splits log content on blank lines and parses each block into
// a Run. Blocks without a valid summary line are skipped, as are
// malformed file lines.
func ParseRuns(content string) []Run {
	content = strings.TrimRight(content, "\n\r ")
	if content == "" {
		return nil
	}

	var runs []Run
	for _, block := range strings.Split(content, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		lines := strings.Split(block, "\n")
		ts, ok := extractTimestamp(lines[0])
		if !ok {
			continue
		}
		fields, _ := parseFields(lines[0])
		dir, ok := fields["dir"]
		if !ok {
			continue
		}
		run := Run{
			Time:      ts,
			OutputDir: dir,
			Color:     fields["color"],
		}
		for _, line := range lines[1:] {
			if f, ok := parseFileLine(line); ok {
				run.Files = append(run.Files, f)
			}
		}
		runs = append(runs, run)
	}
	return runs
}

func parseFileLine(line string) (File, bool) {
	fields, bare := parseFields(line)
	if len(bare) < 2 || !strings.HasPrefix(bare[1], "file[") {
		return File{}, false
	}
	var f File
	f.Name = fields["name"]
	if f.Name == "" {
		return File{}, false
	}
	if _, err := fmt.Sscanf(fields["size"], "%dx%d", &f.Width, &f.Height); err != nil {
		return File{}, false
	}
	n, err := strconv.Atoi(fields["bytes"])
	if err != nil {
		return File{}, false
	}
	f.Bytes = n
	f.SHA256 = fields["sha256"]
	return f, true
}

// extractTimestamp parses the RFC 3339 timestamp that starts a log line.
func extractTimestamp(line string) (time.Time, bool) {
	tsEnd := strings.Index(line, "  ")
	if tsEnd < 0 {
		return time.Time{}, false
	}
	ts, err := time.Parse(time.RFC3339, line[:tsEnd])
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// parseFields scans a log line left to right. Tokens of the form
// key=value land in fields, with %q-quoted values decoded; anything else
// (the timestamp, "file[N]") is returned in bare. Scanning stops at the
// first value that cannot be unquoted.
func parseFields(line string) (fields map[string]string, bare []string) {
	fields = map[string]string{}
	rest := line
	for {
		rest = strings.TrimLeft(rest, " ")
		if rest == "" {
			return fields, bare
		}
		end := strings.IndexByte(rest, ' ')
		if end < 0 {
			end = len(rest)
		}
		eq := strings.IndexByte(rest[:end], '=')
		if eq <= 0 {
			bare = append(bare, rest[:end])
			rest = rest[end:]
			continue
		}
		key := rest[:eq]
		rest = rest[eq+1:]
		if strings.HasPrefix(rest, `"`) {
			q, err := strconv.QuotedPrefix(rest)
			if err != nil {
				return fields, bare
			}
			fields[key], _ = strconv.Unquote(q)
			rest = rest[len(q):]
			continue
		}
		if end = strings.IndexByte(rest, ' '); end < 0 {
			end = len(rest)
		}
		fields[key] = rest[:end]
		rest = rest[end:]
	}
}

// keepRecent trims runs to the last limit entries; limit <= 0 keeps all.
func keepRecent(runs []Run, limit int) []Run {
	if limit > 0 && len(runs) > limit {
		return runs[len(runs)-limit:]
	}
	return runs
}
