package history

import (
	"strings"
	"testing"
	"time"
)

func sampleRun(ts time.Time) Run {
	return Run{
		Time:      ts,
		OutputDir: "crates/desktop/icons",
		Color:     "#5c9effff",
		Files: []File{
			{Name: "32x32.png", Width: 32, Height: 32, Bytes: 97, SHA256: "aa11"},
			{Name: "128x128@2x.png", Width: 256, Height: 256, Bytes: 1043, SHA256: "bb22"},
		},
	}
}

func TestFormatRun(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	got := FormatRun(sampleRun(ts))
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), got)
	}
	want := `2026-03-01T12:00:00Z  dir="crates/desktop/icons"  color=#5c9effff  files=2`
	if lines[0] != want {
		t.Errorf("summary = %q, want %q", lines[0], want)
	}
	if !strings.Contains(lines[2], `file[2] name="128x128@2x.png"  size=256x256  bytes=1043  sha256=bb22`) {
		t.Errorf("detail line = %q", lines[2])
	}
	if !strings.HasSuffix(got, "\n\n") {
		t.Error("run should end with a blank line")
	}
}

func TestParseRunsRoundTrip(t *testing.T) {
	t1 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	r2 := sampleRun(t2)
	r2.OutputDir = `dir with "quotes"  and spaces`
	content := FormatRun(sampleRun(t1)) + FormatRun(r2)

	runs := ParseRuns(content)
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if !runs[0].Time.Equal(t1) || !runs[1].Time.Equal(t2) {
		t.Errorf("times = %v, %v", runs[0].Time, runs[1].Time)
	}
	if runs[1].OutputDir != r2.OutputDir {
		t.Errorf("OutputDir = %q, want %q", runs[1].OutputDir, r2.OutputDir)
	}
	if runs[0].Color != "#5c9effff" {
		t.Errorf("Color = %q", runs[0].Color)
	}
	if len(runs[0].Files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(runs[0].Files))
	}
	f := runs[0].Files[1]
	if f.Name != "128x128@2x.png" || f.Width != 256 || f.Height != 256 || f.Bytes != 1043 || f.SHA256 != "bb22" {
		t.Errorf("file = %+v", f)
	}
}

func TestParseRunsKeyLookalikesInValues(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r := sampleRun(ts)
	r.OutputDir = "a  color=x  files=9 file[1]"
	r.Files[0].Name = "b  size=1x1  bytes=5  sha256=zz"

	runs := ParseRuns(FormatRun(r))
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	got := runs[0]
	if got.OutputDir != r.OutputDir {
		t.Errorf("OutputDir = %q, want %q", got.OutputDir, r.OutputDir)
	}
	if got.Color != "#5c9effff" {
		t.Errorf("Color = %q, want #5c9effff", got.Color)
	}
	if len(got.Files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(got.Files))
	}
	f := got.Files[0]
	if f.Name != r.Files[0].Name || f.Width != 32 || f.Height != 32 || f.Bytes != 97 || f.SHA256 != "aa11" {
		t.Errorf("file = %+v, want %+v", f, r.Files[0])
	}
}

func TestParseFields(t *testing.T) {
	fields, bare := parseFields(`2026-03-01T12:00:00Z    file[3] name="x y"  size=4x4`)
	if len(bare) != 2 || bare[1] != "file[3]" {
		t.Errorf("bare = %q", bare)
	}
	if fields["name"] != "x y" || fields["size"] != "4x4" {
		t.Errorf("fields = %v", fields)
	}

	fields, _ = parseFields(`ts  dir="unterminated  color=#fff`)
	if _, ok := fields["dir"]; ok {
		t.Error("unterminated quote should stop parsing")
	}
	if _, ok := fields["color"]; ok {
		t.Error("fields after a bad quote should not be read")
	}
}

func TestParseRunsSkipsMalformed(t *testing.T) {
	content := "garbage line\n\n" +
		"2026-03-01T12:00:00Z  dir=\"icons\"  color=#000000ff  files=1\n" +
		"2026-03-01T12:00:00Z    file[1] name=\"a.png\"  size=oops  bytes=1  sha256=x\n\n"
	runs := ParseRuns(content)
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if len(runs[0].Files) != 0 {
		t.Errorf("malformed file line should be skipped, got %+v", runs[0].Files)
	}
}

func TestParseRunsEmpty(t *testing.T) {
	if runs := ParseRuns("\n\n  "); runs != nil {
		t.Errorf("expected nil, got %v", runs)
	}
}

func TestKeepRecent(t *testing.T) {
	runs := []Run{{Color: "a"}, {Color: "b"}, {Color: "c"}}
	if got := keepRecent(runs, 2); len(got) != 2 || got[0].Color != "b" {
		t.Errorf("keepRecent(2) = %+v", got)
	}
	if got := keepRecent(runs, 0); len(got) != 3 {
		t.Errorf("keepRecent(0) = %+v", got)
	}
}

func TestDayCutoff(t *testing.T) {
	c := DayCutoff(1)
	now := time.Now()
	if c.Year() != now.Year() || c.YearDay() != now.YearDay() || c.Hour() != 0 {
		t.Errorf("DayCutoff(1) = %v, want midnight today", c)
	}
	if got := DayCutoff(3); !got.Equal(c.AddDate(0, 0, -2)) {
		t.Errorf("DayCutoff(3) = %v", got)
	}
}
