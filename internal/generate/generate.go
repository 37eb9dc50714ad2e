// Package generate turns a config.Config into icon files on disk.
package generate

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Mavwarf/mkicon/internal/config"
	"github.com/Mavwarf/mkicon/internal/history"
	"github.com/Mavwarf/mkicon/internal/ico"
	"github.com/Mavwarf/mkicon/internal/paths"
	"github.com/Mavwarf/mkicon/internal/pngenc"
)

// ICOName is the file written when cfg.ICO is set.
const ICOName = config.ICOName

// IOError reports a filesystem failure together with the offending path.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Planned describes one file a run will write.
type Planned struct {
	Path   string
	Width  int
	Height int
}

// Plan lists the files Run would write, in order, without touching disk.
func Plan(cfg config.Config) []Planned {
	var out []Planned
	for _, t := range cfg.Targets {
		px := t.Pixels()
		out = append(out, Planned{Path: filepath.Join(cfg.OutputDir, t.Name), Width: px, Height: px})
	}
	if cfg.ICO {
		out = append(out, Planned{Path: filepath.Join(cfg.OutputDir, ICOName)})
	}
	return out
}

// Run encodes every target and writes it below cfg.OutputDir, creating
// the directory if absent. Files are written one at a time; the first
// failure stops the run. The returned Run lists everything written.
func Run(cfg config.Config) (history.Run, error) {
	run := history.Run{
		Time:      time.Now(),
		OutputDir: cfg.OutputDir,
		Color:     pngenc.FormatColor(cfg.Color),
	}
	if err := config.Validate(cfg); err != nil {
		return run, err
	}

	if err := os.MkdirAll(cfg.OutputDir, paths.DirPerm); err != nil {
		return run, &IOError{Op: "create directory", Path: cfg.OutputDir, Err: err}
	}

	var icoImages []ico.Image
	seen := map[int]bool{}
	for _, t := range cfg.Targets {
		px := t.Pixels()
		data, err := pngenc.Encode(px, px, cfg.Color)
		if err != nil {
			return run, fmt.Errorf("%s: %w", t.Name, err)
		}
		f, err := write(cfg.OutputDir, t.Name, data)
		if err != nil {
			return run, err
		}
		f.Width, f.Height = px, px
		run.Files = append(run.Files, f)

		if cfg.ICO && px <= 256 && !seen[px] {
			seen[px] = true
			icoImages = append(icoImages, ico.Image{Width: px, Height: px, PNG: data})
		}
	}

	if cfg.ICO {
		if len(icoImages) == 0 {
			return run, fmt.Errorf("%s: no target of 256px or less", ICOName)
		}
		data, err := ico.Encode(icoImages)
		if err != nil {
			return run, err
		}
		f, err := write(cfg.OutputDir, ICOName, data)
		if err != nil {
			return run, err
		}
		run.Files = append(run.Files, f)
	}
	return run, nil
}

func write(dir, name string, data []byte) (history.File, error) {
	path := filepath.Join(dir, name)
	if err := paths.AtomicWrite(path, data); err != nil {
		return history.File{}, &IOError{Op: "write", Path: path, Err: err}
	}
	sum := sha256.Sum256(data)
	return history.File{
		Name:   name,
		Bytes:  len(data),
		SHA256: hex.EncodeToString(sum[:]),
	}, nil
}
