package history

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Mavwarf/mkicon/internal/paths"
)

// FileStore implements Store using a flat log file.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore that reads and writes the given log file.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// openLog opens (or creates) the log file for appending, creating the
// parent directory if needed.
func (f *FileStore) openLog() (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(f.path), paths.DirPerm); err != nil {
		return nil, err
	}
	return os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, paths.FilePerm)
}

func (f *FileStore) Log(run Run) error {
	file, err := f.openLog()
	if err != nil {
		return err
	}
	if _, err := file.WriteString(FormatRun(run)); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func (f *FileStore) Runs(limit int) ([]Run, error) {
	content, err := f.ReadContent()
	if err != nil {
		return nil, err
	}
	return keepRecent(ParseRuns(content), limit), nil
}

func (f *FileStore) ReadContent() (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return string(data), nil
}

func (f *FileStore) Clean(days int) (int, error) {
	content, err := f.ReadContent()
	if err != nil {
		return 0, err
	}
	runs := ParseRuns(content)
	if len(runs) == 0 {
		return 0, nil
	}

	cutoff := DayCutoff(days)
	var b strings.Builder
	kept := 0
	for _, r := range runs {
		if r.Time.Before(cutoff) {
			continue
		}
		b.WriteString(FormatRun(r))
		kept++
	}
	removed := len(runs) - kept

	if kept == 0 {
		_ = os.Remove(f.path)
		return removed, nil
	}
	if err := paths.AtomicWrite(f.path, []byte(b.String())); err != nil {
		return 0, err
	}
	return removed, nil
}

func (f *FileStore) Clear() error {
	err := os.Remove(f.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Close() error {
	return nil
}
