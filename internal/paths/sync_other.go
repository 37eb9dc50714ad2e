//go:build !linux && !darwin

package paths

// Directory handles cannot be fsynced on this platform.
func syncDir(string) error { return nil }
