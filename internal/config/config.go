package config

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/Mavwarf/mkicon/internal/paths"
	"github.com/Mavwarf/mkicon/internal/pngenc"
)

// DefaultOutputDir is where icons are written when no directory is set.
const DefaultOutputDir = "icons"

// ICOName is the bundle written next to the targets when ICO is set.
const ICOName = "icon.ico"

// Target is one icon file to produce. The written image is
// Size*Scale pixels square; Scale defaults to 1.
type Target struct {
	Name  string `json:"name"`
	Size  int    `json:"size"`
	Scale int    `json:"scale,omitempty"`
}

// Pixels returns the edge length of the encoded image.
func (t Target) Pixels() int {
	if t.Scale <= 0 {
		return t.Size
	}
	return t.Size * t.Scale
}

// DefaultTargets returns the standard desktop icon set. The @2x entry
// is named for its 128px logical size but holds 256px content.
func DefaultTargets() []Target {
	return []Target{
		{Name: "32x32.png", Size: 32},
		{Name: "128x128.png", Size: 128},
		{Name: "256x256.png", Size: 256},
		{Name: "128x128@2x.png", Size: 128, Scale: 2},
		{Name: "icon.png", Size: 128},
	}
}

// MQTT holds broker settings for publishing completed runs.
type MQTT struct {
	Broker   string `json:"broker,omitempty"`
	Topic    string `json:"topic,omitempty"`
	ClientID string `json:"client_id,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	QoS      byte   `json:"qos,omitempty"`
	Retain   bool   `json:"retain,omitempty"`
}

// Notify configures where completed runs are reported. Empty values
// disable the corresponding channel.
type Notify struct {
	WebhookURL     string            `json:"webhook_url,omitempty"`
	WebhookHeaders map[string]string `json:"webhook_headers,omitempty"`
	MQTT           MQTT              `json:"mqtt,omitempty"`
}

// Config holds everything a generation run needs.
type Config struct {
	OutputDir string     `json:"output_dir"`
	Color     color.RGBA `json:"-"`
	Targets   []Target   `json:"targets"`
	ICO       bool       `json:"ico,omitempty"`
	History   bool       `json:"history"`
	Notify    Notify     `json:"notify,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		OutputDir: DefaultOutputDir,
		Color:     pngenc.Accent,
		Targets:   DefaultTargets(),
		History:   true,
	}
}

// UnmarshalJSON sets defaults then decodes the JSON structure. Only
// values present in JSON override the defaults; a "targets" array
// replaces the default set entirely.
func (c *Config) UnmarshalJSON(data []byte) error {
	*c = Default()
	type Alias Config
	aux := struct {
		*Alias
		Color *string `json:"color"`
	}{Alias: (*Alias)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Color != nil {
		col, err := pngenc.ParseColor(*aux.Color)
		if err != nil {
			return err
		}
		c.Color = col
	}
	return nil
}

// MarshalJSON writes the color in its "#rrggbbaa" form.
func (c Config) MarshalJSON() ([]byte, error) {
	type Alias Config
	return json.Marshal(struct {
		Alias
		Color string `json:"color"`
	}{Alias: Alias(c), Color: pngenc.FormatColor(c.Color)})
}

// Validate checks that the targets can be written as distinct files.
func Validate(cfg Config) error {
	if cfg.OutputDir == "" {
		return fmt.Errorf("output_dir is empty")
	}
	if len(cfg.Targets) == 0 {
		return fmt.Errorf("no targets configured")
	}
	seen := map[string]bool{}
	for i, t := range cfg.Targets {
		if t.Name == "" {
			return fmt.Errorf("targets[%d]: name is empty", i)
		}
		if strings.ContainsAny(t.Name, `/\`) || t.Name == "." || t.Name == ".." {
			return fmt.Errorf("targets[%d]: name %q must be a plain file name", i, t.Name)
		}
		if seen[t.Name] {
			return fmt.Errorf("targets[%d]: duplicate name %q", i, t.Name)
		}
		if cfg.ICO && t.Name == ICOName {
			return fmt.Errorf("targets[%d]: name %q collides with the ico bundle", i, t.Name)
		}
		seen[t.Name] = true
		if t.Size <= 0 {
			return fmt.Errorf("targets[%d] %s: size must be positive, got %d", i, t.Name, t.Size)
		}
		if t.Scale < 0 {
			return fmt.Errorf("targets[%d] %s: scale must not be negative, got %d", i, t.Name, t.Scale)
		}
	}
	if cfg.Notify.MQTT.Broker != "" && cfg.Notify.MQTT.Topic == "" {
		return fmt.Errorf("notify.mqtt: topic is required when broker is set")
	}
	if cfg.Notify.MQTT.QoS > 2 {
		return fmt.Errorf("notify.mqtt: qos must be 0, 1 or 2, got %d", cfg.Notify.MQTT.QoS)
	}
	return nil
}

// Load reads and parses a config file. It tries, in order:
//  1. explicitPath (if non-empty; it must exist)
//  2. mkicon-config.json next to the running binary
//  3. ~/.config/mkicon/mkicon-config.json
//
// When no file is found the built-in defaults are returned.
func Load(explicitPath string) (Config, error) {
	if explicitPath != "" {
		return readConfig(explicitPath)
	}

	// Next to binary
	exe, err := os.Executable()
	if err == nil {
		p := filepath.Join(filepath.Dir(exe), paths.ConfigFileName)
		if _, err := os.Stat(p); err == nil {
			return readConfig(p)
		}
	}

	// User config directory
	home, err := os.UserHomeDir()
	if err == nil {
		var p string
		if runtime.GOOS == "windows" {
			p = filepath.Join(home, "AppData", "Roaming", paths.AppDirName, paths.ConfigFileName)
		} else {
			p = filepath.Join(home, ".config", paths.AppDirName, paths.ConfigFileName)
		}
		if _, err := os.Stat(p); err == nil {
			return readConfig(p)
		}
	}

	return Default(), nil
}

func readConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
