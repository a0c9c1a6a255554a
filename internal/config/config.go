// ABOUTME: Settings loading with global + project config merge
// ABOUTME: YAML-based configuration via gopkg.in/yaml.v3; defaults fill unset fields

package config

import (
	"fmt"
	"os"
	"time"

	pilog "github.com/mauromedda/kiloterm/internal/log"
	"github.com/mauromedda/kiloterm/pkg/tui/width"
	"gopkg.in/yaml.v3"
)

const (
	minReadTimeout = 100 * time.Millisecond
	maxReadTimeout = 25500 * time.Millisecond
)

// Settings holds the merged configuration.
type Settings struct {
	ReadTimeout   time.Duration `yaml:"read_timeout,omitempty"`
	QuitKey       string        `yaml:"quit_key,omitempty"`
	Placeholder   string        `yaml:"placeholder,omitempty"`
	Banner        string        `yaml:"banner,omitempty"`
	FallbackProbe bool          `yaml:"fallback_probe,omitempty"`
	LogLevel      string        `yaml:"log_level,omitempty"`
	LogFile       string        `yaml:"log_file,omitempty"`
}

// Defaults returns the settings used when no file overrides them.
func Defaults() *Settings {
	return &Settings{
		ReadTimeout: 100 * time.Millisecond,
		QuitKey:     "ctrl+q",
		Placeholder: "~",
		LogLevel:    "info",
	}
}

// Load reads and merges global and project-local settings on top of the
// defaults. Project settings override global settings.
func Load(projectRoot string) (*Settings, error) {
	global, err := loadFile(GlobalConfigFile())
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading global config: %w", err)
	}

	project, err := loadFile(ProjectConfigFile(projectRoot))
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	return finish(merge(merge(Defaults(), global), project))
}

// LoadFile reads a single explicit config file on top of the defaults.
// Unlike Load, a missing file is an error.
func LoadFile(path string) (*Settings, error) {
	s, err := loadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return finish(merge(Defaults(), s))
}

func finish(s *Settings) (*Settings, error) {
	ResolveEnvVars(s)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// loadFile reads Settings from a YAML file. Returns zero Settings if the
// file does not exist.
func loadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Settings{}, err
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// merge overlays non-zero fields of over onto base.
func merge(base, over *Settings) *Settings {
	if base == nil {
		base = &Settings{}
	}
	if over == nil {
		return base
	}

	result := *base

	if over.ReadTimeout != 0 {
		result.ReadTimeout = over.ReadTimeout
	}
	if over.QuitKey != "" {
		result.QuitKey = over.QuitKey
	}
	if over.Placeholder != "" {
		result.Placeholder = over.Placeholder
	}
	if over.Banner != "" {
		result.Banner = over.Banner
	}
	if over.FallbackProbe {
		result.FallbackProbe = true
	}
	if over.LogLevel != "" {
		result.LogLevel = over.LogLevel
	}
	if over.LogFile != "" {
		result.LogFile = over.LogFile
	}

	return &result
}

// Validate checks that every field holds a usable value.
func (s *Settings) Validate() error {
	if s.ReadTimeout < minReadTimeout || s.ReadTimeout > maxReadTimeout {
		return fmt.Errorf("read_timeout %v outside %v..%v", s.ReadTimeout, minReadTimeout, maxReadTimeout)
	}
	if _, err := ParseBinding(s.QuitKey); err != nil {
		return fmt.Errorf("quit_key: %w", err)
	}
	if !width.IsSingleCell(s.Placeholder) {
		return fmt.Errorf("placeholder %q must be a single one-cell character", s.Placeholder)
	}
	if _, err := pilog.ParseLevel(s.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// QuitByte returns the raw byte that ends the editor loop.
func (s *Settings) QuitByte() byte {
	b, err := ParseBinding(s.QuitKey)
	if err != nil {
		b, _ = ParseBinding(Defaults().QuitKey)
	}
	return b
}
