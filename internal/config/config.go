package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultRegions is the markup contract of the site page: element ids the
// site scheme may restyle.
var DefaultRegions = []string{"#navbar", "#logo-text", "#hero", "#footer"}

// Config holds all theme service configuration values.
type Config struct {
	Listen        string   `json:"listen"`
	MetricsListen string   `json:"metrics_listen"`
	ColorsFile    string   `json:"colors_file"`
	ColorsURL     string   `json:"colors_url"`
	CookieName    string   `json:"cookie_name"`
	CookieDays    int      `json:"cookie_days"`
	Regions       []string `json:"regions"`

	// SiteProfile selects the shared Store B scheme at startup. Empty keeps
	// the scheme colors.json marks active.
	SiteProfile string `json:"site_profile"`

	// Environment configuration (loaded from env vars)
	Env *EnvConfig `json:"-"`
}

// Load reads configuration from path (usually config.json) over defaults.
// A missing file is not an error; a malformed one is.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Listen:        ":8080",
		MetricsListen: ":9090",
		ColorsFile:    "colors.json",
		CookieName:    "mcColorConfig",
		CookieDays:    365,
		Regions:       append([]string(nil), DefaultRegions...),
		Env:           LoadEnv(),
	}

	file, err := os.Open(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("open %s: %w", path, err)
	default:
		defer file.Close()
		if err := json.NewDecoder(file).Decode(cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	cleaned := make([]string, 0, len(cfg.Regions))
	for _, r := range cfg.Regions {
		if r = strings.TrimSpace(r); r != "" {
			cleaned = append(cleaned, r)
		}
	}
	cfg.Regions = cleaned

	return cfg, nil
}

// ColorsSource returns the URL Store B fetches its palettes from. Without an
// explicit colors_url the local colors file is read through a file:// URL.
func (c *Config) ColorsSource() string {
	if c.ColorsURL != "" {
		return c.ColorsURL
	}
	abs, err := filepath.Abs(c.ColorsFile)
	if err != nil {
		abs = c.ColorsFile
	}
	return "file://" + filepath.ToSlash(abs)
}

// ErrColorsFileMissing marks the one validation problem the service can run
// with: the built-in palette stands in for the absent colors file.
var ErrColorsFileMissing = errors.New("colors file not found")

// ValidationError collects every problem Validate found.
type ValidationError struct {
	Problems []error
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		msgs[i] = p.Error()
	}
	return "config validation failed:\n  - " + strings.Join(msgs, "\n  - ")
}

func (e *ValidationError) Unwrap() []error { return e.Problems }

// Fatal reports whether any problem prevents startup.
func (e *ValidationError) Fatal() bool {
	for _, p := range e.Problems {
		if !errors.Is(p, ErrColorsFileMissing) {
			return true
		}
	}
	return false
}

// Validate checks the configuration for errors and returns helpful messages.
// A non-nil result is always a *ValidationError.
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if c.Listen == "" {
		add("listen address is required")
	}
	if c.MetricsListen != "" && c.MetricsListen == c.Listen {
		add("metrics_listen must differ from listen")
	}
	if c.CookieName == "" {
		add("cookie_name is required")
	}
	if c.CookieDays <= 0 {
		add("cookie_days must be positive")
	}
	if c.ColorsURL == "" {
		if _, err := os.Stat(c.ColorsFile); os.IsNotExist(err) {
			add("%w: %s (the built-in palette will be used)", ErrColorsFileMissing, c.ColorsFile)
		}
	} else if !strings.HasPrefix(c.ColorsURL, "http://") && !strings.HasPrefix(c.ColorsURL, "https://") && !strings.HasPrefix(c.ColorsURL, "file://") {
		add("colors_url must be an http(s):// or file:// URL")
	}
	for _, r := range c.Regions {
		if !strings.HasPrefix(r, "#") && !strings.HasPrefix(r, ".") {
			add("region %q must start with # or .", r)
		}
	}
	if c.Env != nil {
		for _, p := range c.Env.badProxies {
			add("TRUSTED_PROXIES entry %q is not an IP or CIDR", p)
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Problems: errs}
	}

	return nil
}
