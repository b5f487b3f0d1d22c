package config

import (
	"net/netip"
	"os"
	"strconv"
	"strings"
)

// Environment represents the application environment
type Environment string

const (
	// Development environment - localhost, debug logging
	Development Environment = "development"
	// Production environment - real domain, secure cookies
	Production Environment = "production"
)

// EnvConfig holds environment-specific configuration
type EnvConfig struct {
	Env Environment

	Domain  string
	BaseURL string

	LogLevel      string
	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int

	// CookieSecure marks the preference cookie Secure (HTTPS only)
	CookieSecure bool

	// PostRateLimitRPM limits state-changing requests per client IP (0 = off)
	PostRateLimitRPM int

	// TrustedProxies lists the peers whose X-Forwarded-For and X-Real-IP
	// headers name the client. Requests from anyone else are keyed by their
	// own address.
	TrustedProxies []netip.Prefix
	badProxies     []string

	// TailwindRuntime tells the page the tailwind play CDN is loaded, so
	// palette changes also patch its runtime config
	TailwindRuntime bool
}

// LoadEnv loads environment configuration from environment variables
func LoadEnv() *EnvConfig {
	env := getEnvOrDefault("APP_ENV", "development")

	cfg := &EnvConfig{
		Env:      Environment(strings.ToLower(env)),
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
	}

	switch cfg.Env {
	case Production:
		cfg.Domain = getEnvOrDefault("DOMAIN", "www.motoclub.example")
		cfg.BaseURL = getEnvOrDefault("BASE_URL", "https://"+cfg.Domain)
		cfg.CookieSecure = getEnvOrDefault("COOKIE_SECURE", "true") == "true"
	default:
		cfg.Env = Development // Normalize unknown envs to development
		cfg.Domain = getEnvOrDefault("DOMAIN", "localhost:8080")
		cfg.BaseURL = getEnvOrDefault("BASE_URL", "http://"+cfg.Domain)
		cfg.CookieSecure = getEnvOrDefault("COOKIE_SECURE", "false") == "true"
		if cfg.LogLevel == "info" {
			cfg.LogLevel = "debug" // Dev default
		}
	}

	cfg.LogFile = getEnvOrDefault("LOG_FILE", "")
	cfg.LogMaxSizeMB = parseIntOrDefault(getEnvOrDefault("LOG_MAX_SIZE_MB", "10"), 10)
	cfg.LogMaxBackups = parseIntOrDefault(getEnvOrDefault("LOG_MAX_BACKUPS", "3"), 3)
	cfg.PostRateLimitRPM = parseIntOrDefault(getEnvOrDefault("POST_RATE_LIMIT_RPM", "60"), 60)
	cfg.TailwindRuntime = getEnvOrDefault("TAILWIND_RUNTIME", "true") == "true"
	cfg.TrustedProxies, cfg.badProxies = parseProxies(getEnvOrDefault("TRUSTED_PROXIES", ""))

	return cfg
}

// IsDevelopment returns true if running in development mode
func (e *EnvConfig) IsDevelopment() bool {
	return e.Env == Development
}

// IsProduction returns true if running in production mode
func (e *EnvConfig) IsProduction() bool {
	return e.Env == Production
}

// String returns the environment name
func (e Environment) String() string {
	return string(e)
}

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseIntOrDefault parses a non-negative integer, returning default on error
func parseIntOrDefault(s string, defaultValue int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return defaultValue
	}
	return n
}

// parseProxies splits a comma separated list of IPs and CIDRs. Entries that
// parse as neither are returned separately so Validate can report them.
func parseProxies(s string) ([]netip.Prefix, []string) {
	var out []netip.Prefix
	var bad []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if p, err := netip.ParsePrefix(part); err == nil {
			out = append(out, p.Masked())
			continue
		}
		if a, err := netip.ParseAddr(part); err == nil {
			a = a.Unmap()
			out = append(out, netip.PrefixFrom(a, a.BitLen()))
			continue
		}
		bad = append(bad, part)
	}
	return out, bad
}
