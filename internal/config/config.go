package config

import (
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Backend selects where users are persisted.
type Backend string

const (
	BackendJSON     Backend = "json"
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
)

// AppConfig holds process-level settings read from the environment.
type AppConfig struct {
	Backend     Backend
	DSN         string // file path for json/sqlite, connection string for postgres
	ScoringPath string // optional rules file; empty means built-in defaults
	Username    string
	LogLevel    string
	LogFile     string
}

// DataDir returns the directory holding xpledger's default files.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".xpledger"
	}
	return filepath.Join(home, ".xpledger")
}

// DefaultConfig returns an AppConfig using the embedded SQLite backend.
func DefaultConfig() AppConfig {
	user := os.Getenv("USER")
	if user == "" {
		user = "default"
	}
	return AppConfig{
		Backend:  BackendSQLite,
		DSN:      filepath.Join(DataDir(), "xpledger.db"),
		Username: user,
		LogLevel: "warn",
	}
}

// Load reads configuration from environment variables, falling back to
// defaults for any unset values.
func Load() AppConfig {
	cfg := DefaultConfig()

	if v := os.Getenv("XPLEDGER_BACKEND"); v != "" {
		switch b := Backend(strings.ToLower(v)); b {
		case BackendJSON, BackendSQLite, BackendPostgres:
			if b == BackendJSON && os.Getenv("XPLEDGER_DB") == "" {
				cfg.DSN = filepath.Join(DataDir(), "xpledger.json")
			}
			cfg.Backend = b
		}
	}
	if v := os.Getenv("XPLEDGER_DB"); v != "" {
		cfg.DSN = v
	}
	if v := os.Getenv("XPLEDGER_SCORING"); v != "" {
		cfg.ScoringPath = v
	}
	if v := os.Getenv("XPLEDGER_USER"); v != "" {
		cfg.Username = v
	}
	if v := os.Getenv("XPLEDGER_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("XPLEDGER_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}

	return cfg
}

var dsnPassword = regexp.MustCompile(`(?i)(password\s*=\s*)('(?:[^'\\]|\\.)*'|\S+)`)

// SafeDSN returns the DSN with any password masked, for logging. File
// paths are returned unchanged.
func (c AppConfig) SafeDSN() string {
	if c.Backend != BackendPostgres {
		return c.DSN
	}
	if u, err := url.Parse(c.DSN); err == nil && u.Scheme != "" {
		q := u.Query()
		if q.Has("password") {
			q.Set("password", "xxxxx")
			u.RawQuery = q.Encode()
		}
		return u.Redacted()
	}
	return dsnPassword.ReplaceAllString(c.DSN, "${1}xxxxx")
}
