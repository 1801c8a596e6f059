package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	applog "github.com/idilsaglam/expense-tracker/internal/log"
)

const (
	ExpensesFileName = "expenses.json"
	BudgetsFileName  = "budget.json"
)

// Themes accepted by the ui package.
var Themes = []string{"classic", "neon", "mono"}

type Config struct {
	// Directory holding expenses.json and budget.json.
	DataDir string
	// Directory CSV exports are written into.
	ExportDir string

	Theme    string
	LogLevel string
}

// Load reads .env (if present) and then the process environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DataDir:   getEnv("EXPENSE_TRACKER_DATA_DIR", installDir()),
		ExportDir: getEnv("EXPENSE_TRACKER_EXPORT_DIR", "."),
		Theme:     getEnv("EXPENSE_TRACKER_THEME", "classic"),
		LogLevel:  getEnv("EXPENSE_TRACKER_LOG_LEVEL", "warn"),
	}
}

// Validate validates the configuration and returns an error if invalid.
// The data directory is created when missing.
func (c *Config) Validate() error {
	var errors []string

	if strings.TrimSpace(c.DataDir) == "" {
		errors = append(errors, "data directory cannot be empty")
	} else if _, err := os.Stat(c.DataDir); os.IsNotExist(err) {
		if err := os.MkdirAll(c.DataDir, 0o755); err != nil {
			errors = append(errors, fmt.Sprintf("cannot create data directory '%s': %v", c.DataDir, err))
		}
	}

	if strings.TrimSpace(c.ExportDir) == "" {
		errors = append(errors, "export directory cannot be empty")
	}

	validTheme := false
	for _, t := range Themes {
		if strings.EqualFold(c.Theme, t) {
			validTheme = true
			break
		}
	}
	if !validTheme {
		errors = append(errors, fmt.Sprintf("invalid theme '%s': must be one of %v", c.Theme, Themes))
	}

	if _, err := applog.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of [debug info warn error]", c.LogLevel))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

func (c *Config) ExpensesPath() string {
	return filepath.Join(c.DataDir, ExpensesFileName)
}

func (c *Config) BudgetsPath() string {
	return filepath.Join(c.DataDir, BudgetsFileName)
}

// installDir is the directory of the running binary, or the working
// directory when that cannot be resolved.
func installDir() string {
	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		return filepath.Dir(exe)
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
