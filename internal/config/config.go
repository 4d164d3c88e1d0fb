package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port     string
	LogLevel string

	// Backend selection
	DataBackend  string
	SQLiteDBPath string
	SeedFixtures bool

	// AMQP (empty URL disables change notifications)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Google Sheets report export
	GoogleSpreadsheetID      string
	GoogleReportSheetName    string
	GoogleServiceAccountJSON string
	GoogleServiceAccountFile string

	// Identity supplied by the auth collaborator
	CurrentUserID string

	// Classification
	IncomeTypeID      string
	IncomeCategoryIDs []string

	// Views
	UpcomingWindowDays    int
	DashboardTopN         int
	DashboardCashflowDays int
	DashboardRecentLimit  int
	ReportTopN            int

	// Worker
	RecurringInterval time.Duration
}

func Load() *Config {
	backend := getEnv("DATA_BACKEND", "memory")
	cfg := &Config{
		Port:     getEnv("PORT", "8081"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DataBackend:  backend,
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/finboard.db"),
		SeedFixtures: getEnvBool("SEED_FIXTURES", backend == "memory"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "finboard"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "ledger_changes"),

		GoogleSpreadsheetID:      getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleReportSheetName:    getEnv("GOOGLE_REPORT_SHEET_NAME", "Report"),
		GoogleServiceAccountJSON: getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),
		GoogleServiceAccountFile: getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")),

		CurrentUserID: getEnv("CURRENT_USER_ID", "local-user"),

		IncomeTypeID:      getEnv("INCOME_TYPE_ID", "ct_income"),
		IncomeCategoryIDs: getEnvList("INCOME_CATEGORY_IDS", []string{"cat_paycheck"}),

		UpcomingWindowDays:    getEnvInt("UPCOMING_WINDOW_DAYS", 30),
		DashboardTopN:         getEnvInt("DASHBOARD_TOP_N", 5),
		DashboardCashflowDays: getEnvInt("DASHBOARD_CASHFLOW_DAYS", 14),
		DashboardRecentLimit:  getEnvInt("DASHBOARD_RECENT_LIMIT", 10),
		ReportTopN:            getEnvInt("REPORT_TOP_N", 10),

		RecurringInterval: getEnvDuration("RECURRING_INTERVAL", time.Hour),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	// Validate data backend
	validBackends := []string{"memory", "sqlite"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	// Validate SQLite configuration if backend is sqlite
	if c.DataBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	// Validate AMQP URL if provided
	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	// Validate report export if a spreadsheet is configured
	if c.GoogleSpreadsheetID != "" {
		if c.GoogleReportSheetName == "" {
			errors = append(errors, "Google report sheet name is required when a spreadsheet is configured")
		}
		if c.GoogleServiceAccountJSON == "" && c.GoogleServiceAccountFile == "" {
			errors = append(errors, "either GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_SERVICE_ACCOUNT_FILE must be provided for report export")
		}
		if c.GoogleServiceAccountFile != "" {
			if _, err := os.Stat(c.GoogleServiceAccountFile); os.IsNotExist(err) {
				errors = append(errors, fmt.Sprintf("Google service account file does not exist: %s", c.GoogleServiceAccountFile))
			}
		}
	}

	if strings.TrimSpace(c.CurrentUserID) == "" {
		errors = append(errors, "current user id cannot be empty")
	}
	if strings.TrimSpace(c.IncomeTypeID) == "" {
		errors = append(errors, "income type id cannot be empty")
	}

	// Validate view sizes
	positive := []struct {
		name  string
		value int
	}{
		{"dashboard top N", c.DashboardTopN},
		{"dashboard cashflow days", c.DashboardCashflowDays},
		{"dashboard recent limit", c.DashboardRecentLimit},
		{"report top N", c.ReportTopN},
	}
	for _, p := range positive {
		if p.value < 1 {
			errors = append(errors, fmt.Sprintf("invalid %s %d: must be at least 1", p.name, p.value))
		} else if p.value > 366 {
			errors = append(errors, fmt.Sprintf("invalid %s %d: must be at most 366", p.name, p.value))
		}
	}

	// A zero window lists only bills due today.
	if c.UpcomingWindowDays < 0 || c.UpcomingWindowDays > 366 {
		errors = append(errors, fmt.Sprintf("invalid upcoming window days %d: must be between 0 and 366", c.UpcomingWindowDays))
	}

	if c.RecurringInterval < time.Second {
		errors = append(errors, fmt.Sprintf("invalid recurring interval %v: must be at least 1 second", c.RecurringInterval))
	} else if c.RecurringInterval > 24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid recurring interval %v: must be at most 24 hours", c.RecurringInterval))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// ExportEnabled reports whether a spreadsheet is configured for report export.
func (c *Config) ExportEnabled() bool {
	return c.GoogleSpreadsheetID != ""
}

// AMQPEnabled reports whether change notifications are configured.
func (c *Config) AMQPEnabled() bool {
	return c.AMQPURL != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getEnvList splits a comma-separated value, dropping blanks.
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
