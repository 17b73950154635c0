package config

import (
	"fmt"
	"strings"
)

// Validate checks the loaded configuration for values that can never work.
// Load is deliberately lenient so tests and tooling can build partial
// configs; Validate is called once at startup.
func (c *Config) Validate() error {
	var problems []string

	if c.Port < MinPort || c.Port > MaxPort {
		problems = append(problems, fmt.Sprintf("PORT must be between %d and %d, got %d", MinPort, MaxPort, c.Port))
	}

	switch c.StorageDriver {
	case StorageDriverMemory, StorageDriverFile, StorageDriverSQLite, StorageDriverPostgres:
	default:
		problems = append(problems, fmt.Sprintf("STORAGE_DRIVER must be one of memory, file, sqlite, postgres; got %q", c.StorageDriver))
	}

	if c.StorageDriver == StorageDriverFile && c.DataDir == "" {
		problems = append(problems, "DATA_DIR must be set when STORAGE_DRIVER=file")
	}
	if c.StorageDriver == StorageDriverSQLite && c.SQLitePath == "" {
		problems = append(problems, "SQLITE_PATH must be set when STORAGE_DRIVER=sqlite")
	}

	if c.UndoVisibility <= 0 {
		problems = append(problems, "UNDO_VISIBILITY must be a positive number of seconds")
	}
	if c.TrashRetentionDays < 0 {
		problems = append(problems, "TRASH_RETENTION_DAYS must not be negative")
	}
	if c.ExtractorTimeout <= 0 {
		problems = append(problems, "EXTRACTOR_TIMEOUT must be a positive duration")
	}
	if c.DBMaxConns < 1 {
		problems = append(problems, "DB_MAX_CONNS must be at least 1")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Warnings returns non-fatal configuration concerns worth logging at startup.
func (c *Config) Warnings() []string {
	var warnings []string

	if c.APIKey == "" {
		warnings = append(warnings, "API_KEY is not set - the HTTP API will accept unauthenticated requests")
	}

	if c.StorageDriver == StorageDriverMemory {
		warnings = append(warnings, "STORAGE_DRIVER=memory keeps all data in process memory - recipes will be lost on restart")
	}

	if c.ExtractorURL == "" {
		warnings = append(warnings, "EXTRACTOR_URL is not set - recipe extraction from URLs will be unavailable")
	}

	if c.TrashRetentionDays == 0 {
		warnings = append(warnings, "TRASH_RETENTION_DAYS=0 - recipes in the trash will never be purged automatically")
	}

	return warnings
}
