package config

import "time"

// Default configuration values
const (
	DefaultPort        = 8080
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultLogDir      = "logs"
	DefaultEnvironment = "dev"

	DefaultStorageDriver = StorageDriverFile
	DefaultDataDir       = "data"
	DefaultSQLitePath    = "data/bunches.db"

	DefaultDBUser     = "postgres"
	DefaultDBPassword = "postgres"
	DefaultDBHost     = "localhost"
	DefaultDBPort     = "5432"
	DefaultDBName     = "bunches"

	DefaultDBMaxConns        = 20
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute

	DefaultExtractorTimeout = 30 * time.Second

	DefaultUndoVisibilitySeconds = 10
	DefaultTrashRetentionDays    = 30
)

// Values accepted by STORAGE_DRIVER
const (
	StorageDriverMemory   = "memory"
	StorageDriverFile     = "file"
	StorageDriverSQLite   = "sqlite"
	StorageDriverPostgres = "postgres"
)

// Port bounds enforced by Validate
const (
	MinPort = 1
	MaxPort = 65535
)
