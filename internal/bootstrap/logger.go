// Package bootstrap wires the application together at startup: logging,
// storage, the event system, and graceful shutdown.
package bootstrap

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bunchesapp/bunches-go/internal/config"
	"github.com/bunchesapp/bunches-go/internal/handler"
	"github.com/bunchesapp/bunches-go/internal/logger"
)

// SetupLogger initializes the application logger with file and stdout output.
// It creates the log directory, prunes old session logs, and configures the
// process-wide logger to write to both stdout and a timestamped session file.
// Returns the log file handle (caller must close) and any error encountered.
func SetupLogger(cfg *config.Config) (*os.File, error) {
	if err := os.MkdirAll(cfg.LogDir, DirPermission); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	cleanupLogs(cfg.LogDir)

	timestamp := time.Now().Format(LogFileTimestampFormat)
	logFileName := filepath.Join(cfg.LogDir, fmt.Sprintf(LogFileNamePattern, timestamp))

	logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, LogFilePermission)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	// Source file/line attributes only in dev.
	addSource := cfg.Environment == logger.EnvironmentDev || cfg.Environment == "development"

	mw := io.MultiWriter(os.Stdout, logFile)
	logger.InitLoggerWithWriter(logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		ServiceName,
		handler.Version,
		cfg.Environment,
		addSource,
	), mw)

	logger.Info(LogMsgLoggingInitialized, "level", cfg.LogLevel, "file", logFileName)
	logger.Info(LogMsgStartingBunches,
		"environment", cfg.Environment,
		"log_format", cfg.LogFormat,
		"version", handler.Version)

	logger.Debug(LogMsgConfigurationLoaded,
		"port", cfg.Port,
		"storage_driver", cfg.StorageDriver,
		"undo_visibility", cfg.UndoVisibility,
		"trash_retention_days", cfg.TrashRetentionDays)

	return logFile, nil
}

// cleanupLogs removes old session logs, keeping only the most recent ones.
// ReadDir returns entries sorted by name, and the timestamped names sort
// chronologically, so the oldest files come first.
func cleanupLogs(logDir string) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}

	var logFiles []os.DirEntry
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), LogFileExtension) {
			logFiles = append(logFiles, entry)
		}
	}

	if len(logFiles) >= LogFileRetentionLimit {
		toDelete := len(logFiles) - LogFileRetentionCount
		for i := 0; i < toDelete; i++ {
			err := os.Remove(filepath.Join(logDir, logFiles[i].Name()))
			if err != nil {
				fmt.Printf(LogMsgFailedDeleteOldLog, logFiles[i].Name(), err)
			}
		}
	}
}
