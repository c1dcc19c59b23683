package storage

import (
	"gmaps-scraper/config"
	"gmaps-scraper/utils"
)

// Open builds the sinks for a run. The workbook and CSV sinks are always
// present; database sinks are added when listed in cfg.Sinks, and skipped
// with a warning when they cannot be opened.
func Open(cfg *config.Config, logger *utils.Logger) []RecordSink {
	sinks := []RecordSink{
		NewXLSXWriter(cfg.OutputDir),
		NewCSVWriter(cfg.OutputDir),
	}

	for _, name := range cfg.Sinks {
		switch name {
		case "xlsx", "csv":
		case "postgres":
			pw, err := NewPostgresWriter(cfg.DSN(), cfg.MaxRetries)
			if err != nil {
				logger.Warn("[storage] Postgres sink disabled: %v", err)
				continue
			}
			sinks = append(sinks, pw)
		case "sqlite":
			sw, err := NewSQLiteWriter(cfg.SQLitePath)
			if err != nil {
				logger.Warn("[storage] SQLite sink disabled: %v", err)
				continue
			}
			sinks = append(sinks, sw)
		default:
			logger.Warn("[storage] Unknown sink %q ignored", name)
		}
	}
	return sinks
}

// CloseAll closes every sink, logging failures.
func CloseAll(sinks []RecordSink, logger *utils.Logger) {
	for _, s := range sinks {
		if err := s.Close(); err != nil {
			logger.Warn("[storage] Closing %s sink: %v", s.Name(), err)
		}
	}
}
