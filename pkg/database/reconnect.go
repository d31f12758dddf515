package database

import (
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"
)

// ReconnectPlugin is a GORM plugin that pings the pool before operations and
// retries when the connection was dropped.
type ReconnectPlugin struct {
	logger         *slog.Logger
	maxRetries     int
	retryDelay     time.Duration
	reconnectCount int64
}

// NewReconnectPlugin creates a new reconnect plugin.
func NewReconnectPlugin(logger *slog.Logger) *ReconnectPlugin {
	return &ReconnectPlugin{
		logger:     logger,
		maxRetries: 3,
		retryDelay: 500 * time.Millisecond,
	}
}

// Name returns the plugin name.
func (p *ReconnectPlugin) Name() string {
	return "reconnect_plugin"
}

// Initialize registers the health check ahead of every operation type.
func (p *ReconnectPlugin) Initialize(db *gorm.DB) error {
	callbacks := []struct {
		name     string
		register func(string, func(*gorm.DB)) error
	}{
		{"reconnect:before_query", func(n string, fn func(*gorm.DB)) error {
			return db.Callback().Query().Before("gorm:query").Register(n, fn)
		}},
		{"reconnect:before_create", func(n string, fn func(*gorm.DB)) error {
			return db.Callback().Create().Before("gorm:create").Register(n, fn)
		}},
		{"reconnect:before_update", func(n string, fn func(*gorm.DB)) error {
			return db.Callback().Update().Before("gorm:update").Register(n, fn)
		}},
		{"reconnect:before_delete", func(n string, fn func(*gorm.DB)) error {
			return db.Callback().Delete().Before("gorm:delete").Register(n, fn)
		}},
		{"reconnect:before_row", func(n string, fn func(*gorm.DB)) error {
			return db.Callback().Row().Before("gorm:row").Register(n, fn)
		}},
		{"reconnect:before_raw", func(n string, fn func(*gorm.DB)) error {
			return db.Callback().Raw().Before("gorm:raw").Register(n, fn)
		}},
	}

	for _, cb := range callbacks {
		if err := cb.register(cb.name, p.beforeOperation); err != nil {
			return err
		}
	}

	return nil
}

func (p *ReconnectPlugin) beforeOperation(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}

	if err := sqlDB.Ping(); err != nil {
		if p.shouldReconnect(err) {
			p.logger.Warn("database connection lost, attempting to reconnect",
				slog.String("error", err.Error()),
			)

			if p.attemptReconnect(sqlDB) {
				p.logger.Info("database reconnection successful")
			} else {
				p.logger.Error("database reconnection failed after retries")
			}
		}
	}
}

func (p *ReconnectPlugin) shouldReconnect(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())

	connectionErrors := []string{
		"connection refused",
		"connection reset",
		"broken pipe",
		"no such host",
		"network is unreachable",
		"connection timed out",
		"eof",
		"bad connection",
		"driver: bad connection",
		"invalid connection",
		"closed network connection",
		"connection lost",
		"server closed",
	}

	for _, pattern := range connectionErrors {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}

	return errors.Is(err, sql.ErrConnDone) || errors.Is(err, sql.ErrTxDone)
}

func (p *ReconnectPlugin) attemptReconnect(sqlDB *sql.DB) bool {
	for attempt := 1; attempt <= p.maxRetries; attempt++ {
		time.Sleep(p.retryDelay * time.Duration(attempt))

		if err := sqlDB.Ping(); err == nil {
			p.reconnectCount++
			return true
		}

		p.logger.Warn("reconnection attempt failed",
			slog.Int("attempt", attempt),
			slog.Int("max_retries", p.maxRetries),
		)
	}

	return false
}

// ReconnectCount returns the total number of successful reconnections.
func (p *ReconnectPlugin) ReconnectCount() int64 {
	return p.reconnectCount
}
