package store

import (
	"context"
	"time"

	gormlogger "gorm.io/gorm/logger"

	"github.com/girojogos/duoguard/logger"
)

// gormLogger bridges gorm's statement logging into the structured logger.
type gormLogger struct {
	log   *logger.Logger
	level gormlogger.LogLevel
}

func newGormLogger(log *logger.Logger, level string) gormlogger.Interface {
	return &gormLogger{log: log, level: parseLogLevel(level)}
}

func parseLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

func (g *gormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	return &gormLogger{log: g.log, level: level}
}

func (g *gormLogger) Info(_ context.Context, msg string, args ...interface{}) {
	if g.level >= gormlogger.Info {
		g.log.Info(msg, logger.Fields("args", args))
	}
}

func (g *gormLogger) Warn(_ context.Context, msg string, args ...interface{}) {
	if g.level >= gormlogger.Warn {
		g.log.Warn(msg, logger.Fields("args", args))
	}
}

func (g *gormLogger) Error(_ context.Context, msg string, args ...interface{}) {
	if g.level >= gormlogger.Error {
		g.log.Error(msg, logger.Fields("args", args))
	}
}

func (g *gormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := logger.Fields(
		"sql", sql,
		"rows", rows,
		logger.FieldDuration, elapsed.Milliseconds(),
	)
	switch {
	case err != nil && g.level >= gormlogger.Error:
		g.log.WithError(err).Error("query failed", fields)
	case g.level >= gormlogger.Info:
		g.log.Debug("query", fields)
	}
}
