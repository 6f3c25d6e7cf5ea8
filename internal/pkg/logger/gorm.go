package logger

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm/logger"
)

const (
	gormSlowThreshold = 200 * time.Millisecond
	// 日志条目的 payload 是整段变更集，SQL 截断后再输出
	gormSQLLimit = 1024
)

// SlogGormLogger 把 gorm 日志接入 slog
type SlogGormLogger struct {
	LogLevel logger.LogLevel
}

// NewGormLogger 账本日志写入频繁，默认只记录 Warn 及以上
func NewGormLogger() *SlogGormLogger {
	return &SlogGormLogger{LogLevel: logger.Warn}
}

func (l *SlogGormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &SlogGormLogger{LogLevel: level}
}

func (l *SlogGormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= logger.Info {
		slog.InfoContext(ctx, msg, "data", data)
	}
}

func (l *SlogGormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= logger.Warn {
		slog.WarnContext(ctx, msg, "data", data)
	}
}

func (l *SlogGormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= logger.Error {
		slog.ErrorContext(ctx, msg, "data", data)
	}
}

func (l *SlogGormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	failed := err != nil && !errors.Is(err, logger.ErrRecordNotFound)
	slow := elapsed > gormSlowThreshold
	if !failed && !slow && l.LogLevel < logger.Info {
		return
	}

	sql, rows := fc()
	operation, _, _ := strings.Cut(sql, " ")
	if operation == "" {
		operation = "Query"
	}
	if len(sql) > gormSQLLimit {
		sql = sql[:gormSQLLimit] + "...[truncated]"
	}

	msg := "MySQL " + operation
	fields := []any{
		slog.String("sql", sql),
		slog.Duration("latency", elapsed),
		slog.Int64("rows", rows),
	}

	switch {
	case failed:
		slog.ErrorContext(ctx, msg+" Error", append(fields, slog.Any("err", err))...)
	case slow:
		slog.WarnContext(ctx, msg+" Slow", fields...)
	default:
		slog.InfoContext(ctx, msg, fields...)
	}
}
