package db

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// gormLogrus maps gorm log calls onto logrus levels. A unique-constraint
// violation is logged as a warning: callers re-read and recover from it.
type gormLogrus struct {
	logger        logrus.FieldLogger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

func newGormLogger() gormlogger.Interface {
	return &gormLogrus{
		logger:        logrus.StandardLogger(),
		level:         gormlogger.Warn,
		slowThreshold: time.Second,
	}
}

func (l *gormLogrus) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	copied := *l
	copied.level = level
	return &copied
}

func (l *gormLogrus) Info(_ context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Info {
		l.logger.Infof(msg, args...)
	}
}

func (l *gormLogrus) Warn(_ context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Warn {
		l.logger.Warnf(msg, args...)
	}
}

func (l *gormLogrus) Error(_ context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Error {
		l.logger.Errorf(msg, args...)
	}
}

func (l *gormLogrus) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= gormlogger.Error:
		sql, rows := fc()
		entry := l.logger.WithError(err).WithFields(logrus.Fields{"elapsed": elapsed, "rows": rows, "sql": sql})
		if isUniqueViolation(err) {
			entry.Warn("sql constraint violation")
			return
		}
		entry.Error("sql query failed")
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		sql, rows := fc()
		l.logger.WithFields(logrus.Fields{"elapsed": elapsed, "rows": rows, "sql": sql}).
			Warnf("slow sql query over %s", l.slowThreshold)
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		l.logger.WithFields(logrus.Fields{"elapsed": elapsed, "rows": rows, "sql": sql}).Debug("sql query")
	}
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
