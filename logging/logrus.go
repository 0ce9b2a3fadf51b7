package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// LogrusLogger is the default Logger implementation, backed by logrus.
type LogrusLogger struct {
	base  *logrus.Logger
	entry *logrus.Entry
}

// NewLogrusLogger creates a logrus-backed logger writing to stderr at info level.
func NewLogrusLogger() *LogrusLogger {
	base := logrus.New()
	base.SetOutput(os.Stderr)
	base.SetLevel(logrus.InfoLevel)
	return &LogrusLogger{base: base, entry: logrus.NewEntry(base)}
}

func toLogrusLevel(level Level) logrus.Level {
	switch level {
	case DebugLevel:
		return logrus.DebugLevel
	case InfoLevel:
		return logrus.InfoLevel
	case WarnLevel:
		return logrus.WarnLevel
	case ErrorLevel:
		return logrus.ErrorLevel
	case FatalLevel:
		return logrus.FatalLevel
	default:
		return logrus.InfoLevel
	}
}

func (l *LogrusLogger) merge(fields []Fields) *logrus.Entry {
	entry := l.entry
	for _, f := range fields {
		entry = entry.WithFields(logrus.Fields(f))
	}
	return entry
}

func (l *LogrusLogger) Debug(msg string, fields ...Fields) {
	l.merge(fields).Debug(msg)
}

func (l *LogrusLogger) Info(msg string, fields ...Fields) {
	l.merge(fields).Info(msg)
}

func (l *LogrusLogger) Warn(msg string, fields ...Fields) {
	l.merge(fields).Warn(msg)
}

func (l *LogrusLogger) Error(err error, msg string, fields ...Fields) {
	entry := l.merge(fields)
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Error(msg)
}

func (l *LogrusLogger) Fatal(err error, msg string, fields ...Fields) {
	entry := l.merge(fields)
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Fatal(msg)
}

func (l *LogrusLogger) WithFields(fields Fields) Logger {
	return &LogrusLogger{base: l.base, entry: l.entry.WithFields(logrus.Fields(fields))}
}

func (l *LogrusLogger) SetLevel(level Level) {
	l.base.SetLevel(toLogrusLevel(level))
}
