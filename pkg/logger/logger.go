package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

type Logger interface {
	Debugf(msg string, a ...any)
	Infof(msg string, a ...any)
	Warnf(msg string, a ...any)
	Errorf(msg string, a ...any)

	// With returns a Logger that attaches the key-value pair to every entry.
	With(key string, value any) Logger
}

type defaultLogger struct {
	entry *logrus.Entry
}

// NewLogger creates a logrus backed Logger. Unknown levels fall back to info,
// format is either "json" or "text".
func NewLogger(level, format string) *defaultLogger {
	l := logrus.New()
	l.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	if format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05"})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05"})
	}

	return &defaultLogger{entry: logrus.NewEntry(l)}
}

func (l *defaultLogger) Debugf(msg string, a ...any) {
	l.entry.Debugf(msg, a...)
}

func (l *defaultLogger) Infof(msg string, a ...any) {
	l.entry.Infof(msg, a...)
}

func (l *defaultLogger) Warnf(msg string, a ...any) {
	l.entry.Warnf(msg, a...)
}

func (l *defaultLogger) Errorf(msg string, a ...any) {
	l.entry.Errorf(msg, a...)
}

func (l *defaultLogger) With(key string, value any) Logger {
	return &defaultLogger{entry: l.entry.WithField(key, value)}
}
