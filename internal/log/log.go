// Package log provides the process-wide logger. It fronts logrus with a
// small interface so call sites stay decoupled from the backend, and
// fans output out to the configured appenders.
package log

import (
	"sync"
)

type Logger interface {
	Print(args ...interface{})
	Printf(format string, args ...interface{})

	Trace(args ...interface{})
	Tracef(format string, args ...interface{})

	Debug(args ...interface{})
	Debugf(format string, args ...interface{})

	Info(args ...interface{})
	Infof(format string, args ...interface{})

	Warn(args ...interface{})
	Warnf(format string, args ...interface{})

	Error(args ...interface{})
	Errorf(format string, args ...interface{})

	Fatal(args ...interface{})
	Fatalf(format string, args ...interface{})

	Panic(args ...interface{})
	Panicf(format string, args ...interface{})

	WithField(field string, value interface{}) Logger
	WithFields(fields map[string]interface{}) Logger
	WithError(err error) Logger

	IsTraceEnabled() bool
	IsDebugEnabled() bool
	IsInfoEnabled() bool
}

var (
	once   sync.Once
	logger Logger = newDefaultLogger()
)

// GetLogger returns the process logger. Before Init it logs at info
// level to stdout with the default pattern.
func GetLogger() Logger {
	return logger
}

// Init builds the process logger from cfg. The first call wins; later
// calls are no-ops.
func Init(cfg *LoggerConfig) error {
	var err error
	once.Do(func() {
		var l Logger
		l, err = newLogger(cfg)
		if err == nil {
			logger = l
		}
	})
	return err
}
