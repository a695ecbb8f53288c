package log

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/natefinch/lumberjack.v2"
)

type FileAppenderOpt struct {
	Filename   string `mapstructure:"filename"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// AddFileAppender appends a size-rotated file target decoded from the
// appender's options map.
func (m *MultiWriter) AddFileAppender(options map[string]interface{}) error {
	var opt FileAppenderOpt
	if err := mapstructure.Decode(options, &opt); err != nil {
		return fmt.Errorf("log: decode file appender options: %w", err)
	}
	if opt.Filename == "" {
		return fmt.Errorf("log: file appender needs a filename")
	}
	m.writers = append(m.writers, &lumberjack.Logger{
		Filename:   opt.Filename,
		MaxSize:    opt.MaxSize, // megabytes
		MaxBackups: opt.MaxBackups,
		MaxAge:     opt.MaxAge, // days
		Compress:   opt.Compress,
	})
	return nil
}
