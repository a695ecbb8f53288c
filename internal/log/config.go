package log

// LoggerConfig configures the process logger. Pattern is a template over
// %time, %level, %field, %msg, %caller and %goroutine; Time is the
// time.Format layout substituted for %time.
type LoggerConfig struct {
	Level     string           `mapstructure:"level" yaml:"level"`
	Pattern   string           `mapstructure:"pattern" yaml:"pattern"`
	Time      string           `mapstructure:"time" yaml:"time"`
	Appenders []AppenderConfig `mapstructure:"appenders" yaml:"appenders"`
}

// AppenderConfig selects one output target. Type is "console" or "file";
// Options carries the type-specific settings.
type AppenderConfig struct {
	Type    string                 `mapstructure:"type" yaml:"type"`
	Options map[string]interface{} `mapstructure:"options" yaml:"options"`
}

func DefaultConfig() *LoggerConfig {
	return &LoggerConfig{
		Level:     "info",
		Pattern:   "%time [%level] %msg %field\n",
		Time:      "2006-01-02 15:04:05.000",
		Appenders: []AppenderConfig{{Type: "console"}},
	}
}
