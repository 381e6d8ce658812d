package log

import (
	"io"
	stdlog "log"
)

// Config carries logger settings as strings, typically populated from
// flags or STOCKD_LOG_LEVEL / STOCKD_LOG_FORMAT environment variables.
type Config struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// ApplyConfig builds a Logger from cfg. Empty values fall back to
// info/text. Invalid values return an error alongside a usable default
// logger so callers can keep running.
func ApplyConfig(cfg *Config) (Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return NewLogger(), err
	}
	format, err := ParseFormat(cfg.Format)
	if err != nil {
		return NewLogger(WithLevel(level)), err
	}
	return NewLogger(WithLevel(level), WithFormat(format)), nil
}

// RedirectStdLog routes standard-library log output through logger at
// info level. Pebble and net/http write through the stdlib logger.
func RedirectStdLog(logger Logger) {
	stdlog.SetFlags(0)
	stdlog.SetOutput(stdlogWriter{logger: logger.With(Component("stdlog"))})
}

type stdlogWriter struct {
	logger Logger
}

func (w stdlogWriter) Write(p []byte) (int, error) {
	msg := string(p)
	if n := len(msg); n > 0 && msg[n-1] == '\n' {
		msg = msg[:n-1]
	}
	w.logger.Info(msg)
	return len(p), nil
}

var _ io.Writer = stdlogWriter{}
