package log

import (
	"fmt"
	"io"
	"os"
)

// MultiWriter fans one log stream out to every configured appender. A
// failing appender does not stop the others; the last error is reported.
type MultiWriter struct {
	writers []io.Writer
}

func NewMultiWriter() *MultiWriter {
	return &MultiWriter{writers: make([]io.Writer, 0)}
}

func (m *MultiWriter) Write(p []byte) (n int, err error) {
	for _, w := range m.writers {
		_, e := w.Write(p)
		if e != nil {
			err = e
		}
	}
	return len(p), err
}

func (m *MultiWriter) Add(writer io.Writer) *MultiWriter {
	m.writers = append(m.writers, writer)
	return m
}

func newAppenders(configs []AppenderConfig) (io.Writer, error) {
	m := NewMultiWriter()
	if len(configs) == 0 {
		return m.Add(os.Stdout), nil
	}
	for _, c := range configs {
		switch c.Type {
		case "console", "":
			m.Add(os.Stdout)
		case "file":
			if err := m.AddFileAppender(c.Options); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("log: unknown appender type %q", c.Type)
		}
	}
	return m, nil
}
