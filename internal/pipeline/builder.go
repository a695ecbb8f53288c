package pipeline

import (
	"fmt"

	"blackflag.dev/pitwall/internal/config"
	"blackflag.dev/pitwall/internal/sink"
	"blackflag.dev/pitwall/internal/source"
)

// Build assembles a pipeline from the effective configuration. Sinks
// are constructed from the registry by name, so the caller must import
// the sink packages it wants available.
func Build(cfg *config.Config, src source.Source) (*Pipeline, error) {
	sinks := make([]NamedSink, 0, len(cfg.Sinks))
	for _, sc := range cfg.Sinks {
		s, err := sink.New(sc.Name, sc.Options)
		if err != nil {
			closeAll(sinks)
			return nil, fmt.Errorf("build sink %q: %w", sc.Name, err)
		}
		sinks = append(sinks, NamedSink{Name: sc.Name, Sink: s})
	}

	return New(Config{
		Source:     src,
		Sinks:      sinks,
		BufferSize: cfg.Pipeline.BufferSize,
		Workers:    cfg.Pipeline.Workers,
		DropPolicy: cfg.Pipeline.DropPolicy,
	}), nil
}

func closeAll(sinks []NamedSink) {
	for _, s := range sinks {
		s.Sink.Close()
	}
}
