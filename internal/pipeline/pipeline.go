// Package pipeline connects a telemetry source to the decoder and the
// configured sinks: one capture goroutine feeds a bounded channel, a
// pool of workers decodes and fans out.
package pipeline

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"blackflag.dev/pitwall/internal/codec"
	"blackflag.dev/pitwall/internal/log"
	"blackflag.dev/pitwall/internal/metrics"
	"blackflag.dev/pitwall/internal/sink"
	"blackflag.dev/pitwall/internal/source"
)

const (
	DropTail = "tail"
	DropHead = "head"
)

// NamedSink pairs a sink with its configured name for logs and metrics.
type NamedSink struct {
	Name string
	Sink sink.Sink
}

// raw is one captured datagram waiting to be decoded.
type raw struct {
	data []byte
	at   time.Time
}

// Config describes a pipeline. Source and at least one sink are
// required; the rest has working defaults.
type Config struct {
	Source  source.Source
	Decoder *codec.Decoder
	Sinks   []NamedSink

	// BufferSize is the capture channel capacity.
	BufferSize int

	// Workers is the decode parallelism; one worker keeps packets
	// ordered at the sinks.
	Workers int

	// DropPolicy picks which datagram loses when the buffer is full:
	// DropTail drops the incoming one, DropHead evicts the oldest.
	DropPolicy string
}

// Pipeline runs one source to completion. A Pipeline is started once
// and not reused.
type Pipeline struct {
	runID   string
	source  source.Source
	decoder *codec.Decoder
	sinks   []NamedSink

	workers  int
	dropHead bool

	metrics *Metrics
	logger  log.Logger

	wg      sync.WaitGroup
	rawChan chan raw

	stopOnce sync.Once
	stopErr  error
}

func New(cfg Config) *Pipeline {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1024
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Decoder == nil {
		cfg.Decoder = codec.NewDecoder()
	}

	runID := uuid.NewString()
	return &Pipeline{
		runID:    runID,
		source:   cfg.Source,
		decoder:  cfg.Decoder,
		sinks:    cfg.Sinks,
		workers:  cfg.Workers,
		dropHead: cfg.DropPolicy == DropHead,
		metrics:  NewMetrics(),
		logger: log.GetLogger().WithFields(map[string]interface{}{
			"run_id": runID,
			"source": cfg.Source.Name(),
		}),
		rawChan: make(chan raw, cfg.BufferSize),
	}
}

// RunID identifies this pipeline run in logs.
func (p *Pipeline) RunID() string { return p.runID }

// Start opens the source and launches the capture and worker
// goroutines. It returns once the pipeline is running.
func (p *Pipeline) Start(ctx context.Context) error {
	if err := p.source.Start(ctx); err != nil {
		return err
	}

	p.logger.WithField("workers", p.workers).Info("pipeline starting")

	p.wg.Add(1)
	go p.captureLoop()

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.processLoop()
	}
	return nil
}

// Wait blocks until the source is exhausted and every queued packet has
// been delivered. Live sources never exhaust, so Wait returns only
// after Stop.
func (p *Pipeline) Wait() {
	p.wg.Wait()
}

// Stop shuts the source, drains the queue and closes the sinks. It is
// safe to call more than once.
func (p *Pipeline) Stop() error {
	p.stopOnce.Do(func() {
		p.logger.Info("pipeline stopping")

		if err := p.source.Stop(); err != nil {
			p.stopErr = err
			p.logger.WithError(err).Error("source stop failed")
		}
		p.wg.Wait()

		for _, s := range p.sinks {
			if err := s.Sink.Close(); err != nil {
				if p.stopErr == nil {
					p.stopErr = err
				}
				p.logger.WithError(err).WithField("sink", s.Name).Error("sink close failed")
			}
		}

		stats := p.Stats()
		p.logger.WithFields(map[string]interface{}{
			"received": stats.Received,
			"decoded":  stats.Decoded,
			"errors":   stats.DecodeErrors,
			"dropped":  stats.Dropped,
		}).Info("pipeline stopped")
	})
	return p.stopErr
}

// captureLoop reads datagrams from the source into the channel until
// the source ends or fails.
func (p *Pipeline) captureLoop() {
	defer p.wg.Done()
	defer close(p.rawChan)

	for {
		data, at, err := p.source.ReadPacket()
		if err != nil {
			switch {
			case errors.Is(err, source.ErrClosed):
			case errors.Is(err, io.EOF):
				p.logger.Info("source exhausted")
			default:
				p.logger.WithError(err).Error("capture failed")
			}
			return
		}

		p.metrics.Received.Add(1)
		p.metrics.Bytes.Add(uint64(len(data)))
		metrics.PacketsReceivedTotal.WithLabelValues(p.source.Name()).Inc()
		metrics.BytesReceivedTotal.WithLabelValues(p.source.Name()).Add(float64(len(data)))

		p.enqueue(raw{data: data, at: at})
		metrics.PipelineDepth.Set(float64(len(p.rawChan)))
	}
}

// enqueue applies the drop policy when the channel is full.
func (p *Pipeline) enqueue(r raw) {
	for {
		select {
		case p.rawChan <- r:
			return
		default:
		}

		if !p.dropHead {
			p.metrics.Dropped.Add(1)
			metrics.PacketsDroppedTotal.WithLabelValues(DropTail).Inc()
			return
		}

		// Evict the oldest queued datagram to make room. A worker may
		// win the race, in which case the retry just succeeds.
		select {
		case <-p.rawChan:
			p.metrics.Dropped.Add(1)
			metrics.PacketsDroppedTotal.WithLabelValues(DropHead).Inc()
		default:
		}
	}
}

// processLoop decodes queued datagrams and fans them out until the
// channel is closed and drained.
func (p *Pipeline) processLoop() {
	defer p.wg.Done()

	for r := range p.rawChan {
		p.processPacket(r)
	}
}

func (p *Pipeline) processPacket(r raw) {
	started := time.Now()
	pkt, err := p.decoder.Decode(r.data)
	metrics.DecodeLatencySeconds.Observe(time.Since(started).Seconds())

	if err != nil {
		p.metrics.DecodeErrors.Add(1)
		metrics.DecodeErrorsTotal.WithLabelValues(classifyError(err)).Inc()
		if p.logger.IsDebugEnabled() {
			p.logger.WithError(err).WithField("size", len(r.data)).Debug("packet decode failed")
		}
		return
	}

	p.metrics.Decoded.Add(1)
	metrics.PacketsDecodedTotal.WithLabelValues(pkt.Kind().String()).Inc()

	d := &sink.Decoded{
		ReceivedAt: r.at,
		Source:     p.source.Name(),
		Size:       len(r.data),
		Packet:     pkt,
	}
	for _, s := range p.sinks {
		if err := s.Sink.Send(d); err != nil {
			p.metrics.SinkErrors.Add(1)
			metrics.SinkErrorsTotal.WithLabelValues(s.Name).Inc()
			p.logger.WithError(err).WithField("sink", s.Name).Error("sink send failed")
			continue
		}
	}
	p.metrics.Delivered.Add(1)
}
