package event

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
)

// Sink receives game events. Implementations must tolerate events they do
// not understand; the engine logs and drops Record errors rather than
// failing the action that produced the event.
type Sink interface {
	Record(e Event) error
}

// NopSink discards all events.
type NopSink struct{}

// Record discards the event.
func (NopSink) Record(Event) error { return nil }

// MultiSink fans events out to every wrapped sink.
type MultiSink struct {
	sinks []Sink
}

// NewMultiSink wraps sinks into a single fan-out sink. Nil entries are skipped.
func NewMultiSink(sinks ...Sink) *MultiSink {
	m := &MultiSink{}
	for _, s := range sinks {
		if s != nil {
			m.sinks = append(m.sinks, s)
		}
	}
	return m
}

// Record forwards the event to every sink and returns the first error.
func (m *MultiSink) Record(e Event) error {
	var first error
	for _, s := range m.sinks {
		if err := s.Record(e); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// JSONLSink writes one JSON object per line to w. Safe for concurrent use.
type JSONLSink struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewJSONLSink creates a sink writing JSON lines to w.
//
// Precondition: w must be non-nil.
func NewJSONLSink(w io.Writer) *JSONLSink {
	return &JSONLSink{enc: json.NewEncoder(w)}
}

// Record encodes the event as one JSON line.
func (s *JSONLSink) Record(e Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enc.Encode(e); err != nil {
		return fmt.Errorf("event: encoding %s event: %w", e.Kind, err)
	}
	return nil
}

// ZapSink logs events through a zap logger at Info level.
type ZapSink struct {
	logger *zap.Logger
}

// NewZapSink creates a sink logging events through logger.
//
// Precondition: logger must be non-nil.
func NewZapSink(logger *zap.Logger) *ZapSink {
	return &ZapSink{logger: logger}
}

// Record logs the event kind with its data fields.
func (s *ZapSink) Record(e Event) error {
	fields := []zap.Field{
		zap.String("game_id", e.GameID),
		zap.Int("turn", e.Turn),
	}
	for k, v := range e.Data {
		fields = append(fields, zap.Any(k, v))
	}
	s.logger.Info(string(e.Kind), fields...)
	return nil
}
