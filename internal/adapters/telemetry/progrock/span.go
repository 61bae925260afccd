package progrock

import (
	"fmt"

	"github.com/vito/progrock"
)

// Span implements ports.Span wrapping *progrock.VertexRecorder.
type Span struct {
	vertex *progrock.VertexRecorder
	err    error
	ended  bool
}

// Write sends p to the vertex output stream.
func (s *Span) Write(p []byte) (int, error) {
	return s.vertex.Stdout().Write(p)
}

// SetAttribute writes the attribute as a "key=value" line.
func (s *Span) SetAttribute(key string, value any) {
	_, _ = fmt.Fprintf(s.vertex.Stdout(), "%s=%v\n", key, value)
}

// RecordError remembers err; the vertex completes with it on End.
func (s *Span) RecordError(err error) {
	if err != nil {
		s.err = err
	}
}

// End completes the vertex. Calls after the first are ignored.
func (s *Span) End() {
	if s.ended {
		return
	}
	s.ended = true
	s.vertex.Done(s.err)
}
