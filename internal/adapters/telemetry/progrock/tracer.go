// Package progrock records configuration-pass spans as progrock vertices.
package progrock

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/buildsrc/internal/core/ports"
)

var _ ports.Tracer = (*Tracer)(nil)

// Tracer implements ports.Tracer on top of a progrock recorder.
type Tracer struct {
	w       progrock.Writer
	rec     *progrock.Recorder
	printer *Printer
}

// New creates a new Tracer that renders progress through a Printer.
// Output is discarded until SetOutput is called.
func New() *Tracer {
	p := NewPrinter(io.Discard)
	t := NewTracer(p)
	t.printer = p
	return t
}

// NewTracer creates a new Tracer with the given writer.
func NewTracer(w progrock.Writer) *Tracer {
	return &Tracer{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// SetOutput sends rendered progress to w. It has no effect on a Tracer built
// around a caller-supplied writer.
func (t *Tracer) SetOutput(w io.Writer) {
	if t.printer != nil {
		t.printer.SetOutput(w)
	}
}

// Start opens a vertex named after the step.
func (t *Tracer) Start(ctx context.Context, name string) (context.Context, ports.Span) {
	v := t.rec.Vertex(digest.FromString(name), name)
	return ctx, &Span{vertex: v}
}

// EmitPlan records the module visiting order as a completed vertex.
func (t *Tracer) EmitPlan(_ context.Context, modulePaths []string) {
	v := t.rec.Vertex(digest.FromString("plan:"+strings.Join(modulePaths, ",")), "plan")
	for _, path := range modulePaths {
		_, _ = fmt.Fprintln(v.Stdout(), path)
	}
	v.Done(nil)
}

// Close flushes and closes the recording session.
func (t *Tracer) Close() error {
	if c, ok := t.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
