package progrock

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/vito/progrock"
)

var _ progrock.Writer = (*Printer)(nil)

// Printer renders progrock status updates as one line per completed vertex,
// followed by the output the vertex wrote.
type Printer struct {
	mu     sync.Mutex
	out    io.Writer
	logs   map[string]*bytes.Buffer
	done   map[string]bool
	steps  int
	failed int
}

// NewPrinter creates a Printer writing to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{
		out:  out,
		logs: make(map[string]*bytes.Buffer),
		done: make(map[string]bool),
	}
}

// SetOutput redirects rendering to w.
func (p *Printer) SetOutput(w io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.out = w
}

// WriteStatus buffers vertex output and prints vertices as they complete.
func (p *Printer) WriteStatus(update *progrock.StatusUpdate) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, l := range update.Logs {
		buf, ok := p.logs[l.Vertex]
		if !ok {
			buf = new(bytes.Buffer)
			p.logs[l.Vertex] = buf
		}
		buf.Write(l.Data)
	}

	for _, v := range update.Vertexes {
		if v.Completed == nil || p.done[v.Id] {
			continue
		}
		p.done[v.Id] = true
		p.steps++
		if err := p.printVertex(v); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) printVertex(v *progrock.Vertex) error {
	line := "✓ " + v.Name
	if v.Error != nil {
		p.failed++
		line = fmt.Sprintf("✗ %s: %s", v.Name, *v.Error)
	}
	if _, err := fmt.Fprintln(p.out, line); err != nil {
		return err
	}

	buf, ok := p.logs[v.Id]
	if !ok {
		return nil
	}
	delete(p.logs, v.Id)
	for _, l := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		if _, err := fmt.Fprintln(p.out, "    "+l); err != nil {
			return err
		}
	}
	return nil
}

// Close prints a summary line when anything was recorded.
func (p *Printer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.steps == 0 {
		return nil
	}
	_, err := fmt.Fprintf(p.out, "%d steps, %d failed\n", p.steps, p.failed)
	return err
}
