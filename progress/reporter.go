// Package progress declares the progress-reporter collaborator the
// refinement engine and solver report phase progress through, and a
// couple of small concrete sinks.
package progress

import (
	"fmt"
	"io"
)

// Reporter accepts (label, current, total) updates. It is purely
// observational: nothing in the solver branches on what a Reporter does
// with an update.
type Reporter interface {
	Report(label string, current, total int)
}

// Discard drops every update. It is the default Reporter when a Solver is
// built without one.
type Discard struct{}

func (Discard) Report(string, int, int) {}

// Bar is a minimal single-line terminal progress reporter: it rewrites the
// current line with a carriage return and prints a trailing newline once a
// phase reaches its total.
type Bar struct {
	w io.Writer
}

// NewBar creates a terminal progress reporter writing to w.
func NewBar(w io.Writer) *Bar {
	return &Bar{w: w}
}

func (b *Bar) Report(label string, current, total int) {
	if total <= 0 {
		return
	}
	fmt.Fprintf(b.w, "\r%s: %d/%d", label, current, total)
	if current >= total {
		fmt.Fprintln(b.w)
	}
}
