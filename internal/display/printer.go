package display

import (
	"io"

	"stagedtimer/internal/schedule"
)

// Source provides the plan and the latest scheduler view.
type Source interface {
	Plan() schedule.Plan
	Snapshot() schedule.Snapshot
}

// Printer redraws the countdown line on every event it receives.
type Printer struct {
	out      io.Writer
	src      Source
	colorize bool
}

// NewPrinter creates a printer writing to out.
func NewPrinter(out io.Writer, src Source, colorize bool) *Printer {
	return &Printer{out: out, src: src, colorize: colorize}
}

// Draw writes the current line without a newline.
func (p *Printer) Draw() {
	_, _ = io.WriteString(p.out, Line(p.src.Plan(), p.src.Snapshot(), p.colorize))
}

// Run redraws until events closes, then terminates the line. The newline is
// written as "\r\n" because the terminal may still be in raw mode.
func (p *Printer) Run(events <-chan schedule.Event) {
	p.Draw()
	for range events {
		p.Draw()
	}
	p.Draw()
	_, _ = io.WriteString(p.out, "\r\n")
}
