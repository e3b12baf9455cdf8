package notifications

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"
)

const bel = "\a"

// Bell rings the terminal bell: once per stage boundary, three times when the
// sequence completes.
type Bell struct {
	mu  sync.Mutex
	out io.Writer
}

// NewBell returns a bell writing BEL characters to out.
func NewBell(out io.Writer) *Bell {
	return &Bell{out: out}
}

func (b *Bell) ring(n int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, err := io.WriteString(b.out, strings.Repeat(bel, n))
	return err
}

func (b *Bell) StageStarted(context.Context, string) error { return b.ring(1) }

func (b *Bell) StageCompleted(context.Context, string) error { return b.ring(1) }

func (b *Bell) SequenceCompleted(context.Context, time.Duration) error { return b.ring(3) }

func (b *Bell) Cancelled(context.Context, string) error { return nil }

func (b *Bell) Test(context.Context) error { return b.ring(1) }
