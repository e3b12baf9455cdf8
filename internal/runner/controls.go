package runner

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// Controller is the control surface the keyboard and signal watchers drive.
type Controller interface {
	TogglePause()
	Cancel()
}

// ErrNotTerminal is returned when keyboard control is requested on a
// non-terminal input.
var ErrNotTerminal = errors.New("stdin is not a terminal")

const (
	keyCtrlC  = 0x03
	keyEscape = 0x1b
)

// Keyboard puts a terminal into raw mode so single keystrokes control a run:
// space or p toggles pause, q, Esc or Ctrl-C cancels.
type Keyboard struct {
	in    *os.File
	state *term.State
}

// NewKeyboard switches in to raw mode. Call Restore when the run ends.
func NewKeyboard(in *os.File) (*Keyboard, error) {
	fd := in.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return nil, ErrNotTerminal
	}
	state, err := term.MakeRaw(int(fd))
	if err != nil {
		return nil, err
	}
	return &Keyboard{in: in, state: state}, nil
}

// Listen forwards keystrokes to ctrl until ctx ends or input closes.
func (k *Keyboard) Listen(ctx context.Context, ctrl Controller) {
	ListenKeys(ctx, k.in, ctrl)
}

// Restore returns the terminal to its previous mode. It is safe to call more
// than once.
func (k *Keyboard) Restore() error {
	if k == nil || k.state == nil {
		return nil
	}
	state := k.state
	k.state = nil
	return term.Restore(int(k.in.Fd()), state)
}

// ListenKeys reads single bytes from r and maps them to ctrl calls. It
// returns when ctx ends, r reaches EOF or a cancel key is read.
func ListenKeys(ctx context.Context, r io.Reader, ctrl Controller) {
	reader := bufio.NewReader(r)
	for {
		if ctx.Err() != nil {
			return
		}
		b, err := reader.ReadByte()
		if err != nil {
			return
		}
		if ctx.Err() != nil {
			return
		}
		switch b {
		case ' ', 'p', 'P':
			ctrl.TogglePause()
		case 'q', 'Q', keyEscape, keyCtrlC:
			ctrl.Cancel()
			return
		}
	}
}
