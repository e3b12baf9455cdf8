package display

import (
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

// ClearLine erases the current terminal line and returns the cursor to column 0.
const ClearLine = "\x1b[2K\r"

var (
	activeStyle = text.Colors{text.Bold, text.FgGreen}
	waitStyle   = text.Colors{text.Bold, text.FgYellow}
	idleStyle   = text.Colors{text.Faint}
	noticeStyle = text.Colors{text.FgYellow}
	resetSeq    = text.Reset.EscapeSeq()
)

// ShouldColorize resolves a colour mode (auto, always, never) for writer.
// Auto colours only terminals and honours NO_COLOR.
func ShouldColorize(mode string, writer io.Writer) bool {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "always":
		return true
	case "never":
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func paint(style text.Colors, s string, colorize bool) string {
	if !colorize {
		return s
	}
	return style.EscapeSeq() + s + resetSeq
}
