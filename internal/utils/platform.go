package utils

import (
	"github.com/mattn/go-isatty"
)

// IsTerminal reports whether v is a file attached to an interactive
// terminal, including Cygwin and MSYS pseudo terminals on Windows.
func IsTerminal(v any) bool {
	f, ok := v.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
