// Package logger provides the prefixed stdlib logger used before slog is
// configured, e.g. while the configuration itself is loading.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
)

// New returns a stderr logger prefixed with the component name.
func New(component string) *log.Logger {
	return NewWithWriter(os.Stderr, component)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, component string) *log.Logger {
	prefix := fmt.Sprintf("profilescanner/%s: ", component)
	return log.New(w, prefix, log.LstdFlags|log.Lmsgprefix)
}
