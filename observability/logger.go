// Package observability builds the logger, the run metrics and the stage
// tracing shared by the compiler and the command line.
package observability

import (
	"io"
	"log"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
)

// NewLogger returns a logger writing through the standard log package.
// Messages with a V-level above verbosity are dropped.
func NewLogger(w io.Writer, verbosity int) logr.Logger {
	stdr.SetVerbosity(verbosity)
	return stdr.NewWithOptions(log.New(w, "", log.LstdFlags),
		stdr.Options{LogCaller: stdr.None}).WithName("radflow")
}
