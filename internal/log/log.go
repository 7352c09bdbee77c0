// Package log holds the leveled loggers used across the engine. Trace is
// discarded until InitLog enables it.
package log

import (
	"io"
	"log"
	"os"
)

var (
	Trace   *log.Logger
	Info    *log.Logger
	Warning *log.Logger
	Error   *log.Logger
)

func init() {
	InitLog(os.Getenv("ECODIGITAL_TRACE") != "")
}

// InitLog (re)creates the loggers. Trace output goes to stderr only when
// trace is true.
func InitLog(trace bool) {
	traceOut := io.Discard
	if trace {
		traceOut = os.Stderr
	}
	SetOutput(traceOut, os.Stderr)
}

// SetOutput points the trace logger at traceOut and every other level at out.
func SetOutput(traceOut, out io.Writer) {
	Trace = log.New(traceOut, "TRACE: ", log.Ltime|log.Lshortfile)
	Info = log.New(out, "", 0)
	Warning = log.New(out, "WARNING: ", 0)
	Error = log.New(out, "ERROR: ", log.Lshortfile)
}
