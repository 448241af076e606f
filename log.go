package sheetpulse

import (
	"io"

	"github.com/rs/zerolog"
)

// Log is the package logger. It defaults to a discarding logger so the
// core stays silent in library use; the CLI installs a console writer.
// Logging is observational only, parse functions never fail on bad rows.
var Log = zerolog.New(io.Discard)

// SetLogger installs a logger for parse-skip diagnostics.
func SetLogger(l zerolog.Logger) { Log = l }
