package kaksviz

import (
	"io"
	"log"
)

// Package loggers. The cmd layer replaces these at startup; the library
// is silent by default.
var (
	Info = log.New(io.Discard, "", 0)
	Warn = log.New(io.Discard, "", 0)
)
