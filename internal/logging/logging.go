// Package logging wires up the structured logger used throughout the
// service, adopted from the rs/zerolog style already present in the
// retrieved corpus (e.g. alexherrero-sherwood's execution package and
// web3guy0-polybot's executor), replacing the teacher's bare
// log.Printf("[INFO] ...")/log.Printf("[ERROR] ...") prefixing with
// equivalent structured fields.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global zerolog logger for console output with a
// human-readable timestamp, suitable for both local development and
// container logs.
func Init(debug bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
}
