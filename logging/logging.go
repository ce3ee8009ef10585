/*package logging holds the process-wide logger used by the randlib command
and server. The generator library itself never logs.*/
package logging

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/rs/zerolog"
)

type Flag int

const (
	Nil Flag = iota
	Performance
	Debug
)

// This is handled this way so that GlobalConfig doesn't need to be literally
// every function in the project.
var (
	Mode Flag = Nil

	log = newConsole(os.Stderr, false).Level(zerolog.WarnLevel)
)

// Log returns the shared logger.
func Log() *zerolog.Logger {
	return &log
}

// SetMode sets Mode and the matching log level: Nil only reports warnings and
// errors, Performance adds timing and memory reports and Debug logs
// everything.
func SetMode(m Flag) {
	Mode = m
	log = log.Level(m.Level())
}

// Level returns the zerolog level corresponding to a Flag.
func (m Flag) Level() zerolog.Level {
	switch m {
	case Performance:
		return zerolog.InfoLevel
	case Debug:
		return zerolog.DebugLevel
	default:
		return zerolog.WarnLevel
	}
}

// ParseFlag converts the LogMode value of a config file into a Flag.
func ParseFlag(s string) (Flag, error) {
	switch s {
	case "", "nil", "none":
		return Nil, nil
	case "performance":
		return Performance, nil
	case "debug":
		return Debug, nil
	}
	return Nil, fmt.Errorf("Unrecognized LogMode '%s'", s)
}

// SetConsoleWriter sends human-readable log lines to w.
func SetConsoleWriter(w io.Writer, noColor bool) {
	log = newConsole(w, noColor).Level(Mode.Level())
}

// SetJSONWriter sends one JSON object per log line to w.
func SetJSONWriter(w io.Writer) {
	log = zerolog.New(w).With().Timestamp().Logger().Level(Mode.Level())
}

// MemString returns a string containing various statistics on the current
// memory usage of randlib.
func MemString() string {
	ms := runtime.MemStats{}
	runtime.ReadMemStats(&ms)
	return fmt.Sprintf(
		"Alloc - %d MB; Sys - %d MB Integrated - %d MB",
		ms.Alloc>>20, ms.Sys>>20, ms.TotalAlloc>>20,
	)
}

// Mem logs MemString at info level, which is only visible in Performance
// and Debug modes.
func Mem(msg string) {
	log.Info().Str("mem", MemString()).Msg(msg)
}
