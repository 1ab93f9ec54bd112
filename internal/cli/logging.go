package cli

import (
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var logLevelMatches = map[string]zerolog.Level{
	"NONE":  zerolog.NoLevel,
	"TRACE": zerolog.TraceLevel,
	"DEBUG": zerolog.DebugLevel,
	"INFO":  zerolog.InfoLevel,
	"WARN":  zerolog.WarnLevel,
	"ERROR": zerolog.ErrorLevel,
}

// setupLogging points the global logger at w and sets its level. Unknown
// levels fall back to warn so that normal output stays clean.
func setupLogging(level string, w io.Writer) {
	if f, ok := w.(*os.File); ok && isTerminal(f) {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "2006-01-02 15:04:05"}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()

	logLevel, ok := logLevelMatches[strings.ToUpper(level)]
	if !ok {
		logLevel = zerolog.WarnLevel
	}
	if logLevel == zerolog.NoLevel {
		logLevel = zerolog.Disabled
	}
	zerolog.SetGlobalLevel(logLevel)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) && runtime.GOOS != "windows"
}
