package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

var base = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Init configures the process-wide JSON logger. Unknown levels fall back to info.
func Init(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	base = zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Logger()
	base.Info().Str("level_set", lvl.String()).Msg("logger initialized")
}

// SetOutput redirects log output, keeping the current level.
func SetOutput(w io.Writer) {
	base = base.Output(w)
}

func Debug(msg string, fields map[string]any) {
	emit(base.Debug(), msg, fields)
}

func Info(msg string, fields map[string]any) {
	emit(base.Info(), msg, fields)
}

func Warn(msg string, fields map[string]any) {
	emit(base.Warn(), msg, fields)
}

func Error(msg string, fields map[string]any) {
	emit(base.Error(), msg, fields)
}

// Fatal logs and terminates the process.
func Fatal(msg string, fields map[string]any) {
	emit(base.WithLevel(zerolog.FatalLevel), msg, fields)
	os.Exit(1)
}

func emit(event *zerolog.Event, msg string, fields map[string]any) {
	if event == nil {
		return
	}
	if len(fields) > 0 {
		event = event.Fields(fields)
	}
	event.Msg(msg)
}
