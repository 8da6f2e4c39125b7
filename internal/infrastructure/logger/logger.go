package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

// colorWriter wraps an io.Writer and adds ANSI color codes around the
// level attribute emitted by slog.TextHandler.
type colorWriter struct {
	writer  io.Writer
	enabled bool
}

func (cw *colorWriter) Write(p []byte) (n int, err error) {
	if !cw.enabled {
		return cw.writer.Write(p)
	}

	text := string(p)
	text = strings.ReplaceAll(text, "level=DEBUG", colorCyan+"level=DEBUG"+colorReset)
	text = strings.ReplaceAll(text, "level=INFO", colorGreen+"level=INFO"+colorReset)
	text = strings.ReplaceAll(text, "level=WARN", colorYellow+"level=WARN"+colorReset)
	text = strings.ReplaceAll(text, "level=ERROR", colorRed+"level=ERROR"+colorReset)

	_, err = cw.writer.Write([]byte(text))
	return len(p), err
}

// isTerminal reports whether the writer is a character device.
func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	info, err := file.Stat()
	if err != nil {
		return false
	}

	return (info.Mode() & os.ModeCharDevice) != 0
}

// New builds a structured slog logger honoring the configured level and
// environment. Development environments (local, dev, development) get
// colored text output; everything else gets JSON.
func New(appName, level, environment string) *slog.Logger {
	env := strings.ToLower(strings.TrimSpace(environment))
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	var handler slog.Handler
	if env == "local" || env == "dev" || env == "development" {
		handler = slog.NewTextHandler(&colorWriter{
			writer:  os.Stdout,
			enabled: isTerminal(os.Stdout),
		}, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler).With("app", appName)
}

func parseLevel(level string) slog.Leveler {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
