// Package logging создает slog логгер приложения.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// ParseLevel переводит строковый уровень из конфигурации в slog.Level
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

// New создает текстовый логгер, пишущий в w и, если задан logFile, дополнительно в файл.
// Возвращаемая функция закрывает файл лога.
func New(w io.Writer, level, logFile string) (*slog.Logger, func() error, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}

	closer := func() error { return nil }

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = io.MultiWriter(w, f)
		closer = f.Close
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: lvl,
	}))

	return logger, closer, nil
}
