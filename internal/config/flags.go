package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

// filterArgs оставляет в args только разрешенные флаги и их значения.
// Поддерживаются формы "-c conf.json" и "-c=conf.json".
func filterArgs(args []string, allowed ...string) []string {
	set := make(map[string]struct{}, len(allowed))
	for _, f := range allowed {
		set[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := set[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := set[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// configPath извлекает путь к JSON файлу из -config или -c
func configPath(args []string) (string, error) {
	var path string

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")

	if err := fs.Parse(filterArgs(args, "-c", "-config", "--c", "--config")); err != nil {
		return "", fmt.Errorf("failed to parse config flag: %w", err)
	}

	return path, nil
}

// parseFlags перекрывает cfg значениями флагов.
// Разбор останавливается на первом позиционном аргументе.
func parseFlags(cfg *Config, args []string) ([]string, error) {
	fs := flag.NewFlagSet("tabata", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var ignored string
	fs.StringVar(&ignored, "config", "", "path to config file")
	fs.StringVar(&ignored, "c", "", "path to config file (short)")

	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to sqlite database")
	fs.StringVar(&cfg.SessionFile, "session-file", cfg.SessionFile, "path to last session file")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "additional log file")
	fs.DurationVar(&cfg.ShortSessionTTL, "session-ttl", cfg.ShortSessionTTL, "session lifetime without remember me")
	fs.DurationVar(&cfg.RememberSessionTTL, "remember-ttl", cfg.RememberSessionTTL, "session lifetime with remember me")
	fs.DurationVar(&cfg.InitialCountdown, "countdown", cfg.InitialCountdown, "countdown before the first set")
	fs.IntVar(&cfg.PasswordMinLength, "password-min", cfg.PasswordMinLength, "minimum password length")
	fs.IntVar(&cfg.LoginAttempts, "login-attempts", cfg.LoginAttempts, "login attempts per window, 0 disables the limit")
	fs.DurationVar(&cfg.LoginWindow, "login-window", cfg.LoginWindow, "login attempts window")
	fs.IntVar(&cfg.ReportTopN, "report-top", cfg.ReportTopN, "number of top workouts in report")
	fs.IntVar(&cfg.HistoryLimit, "history-limit", cfg.HistoryLimit, "default history size")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	return fs.Args(), nil
}
