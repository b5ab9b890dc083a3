// Package config собирает настройки приложения из значений по умолчанию,
// JSON файла и флагов командной строки. Более поздний источник перекрывает предыдущий.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Значения по умолчанию
const (
	DefaultDBPath             = "tabata.db"
	DefaultSessionFile        = "tabata_session.db"
	DefaultLogLevel           = "info"
	DefaultShortSessionTTL    = 15 * time.Minute
	DefaultRememberSessionTTL = 30 * 24 * time.Hour
	DefaultInitialCountdown   = 10 * time.Second
	DefaultPasswordMinLength  = 8
	DefaultLoginAttempts      = 5
	DefaultLoginWindow        = time.Minute
	DefaultReportTopN         = 3
	DefaultHistoryLimit       = 50
)

// ErrInvalidConfig returned when a loaded value is out of range
var ErrInvalidConfig = errors.New("invalid config")

// Config настройки приложения
type Config struct {
	DBPath             string
	SessionFile        string // bbolt файл последней сессии
	LogLevel           string
	LogFile            string // пусто = только stderr
	ShortSessionTTL    time.Duration
	RememberSessionTTL time.Duration
	InitialCountdown   time.Duration
	LoginWindow        time.Duration
	PasswordMinLength  int
	LoginAttempts      int // попыток входа за LoginWindow на один email
	ReportTopN         int
	HistoryLimit       int
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	return cfg
}

// LoadDefaults заполняет c значениями по умолчанию
func (c *Config) LoadDefaults() {
	c.DBPath = DefaultDBPath
	c.SessionFile = DefaultSessionFile
	c.LogLevel = DefaultLogLevel
	c.LogFile = ""
	c.ShortSessionTTL = DefaultShortSessionTTL
	c.RememberSessionTTL = DefaultRememberSessionTTL
	c.InitialCountdown = DefaultInitialCountdown
	c.PasswordMinLength = DefaultPasswordMinLength
	c.LoginAttempts = DefaultLoginAttempts
	c.LoginWindow = DefaultLoginWindow
	c.ReportTopN = DefaultReportTopN
	c.HistoryLimit = DefaultHistoryLimit
}

// Validate проверяет значения после загрузки
func (c *Config) Validate() error {
	var errs []error

	if c.DBPath == "" {
		errs = append(errs, fmt.Errorf("%w: db path is empty", ErrInvalidConfig))
	}
	if c.SessionFile == "" {
		errs = append(errs, fmt.Errorf("%w: session file is empty", ErrInvalidConfig))
	}
	if c.ShortSessionTTL <= 0 || c.RememberSessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("%w: session ttl must be positive", ErrInvalidConfig))
	}
	if c.InitialCountdown < 0 {
		errs = append(errs, fmt.Errorf("%w: initial countdown cannot be negative", ErrInvalidConfig))
	}
	if c.PasswordMinLength < 1 {
		errs = append(errs, fmt.Errorf("%w: password min length must be positive", ErrInvalidConfig))
	}
	if c.LoginAttempts < 0 || c.LoginWindow < 0 {
		errs = append(errs, fmt.Errorf("%w: login limiter settings cannot be negative", ErrInvalidConfig))
	}
	if c.ReportTopN < 1 || c.HistoryLimit < 1 {
		errs = append(errs, fmt.Errorf("%w: report top and history limit must be positive", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// Load строит Config: defaults -> JSON (-config/-c) -> флаги.
// args без имени программы; возвращает оставшиеся после флагов аргументы (команду).
func Load(args []string) (*Config, []string, error) {
	cfg := Default()

	path, err := configPath(args)
	if err != nil {
		return nil, nil, err
	}
	if path != "" {
		if err := loadJSON(cfg, path); err != nil {
			return nil, nil, err
		}
	}

	rest, err := parseFlags(cfg, args)
	if err != nil {
		return nil, nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	return cfg, rest, nil
}
