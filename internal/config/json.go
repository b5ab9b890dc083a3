package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Duration принимает в JSON строку вида "15m" или целое число наносекунд
type Duration struct {
	time.Duration
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value, err)
		}
		d.Duration = parsed
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// fileConfig DTO для чтения JSON. Отсутствующие поля не меняют Config.
type fileConfig struct {
	DBPath             *string   `json:"db_path"`
	SessionFile        *string   `json:"session_file"`
	LogLevel           *string   `json:"log_level"`
	LogFile            *string   `json:"log_file"`
	ShortSessionTTL    *Duration `json:"short_session_ttl"`
	RememberSessionTTL *Duration `json:"remember_session_ttl"`
	InitialCountdown   *Duration `json:"initial_countdown"`
	LoginWindow        *Duration `json:"login_window"`
	PasswordMinLength  *int      `json:"password_min_length"`
	LoginAttempts      *int      `json:"login_attempts"`
	ReportTopN         *int      `json:"report_top_n"`
	HistoryLimit       *int      `json:"history_limit"`
}

func loadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc *fileConfig) apply(cfg *Config) {
	setString(&cfg.DBPath, fc.DBPath)
	setString(&cfg.SessionFile, fc.SessionFile)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.LogFile, fc.LogFile)
	setDuration(&cfg.ShortSessionTTL, fc.ShortSessionTTL)
	setDuration(&cfg.RememberSessionTTL, fc.RememberSessionTTL)
	setDuration(&cfg.InitialCountdown, fc.InitialCountdown)
	setDuration(&cfg.LoginWindow, fc.LoginWindow)
	setInt(&cfg.PasswordMinLength, fc.PasswordMinLength)
	setInt(&cfg.LoginAttempts, fc.LoginAttempts)
	setInt(&cfg.ReportTopN, fc.ReportTopN)
	setInt(&cfg.HistoryLimit, fc.HistoryLimit)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *Duration) {
	if v != nil {
		*dst = v.Duration
	}
}
