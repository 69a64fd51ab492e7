package service

import (
	"database/sql"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/ana-coahuila/META-FIT-PROJECT/internal/datekey"
)

const (
	ConfigAPIURL         = "api_url"
	ConfigLocale         = "locale"
	ConfigSelectedDate   = "selected_date"
	ConfigAgeMin         = "age_min"
	ConfigAgeMax         = "age_max"
	ConfigPlanWindowDays = "plan_window_days"
)

// ConfigKeys lists the keys accepted by SetConfig.
var ConfigKeys = []string{
	ConfigAPIURL,
	ConfigLocale,
	ConfigSelectedDate,
	ConfigAgeMin,
	ConfigAgeMax,
	ConfigPlanWindowDays,
}

func SetConfig(db *sql.DB, key, value string) error {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return fmt.Errorf("config key is required")
	}
	value = strings.TrimSpace(value)
	if err := validateConfig(key, value); err != nil {
		return err
	}
	_, err := db.Exec(`
INSERT INTO app_config(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, key, value)
	if err != nil {
		return fmt.Errorf("set config %q: %w", key, err)
	}
	return nil
}

func GetConfig(db *sql.DB, key string) (string, bool, error) {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return "", false, fmt.Errorf("config key is required")
	}
	var value string
	err := db.QueryRow(`SELECT value FROM app_config WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get config %q: %w", key, err)
	}
	return value, true, nil
}

// GetConfigInt reads an integer setting. A missing key reports ok=false.
func GetConfigInt(db *sql.DB, key string) (int, bool, error) {
	raw, ok, err := GetConfig(db, key)
	if err != nil || !ok {
		return 0, false, err
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, fmt.Errorf("config %q is not a whole number: %q", key, raw)
	}
	return v, true, nil
}

func ListConfig(db *sql.DB) (map[string]string, error) {
	rows, err := db.Query(`SELECT key, value FROM app_config ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("list config: %w", err)
	}
	defer rows.Close()
	out := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan config: %w", err)
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate config: %w", err)
	}
	return out, nil
}

func UnsetConfig(db *sql.DB, key string) error {
	key = strings.TrimSpace(strings.ToLower(key))
	if _, err := db.Exec(`DELETE FROM app_config WHERE key = ?`, key); err != nil {
		return fmt.Errorf("unset config %q: %w", key, err)
	}
	return nil
}

func validateConfig(key, value string) error {
	switch key {
	case ConfigAPIURL:
		u, err := url.Parse(value)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%s must be an http(s) URL, got %q", key, value)
		}
	case ConfigLocale:
		if value == "" {
			return fmt.Errorf("%s must not be empty", key)
		}
	case ConfigSelectedDate:
		if !datekey.Valid(value) {
			return fmt.Errorf("%s must be YYYY-MM-DD, got %q", key, value)
		}
	case ConfigAgeMin, ConfigAgeMax, ConfigPlanWindowDays:
		v, err := strconv.Atoi(value)
		if err != nil || v <= 0 {
			return fmt.Errorf("%s must be a positive whole number, got %q", key, value)
		}
	default:
		return fmt.Errorf("unknown config key %q (valid: %s)", key, strings.Join(ConfigKeys, ", "))
	}
	return nil
}
