// Package datekey handles calendar-date keys of the form YYYY-MM-DD.
//
// Keys carry no time zone. All arithmetic happens on midnight UTC so that
// daylight-saving transitions never shift a key.
package datekey

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/ana-coahuila/META-FIT-PROJECT/internal/i18n"
)

const Layout = "2006-01-02"

// FromTime returns the calendar date of t in t's own location.
func FromTime(t time.Time) string {
	return t.Format(Layout)
}

// Today returns the key for now in the local time zone.
func Today() string {
	return FromTime(time.Now())
}

func Parse(key string) (time.Time, error) {
	t, err := time.Parse(Layout, strings.TrimSpace(key))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", key)
	}
	return t, nil
}

func Valid(key string) bool {
	_, err := Parse(key)
	return err == nil
}

// Normalize parses and re-formats key, trimming whitespace.
func Normalize(key string) (string, error) {
	t, err := Parse(key)
	if err != nil {
		return "", err
	}
	return FromTime(t), nil
}

func Next(key string) (string, error) {
	return shift(key, 1)
}

func Prev(key string) (string, error) {
	return shift(key, -1)
}

func shift(key string, days int) (string, error) {
	t, err := Parse(key)
	if err != nil {
		return "", err
	}
	return FromTime(t.AddDate(0, 0, days)), nil
}

// Range returns the inclusive window of keys that extends days on each side of center.
func Range(center string, days int) (from, to string, err error) {
	if days < 0 {
		return "", "", fmt.Errorf("window must be >= 0 days")
	}
	if from, err = shift(center, -days); err != nil {
		return "", "", err
	}
	if to, err = shift(center, days); err != nil {
		return "", "", err
	}
	return from, to, nil
}

type names struct {
	weekdays [7]string
	months   [12]string
	format   func(weekday string, day int, month string) string
}

var english = names{
	weekdays: [7]string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"},
	months:   [12]string{"january", "february", "march", "april", "may", "june", "july", "august", "september", "october", "november", "december"},
	format: func(weekday string, day int, month string) string {
		return fmt.Sprintf("%s, %d %s", weekday, day, i18n.Capitalize(language.English, month))
	},
}

var spanish = names{
	weekdays: [7]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"},
	months:   [12]string{"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"},
	format: func(weekday string, day int, month string) string {
		return fmt.Sprintf("%s, %d de %s", weekday, day, month)
	},
}

// FormatDisplay renders key as a long "weekday, day month" string in the
// language matched from locale. It never changes the key itself.
func FormatDisplay(key, locale string) (string, error) {
	t, err := Parse(key)
	if err != nil {
		return "", err
	}
	tag := i18n.Match(locale)
	n := english
	if tag == language.Spanish {
		n = spanish
	}
	weekday := i18n.Capitalize(tag, n.weekdays[t.Weekday()])
	return n.format(weekday, t.Day(), n.months[t.Month()-1]), nil
}
