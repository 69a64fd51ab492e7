package datekey

import (
	"math/rand"
	"testing"
	"time"
)

func TestNextPrevBoundaries(t *testing.T) {
	t.Parallel()
	cases := []struct {
		key, next, prev string
	}{
		{"2024-02-28", "2024-02-29", "2024-02-27"},
		{"2024-02-29", "2024-03-01", "2024-02-28"},
		{"2023-02-28", "2023-03-01", "2023-02-27"},
		{"2024-03-01", "2024-03-02", "2024-02-29"},
		{"2024-12-31", "2025-01-01", "2024-12-30"},
		{"2025-01-01", "2025-01-02", "2024-12-31"},
		{"2025-04-30", "2025-05-01", "2025-04-29"},
		{"2000-02-29", "2000-03-01", "2000-02-28"},
	}
	for _, tc := range cases {
		next, err := Next(tc.key)
		if err != nil || next != tc.next {
			t.Fatalf("Next(%s) = %s, %v; want %s", tc.key, next, err, tc.next)
		}
		prev, err := Prev(tc.key)
		if err != nil || prev != tc.prev {
			t.Fatalf("Prev(%s) = %s, %v; want %s", tc.key, prev, err, tc.prev)
		}
	}
}

func TestRoundTripRandomKeys(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(42))
	start := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 1000; i++ {
		k := FromTime(start.AddDate(0, 0, rng.Intn(365*100)))
		n, err := Next(k)
		if err != nil {
			t.Fatalf("next %s: %v", k, err)
		}
		back, err := Prev(n)
		if err != nil || back != k {
			t.Fatalf("Prev(Next(%s)) = %s, %v", k, back, err)
		}
		p, err := Prev(k)
		if err != nil {
			t.Fatalf("prev %s: %v", k, err)
		}
		fwd, err := Next(p)
		if err != nil || fwd != k {
			t.Fatalf("Next(Prev(%s)) = %s, %v", k, fwd, err)
		}
	}
}

func TestFromTimeIgnoresClock(t *testing.T) {
	t.Parallel()
	loc := time.FixedZone("UTC-5", -5*3600)
	late := time.Date(2025, 6, 1, 23, 30, 0, 0, loc)
	if got := FromTime(late); got != "2025-06-01" {
		t.Fatalf("expected calendar date in its own zone, got %s", got)
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	t.Parallel()
	for _, k := range []string{"", "2025-6-1", "2025-02-30", "01/06/2025", "2025-06-01T10:00:00Z"} {
		if Valid(k) {
			t.Fatalf("expected %q to be invalid", k)
		}
		if _, err := Next(k); err == nil {
			t.Fatalf("expected Next(%q) to fail", k)
		}
	}
	if got, err := Normalize(" 2025-06-01 "); err != nil || got != "2025-06-01" {
		t.Fatalf("normalize: %q %v", got, err)
	}
}

func TestRange(t *testing.T) {
	t.Parallel()
	from, to, err := Range("2025-01-01", 3)
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if from != "2024-12-29" || to != "2025-01-04" {
		t.Fatalf("unexpected range %s..%s", from, to)
	}
	if _, _, err := Range("2025-01-01", -1); err == nil {
		t.Fatalf("expected negative window to fail")
	}
}

func TestFormatDisplay(t *testing.T) {
	t.Parallel()
	cases := []struct {
		key, locale, want string
	}{
		{"2025-06-01", "es-ES", "Domingo, 1 de junio"},
		{"2025-01-15", "es", "Miércoles, 15 de enero"},
		{"2025-06-01", "en-US", "Sunday, 1 June"},
		{"2025-06-01", "", "Sunday, 1 June"},
		{"2025-06-01", "fr-FR", "Sunday, 1 June"},
	}
	for _, tc := range cases {
		got, err := FormatDisplay(tc.key, tc.locale)
		if err != nil {
			t.Fatalf("format %s/%s: %v", tc.key, tc.locale, err)
		}
		if got != tc.want {
			t.Fatalf("FormatDisplay(%s, %s) = %q, want %q", tc.key, tc.locale, got, tc.want)
		}
	}
}
