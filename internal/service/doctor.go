package service

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/ana-coahuila/META-FIT-PROJECT/internal/model"
)

type DoctorReport struct {
	InvalidCacheRows   int `json:"invalid_cache_rows"`
	DuplicatePlanDates int `json:"duplicate_plan_dates"`
	InvalidSettings    int `json:"invalid_settings"`
	FixedRows          int `json:"fixed_rows,omitempty"`
}

func (r DoctorReport) Healthy() bool {
	return r.InvalidCacheRows == 0 && r.DuplicatePlanDates == 0 && r.InvalidSettings == 0
}

// RunDoctor checks the local state for rows the client would refuse to use.
// With fix, offending cache rows and settings are deleted; they are rebuilt
// on the next successful fetch or config set.
func RunDoctor(db *sql.DB, fix bool) (DoctorReport, error) {
	report := DoctorReport{}
	badKinds := make([]string, 0)

	rows, err := db.Query(`SELECT kind, raw_json FROM collection_cache`)
	if err != nil {
		return report, fmt.Errorf("doctor cache query: %w", err)
	}
	for rows.Next() {
		var kind, raw string
		if err := rows.Scan(&kind, &raw); err != nil {
			_ = rows.Close()
			return report, fmt.Errorf("doctor cache scan: %w", err)
		}
		switch dup, ok := checkCachePayload(kind, raw); {
		case !ok:
			report.InvalidCacheRows++
			badKinds = append(badKinds, kind)
		case dup > 0:
			report.DuplicatePlanDates += dup
			badKinds = append(badKinds, kind)
		}
	}
	_ = rows.Close()

	cfg, err := ListConfig(db)
	if err != nil {
		return report, err
	}
	badKeys := make([]string, 0)
	for k, v := range cfg {
		if validateConfig(k, v) != nil {
			report.InvalidSettings++
			badKeys = append(badKeys, k)
		}
	}

	if fix && (len(badKinds) > 0 || len(badKeys) > 0) {
		tx, err := db.Begin()
		if err != nil {
			return report, fmt.Errorf("doctor fix begin tx: %w", err)
		}
		for _, kind := range badKinds {
			if _, err := tx.Exec(`DELETE FROM collection_cache WHERE kind = ?`, kind); err != nil {
				_ = tx.Rollback()
				return report, fmt.Errorf("doctor fix cache %s: %w", kind, err)
			}
			report.FixedRows++
		}
		for _, key := range badKeys {
			if _, err := tx.Exec(`DELETE FROM app_config WHERE key = ?`, key); err != nil {
				_ = tx.Rollback()
				return report, fmt.Errorf("doctor fix config %s: %w", key, err)
			}
			report.FixedRows++
		}
		if err := tx.Commit(); err != nil {
			return report, fmt.Errorf("doctor fix commit: %w", err)
		}
	}
	return report, nil
}

// checkCachePayload decodes raw as the collection for kind and counts extra
// records that repeat a plan date.
func checkCachePayload(kind, raw string) (duplicates int, ok bool) {
	switch kind {
	case CacheKindPlans:
		var plans []model.DailyPlan
		if err := json.Unmarshal([]byte(raw), &plans); err != nil {
			return 0, false
		}
		seen := make(map[string]struct{}, len(plans))
		for _, p := range plans {
			if _, dup := seen[p.Date]; dup {
				duplicates++
			}
			seen[p.Date] = struct{}{}
		}
		return duplicates, true
	case CacheKindMeals:
		var meals []model.Meal
		return 0, json.Unmarshal([]byte(raw), &meals) == nil
	case CacheKindExercises:
		var exercises []model.Exercise
		return 0, json.Unmarshal([]byte(raw), &exercises) == nil
	default:
		return 0, false
	}
}
