package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ana-coahuila/META-FIT-PROJECT/internal/model"
)

const (
	CacheKindPlans     = "plans"
	CacheKindMeals     = "meals"
	CacheKindExercises = "exercises"
)

// CachedCollections is the last successfully fetched data. A nil slice means
// nothing has been cached for that kind.
type CachedCollections struct {
	Plans     []model.DailyPlan
	PlansFrom string
	PlansTo   string
	Meals     []model.Meal
	Exercises []model.Exercise
}

type CollectionCacheItem struct {
	Kind      string    `json:"kind"`
	RangeFrom string    `json:"range_from,omitempty"`
	RangeTo   string    `json:"range_to,omitempty"`
	Count     int       `json:"count"`
	FetchedAt time.Time `json:"fetched_at"`
}

func SavePlans(db *sql.DB, from, to string, plans []model.DailyPlan) error {
	if plans == nil {
		plans = []model.DailyPlan{}
	}
	return upsertCollection(db, CacheKindPlans, from, to, plans)
}

func SaveMeals(db *sql.DB, meals []model.Meal) error {
	if meals == nil {
		meals = []model.Meal{}
	}
	return upsertCollection(db, CacheKindMeals, "", "", meals)
}

func SaveExercises(db *sql.DB, exercises []model.Exercise) error {
	if exercises == nil {
		exercises = []model.Exercise{}
	}
	return upsertCollection(db, CacheKindExercises, "", "", exercises)
}

func LoadCollections(db *sql.DB) (CachedCollections, error) {
	var out CachedCollections
	from, to, ok, err := lookupCollection(db, CacheKindPlans, &out.Plans)
	if err != nil {
		return CachedCollections{}, err
	}
	if ok {
		out.PlansFrom, out.PlansTo = from, to
	}
	if _, _, _, err := lookupCollection(db, CacheKindMeals, &out.Meals); err != nil {
		return CachedCollections{}, err
	}
	if _, _, _, err := lookupCollection(db, CacheKindExercises, &out.Exercises); err != nil {
		return CachedCollections{}, err
	}
	return out, nil
}

func ListCollectionCache(db *sql.DB) ([]CollectionCacheItem, error) {
	rows, err := db.Query(`SELECT kind, range_from, range_to, raw_json, fetched_at FROM collection_cache ORDER BY kind ASC`)
	if err != nil {
		return nil, fmt.Errorf("list collection cache: %w", err)
	}
	defer rows.Close()
	out := make([]CollectionCacheItem, 0)
	for rows.Next() {
		var item CollectionCacheItem
		var raw, fetched string
		if err := rows.Scan(&item.Kind, &item.RangeFrom, &item.RangeTo, &raw, &fetched); err != nil {
			return nil, fmt.Errorf("scan collection cache: %w", err)
		}
		var items []json.RawMessage
		if err := json.Unmarshal([]byte(raw), &items); err == nil {
			item.Count = len(items)
		}
		item.FetchedAt, _ = time.Parse(time.RFC3339, fetched)
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate collection cache: %w", err)
	}
	return out, nil
}

func PurgeCollectionCache(db *sql.DB) (int64, error) {
	res, err := db.Exec(`DELETE FROM collection_cache`)
	if err != nil {
		return 0, fmt.Errorf("purge collection cache: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge collection cache rows affected: %w", err)
	}
	return affected, nil
}

func upsertCollection(db *sql.DB, kind, from, to string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s cache payload: %w", kind, err)
	}
	_, err = db.Exec(`
INSERT INTO collection_cache(kind, range_from, range_to, raw_json, fetched_at)
VALUES(?, ?, ?, ?, ?)
ON CONFLICT(kind) DO UPDATE SET
  range_from=excluded.range_from,
  range_to=excluded.range_to,
  raw_json=excluded.raw_json,
  fetched_at=excluded.fetched_at
`, kind, from, to, string(payload), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upsert %s cache: %w", kind, err)
	}
	return nil
}

func lookupCollection(db *sql.DB, kind string, out any) (string, string, bool, error) {
	var from, to, raw string
	err := db.QueryRow(`SELECT range_from, range_to, raw_json FROM collection_cache WHERE kind = ?`, kind).Scan(&from, &to, &raw)
	if err == sql.ErrNoRows {
		return "", "", false, nil
	}
	if err != nil {
		return "", "", false, fmt.Errorf("lookup %s cache: %w", kind, err)
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return "", "", false, fmt.Errorf("decode %s cache: %w", kind, err)
	}
	return from, to, true, nil
}
