// Package plan resolves the daily plan for a selected date and navigates
// between days.
//
// The engine holds the last successfully fetched collections. A failed fetch
// never discards them: the previous data stays available and a notice
// describes what went wrong.
package plan

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ana-coahuila/META-FIT-PROJECT/internal/datekey"
	"github.com/ana-coahuila/META-FIT-PROJECT/internal/model"
	"github.com/ana-coahuila/META-FIT-PROJECT/internal/remote"
)

type Status int

const (
	StatusLoading Status = iota
	StatusReady
)

func (s Status) String() string {
	if s == StatusReady {
		return "ready"
	}
	return "loading"
}

type Source string

const (
	SourcePlans     Source = "plans"
	SourceMeals     Source = "meals"
	SourceExercises Source = "exercises"
)

// Notice is a non-fatal failure of one fetch.
type Notice struct {
	Source Source
	Err    error
}

func (n Notice) String() string {
	return fmt.Sprintf("%s unavailable: %v", n.Source, n.Err)
}

// ErrDuplicateDate marks a plan collection that has more than one record for a date.
var ErrDuplicateDate = errors.New("duplicate plan date")

// Resolution is the outcome of looking up the selected date. Found is false
// for the NoPlan state.
type Resolution struct {
	Date  string
	Plan  model.DailyPlan
	Found bool
}

type Snapshot struct {
	Status     Status
	Selected   string
	Resolution Resolution
	Meals      []model.Meal
	Exercises  []model.Exercise
	// MealsReady and ExercisesReady are false until the catalog has loaded once.
	MealsReady     bool
	ExercisesReady bool
	Notices        []Notice
}

type Engine struct {
	repo remote.PlanRepository

	selected  string
	status    Status
	plans     []model.DailyPlan
	meals     []model.Meal
	exercises []model.Exercise

	mealsReady     bool
	exercisesReady bool
	notices        []Notice
}

// New returns an engine in the Loading state with selected as the current date.
func New(repo remote.PlanRepository, selected string) (*Engine, error) {
	key, err := datekey.Normalize(selected)
	if err != nil {
		return nil, err
	}
	return &Engine{repo: repo, selected: key, status: StatusLoading}, nil
}

// Restore seeds the engine with previously fetched collections. Nil
// collections are left as they are.
func (e *Engine) Restore(plans []model.DailyPlan, meals []model.Meal, exercises []model.Exercise) error {
	if plans != nil {
		if err := checkUnique(plans); err != nil {
			return err
		}
		e.plans = plans
		e.status = StatusReady
	}
	if meals != nil {
		e.meals = meals
		e.mealsReady = true
	}
	if exercises != nil {
		e.exercises = exercises
		e.exercisesReady = true
	}
	return nil
}

// Refresh fetches the plan window and both catalogs concurrently. Each fetch
// succeeds or fails on its own; a failure keeps the previous data and adds a
// notice. A not-found plan window replaces the collection with an empty one.
// The returned snapshot reflects the engine after all three finish.
func (e *Engine) Refresh(ctx context.Context, from, to string) Snapshot {
	var (
		plans                       []model.DailyPlan
		meals                       []model.Meal
		exercises                   []model.Exercise
		plansErr, mealsErr, exerErr error
	)

	var g errgroup.Group
	g.Go(func() error {
		plans, plansErr = e.repo.FetchPlan(ctx, from, to)
		if plansErr == nil {
			plansErr = checkUnique(plans)
		}
		return nil
	})
	g.Go(func() error {
		meals, mealsErr = e.repo.FetchMealCatalog(ctx)
		return nil
	})
	g.Go(func() error {
		exercises, exerErr = e.repo.FetchExerciseCatalog(ctx)
		return nil
	})
	_ = g.Wait()

	// A window with no plans is a valid, empty collection.
	if errors.Is(plansErr, remote.ErrNotFound) {
		plans, plansErr = []model.DailyPlan{}, nil
	}
	if plansErr != nil {
		e.notices = append(e.notices, Notice{Source: SourcePlans, Err: plansErr})
	} else {
		if plans == nil {
			plans = []model.DailyPlan{}
		}
		e.plans = plans
		e.status = StatusReady
	}
	if mealsErr != nil {
		e.notices = append(e.notices, Notice{Source: SourceMeals, Err: mealsErr})
	} else {
		e.meals = meals
		e.mealsReady = true
	}
	if exerErr != nil {
		e.notices = append(e.notices, Notice{Source: SourceExercises, Err: exerErr})
	} else {
		e.exercises = exercises
		e.exercisesReady = true
	}
	return e.Snapshot()
}

// SelectDate moves the selection to key without fetching.
func (e *Engine) SelectDate(key string) error {
	k, err := datekey.Normalize(key)
	if err != nil {
		return err
	}
	e.selected = k
	return nil
}

func (e *Engine) Selected() string {
	return e.selected
}

// Resolve finds the record for the selected date in the held collection.
func (e *Engine) Resolve() Resolution {
	for _, p := range e.plans {
		if p.Date == e.selected {
			return Resolution{Date: e.selected, Plan: p, Found: true}
		}
	}
	return Resolution{Date: e.selected}
}

func (e *Engine) Advance() (Resolution, error) {
	next, err := datekey.Next(e.selected)
	if err != nil {
		return Resolution{}, err
	}
	if err := e.SelectDate(next); err != nil {
		return Resolution{}, err
	}
	return e.Resolve(), nil
}

func (e *Engine) Retreat() (Resolution, error) {
	prev, err := datekey.Prev(e.selected)
	if err != nil {
		return Resolution{}, err
	}
	if err := e.SelectDate(prev); err != nil {
		return Resolution{}, err
	}
	return e.Resolve(), nil
}

// Plans returns the held plan collection.
func (e *Engine) Plans() []model.DailyPlan {
	return e.plans
}

func (e *Engine) DismissNotices() {
	e.notices = nil
}

func (e *Engine) Snapshot() Snapshot {
	notices := make([]Notice, len(e.notices))
	copy(notices, e.notices)
	return Snapshot{
		Status:         e.status,
		Selected:       e.selected,
		Resolution:     e.Resolve(),
		Meals:          e.meals,
		Exercises:      e.exercises,
		MealsReady:     e.mealsReady,
		ExercisesReady: e.exercisesReady,
		Notices:        notices,
	}
}

func checkUnique(plans []model.DailyPlan) error {
	seen := make(map[string]struct{}, len(plans))
	for _, p := range plans {
		if _, ok := seen[p.Date]; ok {
			return fmt.Errorf("%w %s", ErrDuplicateDate, p.Date)
		}
		seen[p.Date] = struct{}{}
	}
	return nil
}
