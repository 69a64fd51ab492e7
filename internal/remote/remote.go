// Package remote defines the data-access boundary the client engine talks to.
//
// Implementations translate their transport failures into the sentinel errors
// below so callers can classify them with errors.Is.
package remote

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ana-coahuila/META-FIT-PROJECT/internal/model"
)

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrNetwork            = errors.New("network error")
	ErrValidation         = errors.New("validation failed")
)

// ValidationError carries per-field messages returned by the server.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		if e.Message == "" {
			return ErrValidation.Error()
		}
		return fmt.Sprintf("%s: %s", ErrValidation, e.Message)
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
}

type ProfileRepository interface {
	FetchProfile(ctx context.Context, token string) (model.Profile, error)
	UpdateProfile(ctx context.Context, token string, patch model.ProfilePatch) (model.Profile, error)
}

// PlanRepository serves the plan and both catalogs. from and to are inclusive date keys.
type PlanRepository interface {
	FetchPlan(ctx context.Context, from, to string) ([]model.DailyPlan, error)
	FetchMealCatalog(ctx context.Context) ([]model.Meal, error)
	FetchExerciseCatalog(ctx context.Context) ([]model.Exercise, error)
}

type Repository interface {
	Authenticator
	ProfileRepository
	PlanRepository
}
