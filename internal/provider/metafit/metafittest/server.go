// Package metafittest provides an in-memory METAFIT API for tests.
package metafittest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/mux"

	"github.com/ana-coahuila/META-FIT-PROJECT/internal/model"
)

// Server is a fake API backed by mutable fixtures. Fields may be changed
// between requests under Lock/Unlock.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	Email     string
	Password  string
	Token     string
	Profile   model.Profile
	Plans     []model.DailyPlan
	Meals     []model.Meal
	Exercises []model.Exercise

	// Fail forces a status code for a route name: login, profile, update, plan, meals, exercises.
	Fail map[string]int

	hits map[string]int
	last map[string]*http.Request
}

func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		Email:    "maria@example.com",
		Password: "secret",
		Token:    "token-123",
		Profile: model.Profile{
			FullName:       "María López",
			Email:          "maria@example.com",
			Age:            29,
			WeightKg:       65,
			HeightCm:       165,
			TargetWeightKg: 58,
		},
		Plans: []model.DailyPlan{{
			Date: "2025-06-01",
			Meals: model.PlanMeals{
				Breakfast: model.MealSummary{Name: "Avena con frutas", Calories: 350},
				Lunch:     model.MealSummary{Name: "Pollo a la plancha", Calories: 600},
				Dinner:    model.MealSummary{Name: "Ensalada de atún", Calories: 450},
			},
			Exercises: []model.PlanExercise{
				{ID: "ex-1", Name: "Caminata rápida", DurationMin: 30, Description: "Ritmo constante"},
				{ID: "ex-2", Name: "Sentadillas", DurationMin: 10, Description: "3 series de 15"},
			},
		}},
		Meals: []model.Meal{{
			ID: "m-1", Name: "Bowl de quinoa", Description: "Quinoa con verduras",
			Calories: 420, ProteinG: 18, CarbsG: 60, FatG: 12,
			Ingredients:  []string{"quinoa", "espinaca"},
			Instructions: []string{"Cocer la quinoa", "Mezclar"},
		}},
		Exercises: []model.Exercise{{
			ID: "e-1", Name: "Plancha", DurationMin: 5, Difficulty: "media",
			CaloriesBurned: 40, Description: "Core", VideoURL: "https://example.com/plank",
		}},
		Fail: map[string]int{},
		hits: map[string]int{},
		last: map[string]*http.Request{},
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/auth/login", s.route("login", s.login)).Methods(http.MethodPost)
	r.HandleFunc("/api/profile", s.route("profile", s.authed(s.getProfile))).Methods(http.MethodGet)
	r.HandleFunc("/api/profile", s.route("update", s.authed(s.putProfile))).Methods(http.MethodPut)
	r.HandleFunc("/api/plan", s.route("plan", s.getPlan)).Methods(http.MethodGet)
	r.HandleFunc("/api/meals", s.route("meals", s.getMeals)).Methods(http.MethodGet)
	r.HandleFunc("/api/exercises", s.route("exercises", s.getExercises)).Methods(http.MethodGet)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

func (s *Server) Lock()   { s.mu.Lock() }
func (s *Server) Unlock() { s.mu.Unlock() }

// Hits returns how many requests reached the named route.
func (s *Server) Hits(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[name]
}

// LastRequest returns the most recent request for the named route.
func (s *Server) LastRequest(name string) *http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last[name]
}

func (s *Server) route(name string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.hits[name]++
		s.last[name] = r
		status, fail := s.Fail[name]
		s.mu.Unlock()
		if fail {
			writeJSON(w, status, map[string]string{"message": http.StatusText(status)})
			return
		}
		h(w, r)
	}
}

func (s *Server) authed(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		want := "Bearer " + s.Token
		s.mu.Unlock()
		if r.Header.Get("Authorization") != want {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			return
		}
		h(w, r)
	}
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "invalid body"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if in.Email != s.Email || in.Password != s.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "Error en las credenciales"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "token": s.Token})
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.Profile)
}

func (s *Server) putProfile(w http.ResponseWriter, r *http.Request) {
	var patch model.ProfilePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid body"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if patch.Age != nil && *patch.Age > 120 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": map[string]string{"age": "age is not plausible"}})
		return
	}
	if patch.FullName != nil {
		s.Profile.FullName = *patch.FullName
	}
	if patch.Age != nil {
		s.Profile.Age = *patch.Age
	}
	if patch.WeightKg != nil {
		s.Profile.WeightKg = *patch.WeightKg
	}
	if patch.HeightCm != nil {
		s.Profile.HeightCm = *patch.HeightCm
	}
	if patch.TargetWeightKg != nil {
		s.Profile.TargetWeightKg = *patch.TargetWeightKg
	}
	writeJSON(w, http.StatusOK, s.Profile)
}

func (s *Server) getPlan(w http.ResponseWriter, r *http.Request) {
	from := strings.TrimSpace(r.URL.Query().Get("from"))
	to := strings.TrimSpace(r.URL.Query().Get("to"))
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.DailyPlan, 0, len(s.Plans))
	for _, p := range s.Plans {
		if from != "" && p.Date < from {
			continue
		}
		if to != "" && p.Date > to {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getMeals(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.Meals)
}

func (s *Server) getExercises(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.Exercises)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
