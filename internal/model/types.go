package model

import "fmt"

type Profile struct {
	FullName       string   `json:"fullName"`
	Email          string   `json:"email"`
	Age            int      `json:"age"`
	WeightKg       float64  `json:"weight"`
	HeightCm       int      `json:"height"`
	TargetWeightKg float64  `json:"targetWeight"`
	BMI            *float64 `json:"bmi,omitempty"`
}

// ProfilePatch is a partial profile update. Nil fields are left unchanged by the server.
type ProfilePatch struct {
	FullName       *string  `json:"fullName,omitempty"`
	Age            *int     `json:"age,omitempty"`
	WeightKg       *float64 `json:"weight,omitempty"`
	HeightCm       *int     `json:"height,omitempty"`
	TargetWeightKg *float64 `json:"targetWeight,omitempty"`
}

func (p ProfilePatch) Empty() bool {
	return p.FullName == nil && p.Age == nil && p.WeightKg == nil && p.HeightCm == nil && p.TargetWeightKg == nil
}

// DiffProfile returns the patch that turns committed into candidate.
func DiffProfile(committed, candidate Profile) ProfilePatch {
	var p ProfilePatch
	if candidate.FullName != committed.FullName {
		v := candidate.FullName
		p.FullName = &v
	}
	if candidate.Age != committed.Age {
		v := candidate.Age
		p.Age = &v
	}
	if candidate.WeightKg != committed.WeightKg {
		v := candidate.WeightKg
		p.WeightKg = &v
	}
	if candidate.HeightCm != committed.HeightCm {
		v := candidate.HeightCm
		p.HeightCm = &v
	}
	if candidate.TargetWeightKg != committed.TargetWeightKg {
		v := candidate.TargetWeightKg
		p.TargetWeightKg = &v
	}
	return p
}

type MealSlot int

const (
	Breakfast MealSlot = iota
	Lunch
	Dinner
)

// MealSlots lists the slots in display order.
var MealSlots = []MealSlot{Breakfast, Lunch, Dinner}

func (s MealSlot) String() string {
	switch s {
	case Breakfast:
		return "breakfast"
	case Lunch:
		return "lunch"
	case Dinner:
		return "dinner"
	default:
		return fmt.Sprintf("MealSlot(%d)", int(s))
	}
}

type MealSummary struct {
	Name     string `json:"name"`
	Calories int    `json:"calories"`
}

type PlanMeals struct {
	Breakfast MealSummary `json:"breakfast"`
	Lunch     MealSummary `json:"lunch"`
	Dinner    MealSummary `json:"dinner"`
}

func (m PlanMeals) Slot(s MealSlot) MealSummary {
	switch s {
	case Breakfast:
		return m.Breakfast
	case Lunch:
		return m.Lunch
	default:
		return m.Dinner
	}
}

func (m PlanMeals) TotalCalories() int {
	return m.Breakfast.Calories + m.Lunch.Calories + m.Dinner.Calories
}

type PlanExercise struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DurationMin int    `json:"duration"`
	Description string `json:"description"`
}

type DailyPlan struct {
	Date      string         `json:"date"`
	Meals     PlanMeals      `json:"meals"`
	Exercises []PlanExercise `json:"exercises"`
}

type Meal struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	ImageURL     string   `json:"imageUrl"`
	Calories     int      `json:"calories"`
	ProteinG     float64  `json:"protein"`
	CarbsG       float64  `json:"carbs"`
	FatG         float64  `json:"fat"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

type Exercise struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	DurationMin    int    `json:"duration"`
	Difficulty     string `json:"difficulty"`
	CaloriesBurned int    `json:"caloriesBurned"`
	Description    string `json:"description"`
	VideoURL       string `json:"videoUrl"`
}
