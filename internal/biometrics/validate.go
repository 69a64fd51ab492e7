package biometrics

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/ana-coahuila/META-FIT-PROJECT/internal/model"
)

type Field string

const (
	FieldFullName     Field = "fullName"
	FieldAge          Field = "age"
	FieldWeight       Field = "weight"
	FieldHeight       Field = "height"
	FieldTargetWeight Field = "targetWeight"
)

// EditableFields lists the draft fields in form order.
var EditableFields = []Field{FieldFullName, FieldAge, FieldWeight, FieldHeight, FieldTargetWeight}

// ParseField maps a user or server field name to a Field.
func ParseField(name string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "fullname", "full_name", "full-name", "name":
		return FieldFullName, nil
	case "age":
		return FieldAge, nil
	case "weight", "weight_kg":
		return FieldWeight, nil
	case "height", "height_cm":
		return FieldHeight, nil
	case "targetweight", "target_weight", "target-weight", "target_weight_kg":
		return FieldTargetWeight, nil
	default:
		return "", fmt.Errorf("unknown profile field %q", name)
	}
}

type Rule string

const (
	RuleRequired   Rule = "required"
	RuleOutOfRange Rule = "out_of_range"
	RuleRejected   Rule = "rejected"
)

type FieldError struct {
	Rule    Rule
	Message string
}

// FieldErrors maps each invalid field to its error. A nil map means the draft is valid.
type FieldErrors map[Field]FieldError

// Fields returns the invalid fields in form order.
func (e FieldErrors) Fields() []Field {
	out := make([]Field, 0, len(e))
	for _, f := range EditableFields {
		if _, ok := e[f]; ok {
			out = append(out, f)
		}
	}
	extra := make([]Field, 0)
	for f := range e {
		if !isEditable(f) {
			extra = append(extra, f)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, f := range e.Fields() {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e[f].Message))
	}
	return strings.Join(parts, "; ")
}

func isEditable(f Field) bool {
	for _, e := range EditableFields {
		if e == f {
			return true
		}
	}
	return false
}

// Policy holds the accepted ranges for each numeric field. Bounds are inclusive.
type Policy struct {
	AgeMin          int
	AgeMax          int
	WeightMinKg     float64
	WeightMaxKg     float64
	HeightMinCm     int
	HeightMaxCm     int
	TargetWeightMin float64
	TargetWeightMax float64
}

// DefaultPolicy is the profile-edit policy.
func DefaultPolicy() Policy {
	return Policy{
		AgeMin:          18,
		AgeMax:          100,
		WeightMinKg:     30,
		WeightMaxKg:     300,
		HeightMinCm:     100,
		HeightMaxCm:     250,
		TargetWeightMin: 30,
		TargetWeightMax: 300,
	}
}

// RegistrationPolicy narrows the age range to the one used at sign-up.
func RegistrationPolicy() Policy {
	p := DefaultPolicy()
	p.AgeMax = 30
	return p
}

// WithAgeRange returns a copy of p with the given age bounds. Zero values keep the current bound.
func (p Policy) WithAgeRange(min, max int) (Policy, error) {
	if min > 0 {
		p.AgeMin = min
	}
	if max > 0 {
		p.AgeMax = max
	}
	if p.AgeMin > p.AgeMax {
		return p, fmt.Errorf("age range %d-%d is empty", p.AgeMin, p.AgeMax)
	}
	return p, nil
}

// Draft is the text form of an editable profile.
type Draft struct {
	FullName     string
	Email        string
	Age          string
	Weight       string
	Height       string
	TargetWeight string
}

func DraftFromProfile(p model.Profile) Draft {
	return Draft{
		FullName:     p.FullName,
		Email:        p.Email,
		Age:          strconv.Itoa(p.Age),
		Weight:       formatNumber(p.WeightKg),
		Height:       strconv.Itoa(p.HeightCm),
		TargetWeight: formatNumber(p.TargetWeightKg),
	}
}

// Set replaces the text of one field.
func (d *Draft) Set(f Field, value string) error {
	switch f {
	case FieldFullName:
		d.FullName = value
	case FieldAge:
		d.Age = value
	case FieldWeight:
		d.Weight = value
	case FieldHeight:
		d.Height = value
	case FieldTargetWeight:
		d.TargetWeight = value
	default:
		return fmt.Errorf("unknown profile field %q", f)
	}
	return nil
}

func (d Draft) Get(f Field) string {
	switch f {
	case FieldFullName:
		return d.FullName
	case FieldAge:
		return d.Age
	case FieldWeight:
		return d.Weight
	case FieldHeight:
		return d.Height
	case FieldTargetWeight:
		return d.TargetWeight
	default:
		return ""
	}
}

// Validate checks every field of d independently and returns the normalized
// profile. When any field fails, the returned FieldErrors holds one entry per
// invalid field and the profile must not be used.
func Validate(d Draft, p Policy) (model.Profile, FieldErrors) {
	errs := FieldErrors{}
	out := model.Profile{
		FullName: strings.TrimSpace(d.FullName),
		Email:    d.Email,
	}

	if out.FullName == "" {
		errs[FieldFullName] = FieldError{Rule: RuleRequired, Message: "full name is required"}
	}

	if v, ok := parseWhole(d.Age); ok && v >= p.AgeMin && v <= p.AgeMax {
		out.Age = v
	} else {
		errs[FieldAge] = outOfRange(fmt.Sprintf("age must be a whole number between %d and %d", p.AgeMin, p.AgeMax))
	}

	if v, ok := parseReal(d.Weight); ok && v >= p.WeightMinKg && v <= p.WeightMaxKg {
		out.WeightKg = v
	} else {
		errs[FieldWeight] = outOfRange(fmt.Sprintf("weight must be between %s and %s kg", formatNumber(p.WeightMinKg), formatNumber(p.WeightMaxKg)))
	}

	if v, ok := parseWhole(d.Height); ok && v >= p.HeightMinCm && v <= p.HeightMaxCm {
		out.HeightCm = v
	} else {
		errs[FieldHeight] = outOfRange(fmt.Sprintf("height must be a whole number between %d and %d cm", p.HeightMinCm, p.HeightMaxCm))
	}

	if v, ok := parseReal(d.TargetWeight); ok && v >= p.TargetWeightMin && v <= p.TargetWeightMax {
		out.TargetWeightKg = v
	} else {
		errs[FieldTargetWeight] = outOfRange(fmt.Sprintf("target weight must be between %s and %s kg", formatNumber(p.TargetWeightMin), formatNumber(p.TargetWeightMax)))
	}

	if len(errs) > 0 {
		return model.Profile{}, errs
	}
	return out, nil
}

func outOfRange(msg string) FieldError {
	return FieldError{Rule: RuleOutOfRange, Message: msg}
}

func parseWhole(s string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseReal(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
