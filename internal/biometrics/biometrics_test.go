package biometrics_test

import (
	"math"
	"strings"
	"testing"

	"github.com/ana-coahuila/META-FIT-PROJECT/internal/biometrics"
	"github.com/ana-coahuila/META-FIT-PROJECT/internal/model"
)

func validDraft() biometrics.Draft {
	return biometrics.Draft{
		FullName:     "  María López ",
		Email:        "maria@example.com",
		Age:          "29",
		Weight:       "65",
		Height:       "165",
		TargetWeight: "58.5",
	}
}

func TestValidateAcceptsAndNormalizes(t *testing.T) {
	t.Parallel()
	p, errs := biometrics.Validate(validDraft(), biometrics.DefaultPolicy())
	if errs != nil {
		t.Fatalf("expected no errors, got %v", errs)
	}
	want := model.Profile{FullName: "María López", Email: "maria@example.com", Age: 29, WeightKg: 65, HeightCm: 165, TargetWeightKg: 58.5}
	if p.FullName != want.FullName || p.Email != want.Email || p.Age != want.Age || p.WeightKg != want.WeightKg || p.HeightCm != want.HeightCm || p.TargetWeightKg != want.TargetWeightKg {
		t.Fatalf("unexpected profile: %+v", p)
	}
}

func TestValidateSingleFieldOutOfRange(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name  string
		field biometrics.Field
		value string
		rule  biometrics.Rule
	}{
		{"blank name", biometrics.FieldFullName, "   ", biometrics.RuleRequired},
		{"age below", biometrics.FieldAge, "17", biometrics.RuleOutOfRange},
		{"age above", biometrics.FieldAge, "101", biometrics.RuleOutOfRange},
		{"age fractional", biometrics.FieldAge, "25.5", biometrics.RuleOutOfRange},
		{"age empty", biometrics.FieldAge, "", biometrics.RuleOutOfRange},
		{"weight below", biometrics.FieldWeight, "29.9", biometrics.RuleOutOfRange},
		{"weight above", biometrics.FieldWeight, "300.1", biometrics.RuleOutOfRange},
		{"weight text", biometrics.FieldWeight, "heavy", biometrics.RuleOutOfRange},
		{"weight nan", biometrics.FieldWeight, "NaN", biometrics.RuleOutOfRange},
		{"height below", biometrics.FieldHeight, "99", biometrics.RuleOutOfRange},
		{"height above", biometrics.FieldHeight, "251", biometrics.RuleOutOfRange},
		{"height fractional", biometrics.FieldHeight, "170.5", biometrics.RuleOutOfRange},
		{"target below", biometrics.FieldTargetWeight, "10", biometrics.RuleOutOfRange},
		{"target above", biometrics.FieldTargetWeight, "1e4", biometrics.RuleOutOfRange},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			d := validDraft()
			if err := d.Set(tc.field, tc.value); err != nil {
				t.Fatalf("set field: %v", err)
			}
			_, errs := biometrics.Validate(d, biometrics.DefaultPolicy())
			if len(errs) != 1 {
				t.Fatalf("expected exactly one error, got %v", errs)
			}
			fe, ok := errs[tc.field]
			if !ok {
				t.Fatalf("expected error on %s, got %v", tc.field, errs)
			}
			if fe.Rule != tc.rule || fe.Message == "" {
				t.Fatalf("unexpected field error: %+v", fe)
			}
		})
	}
}

func TestValidateBoundsAreInclusive(t *testing.T) {
	t.Parallel()
	d := biometrics.Draft{FullName: "A", Age: "18", Weight: "30", Height: "100", TargetWeight: "300"}
	if _, errs := biometrics.Validate(d, biometrics.DefaultPolicy()); errs != nil {
		t.Fatalf("lower bounds rejected: %v", errs)
	}
	d = biometrics.Draft{FullName: "A", Age: "100", Weight: "300", Height: "250", TargetWeight: "30"}
	if _, errs := biometrics.Validate(d, biometrics.DefaultPolicy()); errs != nil {
		t.Fatalf("upper bounds rejected: %v", errs)
	}
}

func TestValidateCollectsEveryError(t *testing.T) {
	t.Parallel()
	d := biometrics.Draft{FullName: "", Age: "5", Weight: "0", Height: "abc", TargetWeight: "-1"}
	_, errs := biometrics.Validate(d, biometrics.DefaultPolicy())
	if len(errs) != len(biometrics.EditableFields) {
		t.Fatalf("expected %d errors, got %v", len(biometrics.EditableFields), errs)
	}
	fields := errs.Fields()
	for i, f := range biometrics.EditableFields {
		if fields[i] != f {
			t.Fatalf("expected form order, got %v", fields)
		}
	}
	if !strings.Contains(errs.Error(), "age:") {
		t.Fatalf("expected age in error text, got %q", errs.Error())
	}
}

func TestRegistrationPolicyNarrowsAge(t *testing.T) {
	t.Parallel()
	d := validDraft()
	d.Age = "31"
	if _, errs := biometrics.Validate(d, biometrics.DefaultPolicy()); errs != nil {
		t.Fatalf("default policy should accept 31: %v", errs)
	}
	_, errs := biometrics.Validate(d, biometrics.RegistrationPolicy())
	if _, ok := errs[biometrics.FieldAge]; !ok || len(errs) != 1 {
		t.Fatalf("registration policy should reject 31, got %v", errs)
	}
}

func TestPolicyWithAgeRange(t *testing.T) {
	t.Parallel()
	p, err := biometrics.DefaultPolicy().WithAgeRange(0, 65)
	if err != nil {
		t.Fatalf("with age range: %v", err)
	}
	if p.AgeMin != 18 || p.AgeMax != 65 {
		t.Fatalf("unexpected policy: %+v", p)
	}
	if _, err := biometrics.DefaultPolicy().WithAgeRange(50, 40); err == nil {
		t.Fatalf("expected empty range to fail")
	}
}

func TestDraftFromProfileRoundTrip(t *testing.T) {
	t.Parallel()
	in := model.Profile{FullName: "Ana", Email: "ana@example.com", Age: 40, WeightKg: 72.5, HeightCm: 170, TargetWeightKg: 68}
	d := biometrics.DraftFromProfile(in)
	if d.Weight != "72.5" || d.TargetWeight != "68" || d.Age != "40" || d.Height != "170" {
		t.Fatalf("unexpected draft: %+v", d)
	}
	out, errs := biometrics.Validate(d, biometrics.DefaultPolicy())
	if errs != nil {
		t.Fatalf("validate draft: %v", errs)
	}
	if out.FullName != in.FullName || out.Age != in.Age || out.WeightKg != in.WeightKg || out.HeightCm != in.HeightCm || out.TargetWeightKg != in.TargetWeightKg {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}

func TestComputeBMI(t *testing.T) {
	t.Parallel()
	for _, w := range []float64{30, 45.5, 65, 99.9, 180} {
		for _, h := range []int{100, 150, 165, 199, 250} {
			got, ok := biometrics.ComputeBMI(w, h)
			if !ok {
				t.Fatalf("expected BMI for %v/%d", w, h)
			}
			m := float64(h) / 100
			if want := w / (m * m); math.Abs(got-want) > 1e-9 {
				t.Fatalf("ComputeBMI(%v, %d) = %v, want %v", w, h, got, want)
			}
		}
	}
	if _, ok := biometrics.ComputeBMI(70, 0); ok {
		t.Fatalf("expected zero height to be unavailable")
	}
	if _, ok := biometrics.ComputeBMI(0, 170); ok {
		t.Fatalf("expected missing weight to be unavailable")
	}
}

func TestClassifyBandEdges(t *testing.T) {
	t.Parallel()
	cases := []struct {
		bmi  float64
		want biometrics.Category
	}{
		{10, biometrics.CategoryUnderweight},
		{17.9, biometrics.CategoryUnderweight},
		{18.49, biometrics.CategoryUnderweight},
		{18.5, biometrics.CategoryNormal},
		{24.9, biometrics.CategoryNormal},
		{25.0, biometrics.CategoryOverweight},
		{29.99, biometrics.CategoryOverweight},
		{30.0, biometrics.CategoryObesityI},
		{34.9, biometrics.CategoryObesityI},
		{35.0, biometrics.CategoryObesityII},
		{39.9, biometrics.CategoryObesityII},
		{40.0, biometrics.CategoryObesityIII},
		{65, biometrics.CategoryObesityIII},
	}
	for _, tc := range cases {
		if got := biometrics.Classify(tc.bmi); got != tc.want {
			t.Fatalf("Classify(%v) = %s, want %s", tc.bmi, got, tc.want)
		}
	}
}

func TestClassifyMonotonic(t *testing.T) {
	t.Parallel()
	prev := biometrics.Classify(5)
	for bmi := 5.0; bmi <= 60; bmi += 0.01 {
		cur := biometrics.Classify(bmi)
		if cur < prev {
			t.Fatalf("severity decreased at %v: %s after %s", bmi, cur, prev)
		}
		prev = cur
	}
}

func TestCategoryLabels(t *testing.T) {
	t.Parallel()
	if got := biometrics.CategoryObesityII.Label("es-ES"); got != "Obesidad grado II" {
		t.Fatalf("unexpected spanish label %q", got)
	}
	if got := biometrics.CategoryOverweight.Label("en-US"); got != "Overweight" {
		t.Fatalf("unexpected english label %q", got)
	}
	if got := biometrics.CategoryUnderweight.Label("es-MX"); got != "Bajo peso" {
		t.Fatalf("unexpected spanish label %q", got)
	}
	if got := biometrics.CategoryUnavailable.Label("es"); got != "N/D" {
		t.Fatalf("unexpected spanish unavailable label %q", got)
	}
	if got := biometrics.CategoryObesityIII.Label("fr-FR"); got != "Obesity III" {
		t.Fatalf("unsupported locale must fall back to english, got %q", got)
	}
	if got := biometrics.Category(99).Label("en"); got != "N/A" {
		t.Fatalf("unknown category must read as unavailable, got %q", got)
	}
}

func TestDerivePrefersServerBMI(t *testing.T) {
	t.Parallel()
	server := 31.2
	m := biometrics.Derive(model.Profile{WeightKg: 65, HeightCm: 165, BMI: &server})
	if !m.FromServer || m.BMI != server || m.Category != biometrics.CategoryObesityI {
		t.Fatalf("unexpected metrics: %+v", m)
	}
	m = biometrics.Derive(model.Profile{WeightKg: 65, HeightCm: 165})
	if m.FromServer || !m.Available || m.Category != biometrics.CategoryNormal {
		t.Fatalf("unexpected client metrics: %+v", m)
	}
	m = biometrics.Derive(model.Profile{WeightKg: 65})
	if m.Available || m.Category != biometrics.CategoryUnavailable {
		t.Fatalf("expected unavailable metrics: %+v", m)
	}
}
