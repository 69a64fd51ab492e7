package biometrics

import (
	"github.com/ana-coahuila/META-FIT-PROJECT/internal/i18n"
	"github.com/ana-coahuila/META-FIT-PROJECT/internal/model"
)

type Category int

const (
	CategoryUnavailable Category = iota
	CategoryUnderweight
	CategoryNormal
	CategoryOverweight
	CategoryObesityI
	CategoryObesityII
	CategoryObesityIII
)

var labels = map[Category]string{
	CategoryUnavailable: i18n.MsgUnavailable,
	CategoryUnderweight: i18n.MsgUnderweight,
	CategoryNormal:      i18n.MsgNormal,
	CategoryOverweight:  i18n.MsgOverweight,
	CategoryObesityI:    i18n.MsgObesityI,
	CategoryObesityII:   i18n.MsgObesityII,
	CategoryObesityIII:  i18n.MsgObesityIII,
}

func (c Category) String() string {
	if s, ok := labels[c]; ok {
		return s
	}
	return i18n.MsgUnavailable
}

// Label returns the category name in the language matched from locale.
func (c Category) Label(locale string) string {
	return i18n.Printer(locale).Sprintf(c.String())
}

// ComputeBMI returns weight / (height in meters)^2. ok is false when either
// input is missing (zero or negative).
func ComputeBMI(weightKg float64, heightCm int) (bmi float64, ok bool) {
	if weightKg <= 0 || heightCm <= 0 {
		return 0, false
	}
	m := float64(heightCm) / 100
	return weightKg / (m * m), true
}

// Classify maps a BMI to its band. Bands are half-open and checked low to high.
func Classify(bmi float64) Category {
	switch {
	case bmi < 18.5:
		return CategoryUnderweight
	case bmi < 25:
		return CategoryNormal
	case bmi < 30:
		return CategoryOverweight
	case bmi < 35:
		return CategoryObesityI
	case bmi < 40:
		return CategoryObesityII
	default:
		return CategoryObesityIII
	}
}

type Metrics struct {
	BMI       float64
	Available bool
	// FromServer is set when the BMI came from the profile payload.
	FromServer bool
	Category   Category
}

// Derive computes the health metrics for p. A BMI sent by the server wins;
// otherwise it is computed from weight and height.
func Derive(p model.Profile) Metrics {
	if p.BMI != nil && *p.BMI > 0 {
		return Metrics{BMI: *p.BMI, Available: true, FromServer: true, Category: Classify(*p.BMI)}
	}
	bmi, ok := ComputeBMI(p.WeightKg, p.HeightCm)
	if !ok {
		return Metrics{Category: CategoryUnavailable}
	}
	return Metrics{BMI: bmi, Available: true, Category: Classify(bmi)}
}
