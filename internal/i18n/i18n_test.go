package i18n

import (
	"testing"

	"golang.org/x/text/language"
)

func TestMatch(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   string
		want language.Tag
	}{
		{"", language.English},
		{"en-US", language.English},
		{"es-ES", language.Spanish},
		{"es-MX", language.Spanish},
		{"es", language.Spanish},
		{"not a locale", language.English},
		{"ja-JP", language.English},
	}
	for _, tc := range cases {
		if got := Match(tc.in); got != tc.want {
			t.Fatalf("Match(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestCapitalize(t *testing.T) {
	t.Parallel()
	if got := Capitalize(language.Spanish, "miércoles"); got != "Miércoles" {
		t.Fatalf("unexpected capitalization %q", got)
	}
}

func TestPrinterTranslatesMessages(t *testing.T) {
	t.Parallel()
	cases := []struct {
		locale, key, want string
	}{
		{"es-MX", MsgBreakfast, "Desayuno"},
		{"es", MsgLunch, "Almuerzo"},
		{"en-US", MsgDinner, "Dinner"},
		{"fr-FR", MsgNoPlan, "No plan for this day"},
		{"es-ES", MsgBMI, "IMC"},
	}
	for _, tc := range cases {
		if got := Printer(tc.locale).Sprintf(tc.key); got != tc.want {
			t.Fatalf("Printer(%q).Sprintf(%q) = %q, want %q", tc.locale, tc.key, got, tc.want)
		}
	}
	if got := Printer("en").Sprintf(MsgTotalCalories, 1400); got != "Total: 1,400 kcal" {
		t.Fatalf("unexpected total %q", got)
	}
}
