package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys rendered by the CLI. English text doubles as the key.
const (
	MsgBreakfast      = "Breakfast"
	MsgLunch          = "Lunch"
	MsgDinner         = "Dinner"
	MsgExercises      = "Exercises"
	MsgNoPlan         = "No plan for this day"
	MsgTotalCalories  = "Total: %d kcal"
	MsgMinutes        = "%d min"
	MsgBMI            = "BMI"
	MsgStale          = "Showing saved data: %s"
	MsgStaleWindow    = "Saved plans only cover %s to %s"
	MsgLoginRequired  = "Your session has ended. Run `metafit login` to sign in again."
	MsgProfileUpdated = "Profile updated"
	MsgLoggedIn       = "Logged in as %s"
	MsgLoggedOut      = "Logged out"

	MsgName         = "Name"
	MsgEmail        = "Email"
	MsgAge          = "Age"
	MsgWeight       = "Weight"
	MsgHeight       = "Height"
	MsgTargetWeight = "Target weight"

	MsgNoMeals     = "No recommended meals"
	MsgNoExercises = "No recommended exercises"
	MsgMacros      = "Protein %s g | Carbs %s g | Fat %s g"
	MsgIngredients = "Ingredients: %s"
	MsgVideo       = "Video: %s"

	MsgUnavailable = "N/A"
	MsgUnderweight = "Underweight"
	MsgNormal      = "Normal"
	MsgOverweight  = "Overweight"
	MsgObesityI    = "Obesity I"
	MsgObesityII   = "Obesity II"
	MsgObesityIII  = "Obesity III"
)

var spanish = map[string]string{
	MsgBreakfast:      "Desayuno",
	MsgLunch:          "Almuerzo",
	MsgDinner:         "Cena",
	MsgExercises:      "Ejercicios",
	MsgNoPlan:         "No hay plan para este día",
	MsgTotalCalories:  "Total: %d kcal",
	MsgMinutes:        "%d min",
	MsgBMI:            "IMC",
	MsgStale:          "Mostrando datos guardados: %s",
	MsgStaleWindow:    "Los planes guardados solo cubren del %s al %s",
	MsgLoginRequired:  "Tu sesión terminó. Ejecuta `metafit login` para iniciar sesión de nuevo.",
	MsgProfileUpdated: "Perfil actualizado",
	MsgLoggedIn:       "Sesión iniciada como %s",
	MsgLoggedOut:      "Sesión cerrada",

	MsgName:         "Nombre",
	MsgEmail:        "Correo",
	MsgAge:          "Edad",
	MsgWeight:       "Peso",
	MsgHeight:       "Altura",
	MsgTargetWeight: "Peso objetivo",

	MsgNoMeals:     "No hay comidas recomendadas",
	MsgNoExercises: "No hay ejercicios recomendados",
	MsgMacros:      "Proteína %s g | Carbohidratos %s g | Grasa %s g",
	MsgIngredients: "Ingredientes: %s",
	MsgVideo:       "Video: %s",

	MsgUnavailable: "N/D",
	MsgUnderweight: "Bajo peso",
	MsgNormal:      "Normal",
	MsgOverweight:  "Sobrepeso",
	MsgObesityI:    "Obesidad grado I",
	MsgObesityII:   "Obesidad grado II",
	MsgObesityIII:  "Obesidad grado III",
}

var messages = func() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msg := range spanish {
		_ = b.SetString(language.English, key, key)
		_ = b.SetString(language.Spanish, key, msg)
	}
	return b
}()

// Printer returns a message printer for the language matched from locale.
func Printer(locale string) *message.Printer {
	return message.NewPrinter(Match(locale), message.Catalog(messages))
}
