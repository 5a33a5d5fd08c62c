package progress

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/elimu/core"
)

var (
	goalUnitTag  = "goalunit"
	goalUnitText = "unit must be one of: problems, minutes, days"
)

// RegisterValidators registers this package's custom validation tags.
func RegisterValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(goalUnitTag, goalUnitValidation)
	core.RegisterCustomTranslation(validate, translator, goalUnitTag, goalUnitText)
}

// goalUnitValidation checks that the provided unit is in AllUnits.
func goalUnitValidation(fl validator.FieldLevel) bool {
	unit := fl.Field().String()
	for _, u := range AllUnits {
		if unit == u {
			return true
		}
	}
	return false
}
