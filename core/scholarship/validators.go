package scholarship

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/somo/core"
)

var (
	bondTag      = "bond"
	appStatusTag = "app_status"
	resultTag    = "result"
)

// InitValidators registers the scholarship validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	core.RegisterChoiceValidation(validate, translator, bondTag, Bonds)
	core.RegisterChoiceValidation(validate, translator, appStatusTag, AppStatuses)
	core.RegisterChoiceValidation(validate, translator, resultTag, Results)
}
