package finance

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/somo/core"
)

var (
	typeTag     = "tx_type"
	categoryTag = "tx_category"
)

// InitValidators registers the finance validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	core.RegisterChoiceValidation(validate, translator, typeTag, Types)
	core.RegisterChoiceValidation(validate, translator, categoryTag, Categories)
}
