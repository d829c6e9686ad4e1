package grade

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/somo/core"
)

var (
	gradeTag  = "grade"
	gradeText = "invalid grade"

	semesterTag  = "semester"
	semesterText = "unknown semester"
)

// InitValidators registers the grade validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(gradeTag, gradeValidation)
	core.RegisterCustomTranslation(validate, translator, gradeTag, gradeText)

	_ = validate.RegisterValidation(semesterTag, semesterValidation)
	core.RegisterCustomTranslation(validate, translator, semesterTag, semesterText)
}

// Custom Validators

func gradeValidation(fl validator.FieldLevel) bool {
	return IsGrade(fl.Field().String())
}

func semesterValidation(fl validator.FieldLevel) bool {
	return IsSemester(fl.Field().String())
}
