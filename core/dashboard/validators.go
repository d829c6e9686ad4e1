package dashboard

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/somo/core"
	"github.com/trezcool/somo/core/finance"
	"github.com/trezcool/somo/core/grade"
	"github.com/trezcool/somo/core/project"
	"github.com/trezcool/somo/core/schedule"
	"github.com/trezcool/somo/core/scholarship"
	"github.com/trezcool/somo/core/task"
)

// InitValidators registers the core validators and those of every entity.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	core.InitValidators(validate, translator)
	task.InitValidators(validate, translator)
	project.InitValidators(validate, translator)
	finance.InitValidators(validate, translator)
	schedule.InitValidators(validate, translator)
	scholarship.InitValidators(validate, translator)
	grade.InitValidators(validate, translator)
}
