package assignment_test

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/edtrack/core"
)

func newValidator() *validator.Validate {
	validate := validator.New()
	core.InitValidators(validate, core.NewTranslator())
	return validate
}
