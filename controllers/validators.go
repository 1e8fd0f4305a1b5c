package controllers

import (
	"civiclens/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// RegisterValidators adds the issue_status and issue_severity tags to gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}

	if err := v.RegisterValidation("issue_status", func(fl validator.FieldLevel) bool {
		return models.Status(fl.Field().String()).Valid()
	}); err != nil {
		return err
	}
	return v.RegisterValidation("issue_severity", func(fl validator.FieldLevel) bool {
		return models.Severity(fl.Field().String()).Valid()
	})
}
