package middleware

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Phone numbers as the registration form accepts them: optional leading +,
// then 6 to 14 digits.
var phonePattern = regexp.MustCompile(`^\+?[0-9]{6,14}$`)

// RegisterValidations installs the custom binding validators used by the
// request models. Call once at startup.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	return v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
}
