package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	app_errors "weather-chatbot/client/internal/errors"
	"weather-chatbot/client/internal/model"

	"github.com/go-playground/validator/v10"
)

// One validator serves every request body. Besides the built-in tags it knows
// "language" (en, ja) and "theme" (light, dark), parsed the same way the
// preferences service parses them.

var (
	validate *validator.Validate
	once     sync.Once
)

// getInstance uses sync.Once to safely initialize and return the validator singleton.
func getInstance() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		// Report JSON field names so messages match what the shell sent.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		_ = validate.RegisterValidation("language", func(fl validator.FieldLevel) bool {
			_, ok := model.ParseLanguage(fl.Field().String())
			return ok
		})
		_ = validate.RegisterValidation("theme", func(fl validator.FieldLevel) bool {
			_, ok := model.ParseTheme(fl.Field().String())
			return ok
		})
	})
	return validate
}

// validateRequest checks a given payload struct against the validation rules
// defined in its field tags (e.g., `validate:"required,min=1"`).
// If validation fails, it returns a wrapped `app_errors.ErrValidation` with a
// detailed message.
func validateRequest(payload interface{}) error {
	v := getInstance()
	err := v.Struct(payload)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: an unexpected error occurred during validation: %s", app_errors.ErrValidation, err.Error())
	}

	var errorMessages []string
	for _, fieldErr := range validationErrors {
		// e.g. "Field 'title' failed on the 'required' tag"
		errMsg := fmt.Sprintf("Field '%s' failed on the '%s' tag", fieldErr.Field(), fieldErr.Tag())
		errorMessages = append(errorMessages, errMsg)
	}

	return fmt.Errorf("%w: %s", app_errors.ErrValidation, strings.Join(errorMessages, "; "))
}
