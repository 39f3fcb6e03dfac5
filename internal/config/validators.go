package config

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// newValidator returns a validator with the custom validations registered
// and field names taken from the label tag.
func newValidator() (*validator.Validate, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.RegisterValidation("suffix", validateSuffix); err != nil {
		return nil, fmt.Errorf("registering suffix validation: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		const splitSize = 2

		name := strings.SplitN(fld.Tag.Get("label"), ",", splitSize)[0]
		if name == "-" || name == "" {
			return fld.Name
		}

		return name
	})

	return validate, nil
}

// validateSuffix checks that a suffix starts with a dot and stays within the file name.
func validateSuffix(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}

	suffix := field.String()

	if len(suffix) < 2 || suffix[0] != '.' {
		return false
	}

	return !strings.ContainsAny(suffix, "/"+string(filepath.Separator))
}
