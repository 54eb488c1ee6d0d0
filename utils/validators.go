package utils

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	Validate     *validator.Validate
	validateOnce sync.Once
)

// InitValidator builds the shared validator. Field errors are reported by
// their JSON names so development-mode messages match the request body.
func InitValidator() {
	Validate = validator.New(validator.WithRequiredStructEnabled())
	Validate.RegisterTagNameFunc(jsonFieldName)
}

// GetValidator lazily initializes Validate for callers that run before main.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		if Validate == nil {
			InitValidator()
		}
	})
	return Validate
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}
