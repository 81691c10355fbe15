package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// StructValidator replaces gin's default binding validator so request
// structs share the custom "slug" and "notblank" rules and report json
// field names.
type StructValidator struct {
	once     sync.Once
	validate *validator.Validate
}

var Validator = &StructValidator{}

var registerOnce sync.Once

// RegisterValidator installs Validator as gin's binding engine.
func RegisterValidator() {
	registerOnce.Do(func() {
		binding.Validator = Validator
	})
}

func (v *StructValidator) ValidateStruct(obj any) error {
	if obj == nil {
		return nil
	}
	value := reflect.ValueOf(obj)
	for value.Kind() == reflect.Ptr {
		if value.IsNil() {
			return nil
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil
	}
	v.lazyinit()
	return v.validate.Struct(value.Interface())
}

func (v *StructValidator) Engine() any {
	v.lazyinit()
	return v.validate
}

func (v *StructValidator) lazyinit() {
	v.once.Do(func() {
		v.validate = validator.New()
		v.validate.SetTagName("binding")
		v.validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})
		_ = v.validate.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return slugPattern.MatchString(fl.Field().String())
		})
		_ = v.validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})
}

// IsSlug reports whether s is lowercase kebab-case.
func IsSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// ValidationDetails turns a binding error into field -> message pairs.
func ValidationDetails(err error) map[string]string {
	details := map[string]string{}

	var verrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &verrs):
		for _, fe := range verrs {
			details[fe.Field()] = fieldMessage(fe)
		}
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		details[field] = fmt.Sprintf("must be of type %s", typeErr.Type.String())
	case errors.As(err, &syntaxErr):
		details["body"] = "must be valid JSON"
	default:
		details["body"] = "could not be parsed"
	}
	return details
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "email":
		return "must be a valid email address"
	case "slug":
		return "must be kebab-case (lowercase letters, digits and single hyphens)"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
