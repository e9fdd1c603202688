package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/khoahotran/devconnector/pkg/apperror"
)

// Validator wraps go-playground/validator. Fields are reported by their json
// name and described by their `label` tag.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return &Validator{validate: v}
}

func (v *Validator) Validate(s any) []apperror.Violation {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []apperror.Violation{{Rule: "invalid", Message: err.Error()}}
	}

	out := make([]apperror.Violation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, apperror.Violation{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: message(s, fe),
		})
	}
	return out
}

func message(s any, fe validator.FieldError) string {
	label := fe.StructField()
	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() == reflect.Struct {
		if f, ok := t.FieldByName(fe.StructField()); ok {
			if l := f.Tag.Get("label"); l != "" {
				label = l
			}
		}
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", label)
	default:
		return fmt.Sprintf("%s failed the %s rule", label, fe.Tag())
	}
}
