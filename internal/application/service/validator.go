package service

import "github.com/khoahotran/devconnector/pkg/apperror"

// Validator checks the declared rules of a struct and returns every violation.
type Validator interface {
	Validate(v any) []apperror.Violation
}
