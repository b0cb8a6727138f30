package validator

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Club slugs are the public lookup key, so they must stay URL-safe: lowercase
// alphanumerics separated by single hyphens, e.g. "lima-runners".
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

func ParseError(err error) map[string]string {
	errors := make(map[string]string)
	if ve, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range ve {
			errors[fe.Field()] = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", fe.Field(), fe.Tag())
		}
	} else if err != nil { // Non-validator errors
		errors["error"] = err.Error()
	}
	return errors
}

// IsValidSlug reports whether s is an acceptable club slug.
func IsValidSlug(s string) bool {
	if len(s) < 2 || len(s) > 64 {
		return false
	}
	return slugPattern.MatchString(s)
}
