package validator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate struct fields against their `validate` tags. Returns nil when the
// value is valid, otherwise a field -> failed-rule map.
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	fields := make(map[string]string)
	for _, fe := range err.(validator.ValidationErrors) {
		fields[fe.Field()] = fe.Tag()
	}
	return fields
}

// Describe flattens a Validate result into a stable, human-readable message.
func Describe(fields map[string]string) string {
	parts := make([]string, 0, len(fields))
	for field, rule := range fields {
		parts = append(parts, fmt.Sprintf("%s (%s)", field, rule))
	}
	sort.Strings(parts)
	return strings.Join(parts, ", ")
}
