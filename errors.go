package envcfg

import (
	"fmt"
	"strings"
)

// MissingError is returned when a required environment variable is not set.
type MissingError struct {
	FieldName string
	FieldPath []string
	EnvName   string
}

func newMissingError(fieldName string, fieldPath []string, envName string) MissingError {
	return MissingError{
		FieldName: fieldName,
		FieldPath: fieldPath,
		EnvName:   envName,
	}
}

func (m MissingError) Error() string {
	if m.FieldName == "" {
		return fmt.Sprintf("environment variable %q is not set", m.EnvName)
	}
	return fmt.Sprintf(
		"field %q is required but the value is not provided",
		strings.Join(append(m.FieldPath, m.FieldName), "."),
	)
}

// ParsingError is returned when an environment variable value cannot be
// converted to the field type.
type ParsingError struct {
	Err       error
	FieldName string
	FieldPath []string
	EnvName   string
}

func newParsingError(fieldName string, fieldPath []string, envName string, err error) ParsingError {
	return ParsingError{
		FieldName: fieldName,
		FieldPath: fieldPath,
		EnvName:   envName,
		Err:       err,
	}
}

func (p ParsingError) Error() string {
	if p.FieldName == "" {
		return fmt.Sprintf("parsing env %v: %v", p.EnvName, p.Err)
	}
	return fmt.Sprintf(
		"parsing field %v env %v: %v",
		strings.Join(append(p.FieldPath, p.FieldName), "."),
		p.EnvName,
		p.Err,
	)
}

func (p ParsingError) Unwrap() error {
	return p.Err
}
