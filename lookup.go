package envcfg

import (
	"os"
	"reflect"
)

// parserFunc converts a raw environment variable value into a field value.
type parserFunc func(string) (interface{}, error)

var parsers = map[string]parserFunc{}

// RegisterParser makes a named parser available to the `env-parse` tag.
// The returned value must be assignable to the tagged field (or to the
// element of a pointer field). Parsers are registered once, typically
// from an init function:
//
//	func init() {
//		envcfg.RegisterParser("point", func(s string) (Point, error) {
//			...
//		})
//	}
func RegisterParser[T any](name string, parse func(string) (T, error)) {
	parsers[name] = func(raw string) (interface{}, error) {
		return parse(raw)
	}
}

func lookupParser(name string) (parserFunc, bool) {
	p, ok := parsers[name]
	return p, ok
}

// Lookup reads a single required environment variable and converts it
// to the target type using the same conversion rules as ReadEnv.
// A MissingError is returned when the variable is not set.
func Lookup[T any](name string) (T, error) {
	var out T
	raw, ok := os.LookupEnv(name)
	if !ok {
		return out, newMissingError("", nil, name)
	}
	return parseAs[T](name, raw)
}

// LookupOr reads a single environment variable, falling back to the
// provided value when the variable is not set.
func LookupOr[T any](name string, fallback T) (T, error) {
	raw, ok := os.LookupEnv(name)
	if !ok {
		return fallback, nil
	}
	return parseAs[T](name, raw)
}

// LookupOptional reads a single optional environment variable.
// The second return value reports whether the variable was set.
func LookupOptional[T any](name string) (T, bool, error) {
	var out T
	raw, ok := os.LookupEnv(name)
	if !ok {
		return out, false, nil
	}
	v, err := parseAs[T](name, raw)
	return v, true, err
}

// LookupWith reads a single required environment variable and converts it
// with the provided parser. Parser errors are reported as ParsingError.
func LookupWith[T any](name string, parse func(string) (T, error)) (T, error) {
	var out T
	raw, ok := os.LookupEnv(name)
	if !ok {
		return out, newMissingError("", nil, name)
	}
	v, err := parse(raw)
	if err != nil {
		return out, newParsingError("", nil, name, err)
	}
	return v, nil
}

// LookupOptionalWith reads a single optional environment variable and
// converts it with the provided parser.
func LookupOptionalWith[T any](name string, parse func(string) (T, error)) (T, bool, error) {
	var out T
	raw, ok := os.LookupEnv(name)
	if !ok {
		return out, false, nil
	}
	v, err := parse(raw)
	if err != nil {
		return out, true, newParsingError("", nil, name, err)
	}
	return v, true, nil
}

func parseAs[T any](name, raw string) (T, error) {
	var out T
	v := reflect.ValueOf(&out).Elem()
	if err := parseValue(v, raw, DefaultSeparator, nil); err != nil {
		return out, newParsingError("", nil, name, err)
	}
	return out, nil
}
