package envcfg

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const (
	// DefaultSeparator is a default list and map separator character
	DefaultSeparator = ","
)

// Supported tags
const (
	// Name of the environment variable or a list of names.
	// The special value "-" excludes the field from loading.
	TagEnv = "env"
	// Value parsing layout (for types like time.Time)
	TagEnvLayout = "env-layout"
	// Default value
	TagEnvDefault = "env-default"
	// Custom list and map separator
	TagEnvSeparator = "env-separator"
	// Environment variable description
	TagEnvDescription = "env-description"
	// Flag to mark a field as updatable
	TagEnvUpd = "env-upd"
	// Name of a registered custom parser for the field
	TagEnvParser = "env-parse"
	// Prefix override for a nested structure
	TagEnvPrefix = "env-prefix"
)

// Setter is an interface for a custom value setter.
//
// To implement a custom value setter you need to add a SetValue function to your type that will receive a string raw value:
//
//	type MyField string
//
//	func (f *MyField) SetValue(s string) error {
//		if s == "" {
//			return fmt.Errorf("field value can't be empty")
//		}
//		*f = MyField("my field is: " + s)
//		return nil
//	}
type Setter interface {
	SetValue(string) error
}

// Updater gives an ability to implement custom update function for a field or a whole structure
type Updater interface {
	Update() error
}

// Prefixer overrides the variable name prefix of a structure.
//
// By default the prefix is the structure type name in SCREAMING_SNAKE_CASE,
// so a field Port of a struct ServerConfig reads SERVER_CONFIG_PORT.
// A type implementing Prefixer uses the returned string instead; returning
// an empty string disables the prefix entirely.
type Prefixer interface {
	EnvPrefix() string
}

// ReadConfig reads a configuration file and parses it depending on tags in the structure provided.
// Then it overlays environment variables on top of the file values.
//
// Example:
//
//	 type ConfigDatabase struct {
//	 	Port     string `yaml:"port" env:"PORT" env-default:"5432"`
//	 	Host     string `yaml:"host" env:"HOST" env-default:"localhost"`
//	 	Name     string `yaml:"name" env:"NAME" env-default:"postgres"`
//	 	User     string `yaml:"user" env:"USER" env-default:"user"`
//	 	Password string `yaml:"password" env:"PASSWORD"`
//	 }
//
//	 var cfg ConfigDatabase
//
//	 err := envcfg.ReadConfig("config.yml", &cfg)
//	 if err != nil {
//	     ...
//	 }
func ReadConfig(path string, cfg interface{}) error {
	err := parseFile(path, cfg)
	if err != nil {
		return err
	}

	return readEnvVars(cfg, false)
}

// ReadEnv reads environment variables into the structure.
//
// Variable names are derived from the structure type name and field names
// in SCREAMING_SNAKE_CASE, or taken from `env` tags. Value fields without
// a default are required; pointer fields are optional and stay nil when
// their variable is not set.
func ReadEnv(cfg interface{}) error {
	return readEnvVars(cfg, false)
}

// UpdateEnv rereads (updates) environment variables in the structure.
// Only fields marked with the `env-upd` tag are refreshed.
func UpdateEnv(cfg interface{}) error {
	return readEnvVars(cfg, true)
}

// structMeta is a structure metadata entity
type structMeta struct {
	envList     []string
	fieldName   string
	fieldPath   []string
	fieldValue  reflect.Value
	defValue    *string
	layout      *string
	separator   string
	description string
	updatable   bool
	required    bool
	parser      parserFunc
}

// isFieldValueZero determines if fieldValue empty or not
func (sm *structMeta) isFieldValueZero() bool {
	return sm.fieldValue.IsZero()
}

// readStructMetadata reads structure metadata (types, tags, etc.)
func readStructMetadata(cfgRoot interface{}) ([]structMeta, error) {
	type cfgNode struct {
		Val    interface{}
		Prefix string
		Path   []string
	}

	cfgStack := []cfgNode{{cfgRoot, rootPrefix(cfgRoot), nil}}
	metas := make([]structMeta, 0)

	for i := 0; i < len(cfgStack); i++ {

		s := reflect.ValueOf(cfgStack[i].Val)
		sPrefix := cfgStack[i].Prefix
		sPath := cfgStack[i].Path

		// unwrap pointer
		if s.Kind() == reflect.Ptr {
			s = s.Elem()
		}

		// process only structures
		if s.Kind() != reflect.Struct {
			return nil, fmt.Errorf("wrong type %v", s.Kind())
		}
		typeInfo := s.Type()

		// read tags
		for idx := 0; idx < s.NumField(); idx++ {
			fType := typeInfo.Field(idx)

			var (
				defValue *string
				layout   *string
			)

			// check is the field value can be changed
			if !s.Field(idx).CanSet() {
				continue
			}

			if name, ok := fType.Tag.Lookup(TagEnv); ok && name == "-" {
				continue
			}

			_, hasParser := fType.Tag.Lookup(TagEnvParser)

			// add nested structure to the parsing stack (leaf structs like
			// time.Time, Setter implementations and custom-parsed fields
			// are parsed in place)
			if fld := s.Field(idx); !hasParser && isNestedStruct(fld) {
				if fld.Kind() == reflect.Ptr {
					if fld.IsNil() {
						fld.Set(reflect.New(fld.Type().Elem()))
					}
					fld = fld.Elem()
				}
				cfgStack = append(cfgStack, cfgNode{
					Val:    fld.Addr().Interface(),
					Prefix: nestedPrefix(fld, fType),
					Path:   append(append([]string(nil), sPath...), fType.Name),
				})
				continue
			}

			if l, ok := fType.Tag.Lookup(TagEnvLayout); ok {
				layout = &l
			}

			if def, ok := fType.Tag.Lookup(TagEnvDefault); ok {
				defValue = &def
			}

			separator := DefaultSeparator
			if sep, ok := fType.Tag.Lookup(TagEnvSeparator); ok {
				separator = sep
			}

			_, upd := fType.Tag.Lookup(TagEnvUpd)

			var parser parserFunc
			if pName, ok := fType.Tag.Lookup(TagEnvParser); ok {
				p, ok := lookupParser(pName)
				if !ok {
					return nil, fmt.Errorf("unknown parser %q for field %s", pName, fType.Name)
				}
				parser = p
			}

			// explicit names are absolute, derived names get the prefix
			var envList []string
			if envs, ok := fType.Tag.Lookup(TagEnv); ok && len(envs) != 0 {
				envList = strings.Split(envs, DefaultSeparator)
			} else {
				envList = []string{joinName(sPrefix, deriveName(fType.Name))}
			}

			// pointer fields are optional, everything else without
			// a default is required
			optional := s.Field(idx).Kind() == reflect.Ptr

			metas = append(metas, structMeta{
				envList:     envList,
				fieldName:   fType.Name,
				fieldPath:   sPath,
				fieldValue:  s.Field(idx),
				defValue:    defValue,
				layout:      layout,
				separator:   separator,
				description: fType.Tag.Get(TagEnvDescription),
				updatable:   upd,
				required:    !optional && defValue == nil,
				parser:      parser,
			})
		}

	}

	return metas, nil
}

// isNestedStruct reports whether the field is a structure (or pointer to one)
// that should be traversed rather than parsed from a single variable.
func isNestedStruct(fld reflect.Value) bool {
	t := fld.Type()
	if t.Kind() == reflect.Ptr {
		if _, special := validStructs[t]; special {
			return false
		}
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return false
	}
	if _, special := validStructs[t]; special {
		return false
	}
	if t.Implements(setterType) || reflect.PtrTo(t).Implements(setterType) {
		return false
	}
	return true
}

var setterType = reflect.TypeOf((*Setter)(nil)).Elem()

// rootPrefix resolves the variable name prefix of the top-level structure.
func rootPrefix(cfg interface{}) string {
	if p, ok := cfg.(Prefixer); ok {
		return p.EnvPrefix()
	}
	v := reflect.ValueOf(cfg)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	return deriveName(v.Type().Name())
}

// nestedPrefix resolves the prefix of a nested structure: the `env-prefix`
// tag of the holding field wins, then the Prefixer interface, then the
// structure type name. Anonymous structures have no name and no prefix.
func nestedPrefix(fld reflect.Value, fType reflect.StructField) string {
	if prefix, ok := fType.Tag.Lookup(TagEnvPrefix); ok {
		return prefix
	}
	if p, ok := fld.Addr().Interface().(Prefixer); ok {
		return p.EnvPrefix()
	}
	return deriveName(fld.Type().Name())
}

// joinName joins a prefix with a derived variable name.
func joinName(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "_" + name
}

// deriveName converts a Go identifier to SCREAMING_SNAKE_CASE.
// Word boundaries are lower-to-upper transitions and the last letter
// of an acronym run: DatabaseURL -> DATABASE_URL, HTTPServer -> HTTP_SERVER.
func deriveName(name string) string {
	runes := []rune(name)
	var b strings.Builder

	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteRune('_')
			}
		}
		b.WriteRune(unicode.ToUpper(r))
	}

	return b.String()
}

// readEnvVars reads environment variables to the provided configuration structure
func readEnvVars(cfg interface{}, update bool) error {
	metaInfo, err := readStructMetadata(cfg)
	if err != nil {
		return err
	}

	if updater, ok := cfg.(Updater); ok {
		if err := updater.Update(); err != nil {
			return err
		}
	}

	for _, meta := range metaInfo {
		// update only updatable fields
		if update && !meta.updatable {
			continue
		}

		var rawValue *string

		for _, env := range meta.envList {
			if value, ok := os.LookupEnv(env); ok {
				rawValue = &value
				break
			}
		}

		if rawValue == nil && meta.isFieldValueZero() {
			if meta.defValue != nil {
				rawValue = meta.defValue
			} else if meta.required {
				return newMissingError(meta.fieldName, meta.fieldPath, meta.envList[0])
			}
		}

		if rawValue == nil {
			continue
		}

		if meta.parser != nil {
			if err := setParsedValue(meta.fieldValue, *rawValue, meta.parser); err != nil {
				return newParsingError(meta.fieldName, meta.fieldPath, meta.envList[0], err)
			}
			continue
		}

		if err := parseValue(meta.fieldValue, *rawValue, meta.separator, meta.layout); err != nil {
			return newParsingError(meta.fieldName, meta.fieldPath, meta.envList[0], err)
		}
	}

	return nil
}

// setParsedValue applies a registered custom parser to the field.
func setParsedValue(field reflect.Value, value string, parser parserFunc) error {
	res, err := parser(value)
	if err != nil {
		return err
	}

	v := reflect.ValueOf(res)

	if field.Kind() == reflect.Ptr && v.Type() == field.Type().Elem() {
		p := reflect.New(field.Type().Elem())
		p.Elem().Set(v)
		field.Set(p)
		return nil
	}

	if !v.Type().AssignableTo(field.Type()) {
		return fmt.Errorf("parser returned %s, field has type %s", v.Type(), field.Type())
	}
	field.Set(v)
	return nil
}

// parseValue parses value into the corresponding field.
// In case of maps and slices it uses provided separator to split raw value string
func parseValue(field reflect.Value, value, sep string, layout *string) error {
	if field.CanInterface() {
		if cs, ok := field.Interface().(Setter); ok {
			return cs.SetValue(value)
		} else if csp, ok := field.Addr().Interface().(Setter); ok {
			return csp.SetValue(value)
		}
	}

	valueType := field.Type()

	if structParser, ok := validStructs[valueType]; ok {
		return structParser(&field, value, layout)
	}

	switch valueType.Kind() {
	// parse string value
	case reflect.String:
		field.SetString(value)

	// parse boolean value
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)

	// parse integer (or time) value
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if field.Kind() == reflect.Int64 && valueType.PkgPath() == "time" && valueType.Name() == "Duration" {
			// try to parse time
			d, err := time.ParseDuration(value)
			if err != nil {
				return err
			}
			field.SetInt(int64(d))

		} else {
			// parse regular integer
			number, err := strconv.ParseInt(value, 0, valueType.Bits())
			if err != nil {
				return err
			}
			field.SetInt(number)
		}

	// parse unsigned integer value
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		number, err := strconv.ParseUint(value, 0, valueType.Bits())
		if err != nil {
			return err
		}
		field.SetUint(number)

	// parse floating point value
	case reflect.Float32, reflect.Float64:
		number, err := strconv.ParseFloat(value, valueType.Bits())
		if err != nil {
			return err
		}
		field.SetFloat(number)

	// parse sliced value
	case reflect.Slice:
		sliceValue, err := parseSlice(valueType, value, sep, layout)
		if err != nil {
			return err
		}

		field.Set(*sliceValue)

	// parse mapped value
	case reflect.Map:
		mapValue, err := parseMap(valueType, value, sep, layout)
		if err != nil {
			return err
		}

		field.Set(*mapValue)

	// allocate an optional value and parse into it
	case reflect.Ptr:
		elem := reflect.New(valueType.Elem())
		if err := parseValue(elem.Elem(), value, sep, layout); err != nil {
			return err
		}
		field.Set(elem)

	default:
		return fmt.Errorf("unsupported type %s.%s", valueType.PkgPath(), valueType.Name())
	}

	return nil
}

// GetDescription returns a description of environment variables.
// You can provide a custom header text.
func GetDescription(cfg interface{}, headerText *string) (string, error) {
	meta, err := readStructMetadata(cfg)
	if err != nil {
		return "", err
	}

	var header, description string

	if headerText != nil {
		header = *headerText
	} else {
		header = "Environment variables:"
	}

	for _, m := range meta {
		if len(m.envList) == 0 {
			continue
		}

		for idx, env := range m.envList {

			elemDescription := fmt.Sprintf("\n  %s %s", env, m.fieldValue.Kind())
			if idx > 0 {
				elemDescription += fmt.Sprintf(" (alternative to %s)", m.envList[0])
			}
			elemDescription += fmt.Sprintf("\n    \t%s", m.description)
			if m.defValue != nil {
				elemDescription += fmt.Sprintf(" (default %q)", *m.defValue)
			}
			description += elemDescription
		}
	}

	if description != "" {
		return header + description, nil
	}
	return "", nil
}

// Usage returns a configuration usage help.
// Other usage instructions can be wrapped in and executed before this usage function.
// The default output is STDERR.
func Usage(cfg interface{}, headerText *string, usageFuncs ...func()) func() {
	return FUsage(os.Stderr, cfg, headerText, usageFuncs...)
}

// FUsage prints configuration help into the custom output.
// Other usage instructions can be wrapped in and executed before this usage function
func FUsage(w io.Writer, cfg interface{}, headerText *string, usageFuncs ...func()) func() {
	return func() {
		for _, fn := range usageFuncs {
			fn()
		}

		text, err := GetDescription(cfg, headerText)
		if err != nil {
			return
		}
		if len(usageFuncs) > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, text)
	}
}
