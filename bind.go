package cflag

import (
	"encoding"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/huandu/xstrings"
	"github.com/pkg/errors"
)

// Bind builds flag descriptors from the exported fields of the struct that
// config points to. Each descriptor's storage is the field itself, so the
// current field values survive unless a default, environment variable or
// argument overrides them.
//
// Fields are configured with a struct tag of the form
// `cflag:"key1,key2=value2"`. Values containing commas may be single quoted.
//
// `-` skip the field
//
// `name=<name>` flag name; defaults to the kebab-cased field name
//
// `default=<text>` default text, converted at registration
//
// `usage=<text>` usage line
//
// `placeholder=<text>` value name in usage output
//
// `env=<VAR>` environment variable fallback; a bare `env` derives the
// variable from the field name (ModelPath becomes MODEL_PATH)
//
// `embed` recurse into a struct field; embedded structs are always recursed
func Bind(config interface{}) ([]Flag, error) {
	v := reflect.ValueOf(config)
	if !v.IsValid() || v.Kind() != reflect.Ptr || v.IsNil() {
		return nil, errors.Errorf("config must be a non-nil struct pointer (got %T)", config)
	}
	elem := v.Elem()
	if elem.Kind() != reflect.Struct {
		return nil, errors.Errorf("config must be a struct pointer (got %s)", v.Type())
	}
	return bindFields(elem)
}

// MustBind is like Bind but panics on error.
func MustBind(config interface{}) []Flag {
	flags, err := Bind(config)
	if err != nil {
		panic(fmt.Sprintf("cflag: %s", err))
	}
	return flags
}

// sv must be an addressable struct value
func bindFields(sv reflect.Value) ([]Flag, error) {
	flags := []Flag{}
	for i := 0; i < sv.NumField(); i++ {
		sf := sv.Type().Field(i)
		val := sv.Field(i)

		// ignore unaddressable and unexported fields
		if !val.CanSet() {
			continue
		}

		tags, err := parseFieldTags(sf.Tag)
		if err != nil {
			return nil, errors.Wrapf(err, "problem with field %s.%s", sv.Type(), sf.Name)
		}
		if tags.exclude {
			continue
		}

		if (sf.Anonymous || tags.embed) && val.Kind() == reflect.Struct {
			embedded, err := bindFields(val)
			if err != nil {
				return nil, err
			}
			flags = append(flags, embedded...)
			continue
		}

		f, err := bindField(sf, val, tags)
		if err != nil {
			return nil, errors.Wrapf(err, "problem with field %s.%s", sv.Type(), sf.Name)
		}
		flags = append(flags, f)
	}
	return flags, nil
}

func bindField(sf reflect.StructField, val reflect.Value, tags fieldTags) (Flag, error) {
	name := tags.name
	if name == "" {
		name = xstrings.ToKebabCase(sf.Name)
	}
	envVar := tags.env
	if tags.envDerived {
		envVar = strings.ToUpper(xstrings.ToSnakeCase(sf.Name))
	}

	ptr := val.Addr().Interface()
	conv := converterFor(ptr)
	if conv == nil {
		return Flag{}, errors.Errorf("not supported: no converter for type %s", val.Type())
	}

	return Flag{
		Name:        name,
		Default:     tags.defaultText,
		Usage:       tags.usage,
		Convert:     conv,
		Value:       ptr,
		EnvVar:      envVar,
		Placeholder: tags.placeholder,
	}, nil
}

// converterFor picks a converter for a pointer to a field.
func converterFor(ptr interface{}) Converter {
	switch ptr.(type) {
	case ValueSetter:
		return Setter
	case encoding.TextUnmarshaler:
		return Text
	case *time.Duration:
		return Duration
	case *bool:
		return Bool
	case *string:
		return String
	case *int:
		return Int
	case *int64:
		return Int64
	case *uint:
		return Uint
	case *uint16:
		return Port
	case *float64:
		return Double
	default:
		return nil
	}
}

type fieldTags struct {
	exclude     bool
	embed       bool
	name        string
	defaultText string
	usage       string
	placeholder string
	env         string
	envDerived  bool
}

func parseFieldTags(tag reflect.StructTag) (fieldTags, error) {
	t := fieldTags{}
	m, err := parseTagPairs(tag.Get("cflag"))
	if err != nil {
		return t, err
	}
	pop := func(key string) (string, bool) {
		val, ok := m[key]
		if ok {
			delete(m, key)
		}
		return val, ok
	}

	if _, ok := pop("-"); ok {
		t.exclude = true
	}
	if _, ok := pop("embed"); ok {
		t.embed = true
	}
	if name, ok := pop("name"); ok {
		if name == "" || strings.HasPrefix(name, "-") || strings.Contains(name, "=") {
			return t, errors.Errorf("invalid flag name %q", name)
		}
		t.name = name
	}
	if defaultText, ok := pop("default"); ok {
		t.defaultText = defaultText
	}
	if usage, ok := pop("usage"); ok {
		t.usage = usage
	}
	if placeholder, ok := pop("placeholder"); ok {
		t.placeholder = placeholder
	}
	if env, ok := pop("env"); ok {
		t.env = env
		t.envDerived = env == ""
	}

	if len(m) > 0 {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return t, errors.Errorf("unknown tags: %s", strings.Join(keys, ", "))
	}
	return t, nil
}

// parseTagPairs splits `a,b=c,d='e, f'` into a map. Spaces around keys are
// ignored; a quoted value is taken verbatim.
func parseTagPairs(s string) (map[string]string, error) {
	ret := map[string]string{}
	for len(s) > 0 {
		var pair string
		pair, s = splitTagPair(s)
		key, val, hasVal := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			if hasVal {
				return nil, errors.Errorf("missing key before %q", val)
			}
			continue
		}
		if strings.HasPrefix(val, "'") {
			if len(val) < 2 || !strings.HasSuffix(val, "'") {
				return nil, errors.Errorf("unterminated quote in tag %s", key)
			}
			val = val[1 : len(val)-1]
		}
		ret[key] = val
	}
	return ret, nil
}

// splitTagPair returns the text up to the first comma outside single quotes
// and the remainder after that comma.
func splitTagPair(s string) (string, string) {
	inQuote := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\'':
			inQuote = !inQuote
		case ',':
			if !inQuote {
				return s[:i], s[i+1:]
			}
		}
	}
	return s, ""
}
