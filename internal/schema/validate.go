package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/saulo-duarte/quizard-lambda/internal/apperror"
)

type Mode int

const (
	Create Mode = iota
	Replace
	Update
)

var validate = validator.New()

// CoerceArgs converts query-string values to the types declared by the schema.
// Every key must be known and filterable.
func (s Schema) CoerceArgs(values url.Values) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(values))
	verr := apperror.NewValidationError()

	for key, raw := range values {
		field, ok := s[key]
		if !ok {
			verr.Add(key, "unknown field")
			continue
		}
		if field.ReadOnly {
			verr.Add(key, "cannot be used as a filter")
			continue
		}

		v := ""
		if len(raw) > 0 {
			v = raw[len(raw)-1]
		}

		coerced, msg := coerceString(field.Type, v)
		if msg != "" {
			verr.Add(key, msg)
			continue
		}
		if msg := checkRules(field, coerced); msg != "" {
			verr.Add(key, msg)
			continue
		}
		out[key] = coerced
	}

	if verr.HasErrors() {
		return nil, verr
	}
	return out, nil
}

func coerceString(t FieldType, v string) (interface{}, string) {
	switch t {
	case Integer:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil, "must be an integer"
		}
		return n, ""
	case Boolean:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1":
			return true, ""
		default:
			return false, ""
		}
	case String, Any:
		return v, ""
	default:
		return nil, "cannot be used as a filter"
	}
}

// Validate checks a decoded JSON object against the schema for the given mode
// and returns a copy holding coerced values.
func (s Schema) Validate(doc map[string]interface{}, mode Mode) (map[string]interface{}, error) {
	verr := apperror.NewValidationError()
	out := s.validateInto(doc, mode, "", verr)
	if verr.HasErrors() {
		return nil, verr
	}
	return out, nil
}

func (s Schema) validateInto(doc map[string]interface{}, mode Mode, prefix string, verr *apperror.ValidationError) map[string]interface{} {
	out := make(map[string]interface{}, len(doc))

	for key, raw := range doc {
		name := prefix + key
		field, ok := s[key]
		switch {
		case !ok:
			verr.Add(name, "unknown field")
			continue
		case field.ReadOnly:
			verr.Add(name, "is read-only")
			continue
		case field.CreateOnly && mode != Create:
			verr.Add(name, "can only be set on create")
			continue
		case field.UpdateOnly && mode == Create:
			verr.Add(name, "cannot be set on create")
			continue
		}

		if raw == nil {
			verr.Add(name, "must not be null")
			continue
		}

		coerced, msg := coerceJSON(field.Type, raw)
		if msg != "" {
			verr.Add(name, msg)
			continue
		}

		if field.Type == ObjectList && field.Items != nil {
			items := coerced.([]map[string]interface{})
			for i, item := range items {
				items[i] = field.Items.validateInto(item, Create, fmt.Sprintf("%s[%d].", name, i), verr)
			}
		}

		if msg := checkRules(field, coerced); msg != "" {
			verr.Add(name, msg)
			continue
		}
		out[key] = coerced
	}

	if mode == Create || mode == Replace {
		for key, field := range s {
			if !field.Required || (mode == Replace && field.CreateOnly) {
				continue
			}
			if _, present := doc[key]; !present {
				verr.Add(prefix+key, "is required")
			}
		}
	}
	return out
}

func coerceJSON(t FieldType, raw interface{}) (interface{}, string) {
	switch t {
	case Any:
		return raw, ""
	case String:
		v, ok := raw.(string)
		if !ok {
			return nil, "must be a string"
		}
		return v, ""
	case Integer:
		n, ok := toInt64(raw)
		if !ok {
			return nil, "must be an integer"
		}
		return n, ""
	case Boolean:
		v, ok := raw.(bool)
		if !ok {
			return nil, "must be a boolean"
		}
		return v, ""
	case StringList:
		list, ok := raw.([]interface{})
		if !ok {
			return nil, "must be a list of strings"
		}
		out := make([]string, len(list))
		for i, item := range list {
			v, ok := item.(string)
			if !ok {
				return nil, "must be a list of strings"
			}
			out[i] = v
		}
		return out, ""
	case IntegerList:
		list, ok := raw.([]interface{})
		if !ok {
			return nil, "must be a list of integers"
		}
		out := make([]int64, len(list))
		for i, item := range list {
			n, ok := toInt64(item)
			if !ok {
				return nil, "must be a list of integers"
			}
			out[i] = n
		}
		return out, ""
	case ObjectList:
		list, ok := raw.([]interface{})
		if !ok {
			return nil, "must be a list of objects"
		}
		out := make([]map[string]interface{}, len(list))
		for i, item := range list {
			obj, ok := item.(map[string]interface{})
			if !ok {
				return nil, "must be a list of objects"
			}
			out[i] = obj
		}
		return out, ""
	}
	return nil, "has an unsupported type"
}

func toInt64(raw interface{}) (int64, bool) {
	switch v := raw.(type) {
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case float64:
		if v != math.Trunc(v) || math.Abs(v) > 1<<53 {
			return 0, false
		}
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	}
	return 0, false
}

func checkRules(field Field, value interface{}) string {
	if field.Rules == "" {
		return ""
	}
	if err := validate.Var(value, field.Rules); err != nil {
		return ruleMessage(field.Type, err)
	}
	return ""
}

func ruleMessage(t FieldType, err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}

	fe := verrs[0]
	unit := ""
	switch t {
	case String:
		unit = " characters"
	case StringList, IntegerList, ObjectList:
		unit = " items"
	}
	// dive errors report on the element, which is always a string here.
	if fe.Kind().String() == "string" && t != String {
		unit = " characters per item"
	}

	switch fe.Tag() {
	case "min":
		return "must be at least " + fe.Param() + unit
	case "max":
		return "must be at most " + fe.Param() + unit
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "failed rule " + fe.Tag()
	}
}
