// Package validation checks Zeebe job variables against a small JSON-schema
// subset before a worker touches them.
package validation

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"sort"
	"strings"
	"unicode/utf8"
)

// Formats understood by Property.Format. Empty strings skip format checks;
// use MinLength to reject them.
const (
	FormatEmail      = "email"
	FormatIdentifier = "identifier"
)

// JSONSchema describes the variables a worker accepts.
type JSONSchema struct {
	Type                 string              `json:"type"`
	Properties           map[string]Property `json:"properties"`
	Required             []string            `json:"required,omitempty"`
	AdditionalProperties bool                `json:"additionalProperties,omitempty"`
}

type Property struct {
	Type        string              `json:"type"`
	Description string              `json:"description,omitempty"`
	Format      string              `json:"format,omitempty"`
	Minimum     *float64            `json:"minimum,omitempty"`
	Maximum     *float64            `json:"maximum,omitempty"`
	Enum        []string            `json:"enum,omitempty"`
	Pattern     *string             `json:"pattern,omitempty"`
	MinLength   *int                `json:"minLength,omitempty"` // runes
	MaxLength   *int                `json:"maxLength,omitempty"` // runes
	Items       *Property           `json:"items,omitempty"`
	Properties  map[string]Property `json:"properties,omitempty"`
	Required    []string            `json:"required,omitempty"`
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ValidateInput validates input against schema. Errors are ordered by field
// name so job failure messages are stable between retries.
func ValidateInput(input map[string]interface{}, schema JSONSchema) *ValidationResult {
	var errs []ValidationError

	for _, name := range schema.Required {
		if _, ok := input[name]; !ok {
			errs = append(errs, ValidationError{Field: name, Message: "required field missing", Code: "REQUIRED_FIELD_MISSING"})
		}
	}

	for _, name := range sortedKeys(input) {
		prop, ok := schema.Properties[name]
		if !ok {
			if !schema.AdditionalProperties {
				errs = append(errs, ValidationError{Field: name, Message: "field not allowed in schema", Code: "EXTRA_FIELD"})
			}
			continue
		}
		errs = append(errs, validateField(name, input[name], prop)...)
	}

	return &ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

func validateField(field string, value interface{}, prop Property) []ValidationError {
	if got := jsonType(value); !typeMatches(got, value, prop.Type) {
		return []ValidationError{{
			Field:   field,
			Message: fmt.Sprintf("expected %s, got %s", prop.Type, got),
			Code:    "INVALID_TYPE",
		}}
	}

	var errs []ValidationError
	fail := func(code, format string, args ...interface{}) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...), Code: code})
	}

	switch v := value.(type) {
	case string:
		n := utf8.RuneCountInString(v)
		if prop.MinLength != nil && n < *prop.MinLength {
			fail("MIN_LENGTH_VIOLATION", "value must be at least %d characters", *prop.MinLength)
		}
		if prop.MaxLength != nil && n > *prop.MaxLength {
			fail("MAX_LENGTH_VIOLATION", "value must be at most %d characters", *prop.MaxLength)
		}
		if prop.Pattern != nil {
			if matched, err := regexp.MatchString(*prop.Pattern, v); err != nil || !matched {
				fail("PATTERN_MISMATCH", "value must match pattern %s", *prop.Pattern)
			}
		}
		if len(prop.Enum) > 0 && !slices.Contains(prop.Enum, v) {
			fail("INVALID_ENUM_VALUE", "value must be one of %v", prop.Enum)
		}
		if msg := checkFormat(prop.Format, v); msg != "" {
			fail("INVALID_FORMAT", "%s", msg)
		}

	case float64:
		if prop.Minimum != nil && v < *prop.Minimum {
			fail("MINIMUM_VIOLATION", "value must be >= %g", *prop.Minimum)
		}
		if prop.Maximum != nil && v > *prop.Maximum {
			fail("MAXIMUM_VIOLATION", "value must be <= %g", *prop.Maximum)
		}

	case []interface{}:
		if prop.Items != nil {
			for i, item := range v {
				errs = append(errs, validateField(fmt.Sprintf("%s[%d]", field, i), item, *prop.Items)...)
			}
		}

	case map[string]interface{}:
		if prop.Properties != nil {
			// Nested objects are open: record fields vary per document type.
			nested := ValidateInput(v, JSONSchema{
				Type:                 "object",
				Properties:           prop.Properties,
				Required:             prop.Required,
				AdditionalProperties: true,
			})
			for _, e := range nested.Errors {
				e.Field = field + "." + e.Field
				errs = append(errs, e)
			}
		}
	}

	return errs
}

// jsonType names the JSON type of a decoded job variable.
func jsonType(value interface{}) string {
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, float32, int, int32, int64:
		return "number"
	case []interface{}:
		return "array"
	case map[string]interface{}:
		return "object"
	default:
		return fmt.Sprintf("%T", value)
	}
}

func typeMatches(got string, value interface{}, want string) bool {
	switch want {
	case "":
		return true
	case "integer":
		if f, ok := value.(float64); ok {
			return f == math.Trunc(f)
		}
		return got == "number"
	default:
		return got == want
	}
}

func checkFormat(format, value string) string {
	if value == "" {
		return ""
	}
	switch format {
	case FormatEmail:
		if !ValidateEmail(value) {
			return fmt.Sprintf("invalid email address %q", value)
		}
	case FormatIdentifier:
		if strings.TrimSpace(value) == "" {
			return "identifier must not be blank"
		}
	}
	return ""
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetErrorMessages returns one "field: message" line per error.
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// HasErrors reports whether field, or anything nested under it, failed.
func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field || strings.HasPrefix(err.Field, field+".") || strings.HasPrefix(err.Field, field+"[") {
			return true
		}
	}
	return false
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}
