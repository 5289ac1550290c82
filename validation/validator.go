package validation

import (
	"encoding/json"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/kbukum/elevenlabs-stt/errors"
)

// Validator collects validation errors for rules that span several fields.
type Validator struct {
	errors []FieldError
}

// FieldError represents a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func New() *Validator { return &Validator{} }

func (v *Validator) AddError(field, message string) {
	v.errors = append(v.errors, FieldError{Field: field, Message: message})
}

// Merge folds the field errors of a Validate result into v. Non-validation
// errors are recorded against the empty field.
func (v *Validator) Merge(err error) *Validator {
	if err == nil {
		return v
	}
	appErr, ok := errors.AsAppError(err)
	if ok {
		if fields, ok := appErr.Details["fields"].([]FieldError); ok {
			v.errors = append(v.errors, fields...)
			return v
		}
	}
	v.AddError("", err.Error())
	return v
}

func (v *Validator) HasErrors() bool { return len(v.errors) > 0 }

func (v *Validator) Errors() []FieldError { return v.errors }

func (e FieldError) String() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Validate returns nil, or one validation AppError whose message joins every
// failure and whose "fields" detail lists them.
func (v *Validator) Validate() *errors.AppError {
	if !v.HasErrors() {
		return nil
	}
	var msg strings.Builder
	for i, e := range v.errors {
		if i > 0 {
			msg.WriteString("; ")
		}
		msg.WriteString(e.String())
	}
	return errors.Validation(msg.String()).WithDetail("fields", v.errors)
}

// Required rejects empty and whitespace-only values.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "is required")
	}
	return v
}

// MaxBytes limits the length of value in bytes, not runes.
func (v *Validator) MaxBytes(field, value string, maxBytes int) *Validator {
	if len(value) > maxBytes {
		v.AddError(field, fmt.Sprintf("must be %d bytes or less", maxBytes))
	}
	return v
}

// Range checks minVal <= value <= maxVal.
func (v *Validator) Range(field string, value, minVal, maxVal int) *Validator {
	return v.between(field, float64(value), float64(minVal), float64(maxVal))
}

func (v *Validator) FloatRange(field string, value, minVal, maxVal float64) *Validator {
	return v.between(field, value, minVal, maxVal)
}

func (v *Validator) between(field string, value, lo, hi float64) *Validator {
	if value < lo || value > hi {
		v.AddError(field, fmt.Sprintf("must be between %g and %g", lo, hi))
	}
	return v
}

func (v *Validator) OneOf(field, value string, allowed []string) *Validator {
	if !slices.Contains(allowed, value) {
		v.AddError(field, "must be one of: "+strings.Join(allowed, ", "))
	}
	return v
}

// HTTPSURL checks that value is an absolute https URL with a host.
func (v *Validator) HTTPSURL(field, value string) *Validator {
	u, err := url.Parse(value)
	if err != nil || u.Scheme != "https" || u.Host == "" {
		v.AddError(field, "must be an https URL")
	}
	return v
}

// JSONObject checks that value is a JSON object whose nesting depth does not
// exceed maxDepth. The top-level object counts as depth 1.
func (v *Validator) JSONObject(field, value string, maxDepth int) *Validator {
	var obj map[string]any
	if err := json.Unmarshal([]byte(value), &obj); err != nil || obj == nil {
		v.AddError(field, "must be a JSON object")
		return v
	}
	if d := jsonDepth(obj); d > maxDepth {
		v.AddError(field, fmt.Sprintf("must be nested at most %d levels deep", maxDepth))
	}
	return v
}

// Custom records message against field unless condition holds.
func (v *Validator) Custom(condition bool, field, message string) *Validator {
	if !condition {
		v.AddError(field, message)
	}
	return v
}

// jsonDepth counts objects and arrays on the deepest path.
func jsonDepth(value any) int {
	var children []any
	switch t := value.(type) {
	case map[string]any:
		for _, c := range t {
			children = append(children, c)
		}
	case []any:
		children = t
	default:
		return 0
	}
	deepest := 0
	for _, c := range children {
		deepest = max(deepest, jsonDepth(c))
	}
	return deepest + 1
}
