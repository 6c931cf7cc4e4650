package validation

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Validator holds compiled request schemas keyed by name.
type Validator struct {
	mu      sync.RWMutex
	schemas map[string]*gojsonschema.Schema
}

// NewValidator compiles every schema in defs. A schema that fails to compile is
// a programming error and is reported immediately.
func NewValidator(defs map[string]string) (*Validator, error) {
	v := &Validator{schemas: make(map[string]*gojsonschema.Schema, len(defs))}
	for name, def := range defs {
		if err := v.Register(name, def); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// MustNewValidator is NewValidator for static schema sets.
func MustNewValidator(defs map[string]string) *Validator {
	v, err := NewValidator(defs)
	if err != nil {
		panic(err)
	}
	return v
}

func (v *Validator) Register(name, def string) error {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(def))
	if err != nil {
		return fmt.Errorf("compile schema %s: %w", name, err)
	}
	v.mu.Lock()
	v.schemas[name] = schema
	v.mu.Unlock()
	return nil
}

// ValidateBytes checks a raw JSON document against the named schema.
func (v *Validator) ValidateBytes(name string, body []byte) *ValidationResult {
	if len(body) == 0 {
		body = []byte("{}")
	}
	return v.validate(name, gojsonschema.NewBytesLoader(body))
}

// ValidateDocument checks an already decoded value against the named schema.
func (v *Validator) ValidateDocument(name string, doc interface{}) *ValidationResult {
	return v.validate(name, gojsonschema.NewGoLoader(doc))
}

func (v *Validator) validate(name string, loader gojsonschema.JSONLoader) *ValidationResult {
	v.mu.RLock()
	schema, ok := v.schemas[name]
	v.mu.RUnlock()
	if !ok {
		return &ValidationResult{Errors: []ValidationError{{
			Field: "(root)", Message: fmt.Sprintf("unknown schema %q", name), Code: "UNKNOWN_SCHEMA",
		}}}
	}

	result, err := schema.Validate(loader)
	if err != nil {
		return &ValidationResult{Errors: []ValidationError{{
			Field: "(root)", Message: err.Error(), Code: "MALFORMED_JSON",
		}}}
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
			Code:    strings.ToUpper(desc.Type()),
		})
	}
	return out
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// HasErrors checks if validation has errors for specific field
func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field {
			return true
		}
	}
	return false
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail accepts anything shaped like local@domain.tld.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}
