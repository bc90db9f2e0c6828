package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-sitecontent/internal/sections"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrSchemaInvalid    = errors.New("schema invalid")
	ErrSchemaValidation = errors.New("schema validation failed")
)

// ValidationIssue captures a single validation failure.
type ValidationIssue struct {
	Location string
	Message  string
}

// PayloadValidationError surfaces validation issues with schema-aware context.
type PayloadValidationError struct {
	Section string
	Issues  []ValidationIssue
	Cause   error
}

func (e *PayloadValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrSchemaValidation.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *PayloadValidationError) Unwrap() error {
	return ErrSchemaValidation
}

// Issues extracts validation issues from an error.
func Issues(err error) []ValidationIssue {
	if err == nil {
		return nil
	}
	var payloadErr *PayloadValidationError
	if errors.As(err, &payloadErr) && payloadErr != nil {
		return payloadErr.Issues
	}
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return collectValidationIssues(validationErr)
	}
	return []ValidationIssue{{Message: err.Error()}}
}

// SchemaSet holds one JSON schema per section key and validates documents
// before they are written. Sections without a registered schema pass
// unchecked.
type SchemaSet struct {
	mu       sync.RWMutex
	schemas  map[string]map[string]any
	compiled map[string]*jsonschema.Schema
}

// NewSchemaSet creates an empty schema set.
func NewSchemaSet() *SchemaSet {
	return &SchemaSet{
		schemas:  make(map[string]map[string]any),
		compiled: make(map[string]*jsonschema.Schema),
	}
}

// Register compiles and stores the schema for a section key, replacing any
// previous one.
func (s *SchemaSet) Register(key string, schema map[string]any) error {
	key = sections.NormalizeKey(key)
	compiled, err := compileSchema(schema)
	if err != nil {
		return fmt.Errorf("%w: section %q: %v", ErrSchemaInvalid, key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.schemas[key] = schema
	s.compiled[key] = compiled
	return nil
}

// Validate checks the document against the section's schema, if one is
// registered.
func (s *SchemaSet) Validate(key string, doc map[string]any) error {
	key = sections.NormalizeKey(key)

	s.mu.RLock()
	compiled, ok := s.compiled[key]
	s.mu.RUnlock()
	if !ok {
		return nil
	}

	// Round-trip through JSON so numeric types match what the schema
	// compiler expects.
	normalized, err := normalizePayload(doc)
	if err != nil {
		return &PayloadValidationError{Section: key, Cause: err}
	}
	if err := compiled.Validate(normalized); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return &PayloadValidationError{
				Section: key,
				Issues:  collectValidationIssues(validationErr),
				Cause:   err,
			}
		}
		return &PayloadValidationError{Section: key, Cause: err}
	}
	return nil
}

// DocumentValidator adapts the set to the section service hook.
func (s *SchemaSet) DocumentValidator() sections.DocumentValidator {
	return s.Validate
}

func compileSchema(schema map[string]any) (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("schema.json", bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile("schema.json")
}

func normalizePayload(doc map[string]any) (any, error) {
	encoded, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var normalized any
	if err := json.Unmarshal(encoded, &normalized); err != nil {
		return nil, err
	}
	return normalized, nil
}

func collectValidationIssues(err *jsonschema.ValidationError) []ValidationIssue {
	if err == nil {
		return nil
	}
	issues := []ValidationIssue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, ValidationIssue{
				Location: node.InstanceLocation,
				Message:  node.Message,
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
