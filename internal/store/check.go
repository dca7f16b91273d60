package store

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/tasktracker/internal/task"
	"github.com/nibzard/tasktracker/internal/utils"
)

const schemaURL = "https://github.com/nibzard/tasktracker/task.schema.json"

//go:embed task.schema.json
var schemaJSON string

// Schema returns the JSON Schema describing the task file.
func Schema() string {
	return schemaJSON
}

// CheckError describes a single problem found in the task file.
type CheckError struct {
	Path string // dot path to the offending value, e.g. [2].status
	Err  error
}

func (e *CheckError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *CheckError) Unwrap() error {
	return e.Err
}

// CheckResult contains the outcome of Check.
type CheckResult struct {
	Valid    bool
	Tasks    int
	Errors   []error
	Warnings []string
}

// Check validates the task file at path against the embedded schema and
// verifies that ids are unique. A missing file is valid. Load is more lenient:
// it silently treats an unparsable file as empty, so Check is the way to find
// out why tasks disappeared.
func Check(path string) (*CheckResult, error) {
	result := &CheckResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			result.Warnings = append(result.Warnings, fmt.Sprintf("task file not found: %s", path))
			return result, nil
		}
		return nil, fmt.Errorf("read task file: %w", err)
	}

	schema, err := compileSchema()
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, &CheckError{Err: fmt.Errorf("parse task file: %w", err)})
		return result, nil
	}

	if err := schema.Validate(doc); err != nil {
		result.Valid = false
		appendSchemaErrors(result, err)
	}

	var c task.Collection
	if err := json.Unmarshal(data, &c); err == nil {
		result.Tasks = len(c)
		checkUniqueIDs(result, c)
	}

	return result, nil
}

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("load task schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile task schema: %w", err)
	}
	return schema, nil
}

func checkUniqueIDs(result *CheckResult, c task.Collection) {
	seen := make(map[int]int, len(c))
	for i, t := range c {
		if first, ok := seen[t.ID]; ok {
			result.Valid = false
			result.Errors = append(result.Errors, &CheckError{
				Path: fmt.Sprintf("[%d].id", i),
				Err:  fmt.Errorf("duplicate id %d (first used at [%d])", t.ID, first),
			})
			continue
		}
		seen[t.ID] = i
	}
}

func appendSchemaErrors(result *CheckResult, err error) {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		result.Errors = append(result.Errors, err)
		return
	}
	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *CheckResult, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &CheckError{
			Path: utils.JSONPointerToPath(err.InstanceLocation),
			Err:  errors.New(err.Message),
		})
		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}
