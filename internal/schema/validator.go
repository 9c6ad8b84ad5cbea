// Package schema checks response bodies against a JSON schema document.
package schema

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

var ErrSchemaNotFound = errors.New("schema not found")

// ValidationError lists every violation found in one document.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("document does not match schema: %s", strings.Join(e.Violations, "; "))
}

type Validator struct {
	path   string
	schema *gojsonschema.Schema
}

// Load reads and compiles the schema at path.
func Load(path string) (*Validator, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSchemaNotFound, path)
		}
		return nil, fmt.Errorf("read schema %s: %w", path, err)
	}
	return Compile(path, raw)
}

// Compile builds a validator from an in-memory schema document. name only
// appears in error messages.
func Compile(name string, raw []byte) (*Validator, error) {
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}
	return &Validator{path: name, schema: s}, nil
}

func (v *Validator) Path() string {
	return v.path
}

// Validate returns nil when body conforms, a *ValidationError when it does not,
// and a plain error when body is not JSON at all.
func (v *Validator) Validate(body []byte) error {
	res, err := v.schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("validate against %s: %w", v.path, err)
	}
	if res.Valid() {
		return nil
	}
	verr := &ValidationError{}
	for _, desc := range res.Errors() {
		verr.Violations = append(verr.Violations, desc.String())
	}
	return verr
}
