// Package planfile reads and writes plans as TOML documents.
//
// A plan document looks like:
//
//	name = "household"
//	start_year = 2025
//	end_year = 2060
//	inflation_rate = 0.03
//
//	[[elements.income_stream]]
//	id = "salary"
//	start_year = 2025
//	end_year = 2055
//	gross_amount = 80000.0
//	...
package planfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/theirongolddev/horizon/internal/model"
)

// ErrUnknownKind is returned when a document contains an element table that
// does not name one of the element kinds.
var ErrUnknownKind = errors.New("unknown element kind")

// ErrUnknownField is returned for a key that no plan or element field takes,
// usually a misspelling.
var ErrUnknownField = errors.New("unknown field")

// Parse decodes a plan document and validates its elements. A missing
// inflation_rate takes the model default. Unknown element kinds and unknown
// keys are errors rather than being dropped.
func Parse(data []byte) (model.Plan, error) {
	var plan model.Plan
	md, err := toml.Decode(string(data), &plan)
	if err != nil {
		return model.Plan{}, fmt.Errorf("parsing plan: %w", err)
	}

	undecoded := md.Undecoded()
	for _, key := range undecoded {
		if len(key) >= 2 && key[0] == "elements" {
			if _, err := model.ParseKind(key[1]); err != nil {
				return model.Plan{}, fmt.Errorf("%w: %q", ErrUnknownKind, key[1])
			}
		}
	}
	if len(undecoded) > 0 {
		return model.Plan{}, fmt.Errorf("%w: %q", ErrUnknownField, undecoded[0].String())
	}

	if !md.IsDefined("inflation_rate") {
		plan.InflationRate = model.DefaultInflationRate
	}

	if err := plan.Validate(); err != nil {
		return model.Plan{}, err
	}
	return plan, nil
}

// Encode writes plan as a TOML document.
func Encode(w io.Writer, plan model.Plan) error {
	enc := toml.NewEncoder(w)
	enc.Indent = ""
	return enc.Encode(plan)
}

// Marshal returns the TOML encoding of plan.
func Marshal(plan model.Plan) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, plan); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadFile parses the plan document at path. When the document has no name,
// the file name without extension is used.
func ReadFile(path string) (model.Plan, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is supplied by the user
	if err != nil {
		return model.Plan{}, fmt.Errorf("reading plan: %w", err)
	}
	plan, err := Parse(data)
	if err != nil {
		return model.Plan{}, fmt.Errorf("%s: %w", path, err)
	}
	if plan.Name == "" {
		plan.Name = nameFromPath(path)
	}
	return plan, nil
}

// WriteFile writes plan to path, replacing any existing file atomically.
func WriteFile(path string, plan model.Plan) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating plan dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".plan-*.toml")
	if err != nil {
		return fmt.Errorf("creating plan file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := Encode(tmp, plan); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("encoding plan: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing plan: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("writing plan: %w", err)
	}
	return nil
}
