package querydoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/zoobzio/sqlfrag"
)

// Decode reads one YAML (or JSON) query document. Unknown keys are rejected.
func Decode(r io.Reader) (*QuerySchema, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var schema QuerySchema
	if err := dec.Decode(&schema); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty query document")
		}
		return nil, fmt.Errorf("decode query document: %w", err)
	}
	return &schema, nil
}

// Parse decodes and builds a query from raw document bytes.
func Parse(data []byte) (*sqlfrag.Query, error) {
	schema, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return BuildFromSchema(schema)
}

// Load reads and builds the query document at path.
func Load(fs afero.Fs, path string) (*sqlfrag.Query, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open query document: %w", err)
	}
	defer f.Close()

	schema, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return BuildFromSchema(schema)
}
