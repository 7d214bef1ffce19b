package artifact

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaBaseURL = "https://homeprice.local/schemas/"

//go:embed schemas/*.json
var schemaFS embed.FS

// Each schema is compiled on first use and shared by later loads.
var (
	columnsSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
		return compileSchema("columns.v1.schema.json")
	})
	modelSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
		return compileSchema("model.v1.schema.json")
	})
)

// compileSchema compiles one of the embedded artifact schemas by file name.
func compileSchema(name string) (*jsonschema.Schema, error) {
	data, err := schemaFS.ReadFile("schemas/" + name)
	if err != nil {
		return nil, fmt.Errorf("artifact: schema %s not embedded: %w", name, err)
	}

	url := schemaBaseURL + name
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("artifact: failed to add schema %s: %w", name, err)
	}

	schema, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("artifact: failed to compile schema %s: %w", name, err)
	}

	return schema, nil
}

// validate checks raw JSON against a compiled schema.
func validate(compiled func() (*jsonschema.Schema, error), data []byte) error {
	schema, err := compiled()
	if err != nil {
		return err
	}

	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("%w: malformed JSON: %v", ErrInvalidArtifact, err)
	}

	if err := schema.Validate(raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}

	return nil
}
