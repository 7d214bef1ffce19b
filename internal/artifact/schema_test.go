package artifact

import (
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemasCompileOnce(t *testing.T) {
	for name, compiled := range map[string]func() (*jsonschema.Schema, error){
		"columns": columnsSchema,
		"model":   modelSchema,
	} {
		t.Run(name, func(t *testing.T) {
			first, err := compiled()
			require.NoError(t, err)

			second, err := compiled()
			require.NoError(t, err)
			assert.Same(t, first, second)
		})
	}
}

func TestValidate_MalformedJSON(t *testing.T) {
	err := validate(columnsSchema, []byte(`{"data_columns": [`))
	assert.ErrorIs(t, err, ErrInvalidArtifact)
}
