package env

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ekisa-team/homeprice/internal/envvar"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Environment
	}{
		{"", Development},
		{"development", Development},
		{"PROD", Production},
		{" production ", Production},
		{"staging", Development},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Parse(tt.in), "input %q", tt.in)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(envvar.HomepriceEnv, "production")
	assert.True(t, FromEnv().IsProduction())

	t.Setenv(envvar.HomepriceEnv, "")
	assert.False(t, FromEnv().IsProduction())
}
