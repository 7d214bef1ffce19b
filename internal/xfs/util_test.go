package xfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "artifacts"), ExpandTilde("~/artifacts"))
	assert.Equal(t, home, ExpandTilde("~"))
	assert.Equal(t, "/srv/artifacts", ExpandTilde("/srv/artifacts"))
	assert.Equal(t, "~other/x", ExpandTilde("~other/x"))
}

func TestResolve(t *testing.T) {
	assert.Equal(t, filepath.Join("artifacts", "columns.json"), Resolve("artifacts", "columns.json"))
	assert.Equal(t, "/abs/columns.json", Resolve("artifacts", "/abs/columns.json"))
	assert.Equal(t, "columns.json", Resolve("", "./columns.json"))
}
