package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Extensions(t *testing.T) {
	table := "| a | b |\n|---|---|\n| 1 | 2 |\n"

	def, err := NewRenderer(nil)
	require.NoError(t, err)
	assert.Contains(t, def.Render([]byte(table)), "<table>")
	assert.Contains(t, def.Render([]byte("~~gone~~")), "<del>gone</del>")

	plain, err := NewRenderer([]string{})
	require.NoError(t, err)
	assert.NotContains(t, plain.Render([]byte(table)), "<table>")
}

func TestRenderer_CRLF(t *testing.T) {
	r, err := NewRenderer(nil)
	require.NoError(t, err)
	assert.Equal(t, r.Render([]byte("# T\n\nbody\n")), r.Render([]byte("# T\r\n\r\nbody\r\n")))
}

func TestNewRenderer_UnknownExtension(t *testing.T) {
	_, err := NewRenderer([]string{"tables", "tasklists"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tasklists")

	_, err = NewRenderer([]string{" Tables ", "FENCED-CODE"})
	assert.NoError(t, err)
}
