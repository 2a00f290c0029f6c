package resources

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTable(t *testing.T) {
	d := Default()
	require.NoError(t, d.Validate())
	assert.Equal(t, float32(10), d.DefaultTextSize)
	assert.Equal(t, float32(22), d.LineHeight())
	assert.Equal(t, d.Round, d.For(true))
	assert.Equal(t, d.Square, d.For(false))
}

func TestLoadOverridesOnlyGivenKeys(t *testing.T) {
	d, err := Load(strings.NewReader("line_gap: 4\n"))
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, float32(4), d.LineGap)
	assert.Equal(t, def.Square, d.Square)
	assert.Equal(t, def.Round, d.Round)
	assert.Equal(t, def.Square.TextSize+4, d.LineHeight())
}

func TestLoadEmptyKeepsDefaults(t *testing.T) {
	d, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), d)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := Load(strings.NewReader("colour: green\n"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidSizes(t *testing.T) {
	_, err := Load(strings.NewReader("round:\n  x_offset: 1\n  y_offset: 2\n  text_size: 0\n"))
	assert.ErrorContains(t, err, "round.text_size")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dimens.yaml")
	require.NoError(t, os.WriteFile(path, []byte("square:\n  x_offset: 5\n  y_offset: 6\n  text_size: 18\n"), 0o644))

	d, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Layout{XOffset: 5, YOffset: 6, TextSize: 18}, d.Square)
	assert.Equal(t, float32(20), d.LineHeight())
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
