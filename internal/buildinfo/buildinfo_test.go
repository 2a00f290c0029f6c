package buildinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShort(t *testing.T) {
	v, c := Version, Commit
	t.Cleanup(func() { Version, Commit = v, c })

	Version, Commit = "dev", "unknown"
	assert.Equal(t, "dev", Short())

	Commit = "abc123"
	assert.Equal(t, "abc123", Short())

	Version = "v1.2.0"
	assert.Equal(t, "v1.2.0", Short())
}

func TestLogAttrsPairs(t *testing.T) {
	attrs := LogAttrs()
	assert.Len(t, attrs, 6)
	assert.Equal(t, "version", attrs[0])
}
