package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestDefault_ReturnsSameStore verifies the process store is created once.
func TestDefault_ReturnsSameStore(t *testing.T) {
	Reset()
	assert.Same(t, Default(), Default())
}

// TestInitAndReset verifies Init installs a store and Reset replaces it with an empty one.
func TestInitAndReset(t *testing.T) {
	key := NewKey[string]("k", nil)

	custom := NewStore()
	Set(custom, key, "v")
	Init(custom)
	assert.Same(t, custom, Default())
	assert.Equal(t, "v", Get(Default(), key))

	fresh := Reset()
	assert.Same(t, fresh, Default())
	assert.NotSame(t, custom, Default())
	assert.False(t, Has(Default(), key))
}
