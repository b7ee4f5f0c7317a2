package eventtype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryLookup(t *testing.T) {
	reg := NewRegistry([]EventType{
		{ID: "training", Label: "Training", Icon: "T"},
		{ID: "other", Label: "Sonstiges", AllowOverlap: true},
	})

	assert.Equal(t, "Training", reg.Lookup("training").Label)
	assert.True(t, reg.Lookup("other").AllowOverlap)

	unknown := reg.Lookup("yoga")
	assert.Equal(t, "yoga", unknown.ID)
	assert.Equal(t, "yoga", unknown.Label)
	assert.False(t, unknown.AllowOverlap)

	var empty Registry
	assert.Equal(t, "x", empty.Lookup("x").Label)
	assert.False(t, empty.Has("x"))

	assert.True(t, reg.Has("training"))
	assert.False(t, reg.Has("Training"))
}
