package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/termcore/event"
)

func TestDefaultOptions(t *testing.T) {
	o, err := buildOptions(nil)
	require.NoError(t, err)

	assert.Equal(t, event.Rune('q'), o.quitKey)
	assert.Equal(t, event.DefaultCapacity, o.capacity)
	assert.Equal(t, event.DropNewest, o.overflow)
	assert.Equal(t, DrainOne, o.drain)
	assert.Equal(t, DefaultFrameInterval, o.frameInterval)
	assert.Equal(t, DefaultShutdownTimeout, o.shutdownTimeout)
	assert.NotNil(t, o.logger)
	assert.NotNil(t, o.metrics)
}

func TestParseDrainPolicy(t *testing.T) {
	for _, p := range []DrainPolicy{DrainOne, DrainAll} {
		got, err := ParseDrainPolicy(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	_, err := ParseDrainPolicy("some")
	assert.Error(t, err)
}
