package flash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInflectionTemperature_DriftsWithPressure(t *testing.T) {
	atLowP := inflectionTemperature(1e5)
	atHighP := inflectionTemperature(2e7)
	assert.InDelta(t, 277.13, atLowP, 1e-6)
	assert.InDelta(t, 273.16, atHighP, 1e-6)
	assert.Less(t, atHighP, atLowP)

	mid := inflectionTemperature(1e7)
	assert.Greater(t, mid, atHighP)
	assert.Less(t, mid, atLowP)
}
