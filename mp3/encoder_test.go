package mp3

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeBitrate_PassesThroughStandardRates(t *testing.T) {
	for _, kbps := range []int{128, 160, 192, 256, 320} {
		assert.Equal(t, kbps, NormalizeBitrate(kbps))
	}
}

func TestNormalizeBitrate_FallsBackForNonstandardValue(t *testing.T) {
	assert.Equal(t, DefaultBitrateKbps, NormalizeBitrate(64))
	assert.Equal(t, DefaultBitrateKbps, NormalizeBitrate(0))
	assert.Equal(t, DefaultBitrateKbps, NormalizeBitrate(999))
}
