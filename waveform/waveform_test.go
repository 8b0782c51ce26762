package waveform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/soundlycore/engine/track"
)

func TestSummarize_EmptyRangeReturnsNZeroTuples(t *testing.T) {
	tr := track.New("x.wav", 44100, 1, make([]float32, 1000))
	tuples := Summarize(tr, 0, 0, 10)
	require.Len(t, tuples, 10)
	for _, tup := range tuples {
		assert.Equal(t, Tuple{}, tup)
	}
}

func TestSummarize_ZoomedInReturnsFrameCountLength(t *testing.T) {
	samples := make([]float32, 100*2)
	for i := 0; i < 100; i++ {
		samples[i*2] = float32(i) / 100
		samples[i*2+1] = -float32(i) / 100
	}
	tr := track.New("x.wav", 44100, 2, samples)

	tuples := Summarize(tr, 0.0, 100.0/44100, 10000)
	require.Len(t, tuples, 100)
	for i, tup := range tuples {
		assert.Equal(t, float32(0), tup.MinL)
		assert.Equal(t, float32(0), tup.MinR)
		assert.InDelta(t, float64(i)/100, tup.MaxL, 1e-6)
		assert.InDelta(t, -float64(i)/100, tup.MaxR, 1e-6)
	}
}

func TestSummarize_SilentRangeReportsZeroNotTrueMinMax(t *testing.T) {
	tr := track.New("x.wav", 100, 1, make([]float32, 100))
	tuples := Summarize(tr, 0, 1.0, 5)
	for _, tup := range tuples {
		assert.Equal(t, Tuple{}, tup)
	}
}

func TestSummarize_NormalModeComputesPerPixelMinMax(t *testing.T) {
	samples := make([]float32, 100)
	for i := range samples {
		samples[i] = 0
	}
	samples[10] = 0.9
	samples[40] = -0.9
	tr := track.New("x.wav", 100, 1, samples)

	tuples := Summarize(tr, 0, 1.0, 10)
	require.Len(t, tuples, 10)
	assert.Equal(t, float32(0.9), tuples[1].MaxL)
	assert.Equal(t, float32(-0.9), tuples[4].MinL)
}

func TestSummarize_MonoReportsEqualLAndR(t *testing.T) {
	samples := []float32{0.1, -0.2, 0.3, -0.4}
	tr := track.New("x.wav", 4, 1, samples)

	tuples := Summarize(tr, 0, 1.0, 2)
	for _, tup := range tuples {
		assert.Equal(t, tup.MinL, tup.MinR)
		assert.Equal(t, tup.MaxL, tup.MaxR)
	}
}

func TestSummarize_IsPure(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 200).Draw(rt, "n")
		samples := rapid.SliceOfN(rapid.Float32Range(-1, 1), n, n).Draw(rt, "samples")
		tr := track.New("x.wav", 44100, 1, samples)
		numPixels := rapid.IntRange(1, 50).Draw(rt, "numPixels")
		startS := rapid.Float64Range(0, 1).Draw(rt, "startS")
		endS := rapid.Float64Range(startS, 2).Draw(rt, "endS")

		first := Summarize(tr, startS, endS, numPixels)
		second := Summarize(tr, startS, endS, numPixels)
		assert.Equal(t, first, second)
	})
}
