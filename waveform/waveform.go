// Package waveform summarizes a track's samples into per-pixel min/max
// tuples for a waveform renderer, switching to an exact individual-sample
// mode when zoomed in past one sample per pixel.
package waveform

import (
	"math"

	"github.com/soundlycore/engine/track"
)

// Tuple is one summarized point: per-channel min and max over some frame
// range. Mono tracks report MinL == MinR and MaxL == MaxR.
type Tuple struct {
	MinL, MaxL float32
	MinR, MaxR float32
}

// Summarize computes the waveform for [startS, endS) at numPixels
// resolution, unless the range is zoomed in past one sample per pixel, in
// which case it returns one tuple per source frame instead -- callers
// detect this by checking the returned length against numPixels.
//
// Identical (t, startS, endS, numPixels) always produce an identical
// result: this is a pure function of the track's current samples.
func Summarize(t *track.Track, startS, endS float64, numPixels int) []Tuple {
	frameCount := t.FrameCount()
	startFrame := clampFrame(int(math.Floor(startS*float64(t.SampleRate))), frameCount)
	endFrame := clampFrame(int(math.Floor(endS*float64(t.SampleRate))), frameCount)

	if startFrame >= endFrame {
		return make([]Tuple, numPixels)
	}

	samplesPerPixel := float64(endFrame-startFrame) / float64(numPixels)
	if samplesPerPixel < 1.0 {
		return summarizeZoomedIn(t, startFrame, endFrame)
	}
	return summarizeNormal(t, startFrame, endFrame, numPixels, samplesPerPixel)
}

func clampFrame(frame, frameCount int) int {
	switch {
	case frame < 0:
		return 0
	case frame > frameCount:
		return frameCount
	default:
		return frame
	}
}

// summarizeZoomedIn returns one tuple per source frame, each baselined at
// 0 so the renderer can draw individual-sample bar glyphs.
func summarizeZoomedIn(t *track.Track, startFrame, endFrame int) []Tuple {
	out := make([]Tuple, endFrame-startFrame)
	for i := startFrame; i < endFrame; i++ {
		l, r := frameChannels(t, i)
		out[i-startFrame] = Tuple{MinL: 0, MaxL: l, MinR: 0, MaxR: r}
	}
	return out
}

// summarizeNormal computes per-pixel min/max, initialized to 0 rather
// than +/-infinity, so a silent range reports (0, 0) instead of the true
// (but meaningless for display) min/max.
func summarizeNormal(t *track.Track, startFrame, endFrame, numPixels int, samplesPerPixel float64) []Tuple {
	out := make([]Tuple, numPixels)
	for i := 0; i < numPixels; i++ {
		rangeStart := startFrame + int(math.Floor(float64(i)*samplesPerPixel))
		rangeEnd := startFrame + int(math.Floor(float64(i+1)*samplesPerPixel))
		if rangeEnd > endFrame {
			rangeEnd = endFrame
		}
		if rangeStart >= rangeEnd {
			continue // emit the zero-value Tuple{0,0,0,0}
		}

		var tup Tuple
		for f := rangeStart; f < rangeEnd; f++ {
			l, r := frameChannels(t, f)
			tup.MinL = minF32(tup.MinL, l)
			tup.MaxL = maxF32(tup.MaxL, l)
			tup.MinR = minF32(tup.MinR, r)
			tup.MaxR = maxF32(tup.MaxR, r)
		}
		out[i] = tup
	}
	return out
}

// frameChannels returns (L, R) for a frame; mono tracks report the same
// value on both.
func frameChannels(t *track.Track, frame int) (float32, float32) {
	base := frame * int(t.Channels)
	l := t.Samples[base]
	if t.Channels < 2 {
		return l, l
	}
	return l, t.Samples[base+1]
}

func minF32(a, b float32) float32 {
	if b < a {
		return b
	}
	return a
}

func maxF32(a, b float32) float32 {
	if b > a {
		return b
	}
	return a
}
