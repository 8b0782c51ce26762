// Package track holds the in-memory multi-track audio model: tracks of
// interleaved float32 PCM and the ordered store that owns them.
package track

import (
	"time"

	"github.com/google/uuid"
)

// Track is one loaded audio source: an interleaved float32 PCM buffer at
// its own sample rate and channel count. Samples are nominally in
// [-1.0, 1.0]; out-of-range values are permitted and only clamped at
// mix/export time.
type Track struct {
	ID         uuid.UUID
	Name       string
	SampleRate uint32
	Channels   uint8
	Samples    []float32
}

// New builds a track with a fresh ID. len(samples) must already be a
// multiple of channels; callers (the decode collaborator) are responsible
// for that invariant.
func New(name string, sampleRate uint32, channels uint8, samples []float32) *Track {
	return &Track{
		ID:         uuid.New(),
		Name:       name,
		SampleRate: sampleRate,
		Channels:   channels,
		Samples:    samples,
	}
}

// FrameCount returns the number of frames (samples per channel) held.
func (t *Track) FrameCount() int {
	if t.Channels == 0 {
		return 0
	}
	return len(t.Samples) / int(t.Channels)
}

// Duration returns the track's length in seconds at its own sample rate.
func (t *Track) Duration() time.Duration {
	if t.SampleRate == 0 {
		return 0
	}
	seconds := float64(t.FrameCount()) / float64(t.SampleRate)
	return time.Duration(seconds * float64(time.Second))
}

// frameToSample converts a frame index to the leading sample index of
// that frame in the interleaved buffer.
func (t *Track) frameToSample(frame int) int {
	return frame * int(t.Channels)
}

// deleteRange removes the closed-open sample range [start, end) from the
// buffer in place, compacting what remains.
func (t *Track) deleteRange(start, end int) {
	if start >= end {
		return
	}
	t.Samples = append(t.Samples[:start], t.Samples[end:]...)
}
