// Package mixer implements the five channel-mapping policies that turn a
// track store's raw tracks into playback or export frames: auto, stereo,
// mono, split, and mono_to_stereo. Every policy materializes a fixed
// range in one call -- there is no streaming or live-track state, unlike
// the pull-mode PCM mixers this is grounded on.
package mixer

import (
	"math"
	"strconv"

	"github.com/soundlycore/engine/track"
)

// Mode selects one of the five mixing policies.
type Mode int

const (
	ModeAuto Mode = iota
	ModeStereo
	ModeMono
	ModeSplit
	ModeMonoToStereo
)

// NamedChannel is one materialized output of a Mix call. Name is empty
// for the common case of a single output destined for the requested
// export path unchanged; non-empty names (e.g. "_L", "_R") are suffixes
// the caller inserts before the file extension when writing multiple
// files for one Mix call.
type NamedChannel struct {
	Name     string
	Rate     uint32
	Channels uint8
	Data     []float32 // interleaved if Channels == 2
}

// Result is everything one Mix call produces.
type Result struct {
	Channels []NamedChannel
}

// Mix computes the mix of every track in store over [startS, endS) under
// mode, at the store's reference rate. No resampling occurs across
// tracks at differing rates: each track's own frame index is computed at
// its own rate, then deposited one-to-one into the output's frame index
// -- a deliberate simplification that is only rate-correct when every
// track shares the reference rate.
func Mix(store *track.Store, startS, endS float64, mode Mode) (Result, error) {
	rate := store.ReferenceRate()
	totalFrames := totalFrames(startS, endS, rate)

	switch mode {
	case ModeSplit:
		return mixSplit(store, startS, totalFrames, rate), nil
	case ModeMonoToStereo:
		return mixMonoToStereo(store, startS, totalFrames, rate), nil
	case ModeStereo:
		return mixCombined(store, startS, totalFrames, rate, 2), nil
	case ModeMono:
		return mixCombined(store, startS, totalFrames, rate, 1), nil
	default: // ModeAuto
		channels := uint8(1)
		for _, t := range store.Tracks() {
			if t.Channels >= 2 {
				channels = 2
				break
			}
		}
		return mixCombined(store, startS, totalFrames, rate, channels), nil
	}
}

func totalFrames(startS, endS float64, rate uint32) int {
	if rate == 0 {
		return 0
	}
	n := int(math.Floor((endS - startS) * float64(rate)))
	if n < 0 {
		return 0
	}
	return n
}

// trackStartFrame is the frame index, at the track's own rate, that
// corresponds to startS.
func trackStartFrame(t *track.Track, startS float64) int {
	return int(math.Floor(startS * float64(t.SampleRate)))
}

// leftSample returns channel 0 of t at frame, or 0 past the track's end
// (the soft per-track end every policy shares).
func leftSample(t *track.Track, frame int) float32 {
	if frame < 0 || frame >= t.FrameCount() {
		return 0
	}
	return t.Samples[frame*int(t.Channels)]
}

// rightSample returns channel 1 of a stereo track, or duplicates channel
// 0 for a mono track (L=R broadcast).
func rightSample(t *track.Track, frame int) float32 {
	if frame < 0 || frame >= t.FrameCount() {
		return 0
	}
	if t.Channels < 2 {
		return t.Samples[frame*int(t.Channels)]
	}
	return t.Samples[frame*int(t.Channels)+1]
}

func clamp(v float32) float32 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	default:
		return v
	}
}

// mixCombined implements auto/stereo/mono: every track contributes an
// equal-weight sum, mono tracks duplicated to L=R when outChannels is 2,
// stereo tracks averaged as (L+R)/2 when outChannels is 1.
func mixCombined(store *track.Store, startS float64, totalFrames int, rate uint32, outChannels uint8) Result {
	data := make([]float32, totalFrames*int(outChannels))

	for _, t := range store.Tracks() {
		start := trackStartFrame(t, startS)
		for j := 0; j < totalFrames; j++ {
			frame := start + j
			if outChannels == 2 {
				data[j*2] += leftSample(t, frame)
				data[j*2+1] += rightSample(t, frame)
			} else {
				if t.Channels >= 2 {
					data[j] += (leftSample(t, frame) + rightSample(t, frame)) / 2
				} else {
					data[j] += leftSample(t, frame)
				}
			}
		}
	}

	for i := range data {
		data[i] = clamp(data[i])
	}

	return Result{Channels: []NamedChannel{{Rate: rate, Channels: outChannels, Data: data}}}
}

// mixSplit sums every stereo track's left channel into one mono output
// and every stereo track's right channel into another. Mono tracks
// contribute nothing. With no stereo tracks present, it returns a single
// empty mono output, leaving the caller to decide whether that is an
// error.
func mixSplit(store *track.Store, startS float64, totalFrames int, rate uint32) Result {
	var stereoTracks []*track.Track
	for _, t := range store.Tracks() {
		if t.Channels >= 2 {
			stereoTracks = append(stereoTracks, t)
		}
	}
	if len(stereoTracks) == 0 {
		return Result{Channels: []NamedChannel{{Rate: rate, Channels: 1}}}
	}

	left := make([]float32, totalFrames)
	right := make([]float32, totalFrames)
	for _, t := range stereoTracks {
		start := trackStartFrame(t, startS)
		for j := 0; j < totalFrames; j++ {
			frame := start + j
			left[j] += leftSample(t, frame)
			right[j] += rightSample(t, frame)
		}
	}
	for i := range left {
		left[i] = clamp(left[i])
		right[i] = clamp(right[i])
	}

	return Result{Channels: []NamedChannel{
		{Name: "_L", Rate: rate, Channels: 1, Data: left},
		{Name: "_R", Rate: rate, Channels: 1, Data: right},
	}}
}

// mixMonoToStereo pairs mono tracks by insertion order, (0,1), (2,3), ...
// placing pair[0] into L and pair[1] into R of one stereo output per
// pair. Trailing unpaired mono tracks and any stereo tracks are ignored.
// A single pair -- the common case -- produces one unnamed output
// destined directly for the requested export path; additional pairs get
// an index suffix so each still lands in its own file.
func mixMonoToStereo(store *track.Store, startS float64, totalFrames int, rate uint32) Result {
	var monoTracks []*track.Track
	for _, t := range store.Tracks() {
		if t.Channels < 2 {
			monoTracks = append(monoTracks, t)
		}
	}

	var channels []NamedChannel
	pairIndex := 0
	for i := 0; i+1 < len(monoTracks); i += 2 {
		a, b := monoTracks[i], monoTracks[i+1]
		startA := trackStartFrame(a, startS)
		startB := trackStartFrame(b, startS)

		data := make([]float32, totalFrames*2)
		for j := 0; j < totalFrames; j++ {
			data[j*2] = clamp(leftSample(a, startA+j))
			data[j*2+1] = clamp(leftSample(b, startB+j))
		}

		name := ""
		if pairIndex > 0 {
			name = suffixForPair(pairIndex)
		}
		channels = append(channels, NamedChannel{Name: name, Rate: rate, Channels: 2, Data: data})
		pairIndex++
	}

	if len(channels) == 0 {
		return Result{Channels: []NamedChannel{{Rate: rate, Channels: 2, Data: make([]float32, totalFrames*2)}}}
	}
	return Result{Channels: channels}
}

func suffixForPair(index int) string {
	return "_pair" + strconv.Itoa(index)
}
