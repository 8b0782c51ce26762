package track

import (
	"errors"
	"math"
)

// ErrOutOfBounds is returned by DeleteRegion when every requested track
// index starts past that track's own end. Per-track, being out of range
// is silently skipped; this is only surfaced when nothing was in range.
var ErrOutOfBounds = errors.New("track: delete region out of bounds for every requested track")

// Info is a read-only snapshot of one track, as reported by TrackInfo.
type Info struct {
	Name       string
	SampleRate uint32
	Channels   uint8
	Duration   float64 // seconds
}

// Store is the ordered, insertion-order collection of tracks the engine
// owns exclusively.
type Store struct {
	tracks []*Track
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// ReferenceRate is the first track's sample rate, the rate playback and
// export fall back to when not otherwise specified. Zero when empty.
func (s *Store) ReferenceRate() uint32 {
	if len(s.tracks) == 0 {
		return 0
	}
	return s.tracks[0].SampleRate
}

// Tracks returns the underlying ordered slice. Callers must not mutate it.
func (s *Store) Tracks() []*Track {
	return s.tracks
}

// Len returns the number of tracks currently held.
func (s *Store) Len() int {
	return len(s.tracks)
}

// Load appends a new track built from already-decoded PCM. It reports the
// previous reference rate in mismatchedRate when the new track's rate
// disagrees with it; the store never resamples, and the track is appended
// regardless.
func (s *Store) Load(name string, sampleRate uint32, channels uint8, samples []float32) (mismatchedRate *uint32) {
	if len(s.tracks) > 0 {
		ref := s.tracks[0].SampleRate
		if ref != sampleRate {
			prev := ref
			mismatchedRate = &prev
		}
	}
	s.tracks = append(s.tracks, New(name, sampleRate, channels, samples))
	return mismatchedRate
}

// Clear drops every track.
func (s *Store) Clear() {
	s.tracks = nil
}

// TrackInfo returns a snapshot of every track, in store order.
func (s *Store) TrackInfo() []Info {
	out := make([]Info, len(s.tracks))
	for i, t := range s.tracks {
		out[i] = Info{
			Name:       t.Name,
			SampleRate: t.SampleRate,
			Channels:   t.Channels,
			Duration:   t.Duration().Seconds(),
		}
	}
	return out
}

// DeleteRegion removes [start_s, end_s) from each listed track, each
// computing its own sample boundaries at its own rate so that mismatched
// rates across tracks never misalign the edit in time. A track whose
// start falls at or past its own end is skipped, not an error; this is
// only reported as ErrOutOfBounds when every requested index was out of
// range.
func (s *Store) DeleteRegion(startS, endS float64, indices []int) error {
	anyInRange := false
	for _, idx := range indices {
		if idx < 0 || idx >= len(s.tracks) {
			continue
		}
		t := s.tracks[idx]
		startSample := t.frameToSample(int(math.Floor(startS * float64(t.SampleRate))))
		if startSample >= len(t.Samples) {
			continue
		}
		endSample := t.frameToSample(int(math.Floor(endS * float64(t.SampleRate))))
		if endSample > len(t.Samples) {
			endSample = len(t.Samples)
		}
		t.deleteRange(startSample, endSample)
		anyInRange = true
	}
	if !anyInRange && len(indices) > 0 {
		return ErrOutOfBounds
	}
	return nil
}
