// Package engine is the facade: it orchestrates the track store, mixer,
// and playback engine, enforces the invariants the rest of the core
// assumes, and is the only package callers outside this module need to
// import.
package engine

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/soundlycore/engine/mixer"
	"github.com/soundlycore/engine/mp3"
	"github.com/soundlycore/engine/playback"
	"github.com/soundlycore/engine/track"
	"github.com/soundlycore/engine/waveform"
)

// Decoder is the input decode collaborator (§6): given a path, it returns
// already-converted interleaved float32 PCM. The core never decodes
// WAV/FLAC/MP3 containers itself beyond the wav package's own reader,
// which production wiring adapts to this shape.
type Decoder interface {
	Decode(path string) (sampleRate uint32, channels uint8, samples []float32, err error)
}

// Writer is the export seam wav.Writer satisfies. FLAC export goes
// through flac.NewEncoder and Encode on deinterleaved samples instead, and
// MP3 additionally takes a bitrate and is dispatched through mp3.Encoder
// directly.
type Writer interface {
	Write(w io.Writer, sampleRate uint32, channels uint8, samples []float32) error
}

// Engine is the facade. It is not safe for concurrent calls from
// multiple goroutines on the facade side -- only the playback device
// callback runs concurrently with it, and that concurrency is entirely
// contained within playback.Engine.
type Engine struct {
	store      *track.Store
	playback   *playback.Engine
	decoder    Decoder
	logger     *log.Logger
	mp3Encoder mp3.Encoder
}

// SetMP3Encoder wires a LAME-compatible encoder for ".mp3" exports.
// Without one, exporting to ".mp3" fails with ErrUnsupportedFormat.
func (e *Engine) SetMP3Encoder(enc mp3.Encoder) {
	e.mp3Encoder = enc
}

// New builds a facade around device and decoder. logger may be nil, in
// which case lifecycle events are discarded.
func New(device playback.Device, decoder Decoder, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Engine{
		store:    track.NewStore(),
		playback: playback.NewEngine(device),
		decoder:  decoder,
		logger:   logger,
	}
}

// LoadFile decodes path via the injected Decoder and appends a new
// track, reporting a non-nil mismatchedRate when the new track's sample
// rate disagrees with the store's reference rate. The core never
// resamples; the track is appended regardless.
func (e *Engine) LoadFile(path string) (sampleRate uint32, channels uint8, mismatchedRate *uint32, err error) {
	rate, ch, samples, err := e.decoder.Decode(path)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if ch == 0 || len(samples) == 0 {
		return 0, 0, nil, ErrNoAudioTrack
	}

	name := filepath.Base(path)
	mismatchedRate = e.store.Load(name, rate, ch, samples)
	e.logger.Info("loaded track", "name", name, "sampleRate", rate, "channels", ch)
	if mismatchedRate != nil {
		e.logger.Warn("track sample rate differs from reference", "name", name, "rate", rate, "reference", *mismatchedRate)
	}
	return rate, ch, mismatchedRate, nil
}

// Clear drops every track and resets playback to Idle.
func (e *Engine) Clear() {
	e.store.Clear()
	e.playback.Stop()
	e.logger.Info("cleared all tracks")
}

// TrackCount returns the number of tracks currently loaded.
func (e *Engine) TrackCount() int {
	return e.store.Len()
}

// TrackInfo returns a snapshot of every track, in store order.
func (e *Engine) TrackInfo() []track.Info {
	return e.store.TrackInfo()
}

// SampleRate is the store's reference rate: the first loaded track's
// rate, or 0 if the store is empty.
func (e *Engine) SampleRate() uint32 {
	return e.store.ReferenceRate()
}

// Channels is the first loaded track's channel count, or 0 if empty.
func (e *Engine) Channels() uint8 {
	tracks := e.store.Tracks()
	if len(tracks) == 0 {
		return 0
	}
	return tracks[0].Channels
}

// Duration is the longest track's duration, the overall session length.
func (e *Engine) Duration() float64 {
	var longest float64
	for _, t := range e.store.Tracks() {
		if d := t.Duration().Seconds(); d > longest {
			longest = d
		}
	}
	return longest
}

// WaveformForRange returns one waveform summary per track, in store
// order, over [startS, endS) at numPixels resolution.
func (e *Engine) WaveformForRange(startS, endS float64, numPixels int) [][]waveform.Tuple {
	tracks := e.store.Tracks()
	out := make([][]waveform.Tuple, len(tracks))
	for i, t := range tracks {
		out[i] = waveform.Summarize(t, startS, endS, numPixels)
	}
	return out
}

// DeleteRegion removes [startS, endS) from each listed track index. A
// track whose start falls past its own end is skipped, not an error;
// ErrOutOfBounds surfaces only when every requested index was out of
// range.
func (e *Engine) DeleteRegion(startS, endS float64, trackIndices []int) error {
	err := e.store.DeleteRegion(startS, endS, trackIndices)
	if errors.Is(err, track.ErrOutOfBounds) {
		return fmt.Errorf("%w", ErrOutOfBounds)
	}
	return err
}

// Play mixes [startS, endS) at the auto channel policy and submits it to
// the playback engine, opening or rebuilding the output stream as
// needed. With both arguments nil while paused, it resumes instead of
// remixing.
func (e *Engine) Play(startS, endS *float64) error {
	if startS == nil && endS == nil && e.playback.IsPaused() {
		e.playback.Resume()
		return nil
	}

	start := 0.0
	if startS != nil {
		start = *startS
	}
	end := e.Duration()
	if endS != nil {
		end = *endS
	}

	result, err := mixer.Mix(e.store, start, end, mixer.ModeAuto)
	if err != nil {
		return err
	}
	ch := result.Channels[0]

	if err := e.playback.Play(ch.Data, ch.Rate, ch.Channels, start); err != nil {
		return fmt.Errorf("%w: %v", ErrDeviceError, err)
	}
	return nil
}

// Pause stops advancing playback without discarding position.
func (e *Engine) Pause() {
	e.playback.Pause()
}

// Stop idempotently resets playback to Idle.
func (e *Engine) Stop() {
	e.playback.Stop()
}

// IsPlaying reports whether the device callback is currently advancing
// position. Because the flip to false happens inside the callback,
// callers must tolerate up to one callback block's delay after natural
// end-of-buffer.
func (e *Engine) IsPlaying() bool {
	return e.playback.IsPlaying()
}

// PlaybackPosition reports transport time in seconds.
func (e *Engine) PlaybackPosition() float64 {
	return e.playback.Position()
}

// SetPlaybackPosition seeks to the given transport-relative time. It
// does not change the playing/paused flags.
func (e *Engine) SetPlaybackPosition(seconds float64) {
	e.playback.SetPosition(seconds)
}

func parseMode(channelMode string) mixer.Mode {
	switch strings.ToLower(channelMode) {
	case "stereo":
		return mixer.ModeStereo
	case "mono":
		return mixer.ModeMono
	case "split":
		return mixer.ModeSplit
	case "mono_to_stereo":
		return mixer.ModeMonoToStereo
	default:
		return mixer.ModeAuto
	}
}
