package playback

import (
	"errors"
	"fmt"
)

// ErrDeviceError wraps any failure opening or starting an output stream.
var ErrDeviceError = errors.New("playback: device error")

// Engine owns at most one open stream at a time, rebuilt only when a Play
// call targets a different (rate, channels) than the current stream.
type Engine struct {
	device Device
	state  *State

	stream   Stream
	rate     uint32
	channels uint8
}

// NewEngine returns an Engine bound to device. No stream is opened until
// the first Play call.
func NewEngine(device Device) *Engine {
	return &Engine{device: device, state: &State{}}
}

// Play submits buffer for playback at (rate, channels), opening a new
// stream if none is open yet or if the previous stream's (rate, channels)
// differ from this call's.
func (e *Engine) Play(buffer []float32, rate uint32, channels uint8, offset float64) error {
	if e.stream == nil || e.rate != rate || e.channels != channels {
		if e.stream != nil {
			if err := e.stream.Close(); err != nil {
				return fmt.Errorf("%w: %v", ErrDeviceError, err)
			}
		}
		stream, err := e.device.Open(rate, channels)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrDeviceError, err)
		}
		if err := stream.Start(e.state.PullInto); err != nil {
			return fmt.Errorf("%w: %v", ErrDeviceError, err)
		}
		e.stream = stream
		e.rate = rate
		e.channels = channels
	}

	e.state.Play(buffer, offset)
	return nil
}

// Resume continues playback from the current paused position, if any.
func (e *Engine) Resume() {
	e.state.Resume()
}

// Pause stops advancing position without discarding the buffer.
func (e *Engine) Pause() {
	e.state.Pause()
}

// Stop idempotently resets to Idle.
func (e *Engine) Stop() {
	e.state.Stop()
}

// IsPlaying reports whether the callback is currently advancing position.
func (e *Engine) IsPlaying() bool {
	return e.state.IsPlaying()
}

// IsPaused reports whether playback is paused.
func (e *Engine) IsPaused() bool {
	return e.state.IsPaused()
}

// Position reports transport time in seconds at the current stream's
// (rate, channels).
func (e *Engine) Position() float64 {
	return e.state.PositionSeconds(e.channels, e.rate)
}

// SetPosition seeks to the given transport-relative time. It does not
// change the playing/paused flags.
func (e *Engine) SetPosition(seconds float64) {
	e.state.SetPositionSeconds(seconds, e.channels, e.rate)
}

// Close releases any open stream. Safe to call when nothing is open.
func (e *Engine) Close() error {
	if e.stream == nil {
		return nil
	}
	err := e.stream.Close()
	e.stream = nil
	return err
}
