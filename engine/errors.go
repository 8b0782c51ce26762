package engine

import "errors"

// Sentinel error kinds the facade returns, checked with errors.Is. The
// core never logs at error-return time; these only ever bubble to the
// caller.
var (
	ErrDecode            = errors.New("engine: decode failed")
	ErrNoAudioTrack      = errors.New("engine: no decodable audio track")
	ErrUnsupportedFormat = errors.New("engine: unsupported export format")
	ErrInvalidConfig     = errors.New("engine: invalid export configuration")
	ErrTooShort          = errors.New("engine: input too short to export")
	ErrDeviceError       = errors.New("engine: output device error")
	ErrIO                = errors.New("engine: I/O failure")
	ErrOutOfBounds       = errors.New("engine: delete region out of bounds for every requested track")
)
