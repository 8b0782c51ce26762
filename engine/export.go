package engine

import (
	"fmt"
	"os"
	"strings"

	"github.com/soundlycore/engine/flac"
	"github.com/soundlycore/engine/mixer"
	"github.com/soundlycore/engine/mp3"
	"github.com/soundlycore/engine/wav"
)

// DefaultCompressionLevel is used when ExportAudio's compressionLevel
// argument is nil.
const DefaultCompressionLevel = 5

// ExportAudio mixes [startS, endS) under channelMode and writes it to
// path, dispatching on path's lowercased extension. Every output with a
// non-empty name ("_L"/"_R" in "split" mode, "_pairN" for mono_to_stereo
// pairs after the first) is written to path with that name inserted
// before the extension; an unnamed output is written to path itself.
func (e *Engine) ExportAudio(path string, startS, endS *float64, compressionLevel, bitrateKbps *int, channelMode *string) error {
	start := 0.0
	if startS != nil {
		start = *startS
	}
	end := e.Duration()
	if endS != nil {
		end = *endS
	}

	mode := mixer.ModeAuto
	if channelMode != nil {
		mode = parseMode(*channelMode)
	}

	result, err := mixer.Mix(e.store, start, end, mode)
	if err != nil {
		return err
	}

	level := DefaultCompressionLevel
	if compressionLevel != nil {
		level = *compressionLevel
	}
	bitrate := mp3.DefaultBitrateKbps
	if bitrateKbps != nil {
		bitrate = mp3.NormalizeBitrate(*bitrateKbps)
	}

	for _, ch := range result.Channels {
		outPath := path
		if ch.Name != "" {
			outPath = insertSuffix(path, ch.Name)
		}
		if err := e.writeChannel(outPath, ch, level, bitrate); err != nil {
			return err
		}
	}

	e.logger.Info("exported audio", "path", path, "mode", mode, "outputs", len(result.Channels))
	return nil
}

func (e *Engine) writeChannel(path string, ch mixer.NamedChannel, compressionLevel, bitrateKbps int) error {
	ext := strings.ToLower(pathExt(path))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	defer f.Close()

	switch ext {
	case ".wav":
		if err := (wav.Writer{}).Write(f, ch.Rate, ch.Channels, ch.Data); err != nil {
			return fmt.Errorf("%w: %v", ErrIO, err)
		}
	case ".flac":
		enc, err := flac.NewEncoder(f, ch.Rate, ch.Channels, compressionLevel)
		if err != nil {
			return translateFlacErr(err)
		}
		if err := enc.Encode(deinterleave(ch.Data, ch.Channels)); err != nil {
			return translateFlacErr(err)
		}
	case ".mp3":
		if e.mp3Encoder == nil {
			return fmt.Errorf("%w: no mp3 encoder configured", ErrUnsupportedFormat)
		}
		if err := e.mp3Encoder.Encode(f, ch.Rate, ch.Channels, ch.Data, bitrateKbps); err != nil {
			return fmt.Errorf("%w: %v", ErrIO, err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return nil
}

func translateFlacErr(err error) error {
	switch {
	case err == flac.ErrInvalidConfig:
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	case err == flac.ErrTooShort:
		return fmt.Errorf("%w: %v", ErrTooShort, err)
	default:
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
}

// deinterleave splits an interleaved float32 buffer into one slice per
// channel, the shape flac.Encoder.Encode expects.
func deinterleave(data []float32, channels uint8) [][]float32 {
	n := len(data) / int(channels)
	out := make([][]float32, channels)
	for c := range out {
		out[c] = make([]float32, n)
	}
	for i := 0; i < n; i++ {
		for c := 0; c < int(channels); c++ {
			out[c][i] = data[i*int(channels)+c]
		}
	}
	return out
}

func pathExt(path string) string {
	for i := len(path) - 1; i >= 0 && path[i] != '/'; i-- {
		if path[i] == '.' {
			return path[i:]
		}
	}
	return ""
}

func insertSuffix(path, suffix string) string {
	ext := pathExt(path)
	if ext == "" {
		return path + suffix
	}
	return strings.TrimSuffix(path, ext) + suffix + ext
}
