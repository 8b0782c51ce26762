// Package flac implements a from-scratch, pure-Go RFC 9639 FLAC encoder:
// STREAMINFO metadata, fixed linear prediction, and partitioned Rice coding
// of residuals. It never shells out to libFLAC or any other native codec.
package flac

import (
	"io"
	"math"
)

// Encoder writes a single-pass FLAC stream: magic, STREAMINFO, then one
// frame per block of input samples. It has no state across calls to
// Encode; each call produces a complete, independent stream.
type Encoder struct {
	w          io.Writer
	sampleRate uint32
	channels   uint8
	level      int
}

// NewEncoder validates the stream parameters and returns an Encoder ready
// to write a complete FLAC stream to w. compressionLevel must be 0-8;
// channels must be 1-8, matching the 4-bit channel assignment field this
// encoder emits (independent channels only, no mid/side decorrelation).
func NewEncoder(w io.Writer, sampleRate uint32, channels uint8, compressionLevel int) (*Encoder, error) {
	if compressionLevel < 0 || compressionLevel > 8 {
		return nil, ErrInvalidConfig
	}
	if channels < 1 || channels > 8 {
		return nil, ErrInvalidConfig
	}
	if sampleRate == 0 {
		return nil, ErrInvalidConfig
	}
	return &Encoder{w: w, sampleRate: sampleRate, channels: channels, level: compressionLevel}, nil
}

// Encode writes a full FLAC stream for the given deinterleaved per-channel
// samples, one slice per channel, each in [-1, 1]. All channels must carry
// the same number of samples, and that number must be at least
// minSamplesPerChannel.
func (e *Encoder) Encode(channelsData [][]float32) error {
	if len(channelsData) != int(e.channels) {
		return ErrInvalidConfig
	}
	if len(channelsData) == 0 {
		return ErrInvalidConfig
	}
	n := len(channelsData[0])
	for _, c := range channelsData {
		if len(c) != n {
			return ErrInvalidConfig
		}
	}
	if n < minSamplesPerChannel {
		return ErrTooShort
	}

	intChannels := make([][]int32, len(channelsData))
	for ci, c := range channelsData {
		ints := make([]int32, n)
		for i, f := range c {
			ints[i] = int32(floatToInt16(f))
		}
		intChannels[ci] = ints
	}

	digest := sampleMD5(interleave(intChannels, n))

	blockSize := blockSizeForLevel(e.level, n)

	var frames [][]byte
	minFrame, maxFrame := 0, 0
	minBlock, maxBlock := 0, 0
	frameNum := uint64(0)

	for start := 0; start < n; start += blockSize {
		end := start + blockSize
		if end > n {
			end = n
		}
		bs := end - start

		fw := newBitWriter()
		e.encodeFrameHeader(fw, bs, frameNum)
		for ci := range intChannels {
			encodeSubframe(fw, intChannels[ci][start:end], e.level)
		}
		fw.alignToByte()
		footer := crc16(fw.bytes())
		fw.writeBits(uint64(footer), 16)

		frameBytes := fw.bytes()
		frames = append(frames, frameBytes)

		if minFrame == 0 || len(frameBytes) < minFrame {
			minFrame = len(frameBytes)
		}
		if len(frameBytes) > maxFrame {
			maxFrame = len(frameBytes)
		}
		if minBlock == 0 || bs < minBlock {
			minBlock = bs
		}
		if bs > maxBlock {
			maxBlock = bs
		}
		frameNum++
	}

	si := StreamInfo{
		MinBlockSize:  uint16(minBlock),
		MaxBlockSize:  uint16(maxBlock),
		MinFrameSize:  uint32(minFrame),
		MaxFrameSize:  uint32(maxFrame),
		SampleRate:    e.sampleRate,
		Channels:      e.channels,
		BitsPerSample: 16,
		TotalSamples:  uint64(n),
		MD5:           digest,
	}

	if _, err := e.w.Write(writeStreamInfo(nil, si)); err != nil {
		return err
	}
	for _, fb := range frames {
		if _, err := e.w.Write(fb); err != nil {
			return err
		}
	}
	return nil
}

// encodeFrameHeader writes the byte-aligned frame header, ending with its
// own CRC-8, into fw. Sync code, block-size and sample-rate codes, channel
// assignment, sample size, and frame number all follow RFC 9639 §9.1.2.
func (e *Encoder) encodeFrameHeader(fw *bitWriter, blockSize int, frameNumber uint64) {
	fw.writeBits(0x3FFE, 14)
	fw.writeBits(0, 1) // reserved
	fw.writeBits(0, 1) // fixed-blocksize stream

	bsCode := blockSizeCode(blockSize)
	fw.writeBits(uint64(bsCode), 4)

	srCode := sampleRateCode(e.sampleRate)
	fw.writeBits(uint64(srCode), 4)

	fw.writeBits(uint64(e.channels-1), 4) // independent channels, no stereo decorrelation
	fw.writeBits(sampleSizeCode16, 3)
	fw.writeBits(0, 1) // reserved

	fw.writeUTF8(frameNumber)

	switch bsCode {
	case 0x06:
		fw.writeBits(uint64(blockSize-1), 8)
	case 0x07:
		fw.writeBits(uint64(blockSize-1), 16)
	}

	switch srCode {
	case 0x0C:
		fw.writeBits(uint64(e.sampleRate/1000), 8)
	case 0x0D:
		fw.writeBits(uint64(e.sampleRate), 16)
	case 0x0E:
		fw.writeBits(uint64(e.sampleRate/10), 16)
	}

	fw.writeBits(uint64(crc8(fw.bytes())), 8)
}

// encodeSubframe picks the cheapest subframe type that fits: constant for
// a silent or DC block, verbatim when there aren't enough samples to form
// a fixed predictor's warm-up, otherwise the fixed predictor the
// compression level selects.
func encodeSubframe(bw *bitWriter, samples []int32, level int) {
	bw.writeBits(0, 1) // padding bit

	if isConstant(samples) {
		bw.writeBits(0b000000, 6)
		bw.writeBits(0, 1) // wasted-bits flag
		bw.writeBitsSigned(int64(samples[0]), 16)
		return
	}

	order := orderForLevel(level, len(samples))
	if order >= len(samples) {
		bw.writeBits(0b000001, 6)
		bw.writeBits(0, 1)
		for _, s := range samples {
			bw.writeBitsSigned(int64(s), 16)
		}
		return
	}

	bw.writeBits(uint64(0b001000|order), 6)
	bw.writeBits(0, 1) // wasted-bits flag
	for i := 0; i < order; i++ {
		bw.writeBitsSigned(int64(samples[i]), 16)
	}
	encodePartitionedResiduals(bw, fixedResiduals(samples, order), len(samples), order, level)
}

func isConstant(samples []int32) bool {
	for _, s := range samples[1:] {
		if s != samples[0] {
			return false
		}
	}
	return true
}

// floatToInt16 quantizes a float32 sample to int16 as round(clamp(f, -1,
// 1) * 32767), clamping out-of-range input rather than wrapping.
func floatToInt16(f float32) int16 {
	switch {
	case f >= 1:
		return 32767
	case f <= -1:
		return -32767
	default:
		return int16(math.Round(float64(f) * 32767))
	}
}

func interleave(channels [][]int32, n int) []int16 {
	out := make([]int16, n*len(channels))
	for i := 0; i < n; i++ {
		for ci, c := range channels {
			out[i*len(channels)+ci] = int16(c[i])
		}
	}
	return out
}
