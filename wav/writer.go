package wav

import (
	"encoding/binary"
	"io"
	"math"
)

// Writer exports interleaved float32 PCM as 16-bit signed little-endian
// WAV, the reverse of Reader: samples are round(clamp(x, -1, 1) * 32767).
type Writer struct{}

// Write emits a complete RIFF/WAVE file to w. Its (io.Writer, rate,
// channels, samples) signature satisfies the engine package's Writer
// interface structurally.
func (Writer) Write(w io.Writer, sampleRate uint32, channels uint8, samples []float32) error {
	dataSize := uint32(len(samples)) * 2
	riffSize := 36 + dataSize

	header := make([]byte, 44)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], riffSize)
	copy(header[8:12], "WAVE")
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(header[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:28], sampleRate)
	byteRate := sampleRate * uint32(channels) * 2
	binary.LittleEndian.PutUint32(header[28:32], byteRate)
	blockAlign := uint16(channels) * 2
	binary.LittleEndian.PutUint16(header[32:34], blockAlign)
	binary.LittleEndian.PutUint16(header[34:36], 16) // bits per sample
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := w.Write(header); err != nil {
		return err
	}

	buf := make([]byte, 2*len(samples))
	for i, f := range samples {
		s := quantize(f)
		binary.LittleEndian.PutUint16(buf[2*i:], uint16(s))
	}
	_, err := w.Write(buf)
	return err
}

func quantize(f float32) int16 {
	v := f
	switch {
	case v > 1:
		v = 1
	case v < -1:
		v = -1
	}
	return int16(math.Round(float64(v) * 32767))
}
