package engine

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundlycore/engine/playback"
	"github.com/soundlycore/engine/wav"
)

type fakeDecoder struct {
	rate     uint32
	channels uint8
	samples  []float32
	err      error
}

func (d fakeDecoder) Decode(path string) (uint32, uint8, []float32, error) {
	return d.rate, d.channels, d.samples, d.err
}

type fakeStream struct{}

func (fakeStream) Start(callback func(out []float32)) error { return nil }
func (fakeStream) Close() error                              { return nil }

type fakeDevice struct{}

func (fakeDevice) Open(sampleRate uint32, channels uint8) (playback.Stream, error) {
	return fakeStream{}, nil
}

func TestEngine_LoadFileAppendsTrack(t *testing.T) {
	dec := fakeDecoder{rate: 44100, channels: 2, samples: make([]float32, 200)}
	e := New(fakeDevice{}, dec, nil)

	rate, channels, mismatched, err := e.LoadFile("song.wav")
	require.NoError(t, err)
	assert.Equal(t, uint32(44100), rate)
	assert.Equal(t, uint8(2), channels)
	assert.Nil(t, mismatched)
	assert.Equal(t, 1, e.TrackCount())
	assert.Equal(t, "song.wav", e.TrackInfo()[0].Name)
}

func TestEngine_LoadFileDecodeErrorWraps(t *testing.T) {
	dec := fakeDecoder{err: errors.New("bad file")}
	e := New(fakeDevice{}, dec, nil)

	_, _, _, err := e.LoadFile("bad.wav")
	assert.ErrorIs(t, err, ErrDecode)
}

func TestEngine_LoadFileNoAudioTrack(t *testing.T) {
	dec := fakeDecoder{rate: 44100, channels: 0}
	e := New(fakeDevice{}, dec, nil)

	_, _, _, err := e.LoadFile("silent.wav")
	assert.ErrorIs(t, err, ErrNoAudioTrack)
}

func TestEngine_ClearResetsEverything(t *testing.T) {
	dec := fakeDecoder{rate: 44100, channels: 1, samples: make([]float32, 100)}
	e := New(fakeDevice{}, dec, nil)
	_, _, _, err := e.LoadFile("a.wav")
	require.NoError(t, err)

	e.Clear()
	assert.Equal(t, 0, e.TrackCount())
	assert.False(t, e.IsPlaying())
}

func TestEngine_DeleteRegionWrapsOutOfBounds(t *testing.T) {
	dec := fakeDecoder{rate: 10, channels: 1, samples: make([]float32, 5)}
	e := New(fakeDevice{}, dec, nil)
	_, _, _, err := e.LoadFile("a.wav")
	require.NoError(t, err)

	err = e.DeleteRegion(100, 200, []int{0})
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestEngine_PlayResumesWhenPausedAndArgsNil(t *testing.T) {
	dec := fakeDecoder{rate: 10, channels: 1, samples: make([]float32, 50)}
	e := New(fakeDevice{}, dec, nil)
	_, _, _, err := e.LoadFile("a.wav")
	require.NoError(t, err)

	require.NoError(t, e.Play(nil, nil))
	e.Pause()
	assert.True(t, e.playback.IsPaused())

	require.NoError(t, e.Play(nil, nil))
	assert.True(t, e.IsPlaying())
}

func TestEngine_ExportWAVRoundTrips(t *testing.T) {
	dec := fakeDecoder{rate: 8000, channels: 1, samples: []float32{0.5, 0.25, -0.25, -0.5}}
	e := New(fakeDevice{}, dec, nil)
	_, _, _, err := e.LoadFile("a.wav")
	require.NoError(t, err)

	dir := t.TempDir()
	outPath := filepath.Join(dir, "out.wav")
	startS, endS := 0.0, e.Duration()
	require.NoError(t, e.ExportAudio(outPath, &startS, &endS, nil, nil, nil))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "RIFF", string(data[0:4]))

	r, err := wav.NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, uint32(8000), r.SampleRate())
}

func TestEngine_ExportUnsupportedFormat(t *testing.T) {
	dec := fakeDecoder{rate: 8000, channels: 1, samples: []float32{0.5, 0.25}}
	e := New(fakeDevice{}, dec, nil)
	_, _, _, err := e.LoadFile("a.wav")
	require.NoError(t, err)

	err = e.ExportAudio(filepath.Join(t.TempDir(), "out.ogg"), nil, nil, nil, nil, nil)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestEngine_ExportMP3WithoutEncoderConfigured(t *testing.T) {
	dec := fakeDecoder{rate: 8000, channels: 1, samples: []float32{0.5, 0.25}}
	e := New(fakeDevice{}, dec, nil)
	_, _, _, err := e.LoadFile("a.wav")
	require.NoError(t, err)

	err = e.ExportAudio(filepath.Join(t.TempDir(), "out.mp3"), nil, nil, nil, nil, nil)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestEngine_ExportSplitWritesTwoFiles(t *testing.T) {
	samples := make([]float32, 100*2)
	for i := 0; i < 100; i++ {
		samples[i*2] = 0.25
		samples[i*2+1] = -0.25
	}
	dec := fakeDecoder{rate: 100, channels: 2, samples: samples}
	e := New(fakeDevice{}, dec, nil)
	_, _, _, err := e.LoadFile("a.wav")
	require.NoError(t, err)

	dir := t.TempDir()
	outPath := filepath.Join(dir, "out.wav")
	mode := "split"
	require.NoError(t, e.ExportAudio(outPath, nil, nil, nil, nil, &mode))

	_, errL := os.Stat(filepath.Join(dir, "out_L.wav"))
	_, errR := os.Stat(filepath.Join(dir, "out_R.wav"))
	assert.NoError(t, errL)
	assert.NoError(t, errR)
}

func TestEngine_SampleRateAndChannelsReflectFirstTrack(t *testing.T) {
	dec := fakeDecoder{rate: 22050, channels: 2, samples: make([]float32, 100)}
	e := New(fakeDevice{}, dec, nil)
	_, _, _, err := e.LoadFile("a.wav")
	require.NoError(t, err)

	assert.Equal(t, uint32(22050), e.SampleRate())
	assert.Equal(t, uint8(2), e.Channels())
}

func TestEngine_EmptyStoreReportsZeroes(t *testing.T) {
	e := New(fakeDevice{}, fakeDecoder{}, nil)
	assert.Equal(t, uint32(0), e.SampleRate())
	assert.Equal(t, uint8(0), e.Channels())
	assert.Equal(t, 0.0, e.Duration())
}
