package playback

import "github.com/gordonklaus/portaudio"

// PortAudioDevice opens output streams through portaudio's default host
// device, in the pull-mode shape §4.4 requires: the host negotiates its
// own block size and repeatedly calls back with an interleaved float32
// slice to fill. Initialize/Terminate are the caller's responsibility
// (once per process), matching portaudio's own lifecycle contract.
type PortAudioDevice struct{}

func (PortAudioDevice) Open(sampleRate uint32, channels uint8) (Stream, error) {
	stream := &portAudioStream{}
	s, err := portaudio.OpenDefaultStream(0, int(channels), float64(sampleRate), 0, stream.pull)
	if err != nil {
		return nil, err
	}
	stream.stream = s
	return stream, nil
}

type portAudioStream struct {
	stream   *portaudio.Stream
	callback func(out []float32)
}

func (s *portAudioStream) pull(out []float32) {
	if s.callback != nil {
		s.callback(out)
	}
}

func (s *portAudioStream) Start(callback func(out []float32)) error {
	s.callback = callback
	return s.stream.Start()
}

func (s *portAudioStream) Close() error {
	if err := s.stream.Stop(); err != nil {
		return err
	}
	return s.stream.Close()
}
