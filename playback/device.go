package playback

// Device opens an output stream at a fixed sample rate and channel
// count. The production implementation binds to portaudio; tests use a
// fake that calls back synchronously.
type Device interface {
	Open(sampleRate uint32, channels uint8) (Stream, error)
}

// Stream is a single open output stream. Start registers the pull
// callback the audio subsystem invokes with a mutable interleaved
// float32 slice sized by the subsystem; Close releases the stream.
type Stream interface {
	Start(callback func(out []float32)) error
	Close() error
}
