// Command soundly-cli is a thin pflag-driven entrypoint exercising the
// engine facade end to end: load a file, optionally delete a region,
// then export the result.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/soundlycore/engine/engine"
	"github.com/soundlycore/engine/internal/config"
	"github.com/soundlycore/engine/playback"
	"github.com/soundlycore/engine/wav"
)

type wavDecoder struct{}

func (wavDecoder) Decode(path string) (uint32, uint8, []float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, nil, err
	}
	defer f.Close()

	r, err := wav.NewReader(f)
	if err != nil {
		return 0, 0, nil, err
	}
	return r.Decode()
}

func main() {
	var (
		configPath       = pflag.StringP("config", "c", "", "path to an engine.yaml config file")
		inputPath        = pflag.StringP("input", "i", "", "input WAV file to load")
		outputPath       = pflag.StringP("output", "o", "", "export destination (.wav/.flac/.mp3)")
		deleteStart      = pflag.Float64("delete-start", -1, "start of a region to delete, in seconds")
		deleteEnd        = pflag.Float64("delete-end", -1, "end of a region to delete, in seconds")
		compressionLevel = pflag.Int("compression-level", -1, "FLAC compression level 0-8, overrides config")
		bitrate          = pflag.Int("bitrate", -1, "MP3 bitrate in kbps, overrides config")
		channelMode      = pflag.String("channel-mode", "", "auto|stereo|mono|split|mono_to_stereo")
		help             = pflag.BoolP("help", "h", false, "display help text")
	)
	pflag.Usage = func() {
		fmt.Fprintln(os.Stderr, "soundly-cli: load, edit, and export audio through the soundly core engine")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *help || *inputPath == "" {
		pflag.Usage()
		return
	}

	logger := log.New(os.Stderr)

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			logger.Fatal("failed to load config", "path", *configPath, "err", err)
		}
		cfg = loaded
	}
	if *compressionLevel >= 0 {
		cfg.DefaultCompressionLevel = *compressionLevel
	}
	if *bitrate >= 0 {
		cfg.DefaultBitrateKbps = *bitrate
	}

	e := engine.New(playback.PortAudioDevice{}, wavDecoder{}, logger)

	rate, channels, mismatched, err := e.LoadFile(*inputPath)
	if err != nil {
		logger.Fatal("load failed", "path", *inputPath, "err", err)
	}
	logger.Info("loaded", "rate", rate, "channels", channels, "mismatchedRate", mismatched)

	if *deleteStart >= 0 && *deleteEnd > *deleteStart {
		if err := e.DeleteRegion(*deleteStart, *deleteEnd, []int{0}); err != nil {
			logger.Fatal("delete region failed", "err", err)
		}
	}

	if *outputPath == "" {
		return
	}

	level := cfg.DefaultCompressionLevel
	kbps := cfg.DefaultBitrateKbps
	var modePtr *string
	if *channelMode != "" {
		modePtr = channelMode
	}
	if err := e.ExportAudio(*outputPath, nil, nil, &level, &kbps, modePtr); err != nil {
		logger.Fatal("export failed", "path", *outputPath, "err", err)
	}
	logger.Info("exported", "path", *outputPath)
}
