package flac

// blockSizeForLevel returns the fixed block size a compression level
// selects: 1152 for levels 0-2 (favoring lower latency), 4096 for 3-8,
// clamped to [16, totalSamplesPerChannel].
func blockSizeForLevel(level int, totalSamplesPerChannel int) int {
	blockSize := 4096
	if level <= 2 {
		blockSize = 1152
	}
	if blockSize > totalSamplesPerChannel {
		blockSize = totalSamplesPerChannel
	}
	if blockSize < minSamplesPerChannel {
		blockSize = minSamplesPerChannel
	}
	return blockSize
}

// blockSizeCode returns the 4-bit block-size field value for a frame
// header. 0x06/0x07 mean "explicit 8-bit/16-bit size follows".
func blockSizeCode(blockSize int) uint8 {
	switch blockSize {
	case 192:
		return 0x01
	case 576:
		return 0x02
	case 1152:
		return 0x03
	case 2304:
		return 0x04
	case 4608:
		return 0x05
	case 256:
		return 0x08
	case 512:
		return 0x09
	case 1024:
		return 0x0A
	case 2048:
		return 0x0B
	case 4096:
		return 0x0C
	case 8192:
		return 0x0D
	case 16384:
		return 0x0E
	case 32768:
		return 0x0F
	default:
		if blockSize <= 256 {
			return 0x06
		}
		return 0x07
	}
}

// sampleRateCode returns the 4-bit sample-rate field value for a frame
// header. Codes 0x0C/0x0D/0x0E mean an explicit rate follows in kHz, Hz,
// or tens of Hz respectively.
func sampleRateCode(sampleRate uint32) uint8 {
	switch sampleRate {
	case 88200:
		return 0x01
	case 176400:
		return 0x02
	case 192000:
		return 0x03
	case 8000:
		return 0x04
	case 16000:
		return 0x05
	case 22050:
		return 0x06
	case 24000:
		return 0x07
	case 32000:
		return 0x08
	case 44100:
		return 0x09
	case 48000:
		return 0x0A
	case 96000:
		return 0x0B
	default:
		if sampleRate%1000 == 0 && sampleRate/1000 < 256 {
			return 0x0C
		}
		if sampleRate < 65536 {
			return 0x0D
		}
		return 0x0E
	}
}

// sampleSizeCode16 is the 3-bit sample-size field value for 16-bit
// samples, the only sample size this encoder produces.
const sampleSizeCode16 = 0x04
