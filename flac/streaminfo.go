package flac

import "encoding/binary"

// StreamInfo is the mandatory first FLAC metadata block: stream-wide
// parameters plus the MD5 of the unencoded audio.
type StreamInfo struct {
	MinBlockSize       uint16
	MaxBlockSize       uint16
	MinFrameSize       uint32 // 24 bits; 0 = unknown
	MaxFrameSize       uint32 // 24 bits; 0 = unknown
	SampleRate         uint32 // 20 bits
	Channels           uint8  // stored as Channels-1 in 3 bits
	BitsPerSample      uint8  // stored as BitsPerSample-1 in 5 bits
	TotalSamples       uint64 // 36 bits, per channel
	MD5                [16]byte
}

// writeStreamInfo writes the "fLaC" magic and a single last-metadata-block
// STREAMINFO block (34 bytes of payload).
func writeStreamInfo(buf []byte, si StreamInfo) []byte {
	buf = append(buf, 'f', 'L', 'a', 'C')
	buf = append(buf, 0x80, 0x00, 0x00, 0x22) // last-block flag, type 0, length 34

	var info [34]byte
	binary.BigEndian.PutUint16(info[0:2], si.MinBlockSize)
	binary.BigEndian.PutUint16(info[2:4], si.MaxBlockSize)

	info[4] = byte(si.MinFrameSize >> 16)
	info[5] = byte(si.MinFrameSize >> 8)
	info[6] = byte(si.MinFrameSize)
	info[7] = byte(si.MaxFrameSize >> 16)
	info[8] = byte(si.MaxFrameSize >> 8)
	info[9] = byte(si.MaxFrameSize)

	ch := uint64(si.Channels - 1)
	bps := uint64(si.BitsPerSample - 1)
	packed := (uint64(si.SampleRate) << 44) | (ch << 41) | (bps << 36) | (si.TotalSamples & 0xFFFFFFFFF)
	for i := 0; i < 8; i++ {
		info[10+i] = byte(packed >> uint(56-8*i))
	}

	copy(info[18:34], si.MD5[:])

	return append(buf, info[:]...)
}
