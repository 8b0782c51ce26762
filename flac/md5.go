package flac

import "crypto/md5"

// sampleMD5 returns the MD5 of the given interleaved int16 samples in
// little-endian byte order, with no frame, subframe, or padding bytes
// mixed in -- the digest covers unencoded audio only, per RFC 9639's
// STREAMINFO.md5_signature.
func sampleMD5(samples []int16) [16]byte {
	h := md5.New()
	buf := make([]byte, 2*len(samples))
	for i, s := range samples {
		buf[2*i] = byte(uint16(s))
		buf[2*i+1] = byte(uint16(s) >> 8)
	}
	h.Write(buf)
	var out [16]byte
	copy(out[:], h.Sum(nil))
	return out
}
