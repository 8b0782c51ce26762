package flac

import "errors"

// ErrInvalidConfig is returned when an encoder parameter is out of range,
// such as a compression level above 8.
var ErrInvalidConfig = errors.New("flac: invalid encoder configuration")

// ErrTooShort is returned when the input has fewer than 16 samples per
// channel -- too few to form a valid block.
var ErrTooShort = errors.New("flac: input shorter than minimum block size")

// minSamplesPerChannel is the smallest valid FLAC input length.
const minSamplesPerChannel = 16
