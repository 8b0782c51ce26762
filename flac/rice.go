package flac

import "math/bits"

// maxRiceParameter is the largest parameter representable in the 4-bit
// Rice parameter field; 0b1111 is reserved as the escape marker.
const maxRiceParameter = 14

const escapeMarker = 0xF

// zigzag folds a signed residual into a nonnegative integer: non-negative
// values map to even numbers, negative values to odd numbers.
func zigzag(r int32) uint32 {
	if r >= 0 {
		return uint32(r) << 1
	}
	return (uint32(-r-1) << 1) | 1
}

// riceParameterFor estimates the Rice parameter for a partition: the mean
// absolute residual rounded down to the nearest power of two, backed off
// by one step when the mean undershoots the midpoint of that power of two.
// The result is not clamped to maxRiceParameter -- callers that need a
// storable 4-bit field must check against maxRiceParameter themselves and
// fall back to the escape path when it's exceeded.
func riceParameterFor(residuals []int32) int {
	if len(residuals) == 0 {
		return 0
	}
	var sum uint64
	for _, r := range residuals {
		if r < 0 {
			sum += uint64(-r)
		} else {
			sum += uint64(r)
		}
	}
	mean := sum / uint64(len(residuals))
	if mean == 0 {
		return 0
	}
	param := bits.Len64(mean) - 1
	if param > 0 && mean < uint64(1)<<uint(param-1) {
		param--
	}
	return param
}

// escapeBitsNeeded returns the smallest signed bit width, minimum 2, that
// represents every residual in the partition.
func escapeBitsNeeded(residuals []int32) int {
	width := 2
	for _, r := range residuals {
		for !fitsSigned(r, width) {
			width++
		}
	}
	return width
}

func fitsSigned(v int32, width int) bool {
	lo := -(int64(1) << uint(width-1))
	hi := int64(1)<<uint(width-1) - 1
	return int64(v) >= lo && int64(v) <= hi
}

// encodeRiceResidual zigzag-folds r and writes it as unary-quotient +
// param-bit remainder.
func encodeRiceResidual(bw *bitWriter, r int32, param int) {
	folded := zigzag(r)
	bw.writeUnary(folded >> uint(param))
	if param > 0 {
		bw.writeBits(uint64(folded&((1<<uint(param))-1)), param)
	}
}

// partitionOrderForLevel picks the starting partition order for a
// compression level, then shrinks it until blockSize divides evenly into
// 1<<order partitions of more than predictorOrder and at least 4 samples
// each, so the first partition, which also spans the warm-up, still holds
// at least one residual. Rejecting
// orders that don't divide blockSize evenly keeps every residual
// accounted for, including in a final, shorter-than-usual block.
func partitionOrderForLevel(level, blockSize, predictorOrder int) int {
	maxByBlockSize := bits.Len(uint(blockSize)) - 1
	if maxByBlockSize < 0 {
		maxByBlockSize = 0
	}

	var order int
	switch {
	case level <= 0:
		order = 0
	case level <= 2:
		order = min3(2, maxByBlockSize, 8)
	case level <= 5:
		order = min3(4, maxByBlockSize, 8)
	default:
		order = min3(6, maxByBlockSize, 8)
	}

	for order > 0 {
		partitionSamples := blockSize >> uint(order)
		divides := blockSize%(1<<uint(order)) == 0
		if divides && partitionSamples > predictorOrder && partitionSamples >= 4 {
			break
		}
		order--
	}
	return order
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// encodePartitionedResiduals writes the residual coding method (always
// 0b00, 4-bit Rice parameters), partition order, and every partition's
// Rice- or escape-coded residuals.
func encodePartitionedResiduals(bw *bitWriter, residuals []int32, blockSize, predictorOrder, level int) {
	order := partitionOrderForLevel(level, blockSize, predictorOrder)

	bw.writeBits(0, 2) // coding method 00
	bw.writeBits(uint64(order), 4)

	numPartitions := 1 << uint(order)
	defaultSamples := blockSize >> uint(order)

	idx := 0
	for p := 0; p < numPartitions; p++ {
		n := defaultSamples
		if p == 0 {
			n -= predictorOrder
		}
		partition := residuals[idx : idx+n]
		idx += n

		encodePartition(bw, partition)
	}
}

func encodePartition(bw *bitWriter, partition []int32) {
	param := riceParameterFor(partition)
	if param > maxRiceParameter {
		writeEscapePartition(bw, partition)
		return
	}
	bw.writeBits(uint64(param), 4)
	for _, r := range partition {
		encodeRiceResidual(bw, r, param)
	}
}

func writeEscapePartition(bw *bitWriter, partition []int32) {
	bw.writeBits(escapeMarker, 4)
	width := escapeBitsNeeded(partition)
	bw.writeBits(uint64(width-1), 5)
	for _, r := range partition {
		bw.writeBitsSigned(int64(r), width)
	}
}
