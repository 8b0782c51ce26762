package flac

// maxFixedOrder is the highest fixed predictor order RFC 9639 defines.
const maxFixedOrder = 4

// fixedPredict returns the order-th fixed predictor's estimate for
// samples[pos], using samples[pos-order:pos].
func fixedPredict(samples []int32, pos, order int) int32 {
	switch order {
	case 0:
		return 0
	case 1:
		return samples[pos-1]
	case 2:
		return 2*samples[pos-1] - samples[pos-2]
	case 3:
		return 3*samples[pos-1] - 3*samples[pos-2] + samples[pos-3]
	case 4:
		return 4*samples[pos-1] - 6*samples[pos-2] + 4*samples[pos-3] - samples[pos-4]
	default:
		return 0
	}
}

// fixedResiduals computes the order-th fixed predictor's residuals for
// samples[order:], leaving the first order samples (the warm-up) out.
func fixedResiduals(samples []int32, order int) []int32 {
	residuals := make([]int32, len(samples)-order)
	for i := order; i < len(samples); i++ {
		residuals[i-order] = samples[i] - fixedPredict(samples, i, order)
	}
	return residuals
}

// orderForLevel returns the fixed predictor order a compression level
// selects, per §4.5: 0->0, 1->1, 2->2, 3-4->3, 5-8->4. The order is then
// clamped down so it never exceeds blockSize.
func orderForLevel(level int, blockSize int) int {
	var order int
	switch {
	case level <= 0:
		order = 0
	case level == 1:
		order = 1
	case level == 2:
		order = 2
	case level <= 4:
		order = 3
	default:
		order = 4
	}
	if order > blockSize {
		order = blockSize
	}
	return order
}
