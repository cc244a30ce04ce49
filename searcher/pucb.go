package searcher

import "math"

// pucbValues scores every child slot of a node:
//
//	mean(i) + weight * prior(i) * sqrt(parentTotal) / (1 + total(i))
//
// where total(i) includes virtual loss, mean(i) is valueSum/total(i) (zero
// for unvisited children, so their score is prior-driven), and prior(i) is
// policy plus noise. The function is pure; it fills out for the full
// fixed-width arrays and the caller considers only the active prefix.
func pucbValues(parentTotal float64, visits, virtualLoss []int32, valueSum, policy, noise []float64, weight float64, out []float64) {
	bonus := weight * math.Sqrt(parentTotal)
	for i := range out {
		total := float64(visits[i] + virtualLoss[i])
		mean := 0.0
		if total > 0 {
			mean = valueSum[i] / total
		}
		out[i] = mean + (policy[i]+noise[i])*bonus/(1.0+total)
	}
}

// argmaxFloat64 returns the index of the maximum value, ties broken by the
// lowest index. Selection must be a deterministic function of the statistics.
func argmaxFloat64(values []float64) int {
	best := 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[best] {
			best = i
		}
	}
	return best
}

func argmaxInt32(values []int32) int {
	best := 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[best] {
			best = i
		}
	}
	return best
}
