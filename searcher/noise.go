package searcher

import (
	"math"

	"golang.org/x/exp/rand"
)

// ApplyNoise mixes Dirichlet exploration noise into the node's priors. The
// noise is additive and not renormalized; selection reads policy + noise as
// the exploration prior. Called on the root once per search.
func (n *Node) ApplyNoise(rng *rand.Rand, alpha, weight float64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.numChildren == 0 || weight <= 0 {
		return
	}

	sum := 0.0
	for i := 0; i < n.numChildren; i++ {
		sample := gammaSample(rng, alpha)
		n.noise[i] = sample
		sum += sample
	}
	if sum <= 0 {
		sum = 1
	}
	for i := 0; i < n.numChildren; i++ {
		n.noise[i] = weight * n.noise[i] / sum
	}
}

// gammaSample draws from Gamma(alpha, 1) with the Marsaglia-Tsang method,
// boosting alpha < 1 through Gamma(alpha+1).
func gammaSample(rng *rand.Rand, alpha float64) float64 {
	if alpha <= 0 {
		panic("gamma shape must be positive")
	}
	if alpha < 1 {
		u := rng.Float64()
		for u == 0 {
			u = rng.Float64()
		}
		return gammaSample(rng, alpha+1) * math.Pow(u, 1/alpha)
	}

	d := alpha - 1.0/3.0
	c := 1.0 / math.Sqrt(9.0*d)
	for {
		x := rng.NormFloat64()
		v := 1.0 + c*x
		if v <= 0 {
			continue
		}
		v = v * v * v
		u := rng.Float64()
		if u < 1.0-0.0331*x*x*x*x {
			return d * v
		}
		if math.Log(u) < 0.5*x*x+d*(1.0-v+math.Log(v)) {
			return d * v
		}
	}
}
