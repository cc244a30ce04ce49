package searcher

// Hyperparameters for the PUCB search.

// PucbWeight scales the exploration term of the PUCB score.
const PucbWeight = 1.0

// Dirichlet noise mixed into the root priors.
const (
	NoiseAlpha  = 0.15
	NoiseWeight = 0.25
)

// Child-index sentinels. Real pool handles are always >= 0.
const (
	// NotExpanded marks a child with no node in the pool yet.
	NotExpanded int32 = -1
	// expanding marks a child whose expansion a simulation has claimed.
	expanding int32 = -2
)

// maxSearchDepth bounds a single descent. Positions can repeat along a
// simulated line (the tree does not apply superko), so a cycle must not hang
// a worker.
const maxSearchDepth = 512
