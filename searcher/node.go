package searcher

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// PolicyEntry pairs a candidate move with its prior probability. Policies are
// slices rather than maps so child order stays stable, which keeps selection
// reproducible.
type PolicyEntry struct {
	Action int
	Prior  float64
}

// Node is one search-tree node: aggregate visit and value statistics plus
// columnar per-child arrays, index-aligned across all columns. Child nodes
// live in the pool and are referenced by integer handle only; the node never
// owns them.
//
// The mutex makes selection and statistic updates atomic with respect to each
// other. The child-index column is additionally atomic so the expansion claim
// in the driver works without holding the node lock across a leaf evaluation.
type Node struct {
	mu sync.Mutex

	visits      int32
	virtualLoss int32
	valueSum    float64

	numChildren      int
	action           []int
	childIndex       []int32
	childValue       []float64
	childVisits      []int32
	childVirtualLoss []int32
	childValueSum    []float64
	childPolicy      []float64
	noise            []float64

	scores []float64 // selection scratch, guarded by mu
}

// NewNode allocates a node with capacity for numActions children. All columns
// are sized once and never grow, so over-capacity writes are impossible after
// expansion upholds its precondition.
func NewNode(numActions int) *Node {
	if numActions <= 0 {
		panic("node needs at least one action slot")
	}
	n := &Node{
		action:           make([]int, numActions),
		childIndex:       make([]int32, numActions),
		childValue:       make([]float64, numActions),
		childVisits:      make([]int32, numActions),
		childVirtualLoss: make([]int32, numActions),
		childValueSum:    make([]float64, numActions),
		childPolicy:      make([]float64, numActions),
		noise:            make([]float64, numActions),
		scores:           make([]float64, numActions),
	}
	for i := range n.childIndex {
		n.childIndex[i] = NotExpanded
	}
	return n
}

// Expand resets the node to a freshly expanded leaf holding the given policy.
// This is the only transition from unexpanded to expanded, and also how the
// pool recycles a node for a new position. Entries beyond the node's capacity
// are dropped and reported as a non-fatal error.
func (n *Node) Expand(policy []PolicyEntry) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.visits = 0
	n.virtualLoss = 0
	n.valueSum = 0
	for i := range n.action {
		n.action[i] = 0
		atomic.StoreInt32(&n.childIndex[i], NotExpanded)
		n.childValue[i] = 0
		n.childVisits[i] = 0
		n.childVirtualLoss[i] = 0
		n.childValueSum[i] = 0
		n.childPolicy[i] = 0
		n.noise[i] = 0
	}
	return n.setPolicy(policy)
}

// SetPolicy installs the candidate moves and their priors without the full
// reset, for re-priming an already expanded node.
func (n *Node) SetPolicy(policy []PolicyEntry) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.setPolicy(policy)
}

func (n *Node) setPolicy(policy []PolicyEntry) error {
	var err error
	if len(policy) > len(n.action) {
		err = fmt.Errorf("dropping %d moves over the %d-slot capacity", len(policy)-len(n.action), len(n.action))
		policy = policy[:len(n.action)]
	}
	for i, entry := range policy {
		n.action[i] = entry.Action
		n.childPolicy[i] = entry.Prior
	}
	n.numChildren = len(policy)
	return err
}

// UpdatePolicy overwrites the prior of every existing child. The map must
// cover every installed action; a missing one means the caller's move set and
// policy went out of sync, which is a bug, not a runtime condition.
func (n *Node) UpdatePolicy(policy map[int]float64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i := 0; i < n.numChildren; i++ {
		prior, ok := policy[n.action[i]]
		if !ok {
			panic(fmt.Sprintf("no policy for move %d", n.action[i]))
		}
		n.childPolicy[i] = prior
	}
}

// AddVirtualLoss penalizes the node and the given child for the duration of
// an in-flight simulation, steering concurrent simulations elsewhere.
func (n *Node) AddVirtualLoss(i int) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.virtualLoss++
	n.childVirtualLoss[i]++
}

// RevertVirtualLoss backs out a simulation that failed before producing a
// value. Visit counts stay untouched so failed simulations leave no phantom
// visits behind.
func (n *Node) RevertVirtualLoss(i int) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.virtualLoss--
	n.childVirtualLoss[i]--
}

// SetLeafValue stores the raw evaluation of the child's position, separate
// from the accumulating value sum.
func (n *Node) SetLeafValue(i int, value float64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.childValue[i] = value
}

// UpdateChildValue commits a simulation result to a child edge and releases
// the virtual loss applied on the way down.
func (n *Node) UpdateChildValue(i int, value float64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.childValueSum[i] += value
	n.childVisits[i]++
	n.childVirtualLoss[i]--
}

// UpdateNodeValue commits a simulation result to the node's own aggregate and
// releases the node-level virtual loss.
func (n *Node) UpdateNodeValue(value float64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.valueSum += value
	n.visits++
	n.virtualLoss--
}

// SelectNextAction returns the child with the highest PUCB score, ties broken
// at the lowest index. Virtual loss counts as visits on both sides of the
// score so in-flight simulations repel each other.
func (n *Node) SelectNextAction() int {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.numChildren == 0 {
		panic("cannot select on a node with no children")
	}
	pucbValues(float64(n.visits+n.virtualLoss), n.childVisits, n.childVirtualLoss,
		n.childValueSum, n.childPolicy, n.noise, PucbWeight, n.scores)
	return argmaxFloat64(n.scores[:n.numChildren])
}

func (n *Node) NumChildren() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.numChildren
}

func (n *Node) Visits() int32 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.visits
}

// BestMoveIndex is the index of the most visited child, ties broken at the
// lowest index.
func (n *Node) BestMoveIndex() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.bestMoveIndex()
}

func (n *Node) bestMoveIndex() int {
	if n.numChildren == 0 {
		panic("node has no children")
	}
	return argmaxInt32(n.childVisits[:n.numChildren])
}

// BestMove is the most visited move.
func (n *Node) BestMove() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.action[n.bestMoveIndex()]
}

func (n *Node) ChildMove(i int) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.action[i]
}

// ChildIndex returns the pool handle of the child's node, or NotExpanded.
func (n *Node) ChildIndex(i int) int32 {
	return atomic.LoadInt32(&n.childIndex[i])
}

// SetChildIndex publishes the pool handle of the child's node. Simulations
// spinning on an expansion claim observe the store and descend.
func (n *Node) SetChildIndex(i int, index int32) {
	atomic.StoreInt32(&n.childIndex[i], index)
}

// claimExpansion attempts to take ownership of expanding child i. Exactly one
// simulation wins; the rest keep reading ChildIndex until the handle appears.
func (n *Node) claimExpansion(i int) bool {
	return atomic.CompareAndSwapInt32(&n.childIndex[i], NotExpanded, expanding)
}

// abandonExpansion returns a claimed child to the unexpanded state after a
// failed leaf evaluation.
func (n *Node) abandonExpansion(i int) {
	atomic.StoreInt32(&n.childIndex[i], NotExpanded)
}

// ChildStat is a read-only snapshot of one child's statistics.
type ChildStat struct {
	Move      int
	Visits    int32
	Prior     float64
	MeanValue float64
}

// ChildStats snapshots every active child. Mean value is zero for unvisited
// children.
func (n *Node) ChildStats() []ChildStat {
	n.mu.Lock()
	defer n.mu.Unlock()

	stats := make([]ChildStat, n.numChildren)
	for i := 0; i < n.numChildren; i++ {
		mean := 0.0
		if n.childVisits[i] > 0 {
			mean = n.childValueSum[i] / float64(n.childVisits[i])
		}
		stats[i] = ChildStat{
			Move:      n.action[i],
			Visits:    n.childVisits[i],
			Prior:     n.childPolicy[i],
			MeanValue: mean,
		}
	}
	return stats
}

// LogSearchResult writes the visit count and mean value of every visited
// child, for post-search diagnostics.
func (n *Node) LogSearchResult(logger zerolog.Logger) {
	for _, stat := range n.ChildStats() {
		if stat.Visits == 0 {
			continue
		}
		logger.Debug().
			Int("pos", stat.Move).
			Int32("visits", stat.Visits).
			Float64("value", stat.MeanValue).
			Msg("search result")
	}
}
