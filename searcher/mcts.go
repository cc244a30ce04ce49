package searcher

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"github.com/k2311060/Maple/game"
)

// ErrNoLegalMoves reports a search started from a position with nothing to
// search.
var ErrNoLegalMoves = errors.New("no legal moves at the root")

type Option func(m *MCTS)

// MCTS runs PUCB tree search: parallel simulations descend a shared tree
// under virtual loss, leaves are expanded from the evaluator's policy, and
// values are backed up with the perspective flipped each ply.
type MCTS struct {
	goroutines  int
	simulations int
	duration    time.Duration
	noiseAlpha  float64
	noiseWeight float64
	seed        uint64

	pool      *Pool
	evaluator Evaluator
	rng       *rand.Rand
	root      int32
}

func WithGoroutines(goroutines int) Option {
	return func(m *MCTS) {
		if goroutines > 0 {
			m.goroutines = goroutines
		}
	}
}

func WithSimulations(simulations int) Option {
	return func(m *MCTS) {
		if simulations > 0 {
			m.simulations = simulations
		}
	}
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

// WithNoise overrides the root Dirichlet noise. A zero weight disables it,
// for deterministic searches in evaluation matches and tests.
func WithNoise(alpha, weight float64) Option {
	return func(m *MCTS) {
		m.noiseAlpha = alpha
		m.noiseWeight = weight
	}
}

func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.seed = seed
	}
}

func NewMCTS(pool *Pool, evaluator Evaluator, options ...Option) *MCTS {
	if pool == nil {
		panic("searcher needs a node pool")
	}
	if evaluator == nil {
		panic("searcher needs an evaluator")
	}
	m := &MCTS{ // Default values
		goroutines:  1,
		noiseAlpha:  NoiseAlpha,
		noiseWeight: NoiseWeight,
		seed:        uint64(time.Now().UnixNano()),
		pool:        pool,
		evaluator:   evaluator,
		root:        NotExpanded,
	}
	for _, option := range options {
		option(m)
	}
	if m.simulations <= 0 && m.duration <= 0 {
		panic("must specify search simulations or duration")
	}
	// One stream for the searcher's lifetime: seeded runs stay reproducible
	// while successive searches still draw fresh root noise.
	m.rng = rand.New(rand.NewSource(m.seed))
	return m
}

// Result carries the statistics a finished search exposes: the recommended
// move, a per-child snapshot, and the visit distribution usable as a training
// target.
type Result struct {
	BestMove   int
	RootVisits int32
	Children   []ChildStat
	Metrics    SearchMetrics
}

// PolicyTarget is the visit-count-normalized move distribution.
func (r *Result) PolicyTarget() map[int]float64 {
	total := int32(0)
	for _, child := range r.Children {
		total += child.Visits
	}
	target := make(map[int]float64, len(r.Children))
	if total == 0 {
		return target
	}
	for _, child := range r.Children {
		target[child.Move] = float64(child.Visits) / float64(total)
	}
	return target
}

// Search runs simulations from the given position and returns the collected
// statistics. The pool is reset first: each search owns the whole tree.
func (m *MCTS) Search(state game.State) (*Result, error) {
	m.pool.Reset()
	rootIndex, err := m.pool.Allocate()
	if err != nil {
		return nil, err
	}
	m.root = rootIndex
	root := m.pool.Node(rootIndex)

	policy, value, err := m.evaluator.Evaluate(state)
	if err == nil {
		err = validateEvaluation(state, policy, value)
	}
	if err != nil {
		return nil, fmt.Errorf("evaluate root: %w", err)
	}
	if len(policy) == 0 {
		return nil, ErrNoLegalMoves
	}
	if err := root.Expand(policy); err != nil {
		log.Warn().Err(err).Msg("root policy truncated")
	}
	root.ApplyNoise(m.rng, m.noiseAlpha, m.noiseWeight)

	collector := newMetricsCollector()
	collector.Start()
	if m.simulations > 0 {
		m.iterate(state, collector)
	} else {
		m.countdown(state, collector)
	}

	root.LogSearchResult(log.Logger)

	return &Result{
		BestMove:   root.BestMove(),
		RootVisits: root.Visits(),
		Children:   root.ChildStats(),
		Metrics:    collector.Complete(m.pool.Used()),
	}, nil
}

// iterate runs a fixed number of simulations across the worker goroutines.
func (m *MCTS) iterate(state game.State, collector *metricsCollector) {
	task := make(chan struct{}, m.simulations)
	for i := 0; i < m.simulations; i++ {
		task <- struct{}{}
	}
	close(task)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range task {
				m.runSimulation(state, collector)
			}
		}()
	}
	wg.Wait()
}

// countdown runs simulations until the search duration elapses. In-flight
// simulations complete and commit their statistics.
func (m *MCTS) countdown(state game.State, collector *metricsCollector) {
	done := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
					m.runSimulation(state, collector)
				}
			}
		}()
	}

	<-time.After(m.duration)
	close(done)
	wg.Wait()
}

func (m *MCTS) runSimulation(state game.State, collector *metricsCollector) {
	if err := m.simulate(state); err != nil {
		collector.AddFailure()
		log.Warn().Err(err).Msg("simulation aborted")
		return
	}
	collector.AddSimulation()
}

type pathStep struct {
	node  *Node
	child int
}

// simulate descends from the root under virtual loss until it expands a new
// leaf or reaches a terminal node, then backs the leaf value up the visited
// path. On evaluator failure the virtual loss is unwound and the error
// surfaces as a per-simulation failure.
func (m *MCTS) simulate(rootState game.State) error {
	state := rootState
	node := m.pool.Node(m.root)
	path := make([]pathStep, 0, 64)

	var value float64
	for {
		if node.NumChildren() == 0 || len(path) >= maxSearchDepth {
			// Terminal node, or a simulated line cycling through
			// repeated positions. Either way score it as a leaf.
			v, err := m.evaluateValue(state)
			if err != nil {
				m.unwind(path)
				return err
			}
			value = v
			break
		}

		child := node.SelectNextAction()
		node.AddVirtualLoss(child)
		path = append(path, pathStep{node: node, child: child})
		state = state.Play(node.ChildMove(child))

		next, leafValue, expanded, err := m.follow(node, child, state)
		if err != nil {
			m.unwind(path)
			return err
		}
		if expanded {
			value = leafValue
			break
		}
		node = next
	}

	m.backup(path, value)
	return nil
}

// follow resolves the edge to the child node, expanding it if this simulation
// wins the claim on the unexpanded slot. Losers of the claim wait for the
// winner to publish the handle, then descend the now-expanded child.
func (m *MCTS) follow(node *Node, child int, state game.State) (next *Node, value float64, expanded bool, err error) {
	for {
		index := node.ChildIndex(child)
		if index >= 0 {
			return m.pool.Node(index), 0, false, nil
		}
		if index == NotExpanded && node.claimExpansion(child) {
			value, err := m.expandLeaf(node, child, state)
			return nil, value, true, err
		}
		runtime.Gosched()
	}
}

// expandLeaf evaluates the claimed leaf, installs a pool node for it, and
// publishes the handle. A full pool degrades to evaluating the leaf without
// growing the tree.
func (m *MCTS) expandLeaf(parent *Node, child int, state game.State) (float64, error) {
	policy, value, err := m.evaluator.Evaluate(state)
	if err == nil {
		err = validateEvaluation(state, policy, value)
	}
	if err != nil {
		parent.abandonExpansion(child)
		return 0, fmt.Errorf("evaluate leaf: %w", err)
	}

	index, err := m.pool.Allocate()
	if err != nil {
		parent.abandonExpansion(child)
		parent.SetLeafValue(child, value)
		return value, nil
	}

	leaf := m.pool.Node(index)
	if err := leaf.Expand(policy); err != nil {
		log.Warn().Err(err).Msg("leaf policy truncated")
	}
	parent.SetLeafValue(child, value)
	parent.SetChildIndex(child, index)
	return value, nil
}

func (m *MCTS) evaluateValue(state game.State) (float64, error) {
	policy, value, err := m.evaluator.Evaluate(state)
	if err == nil {
		err = validateEvaluation(state, policy, value)
	}
	if err != nil {
		return 0, fmt.Errorf("evaluate leaf: %w", err)
	}
	return value, nil
}

// backup commits the leaf value along the descent path. value is the win rate
// for the side to move at the leaf, so it flips perspective at every ply on
// the way up. Each update call also releases the matching virtual loss.
func (m *MCTS) backup(path []pathStep, value float64) {
	for i := len(path) - 1; i >= 0; i-- {
		value = 1.0 - value
		path[i].node.UpdateChildValue(path[i].child, value)
		path[i].node.UpdateNodeValue(value)
	}
}

// unwind releases the virtual loss applied along an aborted simulation
// without committing any visits.
func (m *MCTS) unwind(path []pathStep) {
	for i := len(path) - 1; i >= 0; i-- {
		path[i].node.RevertVirtualLoss(path[i].child)
	}
}
