package searcher

import (
	"errors"
	"fmt"
	"sync"
)

// ErrPoolExhausted reports that every node in the pool is in use. The search
// keeps running; it just stops growing the tree.
var ErrPoolExhausted = errors.New("node pool exhausted")

// Pool owns every node of a search tree. Nodes are handed out and referenced
// by int32 handles, never by pointer ownership, so the tree carries no
// ownership cycles and a Reset recycles everything at once.
//
// A pool belongs to one search at a time. Create one per searcher and reset
// it between independent searches; it is deliberately not a package singleton.
type Pool struct {
	mu    sync.Mutex
	nodes []*Node
	used  int
}

// NewPool preallocates size nodes, each with numActions child slots.
func NewPool(size, numActions int) *Pool {
	if size <= 0 {
		panic("pool size must be positive")
	}
	nodes := make([]*Node, size)
	for i := range nodes {
		nodes[i] = NewNode(numActions)
	}
	return &Pool{nodes: nodes}
}

// Allocate hands out the next free handle. The node still holds whatever the
// previous search left in it; callers must Expand it before use.
func (p *Pool) Allocate() (int32, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.used == len(p.nodes) {
		return NotExpanded, ErrPoolExhausted
	}
	index := int32(p.used)
	p.used++
	return index, nil
}

// Node resolves a handle. Handles outside the allocated range are a caller
// bug.
func (p *Pool) Node(index int32) *Node {
	p.mu.Lock()
	defer p.mu.Unlock()

	if index < 0 || int(index) >= p.used {
		panic(fmt.Sprintf("node handle %d out of range [0, %d)", index, p.used))
	}
	return p.nodes[index]
}

// Reset recycles every node. Outstanding handles from the previous search
// must not be used afterwards.
func (p *Pool) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.used = 0
}

// Used is the number of allocated nodes.
func (p *Pool) Used() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.used
}

// Size is the pool capacity.
func (p *Pool) Size() int {
	return len(p.nodes)
}
