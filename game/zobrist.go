package game

// ZobristTable holds the random keys used to hash board positions. Tables are
// seeded deterministically so hashes are stable across runs, which keeps
// recorded games comparable.
type ZobristTable struct {
	size   int
	stones []uint64 // two keys per intersection, black then white
	side   uint64
}

type splitmix64 struct {
	state uint64
}

func (s *splitmix64) next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

func NewZobrist(boardSize int) *ZobristTable {
	rng := splitmix64{state: 0x9e3779b97f4a7c15 ^ uint64(boardSize)}
	table := &ZobristTable{
		size:   boardSize,
		stones: make([]uint64, boardSize*boardSize*2),
	}
	for i := range table.stones {
		table.stones[i] = rng.next()
	}
	table.side = rng.next()
	return table
}

// Stone returns the key for a stone of the given color at a flat coordinate.
// XOR it into a hash to place the stone and again to remove it.
func (z *ZobristTable) Stone(pos int, color Stone) uint64 {
	if pos < 0 || pos >= z.size*z.size {
		panic("zobrist: position out of range")
	}
	index := pos * 2
	if color == White {
		index++
	}
	return z.stones[index]
}

// Side returns the side-to-move key.
func (z *ZobristTable) Side() uint64 {
	return z.side
}
