package board

import "math/rand"

// ZobristTable holds the per-(color,square) random keys used to maintain
// an incremental position hash. It is built once per EngineContext and is
// read-only thereafter (design note: "Global state -> explicit handles").
type ZobristTable struct {
	// Keys[c][v] is the key XOR-ed in when vertex v becomes color c
	// (c includes Empty, which has its own key so that Empty->Black
	// actually changes the hash).
	Keys [3][Squares]uint64
}

// NewZobristTable builds a deterministic table from seed. The same seed
// always yields the same table, which is what makes cache keys and
// superko hashes reproducible across runs.
func NewZobristTable(seed uint64) *ZobristTable {
	rng := rand.New(rand.NewSource(int64(seed)))
	t := &ZobristTable{}
	for c := 0; c < 3; c++ {
		for v := 0; v < Squares; v++ {
			t.Keys[c][v] = rng.Uint64()
		}
	}
	return t
}

// Key returns the key for (c, v).
func (t *ZobristTable) Key(c Color, v Vertex) uint64 {
	return t.Keys[c][v]
}
