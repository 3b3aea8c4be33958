package board

// Board is the hot, mutable position data structure every simulation works
// on a local copy of. Stones are tracked with an arena+index union-find
// (flat arrays, no pointers) for cache-friendly group bookkeeping.
type Board struct {
	zobrist *ZobristTable

	square [Squares]Color
	// next forms an intrusive circular singly-linked list per group: walking
	// next from any member visits every stone of that member's group exactly
	// once before returning to the start.
	next [Squares]Vertex
	// parent[v] is the root vertex of v's group. Always points directly at
	// the current root (reassigned eagerly on merge, never a chain to walk).
	parent [Squares]Vertex
	// groupStones/groupLibs are meaningful only when indexed by a root vertex.
	groupStones [Squares]int
	groupLibs   [Squares]int

	hash uint64
	// lastCapturedVertex is set by playMove on every legal placement and consulted by
	// UpdateBoard to report the simple-ko vertex.
	lastCapturedVertex Vertex

	// scratch liberty-dedup buffer for merge recomputation, generation-tagged
	// so it never needs clearing between calls.
	scratchGen     [Squares]uint32
	scratchCounter uint32
}

// NewBoard builds an empty board bound to the given Zobrist table.
func NewBoard(z *ZobristTable) *Board {
	b := &Board{zobrist: z}
	b.Reset()
	return b
}

// Reset clears every square to Empty and recomputes the hash from scratch.
func (b *Board) Reset() {
	var hash uint64
	for v := Vertex(0); v < Squares; v++ {
		b.square[v] = Empty
		b.next[v] = v
		b.parent[v] = v
		b.groupStones[v] = 0
		b.groupLibs[v] = 0
		hash ^= b.zobrist.Key(Empty, v)
	}
	b.hash = hash
}

// Clone returns a deep, independent copy. Because every field is a fixed
// array, a plain value copy is already deep except for the shared,
// read-only zobrist pointer.
func (b *Board) Clone() *Board {
	cp := *b
	return &cp
}

// Square returns the color occupying v.
func (b *Board) Square(v Vertex) Color { return b.square[v] }

// KoHash returns the Tromp-Taylor positional hash of the current position.
func (b *Board) KoHash() uint64 { return b.hash }

// neighborsInto fills buf with v's on-board 4-neighbours and returns how
// many were written (2 at a corner, 3 on an edge, 4 interior).
func neighborsInto(v Vertex, buf *[4]Vertex) int {
	row, col := v.Row(), v.Col()
	n := 0
	if row > 0 {
		buf[n] = v - Size
		n++
	}
	if row < Size-1 {
		buf[n] = v + Size
		n++
	}
	if col > 0 {
		buf[n] = v - 1
		n++
	}
	if col < Size-1 {
		buf[n] = v + 1
		n++
	}
	return n
}

// rootOf returns the current group root for an occupied vertex.
func (b *Board) rootOf(v Vertex) Vertex { return b.parent[v] }

// IsSuicide reports whether placing color at v would leave that stone's
// group (after any resulting captures) with zero liberties.
func (b *Board) IsSuicide(v Vertex, color Color) bool {
	if b.square[v] != Empty {
		return true
	}
	clone := b.Clone()
	_, legal := clone.playMove(color, v)
	return !legal
}

// FastTestMove returns the ko-hash that would result from playing color at
// v, or ok=false if v is occupied or the move is suicide. It never mutates
// the receiver.
func (b *Board) FastTestMove(color Color, v Vertex) (hash uint64, ok bool) {
	if b.square[v] != Empty {
		return 0, false
	}
	clone := b.Clone()
	if _, legal := clone.playMove(color, v); !legal {
		return 0, false
	}
	return clone.hash, true
}

// UpdateBoard plays a legal move in place and returns the simple-ko vertex
// (the single stone just captured, when the placing stone ends up with
// exactly one stone and one liberty), or PASS (-1) otherwise. The caller is
// responsible for having already established legality.
func (b *Board) UpdateBoard(color Color, v Vertex) Vertex {
	captured, legal := b.playMove(color, v)
	if !legal {
		return PASS
	}
	root := b.rootOf(v)
	if captured == 1 && b.groupStones[root] == 1 && b.groupLibs[root] == 1 {
		return b.lastCapturedVertex
	}
	return PASS
}

// playMove is the shared implementation behind FastTestMove/IsSuicide
// (on a throwaway clone) and UpdateBoard (on the real board). It returns
// the number of stones captured and whether the placement was legal
// (not occupied, not suicide). An occupied vertex or a single-stone
// suicide leaves the board exactly as it was; a suicide that joins
// existing friendly stones removes that whole merged group.
func (b *Board) playMove(color Color, v Vertex) (captured int, legal bool) {
	if b.square[v] != Empty {
		return 0, false
	}

	// Step 1: place the stone, updating the hash.
	b.hash ^= b.zobrist.Key(Empty, v)
	b.hash ^= b.zobrist.Key(color, v)
	b.square[v] = color

	// Step 2: v starts life as its own singleton group.
	b.next[v] = v
	b.parent[v] = v
	b.groupStones[v] = 1

	var nbrs [4]Vertex
	n := neighborsInto(v, &nbrs)

	libs := 0
	for i := 0; i < n; i++ {
		if b.square[nbrs[i]] == Empty {
			libs++
		}
	}
	b.groupLibs[v] = libs

	// Step 3: v is no longer a liberty of any neighbouring group.
	var decremented [4]Vertex
	nd := 0
	for i := 0; i < n; i++ {
		nb := nbrs[i]
		if b.square[nb] == Empty {
			continue
		}
		root := b.rootOf(nb)
		seen := false
		for j := 0; j < nd; j++ {
			if decremented[j] == root {
				seen = true
				break
			}
		}
		if !seen {
			b.groupLibs[root]--
			decremented[nd] = root
			nd++
		}
	}

	// Step 4: resolve captures and friendly merges.
	opponent := Opponent(color)
	capturedVertex := PASS
	totalCaptured := 0
	for i := 0; i < n; i++ {
		nb := nbrs[i]
		c := b.square[nb]
		if c == opponent {
			root := b.rootOf(nb)
			if b.groupLibs[root] <= 0 {
				size := b.groupStones[root]
				first := b.removeString(root)
				totalCaptured += size
				capturedVertex = first
			}
		} else if c == color {
			vRoot := b.rootOf(v)
			nbRoot := b.rootOf(nb)
			if vRoot != nbRoot {
				b.mergeStrings(vRoot, nbRoot)
			}
		}
	}

	// Step 5: suicide check.
	vRoot := b.rootOf(v)
	if b.groupLibs[vRoot] == 0 {
		b.removeString(vRoot)
		// The placed stone's group is removed: the vertex is empty again
		// and the hash reflects that via removeString's own XOR bookkeeping
		// plus the initial placement XOR. Friendly stones merged into the
		// group in step 4 are removed with it.
		return 0, false
	}

	b.lastCapturedVertex = capturedVertex
	return totalCaptured, true
}

// removeString clears every stone of the group rooted at root, crediting a
// liberty to each distinct bordering foreign group per stone removed, and
// returns the vertex of the first (in list order) removed stone — callers
// use this as "the" captured vertex only when exactly one stone total was
// captured across the whole move.
func (b *Board) removeString(root Vertex) Vertex {
	var members [Squares]Vertex
	count := 0
	cur := root
	for {
		members[count] = cur
		count++
		cur = b.next[cur]
		if cur == root {
			break
		}
	}

	color := b.square[root]
	first := members[0]
	for i := 0; i < count; i++ {
		m := members[i]
		b.hash ^= b.zobrist.Key(color, m)
		b.hash ^= b.zobrist.Key(Empty, m)
		b.square[m] = Empty
	}

	var nbrs [4]Vertex
	for i := 0; i < count; i++ {
		m := members[i]
		n := neighborsInto(m, &nbrs)
		var credited [4]Vertex
		nc := 0
		for j := 0; j < n; j++ {
			nb := nbrs[j]
			if b.square[nb] == Empty {
				continue
			}
			fr := b.rootOf(nb)
			seen := false
			for k := 0; k < nc; k++ {
				if credited[k] == fr {
					seen = true
					break
				}
			}
			if !seen {
				b.groupLibs[fr]++
				credited[nc] = fr
				nc++
			}
		}
	}

	b.groupStones[root] = 0
	b.groupLibs[root] = 0
	return first
}

// mergeStrings splices the groups rooted at a and b together, keeping the
// larger as the surviving root, and recomputes its liberty count exactly
// (a plain sum would double-count liberties shared by both groups).
func (b *Board) mergeStrings(a, bRoot Vertex) {
	big, small := a, bRoot
	if b.groupStones[small] > b.groupStones[big] {
		big, small = small, big
	}

	// Splice the two circular lists into one by swapping next-pointers of
	// any one node from each cycle.
	b.next[big], b.next[small] = b.next[small], b.next[big]

	b.groupStones[big] += b.groupStones[small]

	var members [Squares]Vertex
	count := 0
	cur := big
	for {
		b.parent[cur] = big
		members[count] = cur
		count++
		cur = b.next[cur]
		if cur == big {
			break
		}
	}

	b.scratchCounter++
	gen := b.scratchCounter
	libs := 0
	var nbrs [4]Vertex
	for i := 0; i < count; i++ {
		n := neighborsInto(members[i], &nbrs)
		for j := 0; j < n; j++ {
			nb := nbrs[j]
			if b.square[nb] != Empty {
				continue
			}
			if b.scratchGen[nb] != gen {
				b.scratchGen[nb] = gen
				libs++
			}
		}
	}
	b.groupLibs[big] = libs
	b.groupLibs[small] = 0
}

// IsEye reports whether v is a strict eye for color: every on-board
// 4-neighbour is color's own stone, and (the diagonal corner rule) interior points need at
// least 3 of their 4 diagonals to be color's own stone while edge/corner
// points need every diagonal present to be color's own.
func (b *Board) IsEye(v Vertex, color Color) bool {
	if b.square[v] != Empty {
		return false
	}
	var nbrs [4]Vertex
	n := neighborsInto(v, &nbrs)
	for i := 0; i < n; i++ {
		if b.square[nbrs[i]] != color {
			return false
		}
	}

	row, col := v.Row(), v.Col()
	type diag struct{ dr, dc int }
	diags := []diag{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	present, owned := 0, 0
	for _, d := range diags {
		r, c := row+d.dr, col+d.dc
		if r < 0 || r >= Size || c < 0 || c >= Size {
			continue
		}
		present++
		if b.square[VertexAt(r, c)] == color {
			owned++
		}
	}
	if present == 4 {
		return owned >= 3
	}
	return owned == present
}

// AreaScore computes Tromp-Taylor area score from Black's perspective:
// stones-plus-territory(Black) - stones-plus-territory(White) - komi.
func (b *Board) AreaScore(komi float32) float32 {
	var visited [Squares]bool
	var blackArea, whiteArea int

	var stack [Squares]Vertex
	for v := Vertex(0); v < Squares; v++ {
		switch b.square[v] {
		case Black:
			blackArea++
		case White:
			whiteArea++
		case Empty:
			if visited[v] {
				continue
			}
			// Flood-fill the empty region, tracking which colors border it.
			sp := 0
			stack[sp] = v
			sp++
			visited[v] = true
			var region [Squares]Vertex
			rn := 0
			touchesBlack, touchesWhite := false, false
			for sp > 0 {
				sp--
				cur := stack[sp]
				region[rn] = cur
				rn++
				var nbrs [4]Vertex
				nn := neighborsInto(cur, &nbrs)
				for i := 0; i < nn; i++ {
					nb := nbrs[i]
					switch b.square[nb] {
					case Empty:
						if !visited[nb] {
							visited[nb] = true
							stack[sp] = nb
							sp++
						}
					case Black:
						touchesBlack = true
					case White:
						touchesWhite = true
					}
				}
			}
			switch {
			case touchesBlack && !touchesWhite:
				blackArea += rn
			case touchesWhite && !touchesBlack:
				whiteArea += rn
			}
		}
	}
	return float32(blackArea) - float32(whiteArea) - komi
}
