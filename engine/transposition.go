package engine

import (
	"sync"

	"chess-ai/board"
)

const (
	// Entries per cluster
	clusterSize = 4

	// Default number of clusters per table
	defaultClusters = 1 << 14
)

// TransTable remembers, per position hash, the best move found and the depth it was
// found at. Iterative deepening uses it to search the previous best move first. A
// table lives for one search only.
type TransTable struct {
	mu           sync.Mutex
	entries      []TTEntry
	clusterCount uint64
}

type TTEntry struct {
	Hash  uint64
	Depth int8
	Move  board.Move
}

func NewTransTable(clusters int) *TransTable {
	if clusters <= 0 {
		clusters = defaultClusters
	}
	return &TransTable{
		entries:      make([]TTEntry, clusters*clusterSize),
		clusterCount: uint64(clusters),
	}
}

// Move returns the stored best move for hash, or NullMove.
func (tt *TransTable) Move(hash uint64) board.Move {
	if tt == nil {
		return board.NullMove
	}
	tt.mu.Lock()
	defer tt.mu.Unlock()
	start := int(hash%tt.clusterCount) * clusterSize
	for i := 0; i < clusterSize; i++ {
		if e := &tt.entries[start+i]; e.Hash == hash {
			return e.Move
		}
	}
	return board.NullMove
}

// Store records m for hash. An existing entry for hash is updated, then an empty
// slot is used, otherwise the shallowest entry in the cluster is replaced.
func (tt *TransTable) Store(hash uint64, depth int, m board.Move) {
	if tt == nil || m.IsNull() {
		return
	}
	tt.mu.Lock()
	defer tt.mu.Unlock()
	base := int(hash%tt.clusterCount) * clusterSize
	target := -1

	for i := 0; i < clusterSize; i++ {
		if tt.entries[base+i].Hash == hash {
			target = base + i
			break
		}
	}
	if target == -1 {
		for i := 0; i < clusterSize; i++ {
			if tt.entries[base+i].Hash == 0 {
				target = base + i
				break
			}
		}
	}
	if target == -1 {
		target = base
		minDepth := tt.entries[base].Depth
		for i := 1; i < clusterSize; i++ {
			if tt.entries[base+i].Depth < minDepth {
				minDepth = tt.entries[base+i].Depth
				target = base + i
			}
		}
	}
	if e := &tt.entries[target]; e.Hash == hash && int(e.Depth) > depth {
		return
	}
	tt.entries[target] = TTEntry{Hash: hash, Depth: int8(clamp(depth, 0, 127)), Move: m}
}
