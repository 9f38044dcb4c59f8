package engine

import (
	"sync/atomic"

	gm "github.com/Oliverans/GooseEngineMG/goosemg"
)

const (
	boundLower = 1
	boundUpper = 2
	boundExact = boundLower | boundUpper

	clusterSize = 4
)

// ttEntry is a 16-byte slot. The check word stores hash^data so that a
// torn read (key from one write, data from another) fails the recompute
// and is treated as a miss. No locks anywhere.
type ttEntry struct {
	check uint64
	data  uint64
}

// data layout: move(32) | score+32768(16) | depth(6) | bound(2) | gen(8)
func packEntry(move gm.Move, score, depth, bound int, gen uint8) uint64 {
	d := uint64(Clamp(depth, 0, 63))
	return uint64(uint32(move)) |
		uint64(uint16(score+32768))<<32 |
		d<<48 |
		uint64(bound&3)<<54 |
		uint64(gen)<<56
}

func unpackMove(data uint64) gm.Move { return gm.Move(uint32(data)) }
func unpackScore(data uint64) int    { return int(uint16(data>>32)) - 32768 }
func unpackDepth(data uint64) int    { return int(data >> 48 & 63) }
func unpackBound(data uint64) int    { return int(data >> 54 & 3) }
func unpackGen(data uint64) uint8    { return uint8(data >> 56) }

type TransTable struct {
	slots     []ttEntry
	clusters  uint64
	megabytes int
	gen       uint8
}

func roundPowerOfTwo(size uint64) uint64 {
	var x uint64 = 1
	for x<<1 <= size {
		x <<= 1
	}
	return x
}

// NewTransTable allocates a table of the given size. The slot array is a
// single contiguous allocation, indexed by key modulo the cluster count.
func NewTransTable(megabytes int) *TransTable {
	clusters := roundPowerOfTwo(uint64(megabytes) * 1024 * 1024 / (16 * clusterSize))
	if clusters == 0 {
		clusters = 1
	}
	return &TransTable{
		slots:     make([]ttEntry, clusters*clusterSize),
		clusters:  clusters,
		megabytes: megabytes,
	}
}

// SizeMB reports the size the table was requested with.
func (tt *TransTable) SizeMB() int {
	return tt.megabytes
}

// Clear zeroes every slot and bumps the generation.
func (tt *TransTable) Clear() {
	for i := range tt.slots {
		tt.slots[i] = ttEntry{}
	}
	tt.gen++
}

// IncGen ages the table between root searches.
func (tt *TransTable) IncGen() {
	tt.gen++
}

// probe scans the cluster for a matching, untorn entry.
func (tt *TransTable) probe(key uint64) (slot *ttEntry, data uint64, ok bool) {
	base := (key % tt.clusters) * clusterSize
	for i := uint64(0); i < clusterSize; i++ {
		e := &tt.slots[base+i]
		check := atomic.LoadUint64(&e.check)
		d := atomic.LoadUint64(&e.data)
		if d != 0 && check^d == key {
			return e, d, true
		}
	}
	return nil, 0, false
}

// Retrieve implements the cutoff probe. It reports true only when the
// stored depth covers the request and the bound proves a result for the
// (alpha, beta) window; the stored move is exported whenever the entry
// matches, so callers get an ordering move even on a failed probe.
func (tt *TransTable) Retrieve(key uint64, move *gm.Move, score *int, alpha, beta, depth, ply int) bool {
	slot, data, ok := tt.probe(key)
	if !ok {
		return false
	}
	*move = unpackMove(data)
	if unpackDepth(data) < depth {
		return false
	}

	sc := unpackScore(data)
	// mate scores are stored distance-adjusted; normalize back to this ply
	if sc > MaxEval {
		sc -= ply
	} else if sc < -MaxEval {
		sc += ply
	}

	bound := unpackBound(data)
	usable := bound == boundExact ||
		(bound == boundLower && sc >= beta) ||
		(bound == boundUpper && sc <= alpha)
	if !usable {
		return false
	}

	*score = sc
	if unpackGen(data) != tt.gen {
		fresh := data&^(uint64(0xFF)<<56) | uint64(tt.gen)<<56
		atomic.StoreUint64(&slot.data, fresh)
		atomic.StoreUint64(&slot.check, key^fresh)
	}
	return true
}

// RetrieveMove exports the stored move for ordering, if any entry matches.
func (tt *TransTable) RetrieveMove(key uint64, move *gm.Move) bool {
	_, data, ok := tt.probe(key)
	if !ok || unpackMove(data) == 0 {
		return false
	}
	*move = unpackMove(data)
	return true
}

// Store writes an entry. Same-key entries are superseded at equal or
// greater depth (or by an exact bound); otherwise the victim is an empty
// slot, then a slot from an earlier generation, then the shallowest depth.
func (tt *TransTable) Store(key uint64, move gm.Move, score, bound, depth, ply int) {
	if score > MaxEval {
		score += ply
	} else if score < -MaxEval {
		score -= ply
	}

	base := (key % tt.clusters) * clusterSize
	var victim *ttEntry
	var victimData uint64

	for i := uint64(0); i < clusterSize; i++ {
		e := &tt.slots[base+i]
		check := atomic.LoadUint64(&e.check)
		d := atomic.LoadUint64(&e.data)
		if d != 0 && check^d == key {
			if depth < unpackDepth(d) && bound != boundExact {
				return
			}
			// keep the old move when an upper-bound write carries none
			if move == 0 {
				move = unpackMove(d)
			}
			victim = e
			break
		}
		if victim == nil || betterVictim(d, victimData, tt.gen) {
			victim = e
			victimData = d
		}
	}

	data := packEntry(move, score, depth, bound, tt.gen)
	atomic.StoreUint64(&victim.data, data)
	atomic.StoreUint64(&victim.check, key^data)
}

// betterVictim reports whether candidate data marks a slot more worth
// replacing than the current choice.
func betterVictim(candidate, current uint64, gen uint8) bool {
	if candidate == 0 {
		return true
	}
	if current == 0 {
		return false
	}
	candOld := unpackGen(candidate) != gen
	curOld := unpackGen(current) != gen
	if candOld != curOld {
		return candOld
	}
	return unpackDepth(candidate) < unpackDepth(current)
}
