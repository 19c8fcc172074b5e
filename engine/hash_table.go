// Copyright 2025 The Lumina Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// hash_table.go implements the shared transposition table.
//
// The table is shared by all search workers without locks. Each entry
// is two 64-bit words: the packed payload and the position hash xored
// with the payload. A reader xors the two words back and compares with
// the probing hash; a torn mix of key and payload fails the check and
// reads as a miss. Races may lose writes but never corrupt memory.

package engine

import (
	"math/bits"
	"sync/atomic"
	"unsafe"
)

var (
	// DefaultHashTableSizeMB is the default table size in MB.
	DefaultHashTableSizeMB = 64
	// MaxHashTableSizeMB bounds SetHashSize requests.
	MaxHashTableSizeMB = 1 << 20
)

type hashBound uint8

const (
	noEntry    hashBound = iota
	failedHigh           // search failed high, lower bound
	failedLow            // search failed low, upper bound
	exact                // exact score is known
)

// getBound returns the bound for score relative to α and β.
func getBound(α, β, score int32) hashBound {
	if score <= α {
		return failedLow
	}
	if score >= β {
		return failedHigh
	}
	return exact
}

// hashEntry is the decoded form of a transposition table record.
type hashEntry struct {
	move   Move      // best move found
	score  int16     // score of the position; mate scores are ply-adjusted by the caller
	static int16     // static evaluation of the position
	depth  int8      // remaining search depth
	kind   hashBound // bound of score
	gen    uint8     // generation tag, stepped by 4 each search
}

// pack encodes the entry payload into one word.
// Layout: move(16) | score(16) | static(16) | depth(8) | gen+bound(8).
func (e hashEntry) pack() uint64 {
	return uint64(e.move) |
		uint64(uint16(e.score))<<16 |
		uint64(uint16(e.static))<<32 |
		uint64(uint8(e.depth))<<48 |
		uint64(e.gen|uint8(e.kind))<<56
}

func unpackEntry(data uint64) hashEntry {
	genBound := uint8(data >> 56)
	return hashEntry{
		move:   Move(data),
		score:  int16(data >> 16),
		static: int16(data >> 32),
		depth:  int8(data >> 48),
		kind:   hashBound(genBound & 3),
		gen:    genBound &^ 3,
	}
}

// slot is the stored form: key = hash ^ data guards against torn
// reads, data is the packed payload.
type slot struct {
	key  uint64
	data uint64
}

const clusterSize = 3

// cluster groups three entries into one cache line.
type cluster struct {
	entry [clusterSize]slot
	_     [64 - clusterSize*16]byte
}

// HashTable is the shared transposition table.
// One long-lived table object owns the array; workers hold a
// read-only reference to the table and race freely on its slots.
type HashTable struct {
	buf         []byte // backing storage, kept alive for the aligned view
	clusters    []cluster
	numClusters uint64
	generation  uint32 // current age tag in the high 6 bits of a byte
}

// NewHashTable builds a transposition table of about sizeMB megabytes,
// rounded down to a whole number of 64-byte clusters.
func NewHashTable(sizeMB int) (*HashTable, error) {
	if sizeMB <= 0 || sizeMB > MaxHashTableSizeMB {
		return nil, ErrTableAllocation
	}
	n := uint64(sizeMB) << 20 / uint64(unsafe.Sizeof(cluster{}))
	if n == 0 {
		return nil, ErrTableAllocation
	}

	// Over-allocate one cluster so the used window can be shifted to a
	// 64-byte boundary. The Go allocator guarantees only word alignment.
	buf := make([]byte, (n+1)*uint64(unsafe.Sizeof(cluster{})))
	off := (64 - uintptr(unsafe.Pointer(&buf[0]))%64) % 64
	first := (*cluster)(unsafe.Pointer(&buf[off]))
	return &HashTable{
		buf:         buf,
		clusters:    unsafe.Slice(first, n),
		numClusters: n,
	}, nil
}

// Size returns the number of entries in the table.
func (ht *HashTable) Size() int {
	return int(ht.numClusters) * clusterSize
}

// Clear removes all entries.
func (ht *HashTable) Clear() {
	for i := range ht.clusters {
		ht.clusters[i] = cluster{}
	}
	atomic.StoreUint32(&ht.generation, 0)
}

// NewSearch advances the generation counter, aging all existing
// entries without clearing them. The step of 4 keeps the low two
// bits free for the bound.
func (ht *HashTable) NewSearch() {
	gen := atomic.LoadUint32(&ht.generation)
	atomic.StoreUint32(&ht.generation, (gen+4)&0xff&^3)
}

func (ht *HashTable) gen() uint8 {
	return uint8(atomic.LoadUint32(&ht.generation))
}

// index folds the hash into a cluster number without requiring a
// power-of-two table size: the high word of hash * numClusters is
// uniform over [0, numClusters).
func (ht *HashTable) index(hash uint64) uint64 {
	hi, _ := bits.Mul64(hash, ht.numClusters)
	return hi
}

// prefetch touches the cluster of an upcoming hash so the cache line
// is resident before probe. Go exposes no prefetch intrinsic, so a
// plain load is the closest portable equivalent.
func (ht *HashTable) prefetch(hash uint64) {
	c := &ht.clusters[ht.index(hash)]
	_ = atomic.LoadUint64(&c.entry[0].key)
}

// get returns the entry for the position hash, if present. On a hit
// the entry's generation tag is refreshed to the current one.
func (ht *HashTable) get(hash uint64) (hashEntry, bool) {
	c := &ht.clusters[ht.index(hash)]
	gen := ht.gen()
	for i := range c.entry {
		key := atomic.LoadUint64(&c.entry[i].key)
		data := atomic.LoadUint64(&c.entry[i].data)
		if key^data != hash || data == 0 {
			continue
		}
		e := unpackEntry(data)
		if e.gen != gen {
			e.gen = gen
			nd := e.pack()
			atomic.StoreUint64(&c.entry[i].data, nd)
			atomic.StoreUint64(&c.entry[i].key, hash^nd)
		}
		return e, true
	}
	return hashEntry{}, false
}

// put stores an entry for hash. The least valuable slot of the
// cluster is replaced; a slot already holding this position is
// overwritten only by a deeper or fresher result.
func (ht *HashTable) put(hash uint64, e hashEntry) {
	c := &ht.clusters[ht.index(hash)]
	gen := ht.gen()
	e.gen = gen

	replace := -1
	replaceValue := int32(1 << 30)
	for i := range c.entry {
		key := atomic.LoadUint64(&c.entry[i].key)
		data := atomic.LoadUint64(&c.entry[i].data)
		if data == 0 {
			// Empty slot.
			replace, replaceValue = i, -(1 << 30)
			break
		}
		old := unpackEntry(data)
		if key^data == hash {
			// Same position: a deeper or fresher result evicts a
			// shallower one.
			penalty := int32(0)
			if old.gen != gen {
				penalty = 4
			}
			if int32(e.depth)-penalty > int32(old.depth)-4 {
				ht.store(&c.entry[i], hash, e)
			}
			return
		}
		// Replacement value: stale entries are 8 points cheaper.
		v := int32(old.depth)
		if old.gen == gen {
			v += 8
		}
		if v < replaceValue {
			replace, replaceValue = i, v
		}
	}

	if replace >= 0 {
		ht.store(&c.entry[replace], hash, e)
	}
}

func (ht *HashTable) store(s *slot, hash uint64, e hashEntry) {
	data := e.pack()
	atomic.StoreUint64(&s.data, data)
	atomic.StoreUint64(&s.key, hash^data)
}

// hashfull estimates the fraction of the table in use by the current
// search, in permille. Samples the first thousand entries.
func (ht *HashTable) hashfull() int {
	gen := ht.gen()
	cnt, total := 0, 0
	for i := 0; i < int(ht.numClusters) && total < 1000; i++ {
		for j := range ht.clusters[i].entry {
			data := atomic.LoadUint64(&ht.clusters[i].entry[j].data)
			if data != 0 && unpackEntry(data).gen == gen {
				cnt++
			}
			total++
		}
	}
	if total == 0 {
		return 0
	}
	return cnt * 1000 / total
}
