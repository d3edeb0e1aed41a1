// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package arena

// DualArena pairs a hot key arena (walked on every lookup) with a cold
// value arena (touched only on a hit), so that the common-case scan over
// keys stays in a small working set.
type DualArena struct {
	Keys   *Arena
	Values *Arena
}

// NewDual creates a DualArena, pre-sizing the key arena to keyBytes and
// the value arena to valueBytes.
func NewDual(keyBytes, valueBytes int) *DualArena {
	return &DualArena{
		Keys:   Init(keyBytes),
		Values: Init(valueBytes),
	}
}

// ChunkStats summarizes one arena's occupancy, for diagnostic logging.
type ChunkStats struct {
	Used, Capacity, NumChunks int
}

func statsOf(a *Arena) ChunkStats {
	return ChunkStats{Used: a.Used(), Capacity: a.Capacity(), NumChunks: a.NumChunks()}
}

// Stats returns per-arena occupancy for the key and value arenas.
func (d *DualArena) Stats() (keys, values ChunkStats) {
	return statsOf(d.Keys), statsOf(d.Values)
}

// Reset empties both arenas without freeing their chunks.
func (d *DualArena) Reset() {
	d.Keys.Reset()
	d.Values.Reset()
}

// Free releases both arenas.
func (d *DualArena) Free() {
	d.Keys.Free()
	d.Values.Free()
}
