// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package workspace allocates the per-task hash/Gustavson accumulators the
// saxpy and dot engines use. All tables for one multiply come from a
// single contiguous allocation split by offsets, the same arrangement
// GB_AxB_saxpy3 uses for its Hi_all/Hf_all/Hx_all arrays (and the same
// bump-allocator idea as sbl8/sublation's runtime.Arena), so that failure
// handling is a single free and parallel tasks never touch the allocator.
package workspace

import "unsafe"

// cacheLinePadBytes is the padding added at the end of each per-task table
// to avoid false sharing between adjacent tasks' hash tables, matching the
// hx_pad/hi_pad constants in GB_AxB_saxpy3.
const cacheLinePadBytes = 64

// Table is one task's accumulator: a Gustavson table (Size == cvlen, Hi
// unused) or a Hash table (Size a power-of-two-derived size, Hi recovers
// the row index occupying each slot). Hf[p] == mark means slot p is
// occupied for the vector currently being accumulated; Hx[p] holds the
// accumulated value.
type Table[T any] struct {
	Hi        []int64 // row index stored at each hash slot; nil for Gustavson
	Hf        []int64 // occupancy marker, compared against a per-task mark
	Hx        []T     // accumulated value at each slot/row
	Size      int64   // hash table size h, or cvlen for Gustavson
	Gustavson bool
}

// Arena owns every Table for one multiply call. Tables are carved from
// three flat backing slices so the whole workspace is released by letting
// the Arena go out of scope.
type Arena[T any] struct {
	hiAll  []int64
	hfAll  []int64
	hxAll  []T
	Tables []Table[T]
}

// New allocates an Arena with one Table per entry in sizes/gustavson
// (same length, same index). hiPad/hxPad are expressed in elements so the
// byte padding is independent of sizeof(T).
func New[T any](sizes []int64, gustavson []bool) *Arena[T] {
	if len(sizes) != len(gustavson) {
		panic("workspace: sizes and gustavson must have equal length")
	}

	var zero T
	elemSize := int64(unsafe.Sizeof(zero))
	if elemSize == 0 {
		elemSize = 1
	}
	hxPad := cacheLinePadBytes / elemSize
	if hxPad < 1 {
		hxPad = 1
	}
	const hiPad = cacheLinePadBytes / 8 // int64 elements

	var hiTotal, hfTotal, hxTotal int64
	for i, size := range sizes {
		hfTotal += size + hiPad
		if !gustavson[i] {
			hiTotal += size + hiPad
		}
		hxTotal += size + hxPad
	}

	a := &Arena[T]{
		hiAll:  make([]int64, hiTotal),
		hfAll:  make([]int64, hfTotal),
		hxAll:  make([]T, hxTotal),
		Tables: make([]Table[T], len(sizes)),
	}

	var hiOff, hfOff, hxOff int64
	for i, size := range sizes {
		t := Table[T]{Size: size, Gustavson: gustavson[i]}
		t.Hf = a.hfAll[hfOff : hfOff+size]
		hfOff += size + hiPad
		if !gustavson[i] {
			t.Hi = a.hiAll[hiOff : hiOff+size]
			hiOff += size + hiPad
		}
		t.Hx = a.hxAll[hxOff : hxOff+size]
		hxOff += size + hxPad
		a.Tables[i] = t
	}
	return a
}

// Share replaces a follower fine task's Hi/Hf/Hx, Size and Gustavson with
// the master task's, so every task in a fine-task team accumulates into the
// same hash table.
func (a *Arena[T]) Share(follower, master int) {
	a.Tables[follower].Hf = a.Tables[master].Hf
	a.Tables[follower].Hx = a.Tables[master].Hx
	a.Tables[follower].Hi = a.Tables[master].Hi
	a.Tables[follower].Size = a.Tables[master].Size
	a.Tables[follower].Gustavson = a.Tables[master].Gustavson
}
