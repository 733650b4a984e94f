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

// Package saxpy implements the saxpy3 multiply engine: C(:,j) is built by
// scaling and accumulating columns of A for every nonzero of B(:,j), into
// either a dense Gustavson workspace (one slot per row) or a sparse open-
// addressed hash table, selected per task by internal/partition. This is a
// direct, un-templated port of the accumulation loops in GB_AxB_saxpy3.c.
package saxpy

import (
	"sort"

	"modernc.org/sortutil"
)

// Entry is one gathered (row, value) contribution, the output of
// AccumulateGustavson/AccumulateHash before it is appended to C.
type Entry[T any] struct {
	Row int64
	Val T
}

// AccumulateGustavson computes column j's contribution using a dense
// workspace Hf/Hx of length cvlen, with mark as the "currently valid"
// sentinel (Hf[i] == mark means row i is occupied for this column). add is
// the semiring's additive monoid, mult its multiplicative operator;
// anyMonoid skips accumulation past the first write, matching the ANY
// monoid's short-circuit semantics.
func AccumulateGustavson[X, Y, Z any](
	Hf []int64, Hx []Z, mark int64,
	AStart, AEnd, Ai []int64, Ax []X,
	bRowsK []int64, bValsK []Y,
	mult func(X, Y) Z, add func(Z, Z) Z, anyMonoid bool,
) {
	for bi, k := range bRowsK {
		bkj := bValsK[bi]
		for p := AStart[k]; p < AEnd[k]; p++ {
			i := Ai[p]
			if i < 0 {
				continue // zombie
			}
			t := mult(Ax[p], bkj)
			if Hf[i] != mark {
				Hf[i] = mark
				Hx[i] = t
			} else if !anyMonoid {
				Hx[i] = add(Hx[i], t)
			}
		}
	}
}

// GatherGustavson reads back every row marked occupied in [0, cvlen),
// already in ascending row order since it scans the dense workspace
// in order.
func GatherGustavson[Z any](Hf []int64, Hx []Z, mark int64, cvlen int64) []Entry[Z] {
	out := make([]Entry[Z], 0)
	for i := int64(0); i < cvlen; i++ {
		if Hf[i] == mark {
			out = append(out, Entry[Z]{Row: i, Val: Hx[i]})
		}
	}
	return out
}

// hashSlot returns the open-addressing probe start for row i into a table
// of size hsize (a power of two), the same multiplicative hash
// GB_HASH uses: (i * prime) & (hsize-1).
func hashSlot(i, hsize int64) int64 {
	const prime = 0x9E3779B97F4A7C15 // golden-ratio constant, same family as GB_HASH
	return int64(uint64(i)*prime) & (hsize - 1)
}

// AccumulateHash computes column j's contribution into a sparse open-
// addressed table of size hsize (Hi/Hf/Hx all length hsize), linearly
// probing on collision. Not safe for concurrent use by more than one
// goroutine; fine-task teams must serialize through AccumulateHashAtomic.
func AccumulateHash[X, Y, Z any](
	Hi []int64, Hf []int64, Hx []Z, mark int64, hsize int64,
	AStart, AEnd, Ai []int64, Ax []X,
	bRowsK []int64, bValsK []Y,
	mult func(X, Y) Z, add func(Z, Z) Z, anyMonoid bool,
) {
	for bi, k := range bRowsK {
		bkj := bValsK[bi]
		for p := AStart[k]; p < AEnd[k]; p++ {
			i := Ai[p]
			if i < 0 {
				continue
			}
			t := mult(Ax[p], bkj)
			slot := hashSlot(i, hsize)
			for {
				if Hf[slot] != mark {
					Hf[slot] = mark
					Hi[slot] = i
					Hx[slot] = t
					break
				}
				if Hi[slot] == i {
					if !anyMonoid {
						Hx[slot] = add(Hx[slot], t)
					}
					break
				}
				slot = (slot + 1) & (hsize - 1)
			}
		}
	}
}

// GatherHash reads back every occupied slot and returns entries sorted by
// row index, using a composite (row, slot) key sorted via
// modernc.org/sortutil so ties are broken deterministically and the
// result can be appended directly to C's column in GraphBLAS's required
// ascending-row order.
func GatherHash[Z any](Hi []int64, Hf []int64, Hx []Z, mark int64, hsize int64) []Entry[Z] {
	composite := make([]int64, 0)
	for slot := int64(0); slot < hsize; slot++ {
		if Hf[slot] == mark {
			composite = append(composite, Hi[slot]*hsize+slot)
		}
	}
	sort.Sort(sortutil.Int64Slice(composite))

	out := make([]Entry[Z], len(composite))
	for idx, key := range composite {
		slot := key % hsize
		out[idx] = Entry[Z]{Row: Hi[slot], Val: Hx[slot]}
	}
	return out
}
