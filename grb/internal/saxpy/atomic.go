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

package saxpy

import (
	"sync"
	"sync/atomic"
	"unsafe"
)

// atomicUpdate provides a lock-free compare-and-swap update for a scalar of
// any 4- or 8-byte type, by punning it onto a same-size unsigned integer,
// the Go analogue of GB_ATOMIC_COMPARE_EXCHANGE's integer-pun CAS loop in
// GB_AxB_saxpy3.c. Scalars of any other size fall back to a shared
// mutex.
func atomicUpdate[Z any](slot *Z, fallback *sync.Mutex, f func(Z) Z) {
	switch unsafe.Sizeof(*slot) {
	case 4:
		p := (*uint32)(unsafe.Pointer(slot))
		for {
			old := atomic.LoadUint32(p)
			oldZ := *(*Z)(unsafe.Pointer(&old))
			newZ := f(oldZ)
			newBits := *(*uint32)(unsafe.Pointer(&newZ))
			if atomic.CompareAndSwapUint32(p, old, newBits) {
				return
			}
		}
	case 8:
		p := (*uint64)(unsafe.Pointer(slot))
		for {
			old := atomic.LoadUint64(p)
			oldZ := *(*Z)(unsafe.Pointer(&old))
			newZ := f(oldZ)
			newBits := *(*uint64)(unsafe.Pointer(&newZ))
			if atomic.CompareAndSwapUint64(p, old, newBits) {
				return
			}
		}
	default:
		fallback.Lock()
		*slot = f(*slot)
		fallback.Unlock()
	}
}

// FineTeam coordinates several fine tasks accumulating into one shared
// Hi/Hf/Hx table for the same costly column. Mutex guards the fallback in
// atomicUpdate for scalars that are not 4 or 8 bytes wide, and the claim of
// a fresh slot (the Hf CAS and the first Hi/Hx writes happen together under
// it, so claiming is serialized, while Hx updates to an already-claimed
// slot proceed lock-free).
type FineTeam struct {
	mu sync.Mutex
}

// AccumulateHashAtomic is AccumulateHash's concurrency-safe counterpart,
// used when several fine tasks in the same team process disjoint entry
// ranges of the same column into a shared table. anyMonoid tasks skip the
// update entirely once a slot is claimed, since any further contribution
// to that row is redundant (Multiply sets anyMonoid when the semiring's
// additive monoid has OpCodeAny).
func AccumulateHashAtomic[X, Y, Z any](
	team *FineTeam,
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
				team.mu.Lock()
				if atomic.CompareAndSwapInt64(&Hf[slot], markFree(Hf, slot, mark), mark) {
					Hi[slot] = i
					Hx[slot] = t
					team.mu.Unlock()
					break
				}
				// the CAS failed under the lock, so the slot is fully claimed
				sameRow := Hi[slot] == i
				team.mu.Unlock()
				if sameRow {
					if !anyMonoid {
						atomicUpdate(&Hx[slot], &team.mu, func(old Z) Z { return add(old, t) })
					}
					break
				}
				slot = (slot + 1) & (hsize - 1)
			}
		}
	}
}

// AccumulateGustavsonAtomic is AccumulateGustavson's concurrency-safe
// counterpart for a fine-task team whose column degenerated to a dense
// Gustavson table (UseGustavson reported true, so HSize == cvlen): each
// row index i addresses its own slot directly, so claiming occupancy is a
// single CAS on Hf[i] (made under the team mutex together with the first
// Hx[i] write) with no hash probe sequence and no Hi bookkeeping, unlike
// AccumulateHashAtomic's open-addressed table.
func AccumulateGustavsonAtomic[X, Y, Z any](
	team *FineTeam,
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
				continue
			}
			t := mult(Ax[p], bkj)
			team.mu.Lock()
			if atomic.CompareAndSwapInt64(&Hf[i], markFree(Hf, i, mark), mark) {
				Hx[i] = t
				team.mu.Unlock()
				continue
			}
			team.mu.Unlock()
			if !anyMonoid {
				atomicUpdate(&Hx[i], &team.mu, func(old Z) Z { return add(old, t) })
			}
		}
	}
}

// markFree reads the current value at Hf[slot] if it is not yet mark, so
// the caller's CompareAndSwap only succeeds against a genuinely unclaimed
// slot (any value other than mark counts as free, matching the "mark"
// generation-counter convention used to logically clear Hf between calls
// without rewriting it).
func markFree(Hf []int64, slot int64, mark int64) int64 {
	old := atomic.LoadInt64(&Hf[slot])
	if old == mark {
		return mark + 1 // guaranteed mismatch: CAS below will fail and fall through to the claimed branch
	}
	return old
}
