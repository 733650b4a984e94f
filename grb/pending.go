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

package grb

import "sort"

// RemoveElement marks the entry at (i, j) as a zombie if present. The
// deletion is not visible to algebraic operators but the slot is not
// reclaimed until Wait runs, matching the zombie/tombstone model of
// spec.md §4.5.
func (m *Matrix[T]) RemoveElement(i, j int64) {
	k, ok := m.Find(j)
	if !ok {
		return
	}
	for p := m.Ap[k]; p < m.Ap[k+1]; p++ {
		if RowIndex(m.Ai[p]) == i && !IsZombie(m.Ai[p]) {
			m.Ai[p] = ^m.Ai[p]
			m.zombies++
			return
		}
	}
}

// SetPendingOp installs the binary operator used to combine duplicate
// pending tuples at the same (i, j) when Wait assembles them. A nil op
// means later insertions overwrite earlier ones for the same position.
func (m *Matrix[T]) SetPendingOp(op *BinaryOp[T, T, T]) {
	m.pendingOp = op
}

// SetElement buffers an insertion of x at (i, j) as a pending tuple rather
// than materializing it immediately; Wait must be called before the
// matrix can be used as a Multiply operand. This mirrors GrB_Matrix_setElement's
// deferred-assembly behavior in the original engine.
func (m *Matrix[T]) SetElement(i, j int64, x T) {
	m.pending = append(m.pending, pendingTuple[T]{i: i, j: j, x: x})
}

// Wait assembles any pending tuples into m's compressed form and discards
// zombies, returning m to a pending-free state. Multiply requires this to
// have been called on every operand (spec.md §4.5); it is idempotent.
func (m *Matrix[T]) Wait() error {
	if !m.HasPending() {
		return nil
	}

	type entry = struct {
		i, j int64
		x    T
	}
	entries := make([]entry, 0, m.NNZ()+int64(len(m.pending)))

	if m.isHyper {
		for k := int64(0); k < m.nvec; k++ {
			j := m.Ah[k]
			for p := m.Ap[k]; p < m.Ap[k+1]; p++ {
				if IsZombie(m.Ai[p]) {
					continue
				}
				entries = append(entries, entry{i: m.Ai[p], j: j, x: m.Ax[p]})
			}
		}
	} else {
		for k := int64(0); k < m.nvec; k++ {
			for p := m.Ap[k]; p < m.Ap[k+1]; p++ {
				if IsZombie(m.Ai[p]) {
					continue
				}
				entries = append(entries, entry{i: m.Ai[p], j: k, x: m.Ax[p]})
			}
		}
	}
	for _, t := range m.pending {
		entries = append(entries, entry{i: t.i, j: t.j, x: t.x})
	}

	sort.SliceStable(entries, func(a, b int) bool {
		if entries[a].j != entries[b].j {
			return entries[a].j < entries[b].j
		}
		return entries[a].i < entries[b].i
	})

	// merge duplicates at the same (i, j) using pendingOp, last-write-wins
	// when no combiner was installed
	merged := entries[:0]
	for _, e := range entries {
		if n := len(merged); n > 0 && merged[n-1].i == e.i && merged[n-1].j == e.j {
			if m.pendingOp != nil {
				merged[n-1].x = m.pendingOp.Mult(merged[n-1].x, e.x)
			} else {
				merged[n-1].x = e.x
			}
			continue
		}
		merged = append(merged, e)
	}

	rebuildFromSorted(m, merged)
	m.zombies = 0
	m.pending = nil
	return nil
}

func rebuildFromSorted[T any](m *Matrix[T], merged []struct {
	i, j int64
	x    T
}) {
	if m.isHyper {
		ah := make([]int64, 0, m.vdim)
		ap := make([]int64, 1, m.vdim+1)
		ai := make([]int64, 0, len(merged))
		ax := make([]T, 0, len(merged))
		idx := 0
		for idx < len(merged) {
			j := merged[idx].j
			ah = append(ah, j)
			for idx < len(merged) && merged[idx].j == j {
				ai = append(ai, merged[idx].i)
				ax = append(ax, merged[idx].x)
				idx++
			}
			ap = append(ap, int64(len(ai)))
		}
		m.Ah = ah
		m.Ap = ap
		m.Ai = ai
		m.Ax = ax
		m.nvec = int64(len(ah))
		return
	}

	ap := make([]int64, m.vdim+1)
	ai := make([]int64, 0, len(merged))
	ax := make([]T, 0, len(merged))
	idx := 0
	for j := int64(0); j < m.vdim; j++ {
		for idx < len(merged) && merged[idx].j == j {
			ai = append(ai, merged[idx].i)
			ax = append(ax, merged[idx].x)
			idx++
		}
		ap[j+1] = int64(len(ai))
	}
	m.Ap = ap
	m.Ai = ai
	m.Ax = ax
	m.nvec = m.vdim
}
