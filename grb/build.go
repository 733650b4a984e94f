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

import (
	"fmt"
	"sort"
)

// Build constructs a new vlen x vdim matrix from unordered (I, J, X)
// triples, the same entry point GrB_Matrix_build offers in the original
// engine. Duplicate (i, j) pairs are combined with dup; if dup is nil,
// a duplicate raises an error rather than silently overwriting, matching
// GrB_Matrix_build's documented default.
func Build[T any](vlen, vdim int64, I, J []int64, X []T, dup func(a, b T) T) (*Matrix[T], error) {
	if len(I) != len(J) || len(I) != len(X) {
		return nil, fmt.Errorf("grb: Build: I, J, X must have equal length (%d, %d, %d)", len(I), len(J), len(X))
	}
	for k := range I {
		if I[k] < 0 || I[k] >= vlen || J[k] < 0 || J[k] >= vdim {
			return nil, fmt.Errorf("%w: tuple %d = (%d, %d) out of [0,%d)x[0,%d)", ErrDimensionMismatch, k, I[k], J[k], vlen, vdim)
		}
	}

	order := make([]int, len(I))
	for k := range order {
		order[k] = k
	}
	sort.Slice(order, func(a, b int) bool {
		ia, ib := order[a], order[b]
		if J[ia] != J[ib] {
			return J[ia] < J[ib]
		}
		return I[ia] < I[ib]
	})

	ap := make([]int64, vdim+1)
	ai := make([]int64, 0, len(I))
	ax := make([]T, 0, len(I))

	idx := 0
	for j := int64(0); j < vdim; j++ {
		for idx < len(order) && J[order[idx]] == j {
			k := order[idx]
			if n := len(ai); int64(n) > ap[j] && ai[n-1] == I[k] {
				if dup == nil {
					return nil, fmt.Errorf("grb: Build: duplicate entry at (%d, %d) with no dup operator", I[k], j)
				}
				ax[n-1] = dup(ax[n-1], X[k])
			} else {
				ai = append(ai, I[k])
				ax = append(ax, X[k])
			}
			idx++
		}
		ap[j+1] = int64(len(ai))
	}

	m := &Matrix[T]{vlen: vlen, vdim: vdim, nvec: vdim, Ap: ap, Ai: ai, Ax: ax}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Extract reads m back out as parallel (I, J, X) tuples in stored order,
// the round-trip counterpart to Build. Zombies are skipped.
func Extract[T any](m *Matrix[T]) (I, J []int64, X []T) {
	I = make([]int64, 0, m.NNZ())
	J = make([]int64, 0, m.NNZ())
	X = make([]T, 0, m.NNZ())
	for k := int64(0); k < m.nvec; k++ {
		j := m.VectorIndex(k)
		for p := m.Ap[k]; p < m.Ap[k+1]; p++ {
			if IsZombie(m.Ai[p]) {
				continue
			}
			I = append(I, m.Ai[p])
			J = append(J, j)
			X = append(X, m.Ax[p])
		}
	}
	return I, J, X
}
