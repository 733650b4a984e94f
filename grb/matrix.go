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

import "fmt"

// Matrix is a sparse, vector-major 2-D container of scalar type T. A
// vector is a stored column (column-major matrices) or row (row-major
// matrices); the engine is orientation-agnostic as long as two operands
// agree on which dimension is contracted.
//
// Fields mirror SuiteSparse:GraphBLAS's GrB_Matrix layout (Ap/Ah/Ai/Ax,
// is_hyper, pending work) closely enough that the multiply engine in
// grb/internal can be a near-direct port of GB_AxB_saxpy3 / GB_AxB_dot.
type Matrix[T any] struct {
	vlen int64 // logical length of each vector (rows, for column-major)
	vdim int64 // logical number of vectors (columns, for column-major)
	nvec int64 // number of stored vectors: == vdim unless hypersparse

	Ap []int64 // length nvec+1, cumulative entry count per stored vector
	Ah []int64 // length nvec, present only when isHyper; strictly increasing
	Ai []int64 // length nnz; Ai[p] < 0 encodes a zombie at row ~Ai[p]
	Ax []T     // length nnz

	isHyper bool
	jumbled bool // true if entries within a vector are not sorted ascending

	zombies int64           // count of entries in Ai flagged deleted
	pending []pendingTuple[T]
	pendingOp *BinaryOp[T, T, T] // combiner for duplicate pending tuples, nil means "overwrite"
}

type pendingTuple[T any] struct {
	i, j int64
	x    T
}

// NewMatrix creates an empty sparse (non-hypersparse) matrix of the given
// shape. Ap is initialized to vdim+1 zeros, matching a freshly GB_NEW'd
// matrix with no entries.
func NewMatrix[T any](vlen, vdim int64) *Matrix[T] {
	return &Matrix[T]{
		vlen: vlen,
		vdim: vdim,
		nvec: vdim,
		Ap:   make([]int64, vdim+1),
	}
}

// NewHypersparseMatrix creates an empty hypersparse matrix: Ah starts empty
// and grows as vectors are populated by SetElement followed by Wait.
func NewHypersparseMatrix[T any](vlen, vdim int64) *Matrix[T] {
	return &Matrix[T]{
		vlen:    vlen,
		vdim:    vdim,
		nvec:    0,
		Ap:      []int64{0},
		Ah:      []int64{},
		isHyper: true,
	}
}

// VLen returns the logical length of each stored vector.
func (m *Matrix[T]) VLen() int64 { return m.vlen }

// VDim returns the logical number of vectors (rows or columns).
func (m *Matrix[T]) VDim() int64 { return m.vdim }

// NVec returns the number of stored vectors (== VDim unless hypersparse).
func (m *Matrix[T]) NVec() int64 { return m.nvec }

// IsHyper reports whether m omits empty vectors from its index arrays.
func (m *Matrix[T]) IsHyper() bool { return m.isHyper }

// Jumbled reports whether entries within a vector may be out of order.
func (m *Matrix[T]) Jumbled() bool { return m.jumbled }

// NNZ returns the number of stored entries, including zombies.
func (m *Matrix[T]) NNZ() int64 {
	if len(m.Ap) == 0 {
		return 0
	}
	return m.Ap[len(m.Ap)-1]
}

// HasPending reports whether m carries zombies or buffered pending tuples
// that must be resolved by Wait before a Multiply may use m as an operand.
func (m *Matrix[T]) HasPending() bool {
	return m.zombies > 0 || len(m.pending) > 0
}

// VectorIndex returns the logical index of stored-vector position k: Ah[k]
// for a hypersparse matrix, or k itself otherwise.
func (m *Matrix[T]) VectorIndex(k int64) int64 {
	if m.isHyper {
		return m.Ah[k]
	}
	return k
}

// Find returns the stored-vector position for logical vector index j, and
// whether one exists. For a non-hypersparse matrix this is O(1); for a
// hypersparse matrix it binary-searches Ah, the same lookup
// GB_lookup performs against A->h.
func (m *Matrix[T]) Find(j int64) (k int64, ok bool) {
	if !m.isHyper {
		if j < 0 || j >= m.vdim {
			return 0, false
		}
		return j, true
	}
	lo, hi := 0, len(m.Ah)
	for lo < hi {
		mid := (lo + hi) / 2
		if m.Ah[mid] < j {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(m.Ah) && m.Ah[lo] == j {
		return int64(lo), true
	}
	return 0, false
}

// RowIndex returns the real (non-negated) row index stored at entry p,
// unwrapping the zombie tombstone if present.
func RowIndex(ai int64) int64 {
	if ai < 0 {
		return ^ai
	}
	return ai
}

// IsZombie reports whether the entry stored at Ai[p] is a tombstone.
func IsZombie(ai int64) bool { return ai < 0 }

// validate checks the structural invariants spec.md §3 requires: Ap must
// be non-decreasing, non-jumbled vectors must have strictly increasing
// indices, and a hypersparse Ah must be strictly increasing. It is used by
// Build and assembleColumns.
func (m *Matrix[T]) validate() error {
	if len(m.Ap) != int(m.nvec)+1 {
		return fmt.Errorf("grb: Ap has length %d, want %d", len(m.Ap), m.nvec+1)
	}
	for k := 0; k < len(m.Ap)-1; k++ {
		if m.Ap[k] < 0 || m.Ap[k] > m.Ap[k+1] {
			return fmt.Errorf("grb: Ap not monotone at %d", k)
		}
	}
	if m.isHyper {
		for k := 1; k < len(m.Ah); k++ {
			if m.Ah[k-1] >= m.Ah[k] {
				return fmt.Errorf("grb: Ah not strictly increasing at %d", k)
			}
		}
	}
	if !m.jumbled {
		for k := 0; k < int(m.nvec); k++ {
			for p := m.Ap[k] + 1; p < m.Ap[k+1]; p++ {
				if RowIndex(m.Ai[p-1]) >= RowIndex(m.Ai[p]) {
					return fmt.Errorf("grb: vector %d not strictly increasing at entry %d", k, p)
				}
			}
		}
	}
	return nil
}

// Clone returns a deep copy of m, independent of the original.
func (m *Matrix[T]) Clone() *Matrix[T] {
	c := &Matrix[T]{
		vlen: m.vlen, vdim: m.vdim, nvec: m.nvec,
		isHyper: m.isHyper, jumbled: m.jumbled, zombies: m.zombies,
		pendingOp: m.pendingOp,
	}
	c.Ap = append([]int64(nil), m.Ap...)
	if m.Ah != nil {
		c.Ah = append([]int64(nil), m.Ah...)
	}
	c.Ai = append([]int64(nil), m.Ai...)
	c.Ax = append([]T(nil), m.Ax...)
	c.pending = append([]pendingTuple[T](nil), m.pending...)
	return c
}
