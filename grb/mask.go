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

// Mask wraps a matrix of any numeric type used as a structural/value mask,
// matching spec.md §3: an entry is true if present, and either the caller
// asked for structural-only interpretation or its value is non-zero.
type Mask[M Number] struct {
	m *Matrix[M]
}

// NewMask wraps m as a Mask. A nil m represents "no mask".
func NewMask[M Number](m *Matrix[M]) Mask[M] { return Mask[M]{m: m} }

// Matrix returns the underlying mask matrix, or nil if there is none.
func (k Mask[M]) Matrix() *Matrix[M] { return k.m }

// present reports whether the mask has an entry at (i, j), and its value
// if so. Zombies are treated as absent.
func (k Mask[M]) present(i, j int64) (M, bool) {
	var zero M
	kk, ok := k.m.Find(j)
	if !ok {
		return zero, false
	}
	lo, hi := k.m.Ap[kk], k.m.Ap[kk+1]
	for p := lo; p < hi; p++ {
		if IsZombie(k.m.Ai[p]) {
			continue
		}
		if k.m.Ai[p] == i {
			return k.m.Ax[p], true
		}
	}
	return zero, false
}

// Rows returns the row indices column j of the mask allows, sorted
// ascending, assuming an uncomplemented mask (maskComp == false): every
// non-zombie stored entry, filtered to a non-zero value unless maskStruct
// is set. This lets dot3 enumerate candidates in Ω(nnz(M)) time instead of
// scanning every row via Allows.
func (k Mask[M]) Rows(j int64, maskStruct bool) []int64 {
	kk, ok := k.m.Find(j)
	if !ok {
		return nil
	}
	var zero M
	rows := make([]int64, 0, k.m.Ap[kk+1]-k.m.Ap[kk])
	for p := k.m.Ap[kk]; p < k.m.Ap[kk+1]; p++ {
		if IsZombie(k.m.Ai[p]) {
			continue
		}
		if !maskStruct && k.m.Ax[p] == zero {
			continue
		}
		rows = append(rows, k.m.Ai[p])
	}
	return rows
}

// Allows implements mask_allows(M, i, j, mask_comp, mask_struct) from
// spec.md §8: an output entry at (i, j) may exist only when this is true.
func (k Mask[M]) Allows(i, j int64, maskComp, maskStruct bool) bool {
	if k.m == nil {
		// absent mask: everything passes unless complemented, in which case
		// nothing does (GB_AxB_dot treats M==nil && Mask_comp as a no-op
		// caller error; Multiply never constructs that combination).
		return !maskComp
	}
	v, ok := k.present(i, j)
	truthy := ok
	if ok && !maskStruct {
		truthy = v != 0
	}
	if maskComp {
		return !truthy
	}
	return truthy
}
