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

package partition

// EKSlice splits the nnz(Ap) entries of a matrix with nvec stored vectors
// into ntasks contiguous entry ranges, each of which may own only part of
// the vectors at its boundary. It returns, per task t:
//
//	PStart[t], PStart[t+1]: the half-open entry range task t owns
//	KFirst[t]: the stored-vector index containing PStart[t]
//	KLast[t]:  the stored-vector index containing PStart[t+1]-1
//
// A task with KFirst[t] == KLast[t] owns only part of (or all of) one
// vector; GetOwnedRange resolves the exact entry range it owns within
// that vector, accounting for neighboring tasks sharing the same vector.
// This is a direct port of GB_ek_slice.
func EKSlice(Ap []int64, nvec int64, ntasks int) (PStart, KFirst, KLast []int64) {
	nnz := Ap[nvec]
	PStart = make([]int64, ntasks+1)
	for t := 0; t <= ntasks; t++ {
		PStart[t] = int64(t) * nnz / int64(ntasks)
	}
	KFirst = make([]int64, ntasks)
	KLast = make([]int64, ntasks)
	for t := 0; t < ntasks; t++ {
		KFirst[t] = vectorContaining(Ap, nvec, PStart[t])
		if PStart[t+1] > PStart[t] {
			KLast[t] = vectorContaining(Ap, nvec, PStart[t+1]-1)
		} else {
			KLast[t] = KFirst[t]
		}
	}
	return PStart, KFirst, KLast
}

// vectorContaining returns the k such that Ap[k] <= p < Ap[k+1].
func vectorContaining(Ap []int64, nvec, p int64) int64 {
	lo, hi := int64(0), nvec-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if Ap[mid] <= p {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// GetOwnedRange resolves the exact [pStart, pEnd) entry range within
// stored-vector k that task t owns, given the EKSlice outputs and k's full
// range [Ap[k], Ap[k+1]). If k is task t's KFirst, the range starts at
// PStart[t]; if k is its KLast, it ends at PStart[t+1]; a vector strictly
// between KFirst[t] and KLast[t] is owned whole. This mirrors
// GB_get_pA_and_pC's boundary-sharing logic.
func GetOwnedRange(PStart, KFirst, KLast []int64, Ap []int64, t int, k int64) (pStart, pEnd int64) {
	pStart, pEnd = Ap[k], Ap[k+1]
	if k == KFirst[t] {
		pStart = PStart[t]
	}
	if k == KLast[t] {
		pEnd = PStart[t+1]
	}
	return pStart, pEnd
}
