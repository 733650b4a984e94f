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

// Package partition estimates the work a saxpy or dot multiply will do and
// slices that work into per-thread tasks. Every function here works on raw
// Ap/Ah/Ai arrays rather than a grb.Matrix so that grb/internal/partition
// can be imported by grb without a cycle; it is a direct, un-templated
// port of GB_AxB_flopcount, GB_pslice and the coarse/fine task construction
// loop in GB_AxB_saxpy3.c.
package partition

// VectorNNZ returns the number of entries stored in vector k of a matrix
// described by (Ap, Ah, nvec): Ap[k+1]-Ap[k] directly for a non-hypersparse
// matrix (Ah == nil), or after a binary search of Ah otherwise. It returns
// 0 for a vector that does not appear in a hypersparse Ah, the same
// "vector is implicitly all zero" convention GB_lookup uses.
func VectorNNZ(Ap, Ah []int64, nvec, k int64) int64 {
	if Ah == nil {
		if k < 0 || k >= nvec {
			return 0
		}
		return Ap[k+1] - Ap[k]
	}
	lo, hi := int64(0), nvec
	for lo < hi {
		mid := (lo + hi) / 2
		if Ah[mid] < k {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < nvec && Ah[lo] == k {
		return Ap[lo+1] - Ap[lo]
	}
	return 0
}

// FlopCount computes the prefix sum of flops(j) = sum over B(:,j)'s entries
// k of nnz(A(:,k)), for j in [0, bnvec). Bflops has length bnvec+1, with
// Bflops[bnvec] the total flop count; this is GB_AxB_flopcount's per-column
// estimate, used to balance saxpy tasks once saxpy has been chosen.
func FlopCount(Ap, Ah []int64, anvec int64, Bp, Bi []int64, bnvec int64) (Bflops []int64, total int64) {
	Bflops = make([]int64, bnvec+1)
	for j := int64(0); j < bnvec; j++ {
		var fl int64
		for p := Bp[j]; p < Bp[j+1]; p++ {
			fl += VectorNNZ(Ap, Ah, anvec, Bi[p])
		}
		Bflops[j+1] = Bflops[j] + fl
	}
	total = Bflops[bnvec]
	return Bflops, total
}

// PSlice partitions [0, n) into ntasks contiguous ranges whose prefix-summed
// weight (given by the length-n+1 cumulative array Cum, with Cum[n] the
// total) is as close to equal as a binary search over Cum allows. It
// returns the ntasks+1 boundary indices, boundary[0]==0 and
// boundary[ntasks]==n. This is GB_pslice.
func PSlice(Cum []int64, n int64, ntasks int) []int64 {
	boundary := make([]int64, ntasks+1)
	boundary[ntasks] = n
	total := Cum[n]
	for t := 1; t < ntasks; t++ {
		target := total * int64(t) / int64(ntasks)
		lo, hi := int64(0), n
		for lo < hi {
			mid := (lo + hi) / 2
			if Cum[mid] < target {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		if lo > 0 && target-Cum[lo-1] < Cum[lo]-target {
			lo-- // the boundary just below target is the closer one
		}
		boundary[t] = lo
	}
	return boundary
}
