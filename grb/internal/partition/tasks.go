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

import "modernc.org/mathutil"

// Tuning constants carried over from GB_AxB_saxpy3.c.
const (
	// CostlyFactor: a column that costs more than costly*(average coarse
	// task flops) and sits alone in its coarse range is peeled off into its
	// own set of fine tasks.
	CostlyFactor = 1.2
	// FineWorkDivisor: a costly column is split into roughly
	// ceil(column_flops / (target_flops_per_task / FineWorkDivisor)) fine
	// tasks, giving fine tasks somewhat less work than a coarse task so
	// the scheduler can rebalance around them.
	FineWorkDivisor = 2
	// CoarseTaskMultiplier: the initial number of coarse tasks considered
	// before peeling, N = CoarseTaskMultiplier * nthreads.
	CoarseTaskMultiplier = 2
)

// HashTableSize returns the hash table size for a column (or coarse task)
// expected to produce flmax flop contributions into a vector of length
// cvlen: the smallest power of two at least twice flmax, unless that
// meets or exceeds cvlen/16, in which case a dense Gustavson-style table
// of size cvlen is used instead (GB_AxB_saxpy3's GB_hash_table_size).
func HashTableSize(flmax, cvlen int64) int64 {
	if flmax < 1 {
		flmax = 1
	}
	floorLog2 := mathutil.Log2Uint64(uint64(flmax))
	ceilLog2 := floorLog2
	if flmax&(flmax-1) != 0 {
		ceilLog2++
	}
	hsize := int64(2) << uint(ceilLog2)
	if cvlen/16 <= hsize {
		return cvlen
	}
	return hsize
}

// UseGustavson reports whether a task of the given size should use a dense
// Gustavson accumulator (one slot per row) rather than a hash table: true
// whenever HashTableSize degenerates to cvlen.
func UseGustavson(flmax, cvlen int64) bool {
	return HashTableSize(flmax, cvlen) == cvlen
}

// Task describes one saxpy3 unit of work. Coarse tasks own a contiguous
// range of B's stored vectors ([VecStart, VecEnd)); fine tasks split a
// single costly vector (Vec) into an entry range ([PStart, PEnd) into
// B's index arrays) and share one hash/Gustavson table with their team,
// identified by Master.
type Task struct {
	Coarse   bool
	VecStart int64 // coarse: first B-vector owned (inclusive)
	VecEnd   int64 // coarse: last B-vector owned (exclusive)
	Vec      int64 // fine: the single B-vector this task contributes to
	PStart   int64 // fine: first entry index (into Bi/Bx) owned
	PEnd     int64 // fine: last entry index owned (exclusive)
	Master   int   // offset, within this task's fine team, of the task owning the shared table
	HSize    int64 // hash table size (or cvlen for Gustavson)
	Gustavson bool
}

// BuildSaxpyTasks partitions a saxpy3 multiply C = A*B into coarse and fine
// tasks targeting nthreads, following GB_AxB_saxpy3's phase0: start from
// 2*nthreads coarse column ranges sized by flop count, then peel a column
// costing more than CostlyFactor times the average coarse task's flops into
// its own fine-task team when PSlice has placed that column alone in its
// range. A costly column that shares a range with other columns is not
// peeled; the whole range stays one coarse task.
func BuildSaxpyTasks(Ap, Ah []int64, anvec int64, Bp, Bi []int64, Bflops []int64, bnvec int64, cvlen int64, nthreads int) []Task {
	if nthreads < 1 {
		nthreads = 1
	}
	total := Bflops[bnvec]
	if total == 0 {
		return []Task{{Coarse: true, VecStart: 0, VecEnd: bnvec, HSize: cvlen, Gustavson: true}}
	}

	ncoarse := CoarseTaskMultiplier * nthreads
	if int64(ncoarse) > bnvec {
		ncoarse = int(bnvec)
	}
	if ncoarse < 1 {
		ncoarse = 1
	}
	boundary := PSlice(Bflops, bnvec, ncoarse)
	avgFlops := total / int64(ncoarse)
	threshold := int64(float64(avgFlops) * CostlyFactor)

	var tasks []Task
	for t := 0; t < ncoarse; t++ {
		lo, hi := boundary[t], boundary[t+1]
		if lo >= hi {
			continue
		}
		if hi == lo+1 {
			// single column: peel into fine tasks if it is costly
			flops := Bflops[hi] - Bflops[lo]
			if flops > threshold && flops > 0 {
				tasks = append(tasks, peelColumn(Ap, Ah, anvec, Bp, Bi, lo, flops, avgFlops, cvlen)...)
				continue
			}
		}
		flmax := Bflops[hi] - Bflops[lo]
		tasks = append(tasks, Task{
			Coarse: true, VecStart: lo, VecEnd: hi,
			HSize: HashTableSize(flmax, cvlen), Gustavson: UseGustavson(flmax, cvlen),
		})
	}
	return tasks
}

// peelColumn splits one costly column's flops into nfine fine tasks that
// share a single hash/Gustavson table. It computes the exact per-entry
// flop prefix sum within the column (rather than assuming uniform cost
// per entry) and slices entry positions with PSlice, the same precision
// GB_AxB_saxpy3 applies when assigning Bi ranges to a fine task team.
func peelColumn(Ap, Ah []int64, anvec int64, Bp, Bi []int64, col, flops, avgFlops, cvlen int64) []Task {
	lo, hi := Bp[col], Bp[col+1]
	n := hi - lo
	prefix := make([]int64, n+1)
	for i := int64(0); i < n; i++ {
		prefix[i+1] = prefix[i] + VectorNNZ(Ap, Ah, anvec, Bi[lo+i])
	}

	target := avgFlops / FineWorkDivisor
	if target < 1 {
		target = 1
	}
	nfine := int((flops + target - 1) / target)
	if nfine < 1 {
		nfine = 1
	}
	if int64(nfine) > n {
		nfine = int(n)
	}
	if nfine < 1 {
		nfine = 1
	}
	boundary := PSlice(prefix, n, nfine)

	hsize := HashTableSize(flops, cvlen)
	gustavson := UseGustavson(flops, cvlen)
	out := make([]Task, nfine)
	for i := 0; i < nfine; i++ {
		out[i] = Task{
			Coarse: false, Vec: col,
			PStart: lo + boundary[i],
			PEnd:   lo + boundary[i+1],
			Master: 0, HSize: hsize, Gustavson: gustavson,
		}
	}
	return out
}
