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

package partition_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/filipecosta90/GraphBLAS/grb/internal/partition"
)

func TestVectorNNZNonHypersparse(t *testing.T) {
	Ap := []int64{0, 2, 2, 5}
	require.Equal(t, int64(2), partition.VectorNNZ(Ap, nil, 3, 0))
	require.Equal(t, int64(0), partition.VectorNNZ(Ap, nil, 3, 1))
	require.Equal(t, int64(3), partition.VectorNNZ(Ap, nil, 3, 2))
	require.Equal(t, int64(0), partition.VectorNNZ(Ap, nil, 3, -1))
	require.Equal(t, int64(0), partition.VectorNNZ(Ap, nil, 3, 3))
}

func TestVectorNNZHypersparseMissingVectorIsZero(t *testing.T) {
	Ap := []int64{0, 2, 5}
	Ah := []int64{1, 4}
	require.Equal(t, int64(2), partition.VectorNNZ(Ap, Ah, 2, 1))
	require.Equal(t, int64(3), partition.VectorNNZ(Ap, Ah, 2, 4))
	require.Equal(t, int64(0), partition.VectorNNZ(Ap, Ah, 2, 0))
	require.Equal(t, int64(0), partition.VectorNNZ(Ap, Ah, 2, 2))
}

func TestFlopCountSumsANNZOverBColumns(t *testing.T) {
	// A has 3 stored vectors (rows of A', i.e. columns of A) with nnz 2,0,3.
	Ap := []int64{0, 2, 2, 5}
	// B(:,0) touches A-rows 0 and 2 (flops 2+3=5); B(:,1) touches row 1 (flops 0).
	Bp := []int64{0, 2, 3}
	Bi := []int64{0, 2, 1}
	Bflops, total := partition.FlopCount(Ap, nil, 3, Bp, Bi, 2)
	require.Equal(t, []int64{0, 5, 5}, Bflops)
	require.Equal(t, int64(5), total)
}

func TestPSliceBalancesByWeight(t *testing.T) {
	// Cumulative weights 0,1,2,3,10 over n=4 items; splitting into 2 tasks
	// should put the heavy last item alone in its own task.
	Cum := []int64{0, 1, 2, 3, 10}
	boundary := partition.PSlice(Cum, 4, 2)
	require.Equal(t, int64(0), boundary[0])
	require.Equal(t, int64(4), boundary[2])
	require.Equal(t, int64(3), boundary[1])
}

func TestPSliceSingleTaskOwnsEverything(t *testing.T) {
	Cum := []int64{0, 4, 9}
	boundary := partition.PSlice(Cum, 2, 1)
	require.Equal(t, []int64{0, 2}, boundary)
}

func TestEKSliceAssignsContiguousEntryRanges(t *testing.T) {
	Ap := []int64{0, 3, 3, 7, 10}
	PStart, KFirst, KLast := partition.EKSlice(Ap, 4, 2)
	require.Equal(t, []int64{0, 5, 10}, PStart)
	require.Equal(t, int64(10), Ap[4])

	for task := 0; task < 2; task++ {
		require.True(t, KFirst[task] <= KLast[task])
	}
	// task 0 owns [0,5): vector 0 (entries 0-2) and part of vector 2 (3-4)
	require.Equal(t, int64(0), KFirst[0])
	require.Equal(t, int64(2), KLast[0])
	// task 1 owns [5,10): rest of vector 2 and all of vector 3
	require.Equal(t, int64(2), KFirst[1])
	require.Equal(t, int64(3), KLast[1])
}

func TestGetOwnedRangeSplitsSharedVector(t *testing.T) {
	Ap := []int64{0, 3, 3, 7, 10}
	PStart, KFirst, KLast := partition.EKSlice(Ap, 4, 2)

	pStart, pEnd := partition.GetOwnedRange(PStart, KFirst, KLast, Ap, 0, 2)
	require.Equal(t, int64(3), pStart)
	require.Equal(t, int64(5), pEnd)

	pStart, pEnd = partition.GetOwnedRange(PStart, KFirst, KLast, Ap, 1, 2)
	require.Equal(t, int64(5), pStart)
	require.Equal(t, int64(7), pEnd)

	pStart, pEnd = partition.GetOwnedRange(PStart, KFirst, KLast, Ap, 1, 3)
	require.Equal(t, int64(7), pStart)
	require.Equal(t, int64(10), pEnd)
}

func TestHashTableSizeFallsBackToGustavsonForDenseColumns(t *testing.T) {
	const cvlen = 100
	require.Equal(t, int64(cvlen), partition.HashTableSize(cvlen, cvlen))
	require.True(t, partition.UseGustavson(cvlen, cvlen))
}

func TestHashTableSizeIsPowerOfTwoForSparseColumns(t *testing.T) {
	const cvlen = 1 << 20
	h := partition.HashTableSize(5, cvlen)
	require.False(t, partition.UseGustavson(5, cvlen))
	require.True(t, h >= 2*5)
	require.Equal(t, h&(h-1), int64(0), "hash table size must be a power of two")
}

func TestBuildSaxpyTasksSingleThreadIsOneCoarseTask(t *testing.T) {
	Ap := []int64{0, 1}
	Bp := []int64{0, 1}
	Bi := []int64{0}
	Bflops, _ := partition.FlopCount(Ap, nil, 1, Bp, Bi, 1)
	tasks := partition.BuildSaxpyTasks(Ap, nil, 1, Bp, Bi, Bflops, 1, 10, 1)
	require.Len(t, tasks, 1)
	require.True(t, tasks[0].Coarse)
	require.Equal(t, int64(0), tasks[0].VecStart)
	require.Equal(t, int64(1), tasks[0].VecEnd)
}

func TestBuildSaxpyTasksPeelsCostlyColumnIntoFineTeam(t *testing.T) {
	// A has 15 rows, each a stored vector with exactly 1 entry, so a B
	// column's flop cost equals its own entry count. 5 B columns cost
	// 10, 10, 15, 10, 10 flops (total 55); with nthreads=3, ncoarse is
	// clamped to bnvec=5 and PSlice isolates the 15-flop column into its
	// own singleton task, which CostlyFactor=1.2 (threshold 13.2) then
	// peels into a fine-task team.
	const anvec = 15
	Ap := make([]int64, anvec+1)
	for k := range Ap {
		Ap[k] = int64(k)
	}

	colCost := []int{10, 10, 15, 10, 10}
	bnvec := int64(len(colCost))
	heavyCol := int64(2)
	var Bp []int64
	var Bi []int64
	Bp = append(Bp, 0)
	for _, n := range colCost {
		for k := 0; k < n; k++ {
			Bi = append(Bi, 0)
		}
		Bp = append(Bp, int64(len(Bi)))
	}

	Bflops, total := partition.FlopCount(Ap, nil, anvec, Bp, Bi, bnvec)
	require.Equal(t, int64(55), total)
	tasks := partition.BuildSaxpyTasks(Ap, nil, anvec, Bp, Bi, Bflops, bnvec, 1_000_000, 3)

	var fineForHeavy int
	var sawHeavyColCoarse bool
	for _, task := range tasks {
		if task.Coarse {
			if heavyCol >= task.VecStart && heavyCol < task.VecEnd {
				sawHeavyColCoarse = true
			}
			continue
		}
		if task.Vec == heavyCol {
			fineForHeavy++
			require.Equal(t, 0, task.Master)
			require.True(t, task.PStart < task.PEnd)
		}
	}
	require.False(t, sawHeavyColCoarse, "the costly column must be peeled out of any coarse task")
	require.Greater(t, fineForHeavy, 1, "a costly column should split into more than one fine task")

	// every fine task for the heavy column covers a disjoint, contiguous
	// sub-range of its entries, and together they cover all of it.
	lo, hi := Bp[heavyCol], Bp[heavyCol+1]
	var got int64
	for _, task := range tasks {
		if !task.Coarse && task.Vec == heavyCol {
			got += task.PEnd - task.PStart
		}
	}
	require.Equal(t, hi-lo, got)

	// the two untouched cheap columns adjoining the heavy one (col1 and
	// col3) still appear, each in some coarse task, unaffected by peeling.
	var sawCol1, sawCol3 bool
	for _, task := range tasks {
		if !task.Coarse {
			continue
		}
		if 1 >= task.VecStart && 1 < task.VecEnd {
			sawCol1 = true
		}
		if 3 >= task.VecStart && 3 < task.VecEnd {
			sawCol3 = true
		}
	}
	require.True(t, sawCol1)
	require.True(t, sawCol3)
}
