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

package saxpy_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/filipecosta90/GraphBLAS/grb/internal/partition"
	"github.com/filipecosta90/GraphBLAS/grb/internal/saxpy"
)

func add(x, y float64) float64 { return x + y }
func mul(x, y float64) float64 { return x * y }

func TestAccumulateGustavsonSumsRepeatedRows(t *testing.T) {
	const cvlen = 4
	Hf := make([]int64, cvlen)
	Hx := make([]float64, cvlen)
	// A's column 0 touches rows 1 and 2; column 1 touches row 1 again.
	AStart := []int64{0, 2}
	AEnd := []int64{2, 3}
	Ai := []int64{1, 2, 1}
	Ax := []float64{10, 20, 100}

	saxpy.AccumulateGustavson(Hf, Hx, 1, AStart, AEnd, Ai, Ax, []int64{0, 1}, []float64{2, 3}, mul, add, false)
	got := saxpy.GatherGustavson(Hf, Hx, 1, cvlen)
	require.Equal(t, []saxpy.Entry[float64]{
		{Row: 1, Val: 10*2 + 100*3},
		{Row: 2, Val: 20 * 2},
	}, got)
}

func TestAccumulateGustavsonZombieIsSkipped(t *testing.T) {
	const cvlen = 2
	Hf := make([]int64, cvlen)
	Hx := make([]float64, cvlen)
	AStart := []int64{0}
	AEnd := []int64{2}
	Ai := []int64{-1, 1} // row 0 is a zombie
	Ax := []float64{999, 5}

	saxpy.AccumulateGustavson(Hf, Hx, 1, AStart, AEnd, Ai, Ax, []int64{0}, []float64{2}, mul, add, false)
	require.Equal(t, []saxpy.Entry[float64]{{Row: 1, Val: 10}}, saxpy.GatherGustavson(Hf, Hx, 1, cvlen))
}

func TestAccumulateHashCombinesCollidingRows(t *testing.T) {
	const hsize = 8
	Hi := make([]int64, hsize)
	Hf := make([]int64, hsize)
	Hx := make([]float64, hsize)
	AStart := []int64{0, 1}
	AEnd := []int64{1, 3}
	Ai := []int64{5, 5, 9}
	Ax := []float64{1, 1, 1}

	saxpy.AccumulateHash(Hi, Hf, Hx, 1, hsize, AStart, AEnd, Ai, Ax, []int64{0, 1}, []float64{10, 100}, mul, add, false)
	got := saxpy.GatherHash(Hi, Hf, Hx, 1, hsize)
	require.Len(t, got, 2)
	sum := map[int64]float64{}
	for _, e := range got {
		sum[e.Row] = e.Val
	}
	require.Equal(t, float64(110), sum[5])
	require.Equal(t, float64(100), sum[9])
}

func TestAccumulateHashAnyMonoidKeepsFirstWrite(t *testing.T) {
	const hsize = 4
	Hi := make([]int64, hsize)
	Hf := make([]int64, hsize)
	Hx := make([]float64, hsize)
	AStart := []int64{0, 1}
	AEnd := []int64{1, 2}
	Ai := []int64{2, 2}
	Ax := []float64{7, 8}

	saxpy.AccumulateHash(Hi, Hf, Hx, 1, hsize, AStart, AEnd, Ai, Ax, []int64{0, 1}, []float64{1, 1}, mul, add, true)
	got := saxpy.GatherHash(Hi, Hf, Hx, 1, hsize)
	require.Equal(t, []saxpy.Entry[float64]{{Row: 2, Val: 7}}, got)
}

func TestAccumulateHashAtomicMatchesSerialAccumulation(t *testing.T) {
	const hsize = 16
	AStart := []int64{0, 1, 2, 3}
	AEnd := []int64{1, 2, 3, 4}
	Ai := []int64{1, 1, 3, 3}
	Ax := []float64{2, 3, 4, 5}

	Hi := make([]int64, hsize)
	Hf := make([]int64, hsize)
	Hx := make([]float64, hsize)
	ft := &saxpy.FineTeam{}
	var wg sync.WaitGroup
	teams := [][]int64{{0, 1}, {2, 3}}
	teamVals := [][]float64{{10, 10}, {10, 10}}
	for i, rows := range teams {
		rows, vals := rows, teamVals[i]
		wg.Add(1)
		go func() {
			defer wg.Done()
			saxpy.AccumulateHashAtomic(ft, Hi, Hf, Hx, 1, hsize, AStart, AEnd, Ai, Ax, rows, vals, mul, add, false)
		}()
	}
	wg.Wait()
	got := saxpy.GatherHash(Hi, Hf, Hx, 1, hsize)

	wantHi := make([]int64, hsize)
	wantHf := make([]int64, hsize)
	wantHx := make([]float64, hsize)
	saxpy.AccumulateHash(wantHi, wantHf, wantHx, 1, hsize, AStart, AEnd, Ai, Ax, []int64{0, 1, 2, 3}, []float64{10, 10, 10, 10}, mul, add, false)
	want := saxpy.GatherHash(wantHi, wantHf, wantHx, 1, hsize)

	require.ElementsMatch(t, want, got)
}

// TestRunPeelsCostlyColumnIntoFineGustavsonTeam forces BuildSaxpyTasks to
// peel one costly column into a multi-task fine team while cvlen is small
// enough (< 16) that every task, coarse and fine, degenerates to a dense
// Gustavson table rather than a hash table (UseGustavson: cvlen/16 <= any
// computed hash size once cvlen < 16). This exercises runFineTeam's
// Gustavson branch end to end, including Arena.Share aliasing the team's
// table and AccumulateGustavsonAtomic's row-indexed CAS.
func TestRunPeelsCostlyColumnIntoFineGustavsonTeam(t *testing.T) {
	const anvec = 15
	const cvlen = 8

	AStart := make([]int64, anvec+1)
	AEnd := make([]int64, anvec)
	Ai := make([]int64, anvec)
	Ax := make([]float64, anvec)
	for k := 0; k < anvec; k++ {
		AStart[k] = int64(k)
		AEnd[k] = int64(k + 1)
		Ai[k] = int64(k % cvlen)
		Ax[k] = 1
	}
	AStart[anvec] = anvec // AStart doubles as the length-anvec+1 Ap that FlopCount and BuildSaxpyTasks read

	colKs := [][]int64{
		seq(0, 10), seq(0, 10), seq(0, 15), seq(0, 10), seq(0, 10),
	}
	var Bp, Bi []int64
	var Bx []float64
	Bp = append(Bp, 0)
	for _, ks := range colKs {
		for _, k := range ks {
			Bi = append(Bi, k)
			Bx = append(Bx, 1)
		}
		Bp = append(Bp, int64(len(Bi)))
	}
	const bnvec = 5

	Bflops, _ := partition.FlopCount(AStart, nil, anvec, Bp, Bi, bnvec)
	tasks := partition.BuildSaxpyTasks(AStart, nil, anvec, Bp, Bi, Bflops, bnvec, cvlen, 3)

	var sawFineGustavson bool
	for _, task := range tasks {
		if !task.Coarse {
			require.True(t, task.Gustavson, "cvlen < 16 must force every task to Gustavson")
			sawFineGustavson = true
		}
	}
	require.True(t, sawFineGustavson, "column 2 must have been peeled into a fine team")

	cols, err := saxpy.Run(context.Background(), AStart, AEnd, Ai, Ax, Bp, Bi, Bx, bnvec, cvlen, mul, add, false, tasks)
	require.NoError(t, err)

	toMap := func(col []saxpy.Entry[float64]) map[int64]float64 {
		m := make(map[int64]float64, len(col))
		for _, e := range col {
			m[e.Row] = e.Val
		}
		return m
	}

	cheap := map[int64]float64{0: 2, 1: 2, 2: 1, 3: 1, 4: 1, 5: 1, 6: 1, 7: 1}
	require.Equal(t, cheap, toMap(cols[0]))
	require.Equal(t, cheap, toMap(cols[1]))
	require.Equal(t, cheap, toMap(cols[3]))
	require.Equal(t, cheap, toMap(cols[4]))

	heavy := map[int64]float64{0: 2, 1: 2, 2: 2, 3: 2, 4: 2, 5: 2, 6: 2, 7: 1}
	require.Equal(t, heavy, toMap(cols[2]))
}

func seq(from, n int) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = int64(from + i)
	}
	return out
}
