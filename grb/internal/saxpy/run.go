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
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/filipecosta90/GraphBLAS/grb/internal/partition"
	"github.com/filipecosta90/GraphBLAS/grb/internal/workspace"
)

// Run executes the saxpy3 tasks partition.BuildSaxpyTasks produced and
// returns, for every one of B's bnvec columns, the assembled (row, value)
// entries in ascending row order. Coarse tasks run one goroutine per task;
// a run of fine tasks sharing a column runs as one goroutine group against
// a shared table, mirroring GB_AxB_saxpy3's coarse-task / fine-task-team
// split. ctx cancellation is checked once per task before it starts.
func Run[X, Y, Z any](
	ctx context.Context,
	AStart, AEnd, Ai []int64, Ax []X,
	Bp, Bi []int64, Bx []Y, bnvec int64,
	cvlen int64,
	mult func(X, Y) Z, add func(Z, Z) Z, anyMonoid bool,
	tasks []partition.Task,
) ([][]Entry[Z], error) {
	colResults := make([][]Entry[Z], bnvec)

	type unit struct {
		coarseIdx          int // >= 0 for a coarse task, -1 for a fine team
		fineStart, fineEnd int
	}
	var units []unit
	for i := 0; i < len(tasks); {
		if tasks[i].Coarse {
			units = append(units, unit{coarseIdx: i, fineStart: -1})
			i++
			continue
		}
		j := i + 1
		for j < len(tasks) && !tasks[j].Coarse && tasks[j].Vec == tasks[i].Vec {
			j++
		}
		units = append(units, unit{coarseIdx: -1, fineStart: i, fineEnd: j})
		i = j
	}

	sizes := make([]int64, len(tasks))
	gustavson := make([]bool, len(tasks))
	for i, t := range tasks {
		sizes[i] = t.HSize
		gustavson[i] = t.Gustavson
	}
	arena := workspace.New[Z](sizes, gustavson)
	for _, u := range units {
		if u.fineStart < 0 {
			continue
		}
		master := u.fineStart + tasks[u.fineStart].Master
		for i := u.fineStart; i < u.fineEnd; i++ {
			if i != master {
				arena.Share(i, master)
			}
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, u := range units {
		u := u
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if u.fineStart < 0 {
				runCoarse(tasks[u.coarseIdx], &arena.Tables[u.coarseIdx], AStart, AEnd, Ai, Ax, Bp, Bi, Bx, cvlen, mult, add, anyMonoid, colResults)
				return nil
			}
			runFineTeam(tasks[u.fineStart:u.fineEnd], arena.Tables[u.fineStart:u.fineEnd], AStart, AEnd, Ai, Ax, Bi, Bx, mult, add, anyMonoid, colResults)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return colResults, nil
}

func runCoarse[X, Y, Z any](
	task partition.Task,
	table *workspace.Table[Z],
	AStart, AEnd, Ai []int64, Ax []X,
	Bp, Bi []int64, Bx []Y,
	cvlen int64,
	mult func(X, Y) Z, add func(Z, Z) Z, anyMonoid bool,
	colResults [][]Entry[Z],
) {
	hi, hf, hx := table.Hi, table.Hf, table.Hx

	var mark int64
	for j := task.VecStart; j < task.VecEnd; j++ {
		mark++
		rows := Bi[Bp[j]:Bp[j+1]]
		vals := Bx[Bp[j]:Bp[j+1]]
		if task.Gustavson {
			AccumulateGustavson(hf, hx, mark, AStart, AEnd, Ai, Ax, rows, vals, mult, add, anyMonoid)
			colResults[j] = GatherGustavson(hf, hx, mark, cvlen)
		} else {
			AccumulateHash(hi, hf, hx, mark, task.HSize, AStart, AEnd, Ai, Ax, rows, vals, mult, add, anyMonoid)
			colResults[j] = GatherHash(hi, hf, hx, mark, task.HSize)
		}
	}
}

func runFineTeam[X, Y, Z any](
	team []partition.Task,
	tables []workspace.Table[Z],
	AStart, AEnd, Ai []int64, Ax []X,
	Bi []int64, Bx []Y,
	mult func(X, Y) Z, add func(Z, Z) Z, anyMonoid bool,
	colResults [][]Entry[Z],
) {
	col := team[0].Vec
	master := tables[0] // every table in the team shares Hf/Hx (and Hi, for hash tables) via Arena.Share
	size := master.Size
	ft := &FineTeam{}
	const mark = int64(1)

	g := new(errgroup.Group)
	for _, t := range team {
		t := t
		g.Go(func() error {
			rows := Bi[t.PStart:t.PEnd]
			vals := Bx[t.PStart:t.PEnd]
			if master.Gustavson {
				AccumulateGustavsonAtomic(ft, master.Hf, master.Hx, mark, AStart, AEnd, Ai, Ax, rows, vals, mult, add, anyMonoid)
			} else {
				AccumulateHashAtomic(ft, master.Hi, master.Hf, master.Hx, mark, size, AStart, AEnd, Ai, Ax, rows, vals, mult, add, anyMonoid)
			}
			return nil
		})
	}
	_ = g.Wait() // runFineTeam's inner goroutines never return an error

	if master.Gustavson {
		colResults[col] = GatherGustavson(master.Hf, master.Hx, mark, size)
	} else {
		colResults[col] = GatherHash(master.Hi, master.Hf, master.Hx, mark, size)
	}
}
