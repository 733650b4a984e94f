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

package dot

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/filipecosta90/GraphBLAS/grb/internal/partition"
)

// Run3 computes C<M> = A'*B restricted to the candidates the mask allows:
// for each column j, MRows[j] lists the row indices the caller has already
// filtered through mask_allows (structural/value, complement already
// resolved), sorted ascending. Only those (i, j) pairs are dot-producted;
// a pair is still dropped if the dot product is structurally empty. This
// is Ω(nnz(M)) work, GB_AxB_dot's dot3 path, and is partitioned with
// internal/partition.PSlice over per-column candidate counts the same way
// the saxpy engine balances coarse tasks.
func Run3[X, Y, Z any](
	ctx context.Context,
	AStart, AEnd, Ai []int64, Ax []X,
	Bp, Bi []int64, Bx []Y,
	MRows [][]int64,
	mult func(X, Y) Z, add func(Z, Z) Z, isTerminal func(Z) bool,
	nthreads int,
) ([][]Entry[Z], error) {
	bnvec := int64(len(MRows))
	colResults := make([][]Entry[Z], bnvec)
	if nthreads < 1 {
		nthreads = 1
	}

	// weight each column by its candidate count so tasks balance on work,
	// not column count, the same role GB_AxB_flopcount plays for dot3.
	weights := make([]int64, bnvec+1)
	for j := int64(0); j < bnvec; j++ {
		weights[j+1] = weights[j] + int64(len(MRows[j]))
	}
	ntasks := nthreads
	if int64(ntasks) > bnvec && bnvec > 0 {
		ntasks = int(bnvec)
	}
	if ntasks < 1 {
		ntasks = 1
	}
	boundary := partition.PSlice(weights, bnvec, ntasks)

	g, gctx := errgroup.WithContext(ctx)
	for t := 0; t < ntasks; t++ {
		lo, hi := boundary[t], boundary[t+1]
		if lo >= hi {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for j := lo; j < hi; j++ {
				bStart, bEnd := Bp[j], Bp[j+1]
				var col []Entry[Z]
				for _, i := range MRows[j] {
					z, ok := Product(AStart[i], AEnd[i], Ai, Ax, bStart, bEnd, Bi, Bx, mult, add, isTerminal)
					if ok {
						col = append(col, Entry[Z]{Row: i, Val: z})
					}
				}
				colResults[j] = col
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return colResults, nil
}
