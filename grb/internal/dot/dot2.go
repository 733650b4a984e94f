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
)

// Entry is one gathered (row, value) result, mirroring saxpy.Entry so the
// two engines' outputs can be assembled by the same Multiply-level code.
type Entry[Z any] struct {
	Row int64
	Val Z
}

// Run2 computes C = A'*B with no mask or with a complemented mask: for
// every column j of B and every column i of A that allowed accepts, it
// takes the dot product of A(:,i) and B(:,j) and keeps it if nonempty.
// This is Ω(m*n) and is selected only when the mask cannot cheaply
// restrict the candidate set (GB_AxB_dot's dot2 path).
// allowed, if non-nil, is the (possibly complemented) mask predicate; a nil
// allowed means every (i, j) pair is a candidate.
func Run2[X, Y, Z any](
	ctx context.Context,
	AStart, AEnd, Ai []int64, Ax []X, avdim int64,
	Bp, Bi []int64, Bx []Y, bnvec int64,
	mult func(X, Y) Z, add func(Z, Z) Z, isTerminal func(Z) bool,
	allowed func(i, j int64) bool,
	nthreads int,
) ([][]Entry[Z], error) {
	colResults := make([][]Entry[Z], bnvec)
	if nthreads < 1 {
		nthreads = 1
	}

	chunk := (bnvec + int64(nthreads) - 1) / int64(nthreads)
	if chunk < 1 {
		chunk = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	for start := int64(0); start < bnvec; start += chunk {
		start := start
		end := start + chunk
		if end > bnvec {
			end = bnvec
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for j := start; j < end; j++ {
				bStart, bEnd := Bp[j], Bp[j+1]
				var col []Entry[Z]
				for i := int64(0); i < avdim; i++ {
					if allowed != nil && !allowed(i, j) {
						continue
					}
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
