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

// Run4 accumulates A'*B directly into an already-dense, column-major
// Cx of length avdim*bnvec (Cx[j*avdim+i] holds C(i,j)), used when C is
// supplied in place with no mask and the accumulator is the semiring's own
// monoid (GB_AxB_dot's dot4 path: C_in_place != nil, M == nil,
// !Mask_comp). A dot product that is structurally empty leaves the
// existing C(i,j) untouched.
func Run4[X, Y, Z any](
	ctx context.Context,
	AStart, AEnd, Ai []int64, Ax []X, avdim int64,
	Bp, Bi []int64, Bx []Y, bnvec int64,
	Cx []Z,
	mult func(X, Y) Z, add func(Z, Z) Z, isTerminal func(Z) bool,
	nthreads int,
) error {
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
				base := j * avdim
				for i := int64(0); i < avdim; i++ {
					z, ok := Product(AStart[i], AEnd[i], Ai, Ax, bStart, bEnd, Bi, Bx, mult, add, isTerminal)
					if !ok {
						continue
					}
					Cx[base+i] = add(Cx[base+i], z)
				}
			}
			return nil
		})
	}
	return g.Wait()
}
