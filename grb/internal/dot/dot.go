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

// Package dot implements the dot-product multiply family: dot2 (scan all
// m*n pairs, used when no mask or a complemented mask forces most pairs to
// be checked anyway), dot3 (scan only the entries the mask allows, used
// when a structural/value mask selects a small subset), and dot4 (in-place
// accumulation into an already-dense C). All three share Product, a merge
// of two sorted sparse vectors — this is GB_AxB_dot's selection logic and
// GB_DOT's inner merge loop, un-templated.
package dot

// Product computes the semiring dot product of A(:,i) (stored at
// [aStart, aEnd) in Ai/Ax) and B(:,j) (stored at [bStart, bEnd) in Bi/Bx),
// by merging the two sorted row-index runs and combining matches with
// mult, folding matches together with add. isTerminal, if non-nil, lets
// the merge stop early the instant the accumulated value can no longer
// change — the short-circuit MIN_PLUS and similar semirings rely on.
// ok is false if no row index is shared by both vectors (the dot product
// is structurally empty).
func Product[X, Y, Z any](
	aStart, aEnd int64, Ai []int64, Ax []X,
	bStart, bEnd int64, Bi []int64, Bx []Y,
	mult func(X, Y) Z, add func(Z, Z) Z, isTerminal func(Z) bool,
) (z Z, ok bool) {
	pa, pb := aStart, bStart
	for pa < aEnd && pb < bEnd {
		ka, kb := Ai[pa], Bi[pb]
		switch {
		case ka == kb:
			t := mult(Ax[pa], Bx[pb])
			if !ok {
				z, ok = t, true
			} else {
				z = add(z, t)
			}
			if isTerminal != nil && isTerminal(z) {
				return z, true
			}
			pa++
			pb++
		case ka < kb:
			pa++
		default:
			pb++
		}
	}
	return z, ok
}
