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

package workspace

// DenseAp turns a (possibly hypersparse) Ap/Ah pair into an equivalent
// dense cumulative-offset array of length vdim+1, indexed by logical
// vector number rather than stored position, so the saxpy and dot engines
// can treat every matrix as if it were stored non-hypersparse: logical
// vector j's entries live at [DenseAp(...)[j], DenseAp(...)[j+1]). A
// logical vector absent from a hypersparse Ah gets a zero-width range at
// the position its neighbors already occupy. Computed once per Multiply
// call rather than once per lookup.
func DenseAp(Ap, Ah []int64, nvec, vdim int64) []int64 {
	out := make([]int64, vdim+1)
	if Ah == nil {
		copy(out, Ap[:min64(nvec, vdim)+1])
		last := Ap[min64(nvec, vdim)]
		for j := min64(nvec, vdim) + 1; j <= vdim; j++ {
			out[j] = last
		}
		return out
	}
	pos := int64(0)
	for j := int64(0); j < vdim; j++ {
		if pos < nvec && Ah[pos] == j {
			out[j] = Ap[pos]
			pos++
		} else {
			out[j] = Ap[pos]
		}
	}
	out[vdim] = Ap[nvec]
	return out
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
