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

package grb

// Transpose returns Aᵀ: a matrix of shape (vdim, vlen) built from the same
// entries with row and column swapped. It is used both to honor
// Descriptor.TransposeA/TransposeB and internally by Multiply, since the
// dot-product engines compute Aᵀ*B natively and must be handed an already
// transposed operand to compute the requested A*B.
func Transpose[T any](m *Matrix[T]) (*Matrix[T], error) {
	I, J, X := Extract(m)
	return Build[T](m.VDim(), m.VLen(), J, I, X, nil)
}
