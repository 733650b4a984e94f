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

import "errors"

// Sentinel errors returned at the operation boundary (Multiply, Build,
// Wait). Callers should match with errors.Is; internal helpers wrap these
// with fmt.Errorf("...: %w", ...) to add context.
var (
	// ErrOutOfMemory means workspace or result allocation failed. C and any
	// partially built workspace are released before the error is returned.
	ErrOutOfMemory = errors.New("grb: out of memory")

	// ErrDimensionMismatch means A.vlen != B.vlen for saxpy (or the
	// equivalent contracted dimension for a dot variant), or the mask's
	// shape does not match C's.
	ErrDimensionMismatch = errors.New("grb: dimension mismatch")

	// ErrTypeMismatch means an operand's scalar type cannot be cast to the
	// semiring's declared input type.
	ErrTypeMismatch = errors.New("grb: type mismatch")

	// ErrNilOperand means a required input matrix (a or b) was nil.
	ErrNilOperand = errors.New("grb: nil operand")

	// ErrPendingWork means a multiply input has unmerged pending tuples or
	// zombies and must be passed through Wait first.
	ErrPendingWork = errors.New("grb: operand has pending work")
)
