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

// Package grb implements the core of a sparse linear-algebra engine
// following the GraphBLAS algebraic model: matrix-matrix multiplication
// over an arbitrary semiring, with optional structural masks, accumulation,
// and descriptor-driven transposition.
//
// The package owns the sparse matrix representation (grb/internal package
// trees own the parallel multiply engine that operates on it): vector-major
// storage with optional hypersparse indexing, and a pending-work model
// (zombies and buffered tuples) that lets callers defer compaction.
//
// Multiply dispatches between two algorithm families — saxpy (outer-product
// accumulation over Gustavson or hash workspaces) and dot (inner-product,
// in three variants chosen by mask shape) — the way GB_AxB_dot chooses
// between GB_AxB_dot2/dot3/dot4 and GB_AxB_saxpy3 in SuiteSparse:GraphBLAS.
package grb
