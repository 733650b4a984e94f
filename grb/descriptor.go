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

import "runtime"

// Descriptor configures how Multiply partitions work and interprets its
// mask and transpose flags. Use NewDescriptor with Option values to build
// one; the zero value is not valid (Chunk and MaxThreads would be zero).
type Descriptor struct {
	Chunk         int64 // minimum flops assigned to a single task
	MaxThreads    int   // upper bound on goroutines spawned per operation
	TransposeA    bool  // operate on A' instead of A
	TransposeB    bool  // operate on B' instead of B
	MaskStruct    bool  // interpret the mask structurally (ignore numeric value)
	MaskComp      bool  // complement the mask
}

// Option configures a Descriptor.
type Option func(*Descriptor)

// WithChunk sets the minimum amount of work (in estimated flops) assigned
// to a single task before the partitioner stops splitting further.
func WithChunk(chunk int64) Option {
	return func(d *Descriptor) { d.Chunk = chunk }
}

// WithMaxThreads bounds the number of goroutines an operation may spawn.
// A value <= 0 means "use runtime.GOMAXPROCS(0)".
func WithMaxThreads(n int) Option {
	return func(d *Descriptor) { d.MaxThreads = n }
}

// WithTransposeA requests that Multiply operate on A' rather than A.
func WithTransposeA(t bool) Option {
	return func(d *Descriptor) { d.TransposeA = t }
}

// WithTransposeB requests that Multiply operate on B' rather than B.
func WithTransposeB(t bool) Option {
	return func(d *Descriptor) { d.TransposeB = t }
}

// WithMaskStructural makes the mask ignore the numeric value of its entries
// and treat every stored entry as true.
func WithMaskStructural(s bool) Option {
	return func(d *Descriptor) { d.MaskStruct = s }
}

// WithMaskComplement inverts the mask's true/false sense.
func WithMaskComplement(c bool) Option {
	return func(d *Descriptor) { d.MaskComp = c }
}

// NewDescriptor constructs a Descriptor with the given Options applied on
// top of defaults: Chunk=4096 (the same default chunk SuiteSparse:GraphBLAS
// uses for GB_nthreads), MaxThreads=runtime.GOMAXPROCS(0).
func NewDescriptor(opts ...Option) Descriptor {
	d := Descriptor{
		Chunk:      4096,
		MaxThreads: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(&d)
	}
	if d.MaxThreads <= 0 {
		d.MaxThreads = runtime.GOMAXPROCS(0)
	}
	return d
}

// Threads exposes nthreads' goroutine-count heuristic for a given
// estimated work so callers outside this package (grbctl bench) can
// report the same sizing decision Multiply makes internally.
func (d Descriptor) Threads(work int64) int {
	return d.nthreads(work)
}

// nthreads returns how many goroutines an operation of the given total
// estimated work should use: work/chunk, clamped to [1, MaxThreads].
// Mirrors GB_nthreads from the original engine.
func (d Descriptor) nthreads(work int64) int {
	if work <= 0 {
		return 1
	}
	n := int(work / max64(d.Chunk, 1))
	if n < 1 {
		n = 1
	}
	if n > d.MaxThreads {
		n = d.MaxThreads
	}
	return n
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
