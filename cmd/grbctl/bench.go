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

package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/filipecosta90/GraphBLAS/grb"
)

func benchCmd() *cobra.Command {
	var (
		n          int64
		density    float64
		seed       int64
		chunk      int64
		maxThreads int
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Report the work estimate and goroutine sizing a synthetic n x n plus_times multiply gets",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := randomMatrix(n, n, density, rand.New(rand.NewSource(seed)))
			b := randomMatrix(n, n, density, rand.New(rand.NewSource(seed+1)))

			work := grb.EstimateWork(a, b)
			desc := grb.NewDescriptor(grb.WithChunk(chunk), grb.WithMaxThreads(maxThreads))
			threads := desc.Threads(work)

			sr := grb.PlusTimes[float64]()
			start := time.Now()
			c, err := grb.Multiply[float64, float64, float64, float64](context.Background(), a, b, sr, nil, nil, false, desc)
			if err != nil {
				return fmt.Errorf("grbctl: bench: %w", err)
			}
			elapsed := time.Since(start)

			fmt.Printf("n=%d density=%.4f nnz(A)=%d nnz(B)=%d\n", n, density, a.NNZ(), b.NNZ())
			fmt.Printf("estimated flops=%d threads=%d\n", work, threads)
			fmt.Printf("nnz(C)=%d elapsed=%s\n", c.NNZ(), elapsed)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.Int64Var(&n, "n", 1000, "synthetic matrices are n x n")
	flags.Float64Var(&density, "density", 0.01, "fraction of entries stored, per column")
	flags.Int64Var(&seed, "seed", 1, "random seed")
	flags.Int64Var(&chunk, "chunk", 4096, "minimum estimated flops assigned to a single task")
	flags.IntVar(&maxThreads, "max-threads", 0, "goroutine cap, 0 means runtime.GOMAXPROCS(0)")

	return cmd
}

// randomMatrix builds an n x n matrix with roughly density*n entries per
// column, values uniform in (0, 1].
func randomMatrix(vlen, vdim int64, density float64, r *rand.Rand) *grb.Matrix[float64] {
	perCol := int(density * float64(vlen))
	if perCol < 1 {
		perCol = 1
	}
	var I, J []int64
	var X []float64
	for j := int64(0); j < vdim; j++ {
		seen := make(map[int64]bool, perCol)
		for k := 0; k < perCol; k++ {
			i := r.Int63n(vlen)
			if seen[i] {
				continue
			}
			seen[i] = true
			I = append(I, i)
			J = append(J, j)
			X = append(X, r.Float64()+1e-9)
		}
	}
	m, err := grb.Build(vlen, vdim, I, J, X, func(a, b float64) float64 { return a + b })
	if err != nil {
		panic(err) // construction from well-formed synthetic tuples cannot fail
	}
	return m
}
