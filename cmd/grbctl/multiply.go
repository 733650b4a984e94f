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
	"os"

	"github.com/spf13/cobra"

	"github.com/filipecosta90/GraphBLAS/grb"
	"github.com/filipecosta90/GraphBLAS/grb/catalog"
)

func multiplyCmd() *cobra.Command {
	var (
		aPath, bPath, maskPath, out string
		semiringName                string
		identity                    float64
		transposeA, transposeB      bool
		maskStruct, maskComp        bool
		chunk                       int64
		maxThreads                  int
	)

	cmd := &cobra.Command{
		Use:   "multiply",
		Short: "Multiply two matrices built from tuple files under a named semiring",
		RunE: func(cmd *cobra.Command, args []string) error {
			sr, ok := catalog.Lookup[float64](semiringName, identity)
			if !ok {
				return fmt.Errorf("grbctl: unknown semiring %q (known: %v)", semiringName, catalog.Names())
			}

			a, err := loadMatrix(aPath)
			if err != nil {
				return err
			}
			b, err := loadMatrix(bPath)
			if err != nil {
				return err
			}

			var mask *grb.Matrix[float64]
			if maskPath != "" {
				mask, err = loadMatrix(maskPath)
				if err != nil {
					return err
				}
			}

			desc := grb.NewDescriptor(
				grb.WithChunk(chunk),
				grb.WithMaxThreads(maxThreads),
				grb.WithTransposeA(transposeA),
				grb.WithTransposeB(transposeB),
				grb.WithMaskStructural(maskStruct),
				grb.WithMaskComplement(maskComp),
			)

			c, err := grb.Multiply[float64, float64, float64](context.Background(), a, b, sr, mask, nil, false, desc)
			if err != nil {
				return fmt.Errorf("grbctl: multiply: %w", err)
			}

			if out == "" || out == "-" {
				return writeTuples(os.Stdout, c)
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("grbctl: create %s: %w", out, err)
			}
			defer f.Close()
			return writeTuples(f, c)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&aPath, "a", "", "tuple file for the left operand (required)")
	flags.StringVar(&bPath, "b", "", "tuple file for the right operand (required)")
	flags.StringVar(&maskPath, "mask", "", "tuple file for an optional mask")
	flags.StringVar(&out, "out", "-", "output tuple file, - for stdout")
	flags.StringVar(&semiringName, "semiring", "plus_times", fmt.Sprintf("built-in semiring name (%v)", catalog.Names()))
	flags.Float64Var(&identity, "identity", 0, "additive identity, only consulted by semirings without a canonical zero (e.g. min_plus)")
	flags.BoolVar(&transposeA, "transpose-a", false, "operate on A' instead of A")
	flags.BoolVar(&transposeB, "transpose-b", false, "operate on B' instead of B")
	flags.BoolVar(&maskStruct, "mask-struct", false, "interpret the mask structurally, ignoring its values")
	flags.BoolVar(&maskComp, "mask-comp", false, "complement the mask")
	flags.Int64Var(&chunk, "chunk", 4096, "minimum estimated flops assigned to a single task")
	flags.IntVar(&maxThreads, "max-threads", 0, "goroutine cap, 0 means runtime.GOMAXPROCS(0)")
	cmd.MarkFlagRequired("a")
	cmd.MarkFlagRequired("b")

	return cmd
}
