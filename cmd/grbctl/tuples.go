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
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/filipecosta90/GraphBLAS/grb"
)

// loadMatrix reads a tuple file: a header line "vlen vdim" followed by one
// "i j x" triple per line (blank lines and lines starting with # are
// skipped). It builds the matrix with grb.Build, combining duplicates by
// addition.
func loadMatrix(path string) (*grb.Matrix[float64], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("grbctl: open %s: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	var vlen, vdim int64
	var header bool
	var I, J []int64
	var X []float64

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if !header {
			if len(fields) != 2 {
				return nil, fmt.Errorf("grbctl: %s: header must be \"vlen vdim\", got %q", path, line)
			}
			vlen, err = strconv.ParseInt(fields[0], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("grbctl: %s: bad vlen: %w", path, err)
			}
			vdim, err = strconv.ParseInt(fields[1], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("grbctl: %s: bad vdim: %w", path, err)
			}
			header = true
			continue
		}
		if len(fields) != 3 {
			return nil, fmt.Errorf("grbctl: %s: tuple must be \"i j x\", got %q", path, line)
		}
		i, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("grbctl: %s: bad i: %w", path, err)
		}
		j, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("grbctl: %s: bad j: %w", path, err)
		}
		x, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("grbctl: %s: bad x: %w", path, err)
		}
		I = append(I, i)
		J = append(J, j)
		X = append(X, x)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("grbctl: %s: %w", path, err)
	}
	if !header {
		return nil, fmt.Errorf("grbctl: %s: missing header line", path)
	}
	return grb.Build(vlen, vdim, I, J, X, func(a, b float64) float64 { return a + b })
}

// writeTuples writes m's stored entries out in "i j x" form, one per line.
func writeTuples(w io.Writer, m *grb.Matrix[float64]) error {
	bw := bufio.NewWriter(w)
	I, J, X := grb.Extract(m)
	for k := range I {
		if _, err := fmt.Fprintf(bw, "%d %d %g\n", I[k], J[k], X[k]); err != nil {
			return err
		}
	}
	return bw.Flush()
}
