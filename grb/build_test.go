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

package grb_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/filipecosta90/GraphBLAS/grb"
)

func TestBuildAndExtractRoundTrip(t *testing.T) {
	I := []int64{2, 0, 1, 0}
	J := []int64{1, 0, 1, 2}
	X := []float64{3, 1, 4, 5}

	m, err := grb.Build(3, 3, I, J, X, nil)
	require.NoError(t, err)
	require.Equal(t, int64(4), m.NNZ())

	gotI, gotJ, gotX := grb.Extract(m)
	want := []struct {
		I, J int64
		X    float64
	}{
		{0, 0, 1}, {1, 1, 4}, {2, 1, 3}, {0, 2, 5},
	}
	require.Len(t, gotI, len(want))
	for k, w := range want {
		if diff := cmp.Diff(w.I, gotI[k]); diff != "" {
			t.Errorf("entry %d row mismatch (-want +got):\n%s", k, diff)
		}
		require.Equal(t, w.J, gotJ[k])
		require.Equal(t, w.X, gotX[k])
	}
}

func TestBuildDuplicateWithoutDupIsError(t *testing.T) {
	_, err := grb.Build(2, 2, []int64{0, 0}, []int64{0, 0}, []float64{1, 2}, nil)
	require.Error(t, err)
}

func TestBuildDuplicateCombined(t *testing.T) {
	m, err := grb.Build(2, 2, []int64{0, 0}, []int64{0, 0}, []float64{1, 2}, func(a, b float64) float64 { return a + b })
	require.NoError(t, err)
	require.Equal(t, int64(1), m.NNZ())
	_, _, x := grb.Extract(m)
	require.Equal(t, []float64{3}, x)
}

func TestBuildOutOfRangeTuple(t *testing.T) {
	_, err := grb.Build(2, 2, []int64{5}, []int64{0}, []float64{1}, nil)
	require.ErrorIs(t, err, grb.ErrDimensionMismatch)
}

func TestNewHypersparseMatrixStartsEmpty(t *testing.T) {
	m := grb.NewHypersparseMatrix[float64](10, 10)
	require.True(t, m.IsHyper())
	require.Equal(t, int64(0), m.NNZ())
	require.Equal(t, int64(0), m.NVec())
}

func TestCloneIsIndependent(t *testing.T) {
	m, err := grb.Build(2, 2, []int64{0}, []int64{0}, []float64{7}, nil)
	require.NoError(t, err)
	c := m.Clone()
	c.Ax[0] = 99
	require.Equal(t, float64(7), m.Ax[0])
	require.Equal(t, float64(99), c.Ax[0])
}
