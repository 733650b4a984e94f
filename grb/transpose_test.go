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

	"github.com/stretchr/testify/require"

	"github.com/filipecosta90/GraphBLAS/grb"
)

func TestTransposeSwapsDimensionsAndIndices(t *testing.T) {
	m, err := grb.Build(2, 3,
		[]int64{0, 1, 0},
		[]int64{0, 1, 2},
		[]float64{1, 2, 3}, nil)
	require.NoError(t, err)

	mt, err := grb.Transpose(m)
	require.NoError(t, err)
	require.Equal(t, int64(3), mt.VLen())
	require.Equal(t, int64(2), mt.VDim())

	I, J, X := grb.Extract(mt)
	got := map[[2]int64]float64{}
	for k := range I {
		got[[2]int64{I[k], J[k]}] = X[k]
	}
	require.Equal(t, map[[2]int64]float64{
		{0, 0}: 1,
		{1, 1}: 2,
		{2, 0}: 3,
	}, got)
}

func TestTransposeTwiceRoundTrips(t *testing.T) {
	m, err := grb.Build(3, 2, []int64{0, 2}, []int64{1, 0}, []float64{5, 6}, nil)
	require.NoError(t, err)

	mtt, err := grb.Transpose(m)
	require.NoError(t, err)
	mtt, err = grb.Transpose(mtt)
	require.NoError(t, err)

	I1, J1, X1 := grb.Extract(m)
	I2, J2, X2 := grb.Extract(mtt)
	require.Equal(t, I1, I2)
	require.Equal(t, J1, J2)
	require.Equal(t, X1, X2)
}
