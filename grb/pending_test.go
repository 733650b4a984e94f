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

func TestSetElementThenWaitAssembles(t *testing.T) {
	m := grb.NewMatrix[float64](3, 3)
	require.False(t, m.HasPending())

	m.SetElement(1, 0, 5)
	m.SetElement(0, 0, 1)
	m.SetElement(2, 1, 7)
	require.True(t, m.HasPending())

	require.NoError(t, m.Wait())
	require.False(t, m.HasPending())
	require.Equal(t, int64(3), m.NNZ())

	I, J, X := grb.Extract(m)
	require.Equal(t, []int64{0, 1}, I[:2])
	require.Equal(t, []int64{0, 0}, J[:2])
	require.Equal(t, []float64{1, 5}, X[:2])
	require.Equal(t, int64(2), I[2])
	require.Equal(t, int64(1), J[2])
}

func TestSetElementDuplicateOverwritesByDefault(t *testing.T) {
	m := grb.NewMatrix[float64](2, 2)
	m.SetElement(0, 0, 1)
	m.SetElement(0, 0, 2)
	require.NoError(t, m.Wait())
	_, _, x := grb.Extract(m)
	require.Equal(t, []float64{2}, x)
}

func TestSetElementDuplicateCombinedWithPendingOp(t *testing.T) {
	m := grb.NewMatrix[float64](2, 2)
	times := grb.TimesBinaryOp[float64]()
	m.SetPendingOp(&times)
	m.SetElement(0, 0, 3)
	m.SetElement(0, 0, 4)
	require.NoError(t, m.Wait())
	_, _, x := grb.Extract(m)
	require.Equal(t, []float64{12}, x)
}

func TestRemoveElementMarksZombieUntilWait(t *testing.T) {
	m, err := grb.Build(2, 2, []int64{0, 1}, []int64{0, 1}, []float64{1, 2}, nil)
	require.NoError(t, err)

	m.RemoveElement(0, 0)
	require.True(t, m.HasPending())
	require.Equal(t, int64(2), m.NNZ(), "zombie is still stored until Wait")

	require.NoError(t, m.Wait())
	require.False(t, m.HasPending())
	require.Equal(t, int64(1), m.NNZ())
	I, _, _ := grb.Extract(m)
	require.Equal(t, []int64{1}, I)
}

func TestWaitIsIdempotent(t *testing.T) {
	m := grb.NewMatrix[float64](2, 2)
	m.SetElement(0, 0, 1)
	require.NoError(t, m.Wait())
	require.NoError(t, m.Wait())
	require.Equal(t, int64(1), m.NNZ())
}
