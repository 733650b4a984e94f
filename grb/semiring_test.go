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
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/filipecosta90/GraphBLAS/grb"
)

func TestMinPlusTerminalIsMostNegativeRepresentableValue(t *testing.T) {
	require.Equal(t, int8(math.MinInt8), *grb.MinPlus[int8](math.MaxInt8).Add.Terminal)
	require.Equal(t, int64(math.MinInt64), *grb.MinPlus[int64](math.MaxInt64).Add.Terminal)
	require.Equal(t, uint32(0), *grb.MinPlus[uint32](math.MaxUint32).Add.Terminal)
	require.Equal(t, math.Inf(-1), float64(*grb.MinPlus[float64](1e18).Add.Terminal))
	require.Equal(t, float32(math.Inf(-1)), *grb.MinPlus[float32](1e18).Add.Terminal)
}
