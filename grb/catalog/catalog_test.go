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

package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/filipecosta90/GraphBLAS/grb"
	"github.com/filipecosta90/GraphBLAS/grb/catalog"
)

func TestByNameFindsEveryBuiltin(t *testing.T) {
	for _, name := range catalog.Names() {
		d, ok := catalog.ByName(name)
		require.True(t, ok, name)
		require.Equal(t, name, d.Name)
	}
	_, ok := catalog.ByName("does_not_exist")
	require.False(t, ok)
}

func TestLookupPlusTimesMatchesConstructor(t *testing.T) {
	sr, ok := catalog.Lookup[float64]("plus_times", 0)
	require.True(t, ok)
	want := grb.PlusTimes[float64]()
	require.Equal(t, want.Add.Code, sr.Add.Code)
	require.Equal(t, want.Multiply.Code, sr.Multiply.Code)
	require.Equal(t, float64(6), sr.Multiply.Mult(2, 3))
	require.Equal(t, float64(5), sr.Add.Add(2, 3))
}

func TestLookupMinPlusUsesCallerIdentity(t *testing.T) {
	sr, ok := catalog.Lookup[float64]("min_plus", 1e9)
	require.True(t, ok)
	require.Equal(t, float64(1e9), sr.Add.Identity)
	require.Equal(t, float64(2), sr.Add.Add(2, 5))
}

func TestLookupUnknownName(t *testing.T) {
	_, ok := catalog.Lookup[float64]("no_such_semiring", 0)
	require.False(t, ok)
}
