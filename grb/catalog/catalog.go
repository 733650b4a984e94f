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

// Package catalog is the built-in semiring registry: a name like
// "plus_times" resolves to an OpCode pair via the generated Builtins
// table (zdispatch_generated.go, produced by cmd/grbgen) and to a
// concrete grb.Semiring via Lookup. Multiply itself never needs this
// package — callers that already hold a grb.Semiring[X,Y,Z] value can
// pass it directly — but grbctl and tests that accept a semiring by name
// go through here.
package catalog

import "github.com/filipecosta90/GraphBLAS/grb"

// Descriptor names one built-in (monoid, multiplicative op) pair.
type Descriptor struct {
	Name       string
	MonoidCode grb.OpCode
	MultCode   grb.OpCode
}

// ByName returns the Descriptor registered under name, if any.
func ByName(name string) (Descriptor, bool) {
	for _, d := range Builtins {
		if d.Name == name {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Lookup constructs the built-in semiring named name over T. identity is
// only consulted for semirings whose monoid has no canonical zero (e.g.
// min_plus, where the identity depends on T and the caller's notion of
// "infinity").
func Lookup[T grb.Number](name string, identity T) (grb.Semiring[T, T, T], bool) {
	switch name {
	case "plus_times":
		return grb.PlusTimes[T](), true
	case "min_plus":
		return grb.MinPlus[T](identity), true
	case "any_pair":
		return grb.AnyPair[T](), true
	default:
		var zero grb.Semiring[T, T, T]
		return zero, false
	}
}

// Names returns every registered built-in semiring name, in catalog order.
func Names() []string {
	names := make([]string, len(Builtins))
	for i, d := range Builtins {
		names[i] = d.Name
	}
	return names
}
