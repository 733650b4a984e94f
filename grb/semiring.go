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

import (
	"math"
	"unsafe"
)

// Number is the set of built-in scalar kinds grb/catalog's registry names
// a Semiring for. User-defined types still work through Multiply directly
// (construct a Semiring by hand), they just have no catalog.Lookup entry.
type Number interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int |
		~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint |
		~float32 | ~float64
}

// Monoid is a commutative, associative additive operator with an identity
// element and an optional terminal value. A terminal value t satisfies
// t ⊕ x == t for all x, which lets dot products short-circuit.
type Monoid[T any] struct {
	Name       string
	Identity   T
	Add        func(a, b T) T
	Terminal   *T   // nil if the monoid has no terminal value
	Commutes   bool // assumed true for all monoids used here
	Code       OpCode
	AtomicKind AtomicKind
}

// HasTerminal reports whether m declares a terminal value.
func (m Monoid[T]) HasTerminal() bool { return m.Terminal != nil }

// BinaryOp is the multiplicative operator ⊗ of a semiring. X and Y are the
// operand types it accepts (after casting); Z is the type it produces.
type BinaryOp[X, Y, Z any] struct {
	Name string
	Mult func(x X, y Y) Z
	Code OpCode
}

// Semiring pairs an additive Monoid over Z with a multiplicative BinaryOp
// producing Z, satisfying the compatibility invariant ztype(⊗) ==
// ztype(monoid). X and Y are A's and B's operand types.
type Semiring[X, Y, Z any] struct {
	Name     string
	Add      Monoid[Z]
	Multiply BinaryOp[X, Y, Z]
}

// OpCode enumerates the built-in monoid/binary-op identities the dispatch
// table keys specialized kernels on. It is the Go-native reading of the
// enum tags GB_Opcode uses in the original engine to select a generated
// kernel without calling through a function pointer.
type OpCode uint8

const (
	// OpCodeNone marks a user-defined operator with no built-in identity;
	// Multiply falls back to the generic kernel for it.
	OpCodeNone OpCode = iota
	OpCodePlus
	OpCodeTimes
	OpCodeMin
	OpCodeMax
	OpCodeAny
	OpCodeFirst
	OpCodeSecond
	OpCodeLor
	OpCodeLand
	OpCodeLxor
	OpCodeEq
)

// AtomicKind describes which atomic update strategy a fine saxpy task must
// use when several tasks share a hash table for one output column.
type AtomicKind uint8

const (
	// AtomicCAS performs a compare-and-swap loop over a same-size integer
	// pun of the value, used for floating-point and user-defined monoids.
	AtomicCAS AtomicKind = iota
	// AtomicInt uses a native atomic add/or/and on an integer monoid.
	AtomicInt
	// AtomicAny needs no atomic update: once a slot is claimed, further
	// writes are redundant and may be skipped.
	AtomicAny
)

// PlusMonoid returns the built-in PLUS monoid over T with identity 0 and no
// terminal value.
func PlusMonoid[T Number]() Monoid[T] {
	return Monoid[T]{
		Name:     "plus",
		Identity: 0,
		Add:      func(a, b T) T { return a + b },
		Code:     OpCodePlus,
	}
}

// TimesBinaryOp returns the built-in TIMES multiplicative operator over T.
func TimesBinaryOp[T Number]() BinaryOp[T, T, T] {
	return BinaryOp[T, T, T]{Name: "times", Mult: func(a, b T) T { return a * b }, Code: OpCodeTimes}
}

// PlusTimes returns the classical PLUS_TIMES semiring over T, the numeric
// analogue of ordinary matrix multiplication.
func PlusTimes[T Number]() Semiring[T, T, T] {
	return Semiring[T, T, T]{Name: "plus_times", Add: PlusMonoid[T](), Multiply: TimesBinaryOp[T]()}
}

// MinPlus returns the tropical (min, +) semiring over T, with +Inf-like
// identity supplied by the caller via identity (there is no portable
// "infinity" for integer types, so the caller picks a sentinel).
func MinPlus[T Number](identity T) Semiring[T, T, T] {
	add := Monoid[T]{
		Name:     "min",
		Identity: identity,
		Add: func(a, b T) T {
			if a < b {
				return a
			}
			return b
		},
		Code: OpCodeMin,
	}
	term := minTerminal[T]()
	add.Terminal = &term
	mult := BinaryOp[T, T, T]{Name: "plus", Mult: func(a, b T) T { return a + b }, Code: OpCodePlus}
	return Semiring[T, T, T]{Name: "min_plus", Add: add, Multiply: mult}
}

// minTerminal returns T's most-negative representable value: -Inf for
// floating-point domains, the two's-complement minimum for signed integer
// domains, zero for unsigned ones. This is the real MIN monoid's terminal
// value (e.g. "if (s == INT16_MIN) break" in
// Source/Generated/GB_red__min_int16.c), not the additive identity —
// min(x, T's minimum) == T's minimum for every x, which is what lets a dot
// product legitimately stop early.
func minTerminal[T Number]() T {
	var zero T
	if T(1)/T(2) != zero { // integer division only collapses to zero for integer domains
		return T(math.Inf(-1))
	}
	minusOne := zero - T(1)
	if minusOne < zero { // signed: -1 doubled bits-1 times is -2^(bits-1), the minimum
		bits := unsafe.Sizeof(zero) * 8
		m := minusOne
		for b := uintptr(1); b < bits; b++ {
			m += m
		}
		return m
	}
	return zero // unsigned: zero is the minimum
}

// AnyPair returns the Boolean-pattern ANY_PAIR semiring: multiply always
// produces 1, and ANY keeps whichever contribution lands first. Used for
// structural-only computations (counting or reachability).
func AnyPair[T Number]() Semiring[T, T, T] {
	add := Monoid[T]{
		Name:     "any",
		Identity: 0,
		Add:      func(a, b T) T { return b },
		Code:     OpCodeAny,
	}
	term := T(1)
	add.Terminal = &term
	mult := BinaryOp[T, T, T]{Name: "pair", Mult: func(a, b T) T { return 1 }, Code: OpCodeFirst}
	return Semiring[T, T, T]{Name: "any_pair", Add: add, Multiply: mult}
}
