// Package testutil provides testing utilities for kpack.
//
// This package is intended for use in tests and benchmarks only.
// It provides a deterministic, thread-safe random source and generators
// that draw exponent vectors uniformly from the slot range of a layout,
// so every generated row is guaranteed to pack.
//
// Type parameters are not allowed on methods, so the generic generators
// take the RNG as their first argument.
//
// # Exponent Generation
//
//	rng := testutil.NewRNG(seed)
//	row := testutil.Exponents[int64](rng, 4)       // one packable row
//	rows := testutil.ExponentRows[int64](rng, 100, 4) // many rows, shared backing
//
// # Packed Words
//
//	words := testutil.Words[uint32](rng, 100, 3) // valid packed words
package testutil
