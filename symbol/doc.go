// Package symbol provides ordered symbol sets and the alignment maps used
// to merge differently keyed exponent vectors.
//
// A Set holds distinct names in ascending order, so a position in the set
// identifies a slot in every exponent vector keyed by it. Merge computes
// the union of two sets together with an InsertionMap per side describing
// where the missing symbols slot into each original set.
package symbol
