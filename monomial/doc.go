// Package monomial provides packed exponent-vector keys for sparse
// polynomial arithmetic.
//
// A Monomial holds a fixed number of integer exponents packed into a single
// machine word, so comparing and multiplying keys stay single-word
// operations. Degree queries and symbol merging decode on demand. Set
// collects same-size monomials in a roaring bitmap over their packed words.
package monomial
