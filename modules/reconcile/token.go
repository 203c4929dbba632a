// Copyright ©️ Mergewright Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package reconcile implements three-way textual reconciliation: given a
// common ancestor document and two concurrently edited descendants, it
// produces one merged document with no conflict markers, via a pluggable
// tokenizer, a token-level Myers diff, an operational-transform merge and a
// cursor relocator.
//
// The package is pure: every exported function is a total, deterministic,
// single-threaded function of its arguments. There is no I/O, no logging and
// no shared mutable state, so it is safe to call from any caller without
// setup.
package reconcile

import "unicode/utf8"

// Token is the atomic unit of comparison the diff and merge stages operate
// on: a normalized key used for equality, the original text preserved
// verbatim for output, and two joinability flags that gate whether the
// elongate pass may fuse this token into a run with its neighbour.
type Token[T comparable] struct {
	normalized     T
	original       string
	leftJoinable   bool
	rightJoinable  bool
}

// NewToken builds a token with explicit joinability flags. Tokenizers that
// need to force runs to interleave rather than group (see the elongate pass)
// set one or both flags false.
func NewToken[T comparable](normalized T, original string, leftJoinable, rightJoinable bool) Token[T] {
	return Token[T]{
		normalized:    normalized,
		original:      original,
		leftJoinable:  leftJoinable,
		rightJoinable: rightJoinable,
	}
}

// NewTrivialToken builds a fully-joinable token whose normalized form is the
// original string itself, the shape built-in tokenizers that key on the raw
// text (word, line) use.
func NewTrivialToken(s string) Token[string] {
	return NewToken(s, s, true, true)
}

// Normalized returns the key used for equality comparisons between tokens.
func (t Token[T]) Normalized() T { return t.normalized }

// Original returns the verbatim source text the token was carved from.
func (t Token[T]) Original() string { return t.original }

// IsLeftJoinable reports whether this token may be fused onto a preceding
// run of the same operation kind during the elongate pass.
func (t Token[T]) IsLeftJoinable() bool { return t.leftJoinable }

// IsRightJoinable reports whether a following token may be fused onto this
// one during the elongate pass.
func (t Token[T]) IsRightJoinable() bool { return t.rightJoinable }

// SetNormalized replaces the token's normalized key, keeping the original
// text and joinability flags. Used by the word tokenizer to fold a
// whitespace run's key together with the word that follows it.
func (t Token[T]) SetNormalized(normalized T) Token[T] {
	t.normalized = normalized
	return t
}

// OriginalLength returns the number of Unicode scalar values (runes) in the
// token's original text. Indices throughout this package are rune offsets,
// never byte offsets.
func (t Token[T]) OriginalLength() int {
	return utf8.RuneCountInString(t.original)
}

// Equal compares two tokens by their normalized key only; original text and
// joinability flags never participate in equality.
func (t Token[T]) Equal(other Token[T]) bool {
	return t.normalized == other.normalized
}
