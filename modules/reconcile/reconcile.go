// Copyright ©️ Mergewright Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package reconcile

// Reconcile is the package's top-level entry point: given a common
// ancestor and two independently edited descendants, it diffs each
// descendant against the ancestor, then merges the two resulting edit
// sequences via the OT merge in EditedText.Merge, returning an EditedText
// whose Apply/ApplyWithHistory reproduce the reconciled text.
func Reconcile[T comparable](ancestor string, left, right TextWithCursors, tokenizer Tokenizer[T]) EditedText[T] {
	leftEdited := FromStringsWithTokenizer(ancestor, left, tokenizer)
	rightEdited := FromStringsWithTokenizer(ancestor, right, tokenizer)
	return leftEdited.Merge(rightEdited)
}

// ReconcileStrings is a convenience wrapper around Reconcile for callers
// that only have plain strings and no cursors to track, using the Word
// built-in tokenizer.
func ReconcileStrings(ancestor, left, right string) EditedText[string] {
	return Reconcile(ancestor, PlainText(left), PlainText(right), WordTokenizer.Tokenizer())
}
