// Copyright ©️ Mergewright Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package reconcile

// longestPrefixContainedWithin returns the length of the longest prefix of
// newTokens that appears, in order, as a contiguous window anywhere within
// oldTokens. It backs the OT merge's idempotent-insert dedup: when both
// sides insert at the same ancestor point and the second insertion's
// leading tokens already occur verbatim inside the first, that shared
// prefix is dropped instead of duplicated.
func longestPrefixContainedWithin[T comparable](oldTokens, newTokens []Token[T]) int {
	maxPossible := min(len(oldTokens), len(newTokens))

	for length := maxPossible; length >= 1; length-- {
		prefix := newTokens[:length]
		if containsWindow(oldTokens, prefix) {
			return length
		}
	}
	return 0
}

func containsWindow[T comparable](haystack, needle []Token[T]) bool {
	if len(needle) > len(haystack) {
		return false
	}
	for start := 0; start+len(needle) <= len(haystack); start++ {
		match := true
		for i, tok := range needle {
			if !haystack[start+i].Equal(tok) {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
