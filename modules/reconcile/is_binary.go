// Copyright ©️ Mergewright Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package reconcile

import "unicode/utf8"

// IsBinary reports whether data should be treated as binary rather than
// text for the purposes of this package: it contains a NUL byte, or it is
// not valid UTF-8. This is deliberately narrower than the charset-sniffing
// modules/diferenco/text.go does for the CLI diff viewer; reconciliation
// only needs to know whether it is safe to decode data as a string of
// tokenizable runes at all.
func IsBinary(data []byte) bool {
	for _, b := range data {
		if b == 0 {
			return true
		}
	}
	return !utf8.Valid(data)
}
