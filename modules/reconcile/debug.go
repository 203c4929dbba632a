// Copyright ©️ Mergewright Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package reconcile

import "fmt"

// Debug gates the package's invariant checks (monotonic operation indices,
// cursors within text bounds, merge partition completeness, non-negative
// shifted indices). It defaults to false, the equivalent of a release
// build; tests can set it to true to catch contract violations early. Leaving
// it false never changes the result of any function in this package, only
// whether a violated invariant panics or is silently ignored.
var Debug = false

// debugAssert panics with the given message, formatted with args, if
// Debug is enabled and cond is false. It is a no-op otherwise.
func debugAssert(cond bool, format string, args ...any) {
	if Debug && !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
