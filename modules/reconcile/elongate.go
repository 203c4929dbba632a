// Copyright ©️ Mergewright Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package reconcile

// Elongate walks a RawOp sequence and produces a new one in which Equal runs
// are left untouched but maximal runs of Insert and Delete are greedily
// fused, gated by joinability: a new op only joins the previous one of the
// same kind if the previous run's last token is right-joinable and the new
// run's first token is left-joinable.
//
// Interleaved Insert/Delete runs with no Equal between them (IDID...) are
// reordered into a single Delete run followed by a single Insert run
// (DD...II...), so the OT merge sees one delete and one insert at the same
// ancestor position rather than N alternations.
func Elongate[T comparable](raw []RawOp[T]) []RawOp[T] {
	var result []RawOp[T]
	var pendingInserts, pendingDeletes []RawOp[T]

	// flush empties the accumulated runs between two Equals (or at the end
	// of input) in delete-then-insert order, so a Delete on one side of an
	// interleaved IDID... block never reappears after an Insert it preceded.
	flush := func() {
		result = append(result, pendingDeletes...)
		result = append(result, pendingInserts...)
		pendingDeletes = nil
		pendingInserts = nil
	}

	appendRun := func(runs []RawOp[T], next RawOp[T]) []RawOp[T] {
		if n := len(runs); n > 0 && runs[n-1].IsRightJoinable() && next.IsLeftJoinable() {
			runs[n-1] = runs[n-1].Join(next)
			return runs
		}
		return append(runs, next)
	}

	for _, next := range raw {
		switch next.Kind {
		case RawInsert:
			pendingInserts = appendRun(pendingInserts, next)
		case RawDelete:
			pendingDeletes = appendRun(pendingDeletes, next)
		default: // RawEqual
			flush()
			result = append(result, next)
		}
	}
	flush()

	return result
}
