// Copyright ©️ Mergewright Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package reconcile

// mergeWithContext implements the OT merge's six-case finite state machine,
// keyed on (this operation's kind, the affecting side's last operation
// kind). affecting is the opposite side's accumulated state; produced is
// this side's own running state, updated in place. order is this
// operation's ancestor order (see OrderedOperation); otherOp is a lookahead
// at the opposite side's next pending operation, used by the Equal case to
// avoid retaining ancestor content the opposite side is about to act on in
// more detail.
//
// It returns the operation to emit, or ok=false if the operation was fully
// absorbed (e.g. an idempotent duplicate insert) and nothing should be
// emitted for this step.
func (self Operation[T]) mergeWithContext(
	order int,
	affecting *mergeContext[T],
	produced *mergeContext[T],
	otherOp *OrderedOperation[T],
) (Operation[T], bool) {
	affecting.consumeIfTooBehind(int64(self.StartIndex()) + affecting.shift)
	op := self.WithShiftedIndex(affecting.shift)

	lastOp, hasLast := affecting.lastOp()

	switch op.Kind {
	case OpInsert:
		switch {
		case !hasLast || lastOp.Kind == OpEqual:
			produced.shift += int64(op.Len())
			produced.consumeAndReplace(opPtr(op))
			return op, true

		case lastOp.Kind == OpInsert:
			offsetInTokens := longestPrefixContainedWithin(lastOp.Tokens, op.Tokens)
			offsetInLength := 0
			for _, t := range op.Tokens[:offsetInTokens] {
				offsetInLength += t.OriginalLength()
			}
			trimmed, ok := NewInsert(op.Index, op.Tokens[offsetInTokens:])

			affecting.shift -= int64(offsetInLength)
			if ok {
				produced.shift += int64(trimmed.Len())
				produced.consumeAndReplace(opPtr(trimmed))
				return trimmed, true
			}
			produced.consumeAndReplace(nil)
			return Operation[T]{}, false

		default: // lastOp.Kind == OpDelete
			produced.shift += int64(op.Len())

			debugAssert(op.StartIndex() >= lastOp.StartIndex() && op.StartIndex() <= lastOp.EndIndex(),
				"reconcile: insert %v is not contained in last delete %v", op, lastOp)

			difference := int64(op.StartIndex() - lastOp.StartIndex())
			moved := op.WithIndex(lastOp.StartIndex())

			shrunk, shrunkOk := NewDelete[T](moved.EndIndex(), int(int64(lastOp.Len())-difference))
			if shrunkOk {
				affecting.replaceLast(opPtr(shrunk))
			} else {
				affecting.replaceLast(nil)
			}
			affecting.shift -= difference

			produced.consumeAndReplace(opPtr(moved))
			return moved, true
		}

	case OpDelete:
		switch {
		case !hasLast || lastOp.Kind == OpInsert || lastOp.Kind == OpEqual:
			if hasLast && lastOp.Kind == OpEqual {
				// A delete cutting into a retained span makes the rest of
				// that span stale: once it's gone, later comparisons
				// against this side should see no tracked operation at
				// all, not a leftover Equal that no longer reflects what
				// has happened here.
				affecting.replaceLast(nil)
			}
			produced.consumeAndReplace(opPtr(op))
			return op, true

		default: // lastOp.Kind == OpDelete
			debugAssert(op.StartIndex() >= lastOp.StartIndex() && op.StartIndex() <= lastOp.EndIndex(),
				"reconcile: delete %v is not contained in last delete %v", op, lastOp)

			difference := int64(op.StartIndex() - lastOp.StartIndex())

			updated, updatedOk := NewDelete[T](lastOp.StartIndex(), maxInt(0, op.EndIndex()-lastOp.EndIndex()))

			shrunk, shrunkOk := NewDelete[T](lastOp.StartIndex(), maxInt(0, lastOp.EndIndex()-op.EndIndex()))
			if shrunkOk {
				affecting.replaceLast(opPtr(shrunk))
			} else {
				affecting.replaceLast(nil)
			}
			affecting.shift -= difference

			if updatedOk {
				produced.consumeAndReplace(opPtr(updated))
				return updated, true
			}
			produced.consumeAndReplace(nil)
			return Operation[T]{}, false
		}

	default: // OpEqual
		if hasLast && lastOp.Kind == OpDelete {
			debugAssert(op.StartIndex() >= lastOp.StartIndex() && op.StartIndex() <= lastOp.EndIndex(),
				"reconcile: equal %v is not contained in last delete %v", op, lastOp)

			overlap := minInt(op.Length, lastOp.EndIndex()-op.StartIndex())
			newStart := minInt(op.EndIndex(), lastOp.EndIndex())
			result, ok := NewEqual[T](newStart, op.Length-overlap)
			return result, ok
		}

		// A previous Equal from the affecting side already retained
		// everything up to its end; don't retain that prefix again.
		start := op.StartIndex()
		if hasLast && lastOp.Kind == OpEqual {
			start = maxInt(start, lastOp.EndIndex())
		}

		// If the affecting side has an operation queued up that starts
		// inside this range, it's about to decide, in more detail than a
		// plain Equal can, what happens to the rest of the range — don't
		// retain past it and race ahead of that decision.
		end := op.EndIndex()
		if otherOp != nil {
			if otherStart := otherOp.Operation.StartIndex(); otherStart > op.StartIndex() && otherStart < end {
				end = otherStart
			}
		}

		result, ok := NewEqual[T](start, maxInt(0, end-start))
		if ok {
			produced.consumeAndReplace(opPtr(result))
			return result, true
		}
		produced.consumeAndReplace(nil)
		return Operation[T]{}, false
	}
}

func opPtr[T comparable](op Operation[T]) *Operation[T] {
	o := op
	return &o
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
