// Copyright ©️ Mergewright Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package reconcile

import (
	"sort"
	"unicode/utf8"

	"github.com/emirpasic/gods/trees/binaryheap"
)

// EditedText is a text document paired with a sequence of operations
// against it. It is produced either by diffing an ancestor against one side
// (FromStrings, where every operation is tagged SideLeft) or by merging two
// such values (Merge, where each operation remembers the side it came
// from). Applying it reproduces the side's text (or, after a merge, the
// reconciled text).
type EditedText[T comparable] struct {
	ancestor       string
	operations     []OrderedOperation[T]
	operationSides []Side
	cursors        []CursorPosition
}

// FromStrings builds an EditedText representing the edits from ancestor to
// updated, using the Word built-in tokenizer.
func FromStrings(ancestor string, updated TextWithCursors) EditedText[string] {
	return FromStringsWithTokenizer(ancestor, updated, WordTokenizer.Tokenizer())
}

// FromStringsWithTokenizer builds an EditedText representing the edits from
// ancestor to updated, tokenized with the given tokenizer.
func FromStringsWithTokenizer[T comparable](ancestor string, updated TextWithCursors, tokenizer Tokenizer[T]) EditedText[T] {
	oldTokens := tokenizer(ancestor)
	newTokens := tokenizer(updated.Text)

	raw := MyersDiff(oldTokens, newTokens)
	operations := Cook(Elongate(raw))

	sides := make([]Side, len(operations))
	for i := range sides {
		sides[i] = SideLeft
	}

	return newEditedText(ancestor, operations, sides, updated.Cursors)
}

func newEditedText[T comparable](ancestor string, operations []OrderedOperation[T], sides []Side, cursors []CursorPosition) EditedText[T] {
	for i := 1; i < len(operations); i++ {
		debugAssert(operations[i-1].Operation.StartIndex() <= operations[i].Operation.StartIndex(),
			"reconcile: operation %v must not come before %v", operations[i-1].Operation, operations[i].Operation)
	}

	sorted := make([]CursorPosition, len(cursors))
	copy(sorted, cursors)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].CharIndex < sorted[j].CharIndex })

	return EditedText[T]{
		ancestor:       ancestor,
		operations:     operations,
		operationSides: sides,
		cursors:        sorted,
	}
}

type mergeHeadItem[T comparable] struct {
	side Side
	op   OrderedOperation[T]
}

func headComparator[T comparable](a, b any) int {
	ia, ib := a.(mergeHeadItem[T]), b.(mergeHeadItem[T])
	switch {
	case ia.op.less(ib.op):
		return -1
	case ib.op.less(ia.op):
		return 1
	default:
		return 0
	}
}

// Merge combines this EditedText with other, both derived from the same
// ancestor, into a single EditedText representing the union of both sides'
// edits via the OT merge described in operation.go/merge_fsm.go. It
// implements spec.md §4.6's algorithm using a binary min-heap (as
// modules/zeta/object/commit_walker_topo_order.go does for ordering
// incomparable-by-default items by an explicit key) to pick, at each step,
// the chronologically-smaller of the two sides' next pending operations.
func (self EditedText[T]) Merge(other EditedText[T]) EditedText[T] {
	debugAssert(self.ancestor == other.ancestor, "reconcile: EditedText values must share an ancestor to be merged")

	leftOps, rightOps := self.operations, other.operations
	leftCursors, rightCursors := self.cursors, other.cursors
	leftCursorIdx, rightCursorIdx := 0, 0

	var leftCtx, rightCtx mergeContext[T]

	heap := binaryheap.NewWith(headComparator[T])
	leftIdx, rightIdx := 0, 0
	if leftIdx < len(leftOps) {
		heap.Push(mergeHeadItem[T]{side: SideLeft, op: leftOps[leftIdx]})
	}
	if rightIdx < len(rightOps) {
		heap.Push(mergeHeadItem[T]{side: SideRight, op: rightOps[rightIdx]})
	}

	var mergedOps []OrderedOperation[T]
	var mergedSides []Side
	var mergedCursors []CursorPosition

	for {
		top, ok := heap.Pop()
		if !ok {
			break
		}
		item := top.(mergeHeadItem[T])

		var otherOp *OrderedOperation[T]
		if peeked, peekOk := heap.Peek(); peekOk {
			other := peeked.(mergeHeadItem[T])
			if other.side != item.side {
				o := other.op
				otherOp = &o
			}
		}

		switch item.side {
		case SideLeft:
			leftIdx++
			if leftIdx < len(leftOps) {
				heap.Push(mergeHeadItem[T]{side: SideLeft, op: leftOps[leftIdx]})
			}
		case SideRight:
			rightIdx++
			if rightIdx < len(rightOps) {
				heap.Push(mergeHeadItem[T]{side: SideRight, op: rightOps[rightIdx]})
			}
		}

		op := item.op.Operation
		order := item.op.Order
		originalStart := int64(op.StartIndex())
		originalEnd := op.EndIndex()
		originalLength := int64(op.Len())

		var result Operation[T]
		var resultOk bool
		if item.side == SideLeft {
			result, resultOk = op.mergeWithContext(order, &rightCtx, &leftCtx, otherOp)
		} else {
			result, resultOk = op.mergeWithContext(order, &leftCtx, &rightCtx, otherOp)
		}

		if resultOk && (result.Kind == OpInsert || result.Kind == OpEqual) {
			shift := int64(result.StartIndex()) - originalStart + int64(result.Len()) - originalLength
			switch item.side {
			case SideLeft:
				for leftCursorIdx < len(leftCursors) && leftCursors[leftCursorIdx].CharIndex <= originalEnd+1 {
					c := leftCursors[leftCursorIdx]
					relocated := maxInt(result.StartIndex(), int(int64(c.CharIndex)+shift))
					mergedCursors = append(mergedCursors, c.withIndex(relocated))
					leftCursorIdx++
				}
			case SideRight:
				for rightCursorIdx < len(rightCursors) && rightCursors[rightCursorIdx].CharIndex <= originalEnd+1 {
					c := rightCursors[rightCursorIdx]
					relocated := maxInt(result.StartIndex(), int(int64(c.CharIndex)+shift))
					mergedCursors = append(mergedCursors, c.withIndex(relocated))
					rightCursorIdx++
				}
			}
		}

		if resultOk {
			mergedOps = append(mergedOps, OrderedOperation[T]{Order: order, Operation: result})
			mergedSides = append(mergedSides, item.side)
		}
	}

	lastIndex := 0
	for i := len(mergedOps) - 1; i >= 0; i-- {
		if mergedOps[i].Operation.Kind == OpInsert || mergedOps[i].Operation.Kind == OpEqual {
			lastIndex = mergedOps[i].Operation.EndIndex()
			break
		}
	}
	for _, c := range leftCursors[leftCursorIdx:] {
		mergedCursors = append(mergedCursors, c.withIndex(lastIndex))
	}
	for _, c := range rightCursors[rightCursorIdx:] {
		mergedCursors = append(mergedCursors, c.withIndex(lastIndex))
	}

	covered := 0
	for _, o := range mergedOps {
		if o.Operation.Kind != OpInsert {
			covered += o.Operation.Length
		}
	}
	debugAssert(covered == utf8.RuneCountInString(self.ancestor),
		"reconcile: merged operations cover %d ancestor characters, want %d", covered, utf8.RuneCountInString(self.ancestor))

	return newEditedText(self.ancestor, mergedOps, mergedSides, mergedCursors)
}

// Apply applies the operations to the ancestor, returning the resulting
// text and cursors.
func (self EditedText[T]) Apply() TextWithCursors {
	builder := newStringBuilder(self.ancestor)
	for _, o := range self.operations {
		applyOperation(o.Operation, builder)
	}
	return TextWithCursors{Text: builder.build(), Cursors: self.cursors}
}

func applyOperation[T comparable](op Operation[T], builder *stringBuilder) {
	switch op.Kind {
	case OpEqual:
		builder.retain(op.Length)
	case OpInsert:
		builder.insert(op.OriginalText())
	case OpDelete:
		builder.delete(op.Length)
	}
}
