// Copyright ©️ Mergewright Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package reconcile

// Provenance tags a span in a history-annotated rendering of a merge result
// with where it came from.
type Provenance int8

const (
	// Unchanged marks a span carried over from the ancestor untouched.
	Unchanged Provenance = iota
	// AddedFromLeft marks a span inserted by the left descendant.
	AddedFromLeft
	// AddedFromRight marks a span inserted by the right descendant.
	AddedFromRight
	// RemovedFromLeft marks an ancestor span deleted by the left descendant.
	RemovedFromLeft
	// RemovedFromRight marks an ancestor span deleted by the right descendant.
	RemovedFromRight
)

func (p Provenance) String() string {
	switch p {
	case Unchanged:
		return "unchanged"
	case AddedFromLeft:
		return "added-from-left"
	case AddedFromRight:
		return "added-from-right"
	case RemovedFromLeft:
		return "removed-from-left"
	case RemovedFromRight:
		return "removed-from-right"
	default:
		return "unknown"
	}
}

// SpanWithHistory is one contiguous run of text tagged with its provenance,
// the unit ApplyWithHistory renders its result in.
type SpanWithHistory struct {
	Text       string
	Provenance Provenance
}

// ApplyWithHistory applies the operations the same way Apply does, but
// instead of producing only the merged text, it returns the sequence of
// spans making it up, each tagged with where the span came from. Operations
// tagged SideLeft/SideRight produce Added*/Removed* spans; operations with
// no side (the output of FromStrings, where every op is SideLeft) behave
// the same as a merge in which everything came from the left.
func (self EditedText[T]) ApplyWithHistory() []SpanWithHistory {
	builder := newStringBuilder(self.ancestor)
	var spans []SpanWithHistory

	for i, o := range self.operations {
		side := SideLeft
		if i < len(self.operationSides) {
			side = self.operationSides[i]
		}
		op := o.Operation
		switch op.Kind {
		case OpEqual:
			text := builder.peek(op.Length)
			builder.retain(op.Length)
			spans = appendSpan(spans, text, Unchanged)
		case OpInsert:
			text := op.OriginalText()
			builder.insert(text)
			provenance := AddedFromLeft
			if side == SideRight {
				provenance = AddedFromRight
			}
			spans = appendSpan(spans, text, provenance)
		case OpDelete:
			text := builder.peek(op.Length)
			builder.delete(op.Length)
			provenance := RemovedFromLeft
			if side == SideRight {
				provenance = RemovedFromRight
			}
			spans = appendSpan(spans, text, provenance)
		}
	}

	return spans
}

// appendSpan fuses a new span into the last one when they share a
// provenance, the way the elongate pass fuses raw operations, so adjacent
// same-provenance operations render as one span rather than many.
func appendSpan(spans []SpanWithHistory, text string, provenance Provenance) []SpanWithHistory {
	if text == "" {
		return spans
	}
	if n := len(spans); n > 0 && spans[n-1].Provenance == provenance {
		spans[n-1].Text += text
		return spans
	}
	return append(spans, SpanWithHistory{Text: text, Provenance: provenance})
}
