// Copyright ©️ Mergewright Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package reconcile

import "unicode/utf8"

// CursorPosition is an opaque-id, character-index pair carried across a
// merge. Multiple cursors may legitimately share an id, if the caller uses
// id for something like "user color" rather than "unique caret".
type CursorPosition struct {
	ID        int `json:"id"`
	CharIndex int `json:"char_index"`
}

// withIndex returns a copy of the cursor relocated to index.
func (c CursorPosition) withIndex(index int) CursorPosition {
	c.CharIndex = index
	return c
}

// TextWithCursors pairs a side's post-edit text with the cursors positioned
// within it. Every cursor's CharIndex must lie in [0, rune count of Text].
type TextWithCursors struct {
	Text    string           `json:"text"`
	Cursors []CursorPosition `json:"cursors,omitempty"`
}

// NewTextWithCursors validates and builds a TextWithCursors. In debug mode
// it asserts every cursor lies within the text; out of debug mode malformed
// cursors are accepted as-is (the caller's responsibility).
func NewTextWithCursors(text string, cursors []CursorPosition) TextWithCursors {
	length := utf8.RuneCountInString(text)
	for _, c := range cursors {
		debugAssert(c.CharIndex <= length, "reconcile: cursor position %d exceeds text length %d", c.CharIndex, length)
	}
	return TextWithCursors{Text: text, Cursors: cursors}
}

// PlainText builds a TextWithCursors with no cursors, for callers that only
// care about the merged text.
func PlainText(text string) TextWithCursors {
	return TextWithCursors{Text: text}
}

// Side tags which descendant an operation in a merged EditedText
// originated from.
type Side int8

const (
	// SideLeft tags an operation as having come from the left descendant.
	SideLeft Side = iota
	// SideRight tags an operation as having come from the right descendant.
	SideRight
)

func (s Side) String() string {
	if s == SideLeft {
		return "Left"
	}
	return "Right"
}
