// Copyright ©️ Mergewright Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package reconcile

import "strings"

// stringBuilder is an append-only producer that consumes the ancestor text
// exactly once, by rune, while an Operation sequence is applied to it: it
// supports retaining a run of ancestor runes, skipping (deleting) a run, and
// inserting literal text, in the order those operations are applied. It
// backs EditedText.Apply.
type stringBuilder struct {
	remaining []rune
	buffer    strings.Builder
}

// newStringBuilder creates a builder over the given ancestor text.
func newStringBuilder(original string) *stringBuilder {
	return &stringBuilder{remaining: []rune(original)}
}

// insert appends text to the output buffer without consuming any ancestor
// runes.
func (b *stringBuilder) insert(text string) {
	b.buffer.WriteString(text)
}

// retain copies the next length runes of the ancestor into the output
// buffer.
func (b *stringBuilder) retain(length int) {
	if length == 0 {
		return
	}
	length = min(length, len(b.remaining))
	for _, r := range b.remaining[:length] {
		b.buffer.WriteRune(r)
	}
	b.remaining = b.remaining[length:]
}

// delete skips the next length runes of the ancestor without copying them.
func (b *stringBuilder) delete(length int) {
	if length == 0 {
		return
	}
	length = min(length, len(b.remaining))
	b.remaining = b.remaining[length:]
}

// peek returns up to length runes of the ancestor starting at the builder's
// current cursor, without consuming them. ApplyWithHistory uses it to read
// the ancestor text an Equal or Delete operation covers before retaining or
// skipping it.
func (b *stringBuilder) peek(length int) string {
	length = min(length, len(b.remaining))
	return string(b.remaining[:length])
}

// build returns the buffer accumulated so far.
func (b *stringBuilder) build() string {
	return b.buffer.String()
}
