// Copyright ©️ Mergewright Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package reconcile

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// DiffEntry is one entry of a compact transport-form diff: a positive Retain
// of N characters, a negative Delete of N characters, or an Insert of
// literal text. It mirrors SimpleOperation/ChangeSet from the original
// operation_transformation/transport module, folding consecutive Equal and
// Delete runs the way that format does.
type DiffEntry struct {
	Retain int
	Delete int
	Insert string
}

func retainEntry(n int) DiffEntry { return DiffEntry{Retain: n} }
func deleteEntry(n int) DiffEntry { return DiffEntry{Delete: n} }
func insertEntry(s string) DiffEntry { return DiffEntry{Insert: s} }

// MarshalJSON renders a DiffEntry the way the transport format's
// ChangeSet does on the wire: a bare positive integer for Retain, a bare
// negative integer for Delete, or a JSON string for Insert.
func (e DiffEntry) MarshalJSON() ([]byte, error) {
	switch {
	case e.Insert != "":
		return json.Marshal(e.Insert)
	case e.Delete != 0:
		return json.Marshal(-e.Delete)
	default:
		return json.Marshal(e.Retain)
	}
}

// UnmarshalJSON parses a DiffEntry back from its wire form.
func (e *DiffEntry) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*e = insertEntry(s)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("reconcile: diff entry must be a string or integer: %w", err)
	}
	if n < 0 {
		*e = deleteEntry(-n)
	} else {
		*e = retainEntry(n)
	}
	return nil
}

// LengthExceedsOriginal reports that a DiffEntry's Retain or Delete length
// walked past the end of the ancestor text it was being replayed against.
// It mirrors diff_error.rs's DiffError::LengthExceedsOriginal.
type LengthExceedsOriginal struct {
	Position  int
	Requested int
	Available int
}

func (e *LengthExceedsOriginal) Error() string {
	return fmt.Sprintf("reconcile: diff entry at position %d requests %d characters but only %d remain",
		e.Position, e.Requested, e.Available)
}

// ToDiff renders an EditedText as a compact transport-form diff: a list of
// Retain/Delete/Insert entries with consecutive Equal and Delete runs
// folded together.
func (self EditedText[T]) ToDiff() []DiffEntry {
	var entries []DiffEntry
	for _, o := range self.operations {
		op := o.Operation
		switch op.Kind {
		case OpEqual:
			entries = appendDiffEntry(entries, retainEntry(op.Length))
		case OpDelete:
			entries = appendDiffEntry(entries, deleteEntry(op.Length))
		case OpInsert:
			entries = appendDiffEntry(entries, insertEntry(op.OriginalText()))
		}
	}
	return entries
}

func appendDiffEntry(entries []DiffEntry, next DiffEntry) []DiffEntry {
	if n := len(entries); n > 0 {
		last := entries[n-1]
		switch {
		case last.Insert == "" && next.Insert == "" && last.Delete == 0 && next.Delete == 0:
			entries[n-1] = retainEntry(last.Retain + next.Retain)
			return entries
		case last.Delete != 0 && next.Delete != 0:
			entries[n-1] = deleteEntry(last.Delete + next.Delete)
			return entries
		}
	}
	return append(entries, next)
}

// FromDiff replays a transport-form diff against ancestor, tokenizing the
// result with tokenizer, and returns the corresponding EditedText. Replaying
// a Retain or Delete entry past the end of ancestor is reported as a
// *LengthExceedsOriginal error rather than panicking, since diffs of this
// form typically arrive over a wire from an untrusted peer.
func FromDiff[T comparable](ancestor string, entries []DiffEntry, tokenizer Tokenizer[T]) (EditedText[T], error) {
	ancestorRunes := []rune(ancestor)
	position := 0
	var out bytes.Buffer

	for _, e := range entries {
		switch {
		case e.Insert != "":
			out.WriteString(e.Insert)
		case e.Delete != 0:
			if position+e.Delete > len(ancestorRunes) {
				return EditedText[T]{}, &LengthExceedsOriginal{Position: position, Requested: e.Delete, Available: len(ancestorRunes) - position}
			}
			position += e.Delete
		default:
			if position+e.Retain > len(ancestorRunes) {
				return EditedText[T]{}, &LengthExceedsOriginal{Position: position, Requested: e.Retain, Available: len(ancestorRunes) - position}
			}
			out.WriteString(string(ancestorRunes[position : position+e.Retain]))
			position += e.Retain
		}
	}

	return FromStringsWithTokenizer(ancestor, PlainText(out.String()), tokenizer), nil
}

// ToCompressedDiff renders ToDiff's entries as JSON and compresses them with
// zstd, for callers shipping diffs over a bandwidth-constrained link.
func (self EditedText[T]) ToCompressedDiff() ([]byte, error) {
	encoded, err := json.Marshal(self.ToDiff())
	if err != nil {
		return nil, fmt.Errorf("reconcile: encode diff: %w", err)
	}

	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("reconcile: create zstd encoder: %w", err)
	}
	defer encoder.Close()

	return encoder.EncodeAll(encoded, nil), nil
}

// FromCompressedDiff reverses ToCompressedDiff, decompressing compressed and
// replaying the resulting entries against ancestor via FromDiff.
func FromCompressedDiff[T comparable](ancestor string, compressed []byte, tokenizer Tokenizer[T]) (EditedText[T], error) {
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return EditedText[T]{}, fmt.Errorf("reconcile: create zstd decoder: %w", err)
	}
	defer decoder.Close()

	decoded, err := decoder.DecodeAll(compressed, nil)
	if err != nil {
		return EditedText[T]{}, fmt.Errorf("reconcile: decompress diff: %w", err)
	}

	var entries []DiffEntry
	if err := json.Unmarshal(decoded, &entries); err != nil {
		return EditedText[T]{}, fmt.Errorf("reconcile: decode diff: %w", err)
	}

	return FromDiff(ancestor, entries, tokenizer)
}
