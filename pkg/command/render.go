// Copyright ©️ Mergewright Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/mgutz/ansi"
	"github.com/rivo/uniseg"

	"github.com/mergewright/reconcile/modules/reconcile"
)

// provenanceStyle maps a history span's provenance to an ansi style name,
// following the $fg:style format modules/survey/core/template.go documents
// for mgutz/ansi.
func provenanceStyle(p reconcile.Provenance) string {
	switch p {
	case reconcile.AddedFromLeft:
		return "green"
	case reconcile.AddedFromRight:
		return "cyan"
	case reconcile.RemovedFromLeft, reconcile.RemovedFromRight:
		return "red+s"
	default:
		return "default"
	}
}

// stdoutIsColorCapable reports whether stdout is a real terminal (or a
// Cygwin pty), the same isatty check pkg/zeta/misc.go uses to decide
// whether to emit ANSI escapes.
func stdoutIsColorCapable() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// RenderHistory writes spans to w, colorized by provenance when color is
// enabled. Spans are written as-is, without wrapping; display-width
// wrapping (uniseg.StringWidth, a unit distinct from the core's
// Unicode-scalar-indexed Operation.Length) is done only by HistorySummary.
func RenderHistory(w io.Writer, spans []reconcile.SpanWithHistory, color bool) error {
	for _, span := range spans {
		text := span.Text
		if !color {
			if _, err := io.WriteString(w, text); err != nil {
				return err
			}
			continue
		}
		colorFn := ansi.ColorFunc(provenanceStyle(span.Provenance))
		if _, err := io.WriteString(w, colorFn(text)); err != nil {
			return err
		}
	}
	return nil
}

// HistorySummary renders a one-line-per-provenance-run summary suitable for
// narrow terminals, wrapping each run at width display cells measured with
// uniseg so multi-byte/combining text doesn't overrun the column.
func HistorySummary(spans []reconcile.SpanWithHistory, width int) []string {
	var lines []string
	for _, span := range spans {
		prefix := provenancePrefix(span.Provenance)
		for _, wrapped := range wrapToWidth(span.Text, width) {
			lines = append(lines, prefix+wrapped)
		}
	}
	return lines
}

func provenancePrefix(p reconcile.Provenance) string {
	switch p {
	case reconcile.AddedFromLeft:
		return "+L "
	case reconcile.AddedFromRight:
		return "+R "
	case reconcile.RemovedFromLeft:
		return "-L "
	case reconcile.RemovedFromRight:
		return "-R "
	default:
		return "   "
	}
}

// wrapToWidth greedily splits s into chunks whose display width (per
// uniseg.StringWidth) does not exceed width.
func wrapToWidth(s string, width int) []string {
	if width <= 0 || uniseg.StringWidth(s) <= width {
		return []string{s}
	}
	var lines []string
	gr := uniseg.NewGraphemes(s)
	var cur strings.Builder
	curWidth := 0
	for gr.Next() {
		cluster := gr.Str()
		w := uniseg.StringWidth(cluster)
		if curWidth+w > width && cur.Len() > 0 {
			lines = append(lines, cur.String())
			cur.Reset()
			curWidth = 0
		}
		cur.WriteString(cluster)
		curWidth += w
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
