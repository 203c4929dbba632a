// Copyright ©️ Mergewright Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mergewright/reconcile/modules/reconcile"
)

// Reconcile implements a richer JSON-in/JSON-out entry point than
// merge-file: it carries cursors through the merge and can emit either the
// merged text, the provenance-tagged history, or the compact transport
// form (spec.md §4.8), matching the three EditedText accessors the core
// exposes (spec.md §6).
type Reconcile struct {
	Tokenizer string `name:"tokenizer" default:"${default-tokenizer}" enum:"word,line,char" help:"Tokenizer to diff and merge with"`
	Format    string `name:"format" default:"text" enum:"text,history,diff" help:"Output shape: merged text, provenance history, or transport diff"`
	Input     string `arg:"" optional:"" name:"input" help:"JSON request file; defaults to standard input"`
}

// reconcileRequest is the on-the-wire shape this command and
// pkg/reconcileserver's POST /reconcile both accept.
type reconcileRequest struct {
	Ancestor  string                    `json:"ancestor"`
	Left      reconcile.TextWithCursors `json:"left"`
	Right     reconcile.TextWithCursors `json:"right"`
	Tokenizer string                    `json:"tokenizer,omitempty"`
}

func (c *Reconcile) Summary() string {
	return "Usage: reconcile reconcile [<options>] [<input>]"
}

func (c *Reconcile) Run(g *Globals) error {
	raw, err := readRequestInput(c.Input)
	if err != nil {
		return fmt.Errorf("reconcile: read request: %w", err)
	}
	var req reconcileRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return fmt.Errorf("reconcile: decode request: %w", err)
	}
	tokenizerName := c.Tokenizer
	if req.Tokenizer != "" {
		tokenizerName = req.Tokenizer
	}
	tokenizer, err := builtinTokenizer(tokenizerName)
	if err != nil {
		return err
	}

	g.DbgPrint("reconciling ancestor of %d characters, format %s", len([]rune(req.Ancestor)), c.Format)
	merged := reconcile.Reconcile(req.Ancestor, req.Left, req.Right, tokenizer)

	switch c.Format {
	case "history":
		color := !g.NoColor && stdoutIsColorCapable()
		return RenderHistory(os.Stdout, merged.ApplyWithHistory(), color)
	case "diff":
		enc := json.NewEncoder(os.Stdout)
		return enc.Encode(merged.ToDiff())
	default:
		applied := merged.Apply()
		enc := json.NewEncoder(os.Stdout)
		return enc.Encode(applied)
	}
}

func readRequestInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
