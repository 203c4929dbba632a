// Copyright ©️ Mergewright Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/mergewright/reconcile/modules/reconcile"
)

// Batch processes a manifest of (ancestor, left, right) triples, one per
// line of newline-delimited JSON, reconciling each and writing one JSON
// result line (index, merged text or error) per entry to standard output.
// It exists purely as an operator convenience around the pure core —
// SPEC_FULL.md's SUPPLEMENTED FEATURES note calls this kind of wrapper
// additive, not a core concern.
type Batch struct {
	Tokenizer string `name:"tokenizer" default:"${default-tokenizer}" enum:"word,line,char" help:"Tokenizer to diff and merge with"`
	Manifest  string `arg:"" name:"manifest" help:"Path to a newline-delimited JSON manifest of reconcileRequest entries"`
}

type batchResult struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

func (c *Batch) Summary() string {
	return "Usage: reconcile batch [<options>] <manifest>"
}

func (c *Batch) Run(g *Globals) error {
	tokenizer, err := builtinTokenizer(c.Tokenizer)
	if err != nil {
		return err
	}

	fd, err := os.Open(c.Manifest)
	if err != nil {
		return fmt.Errorf("batch: open manifest: %w", err)
	}
	defer fd.Close()

	var requests []reconcileRequest
	scanner := bufio.NewScanner(fd)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var req reconcileRequest
		if err := json.Unmarshal(line, &req); err != nil {
			return fmt.Errorf("batch: decode manifest line %d: %w", len(requests)+1, err)
		}
		requests = append(requests, req)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("batch: read manifest: %w", err)
	}

	p := mpb.New(mpb.WithOutput(os.Stderr), mpb.WithAutoRefresh())
	bar := p.AddBar(int64(len(requests)),
		mpb.PrependDecorators(decor.Name("reconciling", decor.WC{W: len("reconciling"), C: decor.DindentRight})),
		mpb.AppendDecorators(decor.CountersNoUnit("%d / %d")),
	)

	encoder := json.NewEncoder(os.Stdout)
	var failures int
	for i, req := range requests {
		tok := tokenizer
		if req.Tokenizer != "" {
			var terr error
			if tok, terr = builtinTokenizer(req.Tokenizer); terr != nil {
				_ = encoder.Encode(batchResult{Index: i, Error: terr.Error()})
				failures++
				bar.Increment()
				continue
			}
		}
		merged := reconcile.Reconcile(req.Ancestor, req.Left, req.Right, tok)
		_ = encoder.Encode(batchResult{Index: i, Text: merged.Apply().Text})
		bar.Increment()
	}
	p.Wait()

	if failures > 0 {
		return &ErrExitCode{ExitCode: 1, Message: fmt.Sprintf("batch: %d of %d entries failed", failures, len(requests))}
	}
	return nil
}
