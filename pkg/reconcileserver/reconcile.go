// Copyright ©️ Mergewright Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package reconcileserver

import (
	"encoding/json"
	"net/http"

	"github.com/mergewright/reconcile/modules/reconcile"
)

// reconcileRequest mirrors pkg/command's request shape: the same JSON a
// CLI manifest line or a vault-server collaborator would send.
type reconcileRequest struct {
	Ancestor  string                    `json:"ancestor"`
	Left      reconcile.TextWithCursors `json:"left"`
	Right     reconcile.TextWithCursors `json:"right"`
	Tokenizer string                    `json:"tokenizer,omitempty"`
}

type reconcileResponse struct {
	Text    string                    `json:"text"`
	Cursors []reconcile.CursorPosition `json:"cursors,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func builtinTokenizer(name string) (reconcile.Tokenizer[string], bool) {
	switch name {
	case "", "word":
		return reconcile.WordTokenizer.Tokenizer(), true
	case "line":
		return reconcile.LineTokenizer.Tokenizer(), true
	case "char":
		return reconcile.CharTokenizer.Tokenizer(), true
	default:
		return nil, false
	}
}

// handleReconcile implements POST /reconcile: decode a three-way request,
// run the core engine, and return the merged text with relocated cursors.
// It is the HTTP analogue of the JS/WASM `reconcile` surface spec.md §6
// lists alongside this server.
func (s *Server) handleReconcile(w http.ResponseWriter, r *http.Request) {
	var req reconcileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	tokenizer, ok := builtinTokenizer(req.Tokenizer)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown tokenizer " + req.Tokenizer})
		return
	}

	var applied reconcile.TextWithCursors
	if s.Cache != nil && len(req.Left.Cursors) == 0 && len(req.Right.Cursors) == 0 && req.Tokenizer == "" {
		applied = s.Cache.ReconcileStrings(req.Ancestor, req.Left.Text, req.Right.Text).Apply()
	} else {
		merged := reconcile.Reconcile(req.Ancestor, req.Left, req.Right, tokenizer)
		applied = merged.Apply()
	}

	writeJSON(w, http.StatusOK, reconcileResponse{Text: applied.Text, Cursors: applied.Cursors})
}
