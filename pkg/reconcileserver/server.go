// Copyright ©️ Mergewright Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package reconcileserver is the thin illustrative HTTP binding spec.md §6
// names alongside the vault server, WebSocket fan-out and WASM surface as
// shipped-but-non-core collaborators. It exposes the core engine over one
// endpoint; it owns no documents, no versions and no cursor TTL — those
// belong to the vault server spec.md explicitly places out of scope.
package reconcileserver

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/mergewright/reconcile/modules/reconcache"
)

// ResponseWriter shadows http.ResponseWriter the way
// pkg/serve/httpserver.ResponseWriter does, tracking the status code and
// bytes written for the access log middleware.
type ResponseWriter struct {
	http.ResponseWriter
	statusCode int
	written    int64
}

// NewResponseWriter wraps w with status/byte-count tracking, defaulting the
// status to 200 the way the teacher's NewResponseWriter does (a handler
// that never calls WriteHeader still sends 200).
func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (w *ResponseWriter) Write(data []byte) (int, error) {
	n, err := w.ResponseWriter.Write(data)
	w.written += int64(n)
	return n, err
}

func (w *ResponseWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

// Server hosts the reconcile HTTP endpoint. Cache may be nil, in which case
// every request recomputes the merge; set it to memoize repeated requests
// for the same (ancestor, left, right) triple. Only requests that carry no
// cursors and no tokenizer field go through the cache.
type Server struct {
	Cache  *reconcache.Cache
	Logger *logrus.Logger

	srv *http.Server
	r   *mux.Router
}

// New builds a Server listening on addr. Passing a nil logger installs
// logrus's standard logger.
func New(addr string, cache *reconcache.Cache, logger *logrus.Logger) *Server {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	s := &Server{Cache: cache, Logger: logger}
	r := mux.NewRouter()
	r.HandleFunc("/reconcile", s.handleReconcile).Methods(http.MethodPost)
	r.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	s.r = r
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// ServeHTTP logs every request's method, path, status and duration at
// info level, matching the access-log shape of pkg/serve/httpserver.Server.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rw := NewResponseWriter(w)
	s.r.ServeHTTP(rw, r)
	s.Logger.WithFields(logrus.Fields{
		"method":   r.Method,
		"path":     r.URL.Path,
		"status":   rw.statusCode,
		"bytes":    rw.written,
		"duration": time.Since(start),
	}).Info("request")
}

// ListenAndServe starts the underlying http.Server.
func (s *Server) ListenAndServe() error {
	return s.srv.ListenAndServe()
}

// Close shuts the server down immediately.
func (s *Server) Close() error {
	return s.srv.Close()
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
