package reconcileserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleReconcileMergesBothSides(t *testing.T) {
	s := New("", nil, nil)

	body, err := json.Marshal(map[string]any{
		"ancestor": "the quick brown fox",
		"left":     map[string]any{"text": "the quick red fox"},
		"right":    map[string]any{"text": "the quick brown fox jumps"},
	})
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, "/reconcile", bytes.NewReader(body))
	w := httptest.NewRecorder()
	s.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var resp reconcileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "the quick red fox jumps", resp.Text)
}

func TestHandleReconcileRejectsBadJSON(t *testing.T) {
	s := New("", nil, nil)
	r := httptest.NewRequest(http.MethodPost, "/reconcile", bytes.NewReader([]byte("not json")))
	w := httptest.NewRecorder()
	s.ServeHTTP(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthz(t *testing.T) {
	s := New("", nil, nil)
	r := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
}
