package gateway

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drpcorg/octocore"
	"github.com/drpcorg/octocore/examples"
)

func newFoodOrdersServer(t *testing.T) *Server {
	t.Helper()
	return NewServer(func() (any, *octocore.CommandRegistry) {
		reg := octocore.NewCommandRegistry()
		require.NoError(t, examples.RegisterFoodOrders(reg))
		return &examples.FoodOrders{}, reg
	})
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHealthCheck(t *testing.T) {
	srv := newFoodOrdersServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateSessionRunUndoRedoHistory(t *testing.T) {
	srv := newFoodOrdersServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/sessions", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created createSessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.Token)

	rec = doJSON(t, srv, http.MethodPost, "/commands", runCommandRequest{
		Token:     created.Token,
		CommandId: int32(examples.PlaceOrderId),
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/history?token="+created.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	var hist []historyEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hist))
	require.Len(t, hist, 1)
	assert.EqualValues(t, examples.PlaceOrderId, hist[0].CommandId)

	rec = doJSON(t, srv, http.MethodPost, "/undo", tokenRequest{Token: created.Token})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/redo", tokenRequest{Token: created.Token})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCommandAgainstUnknownTokenIs404(t *testing.T) {
	srv := newFoodOrdersServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/commands", runCommandRequest{Token: "bogus"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
