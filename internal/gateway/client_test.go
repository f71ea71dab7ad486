package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testRecord struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second, zap.NewNop())
}

func TestListAcceptsBothShapes(t *testing.T) {
	ctx := context.Background()

	t.Run("bare array", func(t *testing.T) {
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/donations/", r.URL.Path)
			w.Write([]byte(`[{"id":"d1"},{"id":"d2"}]`))
		})
		records, err := List[testRecord](ctx, c, "donations")
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "d1", records[0].ID)
	})

	t.Run("results envelope", func(t *testing.T) {
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"count":2,"results":[{"id":"d1"},{"id":"d2"}]}`))
		})
		records, err := List[testRecord](ctx, c, "donations")
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("envelope without results", func(t *testing.T) {
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"count":0}`))
		})
		records, err := List[testRecord](ctx, c, "donations")
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("malformed body", func(t *testing.T) {
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"results":"not an array"}`))
		})
		_, err := List[testRecord](ctx, c, "donations")
		require.Error(t, err)
		var ge *Error
		require.ErrorAs(t, err, &ge)
	})
}

func TestErrorExtraction(t *testing.T) {
	ctx := context.Background()

	t.Run("message field", func(t *testing.T) {
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"message":"amount must be positive"}`))
		})
		_, err := Create[testRecord](ctx, c, "donations", map[string]any{"amount": -1})
		var ge *Error
		require.ErrorAs(t, err, &ge)
		assert.Equal(t, http.StatusBadRequest, ge.Status)
		assert.Equal(t, "amount must be positive", ge.Message)
	})

	t.Run("detail field", func(t *testing.T) {
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"detail":"Not found."}`))
		})
		_, err := Update[testRecord](ctx, c, "donations", "missing", nil)
		var ge *Error
		require.ErrorAs(t, err, &ge)
		assert.Equal(t, "Not found.", ge.Message)
		assert.True(t, IsNotFound(err))
	})

	t.Run("unreadable body falls back to generic message", func(t *testing.T) {
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`<html>oops</html>`))
		})
		err := Delete(ctx, c, "donations", "d1")
		var ge *Error
		require.ErrorAs(t, err, &ge)
		assert.Contains(t, ge.Message, "500")
		assert.False(t, IsNotFound(err))
	})
}

func TestMethodsAndPaths(t *testing.T) {
	ctx := context.Background()

	var gotMethod, gotPath string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.Write([]byte(`{"id":"x"}`))
	})

	_, err := Update[testRecord](ctx, c, "campaigns", "c1", map[string]string{"status": "PAUSED"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/campaigns/c1/", gotPath, "every path carries a trailing slash")

	require.NoError(t, Delete(ctx, c, "campaigns", "c1"))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/campaigns/c1/", gotPath)

	_, err = Action[testRecord](ctx, c, "donations", "d1", "process", map[string]string{"gateway_tx_ref": "sim-1"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/donations/d1/process/", gotPath)
}

func TestCreateMultipart(t *testing.T) {
	ctx := context.Background()

	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Food Drive", r.FormValue("title"))

		file, header, err := r.FormFile("photo")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "drive.jpg", header.Filename)

		w.Write([]byte(`{"id":"c9","name":"Food Drive"}`))
	})

	fields := url.Values{"title": {"Food Drive"}}
	files := []FileUpload{{Field: "photo", Filename: "drive.jpg", Content: strings.NewReader("jpegdata")}}
	created, err := CreateMultipart[testRecord](ctx, c, "campaigns", fields, files)
	require.NoError(t, err)
	assert.Equal(t, "c9", created.ID)
}
