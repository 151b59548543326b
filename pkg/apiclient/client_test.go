package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	client := New("http://localhost:8080/")
	assert.NotNil(t, client)
	assert.Equal(t, "http://localhost:8080", client.BaseURL())
	assert.Equal(t, DefaultTimeout, client.httpClient.Timeout)
}

func TestWithTokenAndRealmCopy(t *testing.T) {
	client := New("http://localhost:8080")
	scoped := client.WithToken("test-token").WithRealm("acme")

	assert.Empty(t, client.token)
	assert.Empty(t, client.Realm())
	assert.Equal(t, "test-token", scoped.token)
	assert.Equal(t, "acme", scoped.Realm())
}

func TestSetToken(t *testing.T) {
	client := New("http://localhost:8080")
	client.SetToken("my-token")
	assert.Equal(t, "my-token", client.token)
}

func TestDoWithSuccess(t *testing.T) {
	type Response struct {
		Message string `json:"message"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Empty(t, r.Header.Get("Content-Type"), "GET sends no body")
		_ = json.NewEncoder(w).Encode(Response{Message: "success"})
	}))
	defer server.Close()

	var resp Response
	out, err := New(server.URL).do(context.Background(), http.MethodGet, "/test", nil, &resp)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, out.status)
	assert.Equal(t, "success", resp.Message)
}

func TestDoSendsJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "v", body["k"])
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	_, err := New(server.URL).do(context.Background(), http.MethodPut, "/x", map[string]string{"k": "v"}, nil)
	require.NoError(t, err)
}

func TestDoWithAuthHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	_, err := New(server.URL).WithToken("test-token").do(context.Background(), http.MethodGet, "/test", nil, nil)
	require.NoError(t, err)
}

func TestDoWithAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"errorMessage":"Trust anchor already exists"}`))
	}))
	defer server.Close()

	_, err := New(server.URL).do(context.Background(), http.MethodPost, "/test", struct{}{}, nil)
	require.Error(t, err)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "Trust anchor already exists", apiErr.Message)
	assert.True(t, apiErr.IsConflict())
	assert.JSONEq(t, `{"errorMessage":"Trust anchor already exists"}`, string(apiErr.Body))
	assert.Equal(t, "409: Trust anchor already exists", apiErr.Error())
}

func TestDoWithPlainTextError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("Internal Server Error\n"))
	}))
	defer server.Close()

	_, err := New(server.URL).do(context.Background(), http.MethodGet, "/test", nil, nil)
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "Internal Server Error", apiErr.Message)
}

func TestDoHonoursContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := New(server.URL).do(ctx, http.MethodGet, "/slow", nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAPIErrorPredicates(t *testing.T) {
	tests := []struct {
		status     int
		auth       bool
		notFound   bool
		conflict   bool
		validation bool
	}{
		{http.StatusUnauthorized, true, false, false, false},
		{http.StatusForbidden, true, false, false, false},
		{http.StatusNotFound, false, true, false, false},
		{http.StatusConflict, false, false, true, false},
		{http.StatusBadRequest, false, false, false, true},
		{http.StatusUnprocessableEntity, false, false, false, true},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			e := &APIError{StatusCode: tt.status}
			assert.Equal(t, tt.auth, e.IsAuthError())
			assert.Equal(t, tt.notFound, e.IsNotFound())
			assert.Equal(t, tt.conflict, e.IsConflict())
			assert.Equal(t, tt.validation, e.IsValidationError())
		})
	}
}
