package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var widgets = Resource{
	Name:     "widgets",
	BasePath: "/admin/realms/{realm}/widgets",
	Operations: map[string]Operation{
		OpFind: {Method: http.MethodGet},
		OpFindOne: {
			Method:        http.MethodGet,
			Path:          "/{id}",
			URLParamKeys:  []string{"id"},
			CatchNotFound: true,
		},
		"strict": {
			Method:       http.MethodGet,
			Path:         "/{id}/strict",
			URLParamKeys: []string{"id"},
		},
		OpCreate: {
			Method:                           http.MethodPost,
			ReturnResourceIDInLocationHeader: &LocationRule{Field: "id"},
		},
		OpDelete: {Method: http.MethodDelete, Path: "/{id}", URLParamKeys: []string{"id"}},
	},
}

type recordingMetrics struct {
	calls []string
}

func (m *recordingMetrics) ObserveRequest(resource, operation string, status int, _ time.Duration) {
	m.calls = append(m.calls, resource+"."+operation+":"+http.StatusText(status))
}

func TestResolvePath(t *testing.T) {
	c := New("http://x").WithRealm("master")

	t.Run("SubstitutesRealmAndParams", func(t *testing.T) {
		p, err := c.resolvePath("/admin/realms/{realm}/widgets/{id}", []string{"id"}, Params{"id": "a b/c"})
		require.NoError(t, err)
		assert.Equal(t, "/admin/realms/master/widgets/a%20b%2Fc", p)
	})

	t.Run("CallerOverridesRealm", func(t *testing.T) {
		p, err := c.resolvePath("/admin/realms/{realm}", nil, Params{"realm": "other"})
		require.NoError(t, err)
		assert.Equal(t, "/admin/realms/other", p)
	})

	t.Run("MissingDeclaredKey", func(t *testing.T) {
		_, err := c.resolvePath("/admin/realms/{realm}/widgets/{id}", []string{"id"}, nil)
		assert.ErrorIs(t, err, ErrMissingParam)
	})

	t.Run("MissingRealm", func(t *testing.T) {
		_, err := New("http://x").resolvePath("/admin/realms/{realm}", nil, nil)
		assert.ErrorIs(t, err, ErrMissingParam)
	})
}

func TestExecuteMissingParamSendsNothing(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	_, err := New(server.URL).WithRealm("master").Execute(context.Background(), widgets, OpFindOne, nil, nil, nil)
	assert.ErrorIs(t, err, ErrMissingParam)
	assert.False(t, called)
}

func TestExecuteUnknownOperation(t *testing.T) {
	_, err := New("http://x").Execute(context.Background(), widgets, "explode", nil, nil, nil)
	assert.ErrorIs(t, err, ErrUnknownOperation)
}

func TestExecuteCatchNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := New(server.URL).WithRealm("master")

	out, err := c.Execute(context.Background(), widgets, OpFindOne, Params{"id": "gone"}, nil, nil)
	require.NoError(t, err)
	assert.True(t, out.Absent)

	_, err = c.Execute(context.Background(), widgets, "strict", Params{"id": "gone"}, nil, nil)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestExecuteLocationRule(t *testing.T) {
	tests := []struct {
		name     string
		location string
		wantID   string
		wantErr  bool
	}{
		{"Absolute", "http://kc/admin/realms/master/widgets/abc-123", "abc-123", false},
		{"Relative", "/admin/realms/master/widgets/xyz", "xyz", false},
		{"TrailingSlash", "/admin/realms/master/widgets/xyz/", "xyz", false},
		{"Escaped", "/admin/realms/master/widgets/a%20b", "a b", false},
		{"Missing", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				if tt.location != "" {
					w.Header().Set("Location", tt.location)
				}
				w.WriteHeader(http.StatusCreated)
			}))
			defer server.Close()

			out, err := New(server.URL).WithRealm("master").
				Execute(context.Background(), widgets, OpCreate, nil, map[string]string{"name": "w"}, nil)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNoLocation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, map[string]string{"id": tt.wantID}, out.ResourceID)
		})
	}
}

func TestExecuteDoesNotSendBodyOnReads(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, int64(0), r.ContentLength)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	_, err := New(server.URL).WithRealm("master").
		Execute(context.Background(), widgets, OpDelete, Params{"id": "1"}, map[string]string{"ignored": "x"}, nil)
	require.NoError(t, err)
}

func TestExecuteReportsMetrics(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	m := &recordingMetrics{}
	_, err := New(server.URL).WithRealm("master").WithMetrics(m).
		Execute(context.Background(), widgets, OpFind, nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"widgets.find:OK"}, m.calls)
}

func TestOperationNames(t *testing.T) {
	assert.Equal(t, []string{"create", "del", "find", "findOne", "update"}, OpenIDFederations.OperationNames())
	assert.Equal(t, []string{"findOne", "update"}, Realms.OperationNames())
}
