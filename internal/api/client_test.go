package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ecommerce-eks/storefront/internal/errs"
)

type staticToken string

func (s staticToken) Token() (string, bool) { return string(s), s != "" }

func TestClient_AttachesBearerAndRequestID(t *testing.T) {
	t.Parallel()
	var gotAuth, gotReqID, gotCT string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-Id")
		gotCT = r.Header.Get("Content-Type")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, staticToken("tok"), zap.NewNop())
	var out map[string]any
	require.NoError(t, c.do(context.Background(), http.MethodGet, "", nil, &out))

	require.Equal(t, "Bearer tok", gotAuth)
	require.NotEmpty(t, gotReqID)
	require.Equal(t, "application/json", gotCT)
}

func TestClient_NoBearerWithoutToken(t *testing.T) {
	t.Parallel()
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	// nil source and empty-token source both mean anonymous traffic
	for _, src := range []TokenSource{nil, staticToken("")} {
		c := NewClient(srv.URL, time.Second, src, zap.NewNop())
		require.NoError(t, c.do(context.Background(), http.MethodGet, "", nil, nil))
		require.Empty(t, gotAuth)
	}
}

func TestClient_SurfacesServerMessageVerbatim(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		body string
		want string
	}{
		{"error field", `{"error":"invalid credentials"}`, "invalid credentials"},
		{"message field", `{"message":"card declined"}`, "card declined"},
		{"detail field", `{"detail":"user not found"}`, "user not found"},
		{"raw body", `plain failure`, "plain failure"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, time.Second, nil, zap.NewNop())
			err := c.do(context.Background(), http.MethodGet, "", nil, nil)

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			require.Equal(t, http.StatusBadRequest, apiErr.Status)
			require.Equal(t, tc.want, err.Error())
		})
	}
}

func TestError_UnwrapsToSentinels(t *testing.T) {
	t.Parallel()
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, errs.ErrUnauthorized},
		{http.StatusForbidden, errs.ErrUnauthorized},
		{http.StatusNotFound, errs.ErrNotFound},
		{http.StatusConflict, errs.ErrAlreadyExists},
	}
	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		}))
		c := NewClient(srv.URL, time.Second, nil, zap.NewNop())
		err := c.do(context.Background(), http.MethodGet, "", nil, nil)
		require.ErrorIs(t, err, tc.want, "status %d", tc.status)
		srv.Close()
	}

	// statuses without a sentinel still carry the status
	e := &Error{Status: http.StatusTeapot}
	require.Nil(t, e.Unwrap())
	require.Equal(t, "http 418", e.Error())
}

func TestClient_ContextCancellation(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 10*time.Second, nil, zap.NewNop())
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := c.do(ctx, http.MethodGet, "", nil, nil)
	require.Error(t, err)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
