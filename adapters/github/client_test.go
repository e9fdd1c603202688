package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListRepositories_BuildsAuthenticatedRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/janedoe/repos", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("per_page"))
		assert.Equal(t, "created:asc", r.URL.Query().Get("sort"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"name":"dotfiles","unknown_field":true}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "secret", time.Second)
	body, err := c.ListRepositories(context.Background(), "janedoe")

	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"dotfiles","unknown_field":true}]`, string(body))
}

func TestListRepositories_Failures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "secret", time.Second).ListRepositories(context.Background(), "ghost")
	assert.Error(t, err)

	_, err = NewClient(srv.URL, "", time.Second).ListRepositories(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = NewClient("http://127.0.0.1:1", "secret", time.Second).ListRepositories(context.Background(), "ghost")
	assert.Error(t, err)
}
