package domaincheck

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRDAPChecker(handler http.HandlerFunc) (*RDAPChecker, *httptest.Server) {
	server := httptest.NewServer(handler)
	checker := NewRDAPChecker(time.Second)
	checker.baseURL = server.URL
	return checker, server
}

func TestRDAPCheckerNotFoundMeansAvailable(t *testing.T) {
	checker, server := newTestRDAPChecker(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/domain/free-name.com", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	})
	defer server.Close()

	available, err := checker.CheckAvailability(context.Background(), "free-name.com")
	require.NoError(t, err)
	assert.True(t, available)
}

func TestRDAPCheckerRegisteredMeansTaken(t *testing.T) {
	checker, server := newTestRDAPChecker(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/rdap+json")
		w.Write([]byte(`{"objectClassName":"domain"}`))
	})
	defer server.Close()

	available, err := checker.CheckAvailability(context.Background(), "example.com")
	require.NoError(t, err)
	assert.False(t, available)
}

func TestRDAPCheckerUnexpectedStatusIsError(t *testing.T) {
	checker, server := newTestRDAPChecker(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	defer server.Close()

	_, err := checker.CheckAvailability(context.Background(), "example.com")
	require.Error(t, err)
}

func TestStubCheckerIsDeterministic(t *testing.T) {
	checker := NewStubChecker()

	first, err := checker.CheckAvailability(context.Background(), "myshop.com")
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := checker.CheckAvailability(context.Background(), "myshop.com")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
