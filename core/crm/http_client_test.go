package crm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"crm-matcher/core/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testClient(baseURL string) *HTTPClient {
	return NewHTTPClient(Config{
		BaseURL:           baseURL,
		APIToken:          "test-token",
		PageLimit:         2,
		MaxRetries:        2,
		RequestsPerSecond: 1000, // effectively unpaced in tests
	}, zap.NewNop())
}

func TestFetchFilterDefinition(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/filters/105", r.URL.Path)
		assert.Equal(t, "test-token", r.URL.Query().Get("api_token"))
		fmt.Fprint(w, `{"success":true,"data":{"id":105,"name":"Active Customers","conditions":{"glue":"and"}}}`)
	}))
	defer srv.Close()

	def, err := testClient(srv.URL).FetchFilterDefinition(context.Background(), "105")
	require.NoError(t, err)
	assert.Equal(t, "105", def.ID)
	assert.Equal(t, "Active Customers", def.Name)
	assert.NotEmpty(t, def.Conditions)
}

func TestFetchFilterDefinition_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"success":false,"error":"Filter not found"}`)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).FetchFilterDefinition(context.Background(), "999")
	assert.True(t, errors.Is(err, apperror.ErrFilterNotFound))
}

func TestFetchOrganizationsForFilter_Pagination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/organizations", r.URL.Path)
		assert.Equal(t, "105", r.URL.Query().Get("filter_id"))

		switch r.URL.Query().Get("start") {
		case "0":
			fmt.Fprint(w, `{"success":true,"data":[{"id":1,"name":"Acme Inc"},{"id":2,"name":"Globex"}],"additional_data":{"pagination":{"more_items_in_collection":true}}}`)
		case "2":
			fmt.Fprint(w, `{"success":true,"data":[{"id":3,"name":"Initech"}],"additional_data":{"pagination":{"more_items_in_collection":false}}}`)
		default:
			t.Errorf("unexpected start offset %q", r.URL.Query().Get("start"))
		}
	}))
	defer srv.Close()

	orgs, err := testClient(srv.URL).FetchOrganizationsForFilter(context.Background(), "105")
	require.NoError(t, err)
	require.Len(t, orgs, 3)
	assert.Equal(t, Organization{ExternalID: "1", Name: "Acme Inc"}, orgs[0])
	assert.Equal(t, Organization{ExternalID: "3", Name: "Initech"}, orgs[2])
}

func TestFetchOrganizationsForFilter_EmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true,"data":null}`)
	}))
	defer srv.Close()

	orgs, err := testClient(srv.URL).FetchOrganizationsForFilter(context.Background(), "105")
	require.NoError(t, err)
	assert.Empty(t, orgs)
}

func TestGet_RetriesRateLimit(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `{"success":true,"data":{"id":7,"name":"Retried"}}`)
	}))
	defer srv.Close()

	def, err := testClient(srv.URL).FetchFilterDefinition(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, "Retried", def.Name)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestGet_ExhaustedRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).FetchFilterDefinition(context.Background(), "1")
	assert.True(t, errors.Is(err, apperror.ErrExternalFetch))
}

func TestFetchAllOrganizations_OmitsFilterParam(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/organizations", r.URL.Path)
		assert.False(t, r.URL.Query().Has("filter_id"))
		fmt.Fprint(w, `{"success":true,"data":[{"id":1,"name":"Acme Corp"}]}`)
	}))
	defer srv.Close()

	orgs, err := testClient(srv.URL).FetchAllOrganizations(context.Background())
	require.NoError(t, err)
	require.Len(t, orgs, 1)
	assert.Equal(t, Organization{ExternalID: "1", Name: "Acme Corp"}, orgs[0])
}
