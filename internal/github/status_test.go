package github

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"

	"github.com/google/go-github/v73/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReporter(t *testing.T, srv *httptest.Server) *statusReporter {
	t.Helper()
	client := github.NewClient(srv.Client())
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	client.BaseURL = base
	return &statusReporter{
		client: client,
		logger: slog.New(slog.NewTextHandler(os.Stdout, nil)),
	}
}

func TestStatusReporter_Report(t *testing.T) {
	tests := []struct {
		name      string
		succeeded bool
		wantState string
	}{
		{"Success state", true, "success"},
		{"Failure state", false, "failure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath string
			var gotStatus github.RepoStatus
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				require.NoError(t, json.NewDecoder(r.Body).Decode(&gotStatus))
				w.WriteHeader(http.StatusCreated)
				_, _ = w.Write([]byte(`{}`))
			}))
			defer srv.Close()

			reporter := newTestReporter(t, srv)
			err := reporter.Report(context.Background(), "acme/widgets", "deadbeef", tt.succeeded)
			require.NoError(t, err)

			assert.Equal(t, "/repos/acme/widgets/statuses/deadbeef", gotPath)
			assert.Equal(t, tt.wantState, gotStatus.GetState())
			assert.Equal(t, StatusContext, gotStatus.GetContext())
		})
	}
}

func TestStatusReporter_Report_InvalidRepo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("no API call expected for an invalid repo name")
	}))
	defer srv.Close()

	reporter := newTestReporter(t, srv)
	err := reporter.Report(context.Background(), "not-a-full-name", "deadbeef", true)
	require.Error(t, err)
}

func TestStatusReporter_Report_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message": "Bad credentials"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	reporter := newTestReporter(t, srv)
	err := reporter.Report(context.Background(), "acme/widgets", "deadbeef", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "commit status")
}
