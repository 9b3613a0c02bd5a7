package github

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/repowatch/repowatch/internal/repo"
	"go.uber.org/zap/zaptest"
)

const commitsBody = `[{"sha":"51277fcabcdefabcdefabcdefabcdefabcdefabc",` +
	`"commit":{"author":{"date":"2014-10-23T12:18:13Z"}}}]`

var testOrigin = repo.Origin{Owner: "kennethreitz", Name: "requests"}

func newTestClient(t *testing.T, apiBase string, timeout time.Duration) *Client {
	t.Helper()

	return NewClient(Config{
		APIBase:   apiBase,
		UserAgent: "repowatch-test",
		Timeout:   timeout,
	}, zaptest.NewLogger(t))
}

func TestClient_LatestCommit(t *testing.T) {
	var gotPath, gotUserAgent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.RequestURI()
		gotUserAgent = r.Header.Get("User-Agent")
		w.Write([]byte(commitsBody))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 0)

	commit, err := client.LatestCommit(context.Background(), testOrigin)
	if err != nil {
		t.Fatalf("LatestCommit failed: %v", err)
	}

	if commit.SHA != "51277fcabcdefabcdefabcdefabcdefabcdefabc" {
		t.Errorf("SHA = %q", commit.SHA)
	}

	if commit.AuthorDate != "2014-10-23T12:18:13Z" {
		t.Errorf("AuthorDate = %q", commit.AuthorDate)
	}

	if gotPath != "/repos/kennethreitz/requests/commits?page=1&per_page=1" {
		t.Errorf("request path = %q", gotPath)
	}

	if gotUserAgent != "repowatch-test" {
		t.Errorf("User-Agent = %q", gotUserAgent)
	}
}

func TestClient_LatestCommit_ProtocolErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"not found", http.StatusNotFound, `{"message":"Not Found"}`},
		{"rate limited", http.StatusForbidden, `{"message":"rate limit exceeded"}`},
		{"invalid json", http.StatusOK, `<!doctype html>`},
		{"empty array", http.StatusOK, `[]`},
		{"object instead of array", http.StatusOK, `{"sha":"abc"}`},
		{"entry without sha", http.StatusOK, `[{"commit":{"author":{"date":"2014-10-23T12:18:13Z"}}}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newTestClient(t, server.URL, 0)

			_, err := client.LatestCommit(context.Background(), testOrigin)
			if !errors.Is(err, ErrRemoteProtocol) {
				t.Fatalf("LatestCommit error = %v, want ErrRemoteProtocol", err)
			}
		})
	}
}

func TestClient_LatestCommit_Unavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // refuse connections

	client := newTestClient(t, server.URL, 0)

	_, err := client.LatestCommit(context.Background(), testOrigin)
	if !errors.Is(err, ErrRemoteUnavailable) {
		t.Fatalf("LatestCommit error = %v, want ErrRemoteUnavailable", err)
	}
}

func TestClient_LatestCommit_Timeout(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		close(started)
		<-release
		w.Write([]byte(commitsBody))
	}))
	defer server.Close()
	defer close(release)

	client := newTestClient(t, server.URL, 50*time.Millisecond)

	_, err := client.LatestCommit(context.Background(), testOrigin)
	if !errors.Is(err, ErrRemoteTimeout) {
		t.Fatalf("LatestCommit error = %v, want ErrRemoteTimeout", err)
	}

	<-started
}
