package sync

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/repowatch/repowatch/internal/cache"
	"github.com/repowatch/repowatch/internal/github"
	"github.com/repowatch/repowatch/internal/history"
	"github.com/repowatch/repowatch/internal/repo"
	"github.com/repowatch/repowatch/pkg/badgerfx"
	"go.uber.org/zap/zaptest"
)

const (
	fullSHA  = "51277fcabcdefabcdefabcdefabcdefabcdefabc"
	shortSHA = "51277fc"

	commitsBody = `[{"sha":"` + fullSHA + `","commit":{"author":{"date":"2014-10-23T12:18:13Z"}}}]`
)

type scriptRunner struct {
	outputs map[string]string
	calls   []string
}

func (r *scriptRunner) Run(_ context.Context, _ string, argv ...string) (string, error) {
	key := strings.Join(argv, " ")
	r.calls = append(r.calls, key)

	out, ok := r.outputs[key]
	if !ok {
		return "", fmt.Errorf("%w: unexpected command %q", repo.ErrCommandFailed, key)
	}

	return out, nil
}

func (r *scriptRunner) count(substr string) int {
	n := 0
	for _, call := range r.calls {
		if strings.Contains(call, substr) {
			n++
		}
	}

	return n
}

type captureNotifier struct {
	results []*Result
}

func (n *captureNotifier) NotifyOutOfDate(result *Result) {
	n.results = append(n.results, result)
}

func gitOutputs(revision string) map[string]string {
	return map[string]string{
		"git describe --long --dirty --tags --always": revision,
		"git config --get remote.origin.url":          "https://github.com/kennethreitz/requests.git",
		"git rev-parse --short " + fullSHA:            shortSHA,
	}
}

func newTestHistory(t *testing.T) *history.Repository {
	t.Helper()

	opts := badgerfx.Config{InMemory: true}.Build().WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	return history.NewRepository(db)
}

func newTestService(t *testing.T, runner repo.Runner, apiBase string) (*Service, *captureNotifier, *history.Repository) {
	t.Helper()

	logger := zaptest.NewLogger(t)

	repos := repo.NewService(runner, repo.Config{}, logger)
	client := github.NewClient(github.Config{
		APIBase:   apiBase,
		UserAgent: "repowatch-test",
	}, logger)
	checks := newTestHistory(t)
	notifier := &captureNotifier{}

	svc := NewService(repos, client, checks, notifier, Config{MaxAge: time.Hour}, logger)

	return svc, notifier, checks
}

func newCommitsServer(t *testing.T) (*httptest.Server, *int) {
	t.Helper()

	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests++
		w.Write([]byte(commitsBody))
	}))
	t.Cleanup(server.Close)

	return server, &requests
}

func TestService_Check_FetchesAndCaches(t *testing.T) {
	repoPath := t.TempDir()
	server, requests := newCommitsServer(t)

	runner := &scriptRunner{outputs: gitOutputs("v2.4.3-1-g" + shortSHA)}
	svc, notifier, checks := newTestService(t, runner, server.URL)

	result, err := svc.Check(context.Background(), repoPath)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}

	if !result.InSync {
		t.Error("InSync = false, want true")
	}

	if result.FromCache {
		t.Error("FromCache = true on first check")
	}

	if result.Remote.ShortHash != shortSHA || result.Remote.Timestamp != 1414066693.0 {
		t.Errorf("Remote = %+v", result.Remote)
	}

	// The pair must have been written to the repository's cache file.
	entry, err := cache.New(repoPath).Read()
	if err != nil {
		t.Fatalf("cache Read failed: %v", err)
	}

	if entry.ShortHash != shortSHA || entry.Timestamp != 1414066693.0 {
		t.Errorf("cached entry = %+v", entry)
	}

	if *requests != 1 {
		t.Errorf("remote requests = %d, want 1", *requests)
	}

	if len(notifier.results) != 0 {
		t.Errorf("notifier called %d times for an in-sync repository", len(notifier.results))
	}

	latest, err := checks.LatestByRepo(context.Background(), repoPath)
	if err != nil {
		t.Fatalf("LatestByRepo failed: %v", err)
	}

	if !latest.InSync || latest.RemoteShortHash != shortSHA {
		t.Errorf("recorded check = %+v", latest)
	}
}

func TestService_Check_ServesFreshCache(t *testing.T) {
	repoPath := t.TempDir()
	server, requests := newCommitsServer(t)

	runner := &scriptRunner{outputs: gitOutputs("v2.4.3-1-g" + shortSHA)}
	svc, _, _ := newTestService(t, runner, server.URL)

	ctx := context.Background()

	if _, err := svc.Check(ctx, repoPath); err != nil {
		t.Fatal(err)
	}

	result, err := svc.Check(ctx, repoPath)
	if err != nil {
		t.Fatalf("second Check failed: %v", err)
	}

	if !result.FromCache {
		t.Error("FromCache = false on second check")
	}

	if result.Remote.ShortHash != shortSHA || result.Remote.Timestamp != 1414066693.0 {
		t.Errorf("Remote = %+v", result.Remote)
	}

	// The fresh cache answers without the API or rev-parse.
	if *requests != 1 {
		t.Errorf("remote requests = %d, want 1", *requests)
	}

	if n := runner.count("rev-parse"); n != 1 {
		t.Errorf("rev-parse invocations = %d, want 1", n)
	}
}

func TestService_Check_StaleCacheRequeries(t *testing.T) {
	repoPath := t.TempDir()
	server, requests := newCommitsServer(t)

	runner := &scriptRunner{outputs: gitOutputs("v2.4.3-1-g" + shortSHA)}
	svc, _, _ := newTestService(t, runner, server.URL)

	c := cache.New(repoPath)
	if err := c.Write(cache.Entry{ShortHash: "old1234", Timestamp: 1.0}); err != nil {
		t.Fatal(err)
	}

	past := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(c.Path(), past, past); err != nil {
		t.Fatal(err)
	}

	result, err := svc.Check(context.Background(), repoPath)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}

	if result.FromCache {
		t.Error("FromCache = true for a stale cache")
	}

	if result.Remote.ShortHash != shortSHA {
		t.Errorf("Remote.ShortHash = %q, want fresh value", result.Remote.ShortHash)
	}

	if *requests != 1 {
		t.Errorf("remote requests = %d, want 1", *requests)
	}
}

func TestService_Check_CorruptFreshCacheFallsBack(t *testing.T) {
	repoPath := t.TempDir()
	server, requests := newCommitsServer(t)

	runner := &scriptRunner{outputs: gitOutputs("v2.4.3-1-g" + shortSHA)}
	svc, _, _ := newTestService(t, runner, server.URL)

	c := cache.New(repoPath)
	if err := os.WriteFile(c.Path(), []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := svc.Check(context.Background(), repoPath)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}

	if result.FromCache {
		t.Error("FromCache = true for an unreadable cache")
	}

	if *requests != 1 {
		t.Errorf("remote requests = %d, want 1", *requests)
	}

	// The cache is valid again after the fallback query.
	entry, err := c.Read()
	if err != nil {
		t.Fatalf("cache Read after fallback failed: %v", err)
	}

	if entry.ShortHash != shortSHA {
		t.Errorf("rewritten cache entry = %+v", entry)
	}
}

func TestService_Check_OutOfDate(t *testing.T) {
	repoPath := t.TempDir()
	server, _ := newCommitsServer(t)

	// Local revision does not embed the remote short hash.
	runner := &scriptRunner{outputs: gitOutputs("v2.4.2-0-gabc1234")}
	svc, notifier, _ := newTestService(t, runner, server.URL)

	result, err := svc.Check(context.Background(), repoPath)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}

	if result.InSync {
		t.Error("InSync = true, want false")
	}

	if len(notifier.results) != 1 {
		t.Fatalf("notifier called %d times, want 1", len(notifier.results))
	}

	if notifier.results[0].Remote.ShortHash != shortSHA {
		t.Errorf("notified remote hash = %q", notifier.results[0].Remote.ShortHash)
	}
}

func TestService_Check_UnrecognizedOrigin(t *testing.T) {
	repoPath := t.TempDir()

	outputs := gitOutputs("v2.4.3-1-g" + shortSHA)
	outputs["git config --get remote.origin.url"] = "https://gitlab.com/x/y.git"

	runner := &scriptRunner{outputs: outputs}
	svc, _, _ := newTestService(t, runner, "http://127.0.0.1:0")

	_, err := svc.Check(context.Background(), repoPath)
	if !errors.Is(err, repo.ErrUnrecognizedOrigin) {
		t.Fatalf("Check error = %v, want ErrUnrecognizedOrigin", err)
	}
}

func TestService_Check_MalformedRemoteTimestamp(t *testing.T) {
	repoPath := t.TempDir()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[{"sha":"` + fullSHA + `","commit":{"author":{"date":"2014-10-23T12:18:13.000Z"}}}]`))
	}))
	t.Cleanup(server.Close)

	runner := &scriptRunner{outputs: gitOutputs("v2.4.3-1-g" + shortSHA)}
	svc, _, _ := newTestService(t, runner, server.URL)

	_, err := svc.Check(context.Background(), repoPath)
	if !errors.Is(err, github.ErrMalformedTimestamp) {
		t.Fatalf("Check error = %v, want ErrMalformedTimestamp", err)
	}
}
