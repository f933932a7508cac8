package launcher

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/communitydesk/helpdesk/internal/config"
)

// newStackStub answers the Ollama and Qdrant probes and reports the
// given knowledge base size.
func newStackStub(t *testing.T, points uint64) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/collections/") {
			fmt.Fprintf(w, `{"result":{"points_count":%d,"status":"green"}}`, points)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestCheckPrerequisites_MissingDataset(t *testing.T) {
	ts := newStackStub(t, 0)

	cfg := config.Default()
	cfg.Dataset.Path = "no/such/file.json"
	cfg.LLM.OllamaBaseURL = ts.URL
	cfg.Qdrant.Host = strings.TrimPrefix(ts.URL, "http://")

	err := CheckPrerequisites(context.Background(), cfg)
	if err == nil {
		t.Fatal("Expected error for missing dataset with an empty knowledge base")
	}
	if !strings.Contains(err.Error(), "dataset") {
		t.Errorf("Expected dataset prerequisite failure, got %v", err)
	}
}

func TestCheckPrerequisites_DatasetOptionalWhenPopulated(t *testing.T) {
	ts := newStackStub(t, 42)

	cfg := config.Default()
	cfg.Dataset.Path = "no/such/file.json"
	cfg.LLM.OllamaBaseURL = ts.URL
	cfg.Qdrant.Host = strings.TrimPrefix(ts.URL, "http://")

	if err := CheckPrerequisites(context.Background(), cfg); err != nil {
		t.Fatalf("Populated knowledge base should not require the seed dataset, got %v", err)
	}
}

func TestCheckPrerequisites_OllamaUnreachable(t *testing.T) {
	dir := t.TempDir()
	datasetPath := filepath.Join(dir, "services.json")
	if err := os.WriteFile(datasetPath, []byte(`{"services":[]}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Dataset.Path = datasetPath
	cfg.LLM.OllamaBaseURL = "http://127.0.0.1:1" // nothing listens here

	err := CheckPrerequisites(context.Background(), cfg)
	if err == nil {
		t.Fatal("Expected error for unreachable Ollama")
	}
	if !strings.Contains(err.Error(), "ollama") {
		t.Errorf("Expected ollama prerequisite failure, got %v", err)
	}
}

func TestCheckPrerequisites_GeminiNeedsKey(t *testing.T) {
	dir := t.TempDir()
	datasetPath := filepath.Join(dir, "services.json")
	if err := os.WriteFile(datasetPath, []byte(`{"services":[]}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Dataset.Path = datasetPath
	cfg.LLM.Provider = "gemini"
	cfg.LLM.GeminiAPIKey = ""

	err := CheckPrerequisites(context.Background(), cfg)
	if err == nil {
		t.Fatal("Expected error for missing Gemini key")
	}
	if !strings.Contains(err.Error(), "gemini") {
		t.Errorf("Expected gemini prerequisite failure, got %v", err)
	}
}

func TestWaitUntilReady_SucceedsOnceHealthy(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// fail the first two probes, then report healthy
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	err := WaitUntilReady(context.Background(), ts.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("WaitUntilReady failed: %v", err)
	}
	if atomic.LoadInt32(&calls) < 3 {
		t.Errorf("Expected at least 3 probes, got %d", calls)
	}
}

func TestWaitUntilReady_TimesOut(t *testing.T) {
	err := WaitUntilReady(context.Background(), "http://127.0.0.1:1/health", 500*time.Millisecond)
	if err == nil {
		t.Fatal("Expected timeout error")
	}
}

func TestWaitUntilReady_RespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WaitUntilReady(ctx, "http://127.0.0.1:1/health", 5*time.Second)
	if err == nil {
		t.Fatal("Expected error from cancelled context")
	}
}
