package launcher

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/communitydesk/helpdesk/internal/config"
	"github.com/communitydesk/helpdesk/pkg/logx"
)

// probeClient reuses connections across the repeated readiness polls.
var probeClient = &http.Client{
	Timeout: 2 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        config.MaxIdleConns,
		MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
		IdleConnTimeout:     config.IdleConnTimeout,
	},
}

type PrereqError struct {
	Name   string
	Reason string
}

func (e *PrereqError) Error() string {
	return fmt.Sprintf("prerequisite %s failed: %s", e.Name, e.Reason)
}

// CheckPrerequisites verifies everything the stack needs before any service
// is started. The first failure aborts the launch; nothing gets spawned on a
// broken environment.
func CheckPrerequisites(ctx context.Context, cfg *config.Config) error {
	logger := logx.NewLogger("launcher")

	if cfg.LLM.Provider == "ollama" {
		if err := probeHTTP(ctx, cfg.LLM.OllamaBaseURL+"/api/tags"); err != nil {
			return &PrereqError{Name: "ollama", Reason: fmt.Sprintf("Ollama not reachable at %s: %v", cfg.LLM.OllamaBaseURL, err)}
		}
		logger.Info("Ollama is reachable", "url", cfg.LLM.OllamaBaseURL)
	} else if cfg.LLM.GeminiAPIKey == "" {
		return &PrereqError{Name: "gemini", Reason: "Gemini API key is not configured"}
	}

	qdrantBase := qdrantHTTPBase(cfg.Qdrant.Host)
	if err := probeHTTP(ctx, qdrantBase+"/readyz"); err != nil {
		return &PrereqError{Name: "qdrant", Reason: fmt.Sprintf("Qdrant not reachable at %s: %v", qdrantBase, err)}
	}
	logger.Info("Qdrant is reachable", "host", cfg.Qdrant.Host)

	// The seed dataset only matters while the knowledge base is empty; a
	// populated deployment may delete the file.
	if _, err := os.Stat(cfg.Dataset.Path); err != nil {
		if collectionPoints(ctx, qdrantBase, cfg.Qdrant.Collection) == 0 {
			return &PrereqError{Name: "dataset", Reason: fmt.Sprintf("knowledge base is empty and seed dataset not found at %s", cfg.Dataset.Path)}
		}
		logger.Warn("Seed dataset missing, continuing with the populated knowledge base", "path", cfg.Dataset.Path)
	} else {
		logger.Info("Dataset found", "path", cfg.Dataset.Path)
	}

	return nil
}

// qdrantHTTPBase accepts a bare host (default REST port 6333) or an
// explicit host:port.
func qdrantHTTPBase(host string) string {
	if strings.Contains(host, ":") {
		return "http://" + host
	}
	return fmt.Sprintf("http://%s:6333", host)
}

// collectionPoints reads the point count over the REST API. A missing
// collection or an unexpected response counts as empty.
func collectionPoints(ctx context.Context, base string, collection string) uint64 {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/collections/"+collection, nil)
	if err != nil {
		return 0
	}
	resp, err := probeClient.Do(req)
	if err != nil {
		return 0
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0
	}
	var payload struct {
		Result struct {
			PointsCount uint64 `json:"points_count"`
		} `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0
	}
	return payload.Result.PointsCount
}

// WaitUntilReady polls the backend health endpoint until it answers or the
// deadline passes. This replaces any fixed startup sleep: the frontend only
// starts once the API actually accepts requests.
func WaitUntilReady(ctx context.Context, healthURL string, timeout time.Duration) error {
	logger := logx.NewLogger("launcher")
	deadline := time.Now().Add(timeout)

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		if err := probeHTTP(ctx, healthURL); err == nil {
			logger.Info("Backend is ready", "url", healthURL)
			return nil
		}

		if time.Now().After(deadline) {
			return fmt.Errorf("backend did not become ready within %s", timeout)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func probeHTTP(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := probeClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

// PrintBanner writes the connection URLs once everything is up.
func PrintBanner(listenAddr string, frontendStarted bool) {
	base := "http://localhost" + listenAddr
	fmt.Println("==========================================================")
	fmt.Println("  Community Helpdesk is running")
	fmt.Printf("  API:      %s\n", base)
	fmt.Printf("  Swagger:  %s/swagger\n", base)
	fmt.Printf("  Metrics:  %s/metrics\n", base)
	if frontendStarted {
		fmt.Println("  Frontend: chat TUI attached to this terminal")
	}
	fmt.Println("==========================================================")
}
