package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jswirl/ollash/internal/domain"
	"github.com/jswirl/ollash/internal/ports"
)

func TestGenerateSuccess(t *testing.T) {
	var got map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"response": "ls -laSh"})
	}))
	defer server.Close()

	client := New(server.URL, nil)
	out, err := client.Generate(context.Background(), "list files", ports.GenerateOptions{
		Model:       "llama3.2",
		Temperature: 0.2,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if out != "ls -laSh" {
		t.Fatalf("Generate() = %q", out)
	}
	if got["model"] != "llama3.2" || got["prompt"] != "list files" {
		t.Fatalf("request payload = %v", got)
	}
	if stream, ok := got["stream"].(bool); !ok || stream {
		t.Fatalf("stream must be false, payload = %v", got)
	}
}

func TestGenerateBackendErrorField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"error": "model 'nope' not found"})
	}))
	defer server.Close()

	_, err := New(server.URL, nil).Generate(context.Background(), "x", ports.GenerateOptions{Model: "nope"})
	var backendErr *domain.BackendError
	if !errors.As(err, &backendErr) {
		t.Fatalf("expected BackendError, got %v", err)
	}
	if backendErr.Message != "model 'nope' not found" {
		t.Fatalf("message not surfaced verbatim: %q", backendErr.Message)
	}
}

func TestGenerateNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := New(server.URL, nil).Generate(context.Background(), "x", ports.GenerateOptions{Model: "m"})
	var backendErr *domain.BackendError
	if !errors.As(err, &backendErr) {
		t.Fatalf("expected BackendError, got %v", err)
	}
}

func TestGenerateEmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"response": "   \n"})
	}))
	defer server.Close()

	_, err := New(server.URL, nil).Generate(context.Background(), "x", ports.GenerateOptions{Model: "m"})
	if !errors.Is(err, domain.ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestGenerateConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := New(server.URL, nil).Generate(context.Background(), "x", ports.GenerateOptions{Model: "m"})
	if !errors.Is(err, domain.ErrConnectionFailed) {
		t.Fatalf("expected ErrConnectionFailed, got %v", err)
	}
}

func TestGenerateTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer func() {
		close(release)
		server.Close()
	}()

	_, err := New(server.URL, nil).Generate(context.Background(), "x", ports.GenerateOptions{
		Model:   "m",
		Timeout: 50 * time.Millisecond,
	})
	if !errors.Is(err, domain.ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
}

func TestListModels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"models": []map[string]string{{"name": "llama3.2"}, {"name": "codellama:7b"}},
		})
	}))
	defer server.Close()

	names, err := New(server.URL, nil).ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels() error = %v", err)
	}
	if len(names) != 2 || names[0] != "llama3.2" || names[1] != "codellama:7b" {
		t.Fatalf("ListModels() = %v", names)
	}
}

func TestIsReachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"models": []map[string]string{}})
	}))
	client := New(server.URL, nil)
	if !client.IsReachable(context.Background()) {
		t.Fatal("expected reachable backend")
	}
	server.Close()
	if client.IsReachable(context.Background()) {
		t.Fatal("expected unreachable backend after close")
	}
}
