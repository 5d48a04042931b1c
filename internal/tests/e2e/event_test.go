//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/churchhub/apiserver/config"
	"github.com/churchhub/apiserver/internal/server"
)

const serverPort = 18080

func TestMain(m *testing.M) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	srv, err := startServer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start server: %v\n", err)
		os.Exit(1)
	}

	baseURL := fmt.Sprintf("http://localhost:%d", serverPort)
	if err := waitForHealth(ctx, baseURL+"/healthz"); err != nil {
		fmt.Fprintf(os.Stderr, "server not healthy: %v\n", err)
		_ = srv.Shutdown()
		os.Exit(1)
	}

	code := m.Run()

	_ = srv.Shutdown()
	os.Exit(code)
}

func TestEventLifecycle(t *testing.T) {
	baseURL := fmt.Sprintf("http://localhost:%d", serverPort)

	token, err := login(t, baseURL, "e2e_admin", "e2e-password-123")
	if err != nil {
		t.Fatalf("login as seeded admin: %v", err)
	}

	start := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)
	created, err := createEvent(t, baseURL, token, map[string]any{
		"title":      "Harvest Dinner",
		"event_type": "fellowship",
		"start_time": start,
		"end_time":   start.Add(2 * time.Hour),
		"location":   "Fellowship Hall",
	})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected event ID to be set")
	}
	if created.Title != "Harvest Dinner" {
		t.Fatalf("unexpected event title: %q", created.Title)
	}

	updated, err := patchEvent(t, baseURL, token, created.ID, map[string]any{"title": "Harvest Dinner (rescheduled)"})
	if err != nil {
		t.Fatalf("update event: %v", err)
	}
	if updated.Title != "Harvest Dinner (rescheduled)" {
		t.Fatalf("unexpected updated title: %q", updated.Title)
	}
	if updated.ID != created.ID {
		t.Fatalf("update changed event id: %d", updated.ID)
	}

	fetched, err := getEvent(t, baseURL, created.ID)
	if err != nil {
		t.Fatalf("get event: %v", err)
	}
	if fetched.ID != created.ID {
		t.Fatalf("unexpected event id: %d", fetched.ID)
	}

	if err := deleteEvent(t, baseURL, token, created.ID); err != nil {
		t.Fatalf("delete event: %v", err)
	}

	if err := expectEventNotFound(t, baseURL, created.ID); err != nil {
		t.Fatalf("expected deleted event to be missing: %v", err)
	}
}

type eventResponse struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

type authResponse struct {
	Token string `json:"token"`
}

func login(t *testing.T, baseURL, username, password string) (string, error) {
	t.Helper()

	payload := map[string]string{
		"username": username,
		"password": password,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	resp, err := http.Post(baseURL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("login status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var parsed authResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if parsed.Token == "" {
		return "", fmt.Errorf("missing token in login response")
	}
	return parsed.Token, nil
}

func createEvent(t *testing.T, baseURL, token string, payload map[string]any) (eventResponse, error) {
	t.Helper()
	return doEventRequest(http.MethodPost, baseURL+"/api/events", token, payload, http.StatusCreated)
}

func patchEvent(t *testing.T, baseURL, token string, id int, payload map[string]any) (eventResponse, error) {
	t.Helper()
	return doEventRequest(http.MethodPatch, fmt.Sprintf("%s/api/events/%d", baseURL, id), token, payload, http.StatusOK)
}

func getEvent(t *testing.T, baseURL string, id int) (eventResponse, error) {
	t.Helper()
	return doEventRequest(http.MethodGet, fmt.Sprintf("%s/api/events/%d", baseURL, id), "", nil, http.StatusOK)
}

func deleteEvent(t *testing.T, baseURL, token string, id int) error {
	t.Helper()
	_, err := doEventRequest(http.MethodDelete, fmt.Sprintf("%s/api/events/%d", baseURL, id), token, nil, http.StatusOK)
	return err
}

func expectEventNotFound(t *testing.T, baseURL string, id int) error {
	t.Helper()

	resp, err := http.Get(fmt.Sprintf("%s/api/events/%d", baseURL, id))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("expected 404 after delete, got %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return nil
}

func doEventRequest(method, url, token string, payload map[string]any, wantStatus int) (eventResponse, error) {
	var reader io.Reader
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return eventResponse{}, err
		}
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return eventResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return eventResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		msg, _ := io.ReadAll(resp.Body)
		return eventResponse{}, fmt.Errorf("%s %s status %d: %s", method, url, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var parsed eventResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return eventResponse{}, err
	}
	return parsed, nil
}

func startServer() (*server.Server, error) {
	_ = os.Setenv("JWT_SECRET", "test-secret")
	_ = os.Setenv("SERVER_PORT", fmt.Sprintf("%d", serverPort))
	_ = os.Setenv("STORAGE_DRIVER", config.StorageDriverMemory)
	_ = os.Setenv("ADMIN_USERNAME", "e2e_admin")
	_ = os.Setenv("ADMIN_PASSWORD", "e2e-password-123")

	cfg := config.LoadConfig()
	srv, err := server.New(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	go func() {
		_ = srv.Start()
	}()

	return srv, nil
}

func waitForHealth(ctx context.Context, url string) error {
	client := &http.Client{Timeout: 2 * time.Second}
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			if err != nil {
				return fmt.Errorf("health check failed: %w", err)
			}
			return fmt.Errorf("health check failed with status")
		case <-ticker.C:
		}
	}
}
