package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kheti-ai/kheti/internal/api/handler"
	"github.com/kheti-ai/kheti/internal/llm"
	"github.com/kheti-ai/kheti/internal/tools"
)

// Helper to make JSON request
func makeJSONRequest(method, path string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var response map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return response
}

func TestHealthCheck(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()

	handler.HealthCheck(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	response := decodeEnvelope(t, rec)
	if response["success"] != true {
		t.Error("expected success to be true")
	}

	data, ok := response["data"].(map[string]any)
	if !ok {
		t.Fatal("expected data to be a map")
	}

	if data["status"] != "ok" {
		t.Errorf("expected status 'ok', got %v", data["status"])
	}
}

func TestRegisterValidation(t *testing.T) {
	h := handler.NewAuthHandler(nil)

	// Missing email and a too-short password never reach the service.
	req := makeJSONRequest(http.MethodPost, "/api/v1/auth/register", map[string]any{
		"password": "short",
	})
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}

	response := decodeEnvelope(t, rec)
	if response["success"] != false {
		t.Error("expected success to be false")
	}

	fields, ok := response["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected field error map, got %v", response["error"])
	}
	if fields["Email"] != "field is required" {
		t.Errorf("unexpected email error: %v", fields["Email"])
	}
	if fields["Password"] != "must be at least 8 characters" {
		t.Errorf("unexpected password error: %v", fields["Password"])
	}
}

func TestRegisterInvalidBody(t *testing.T) {
	h := handler.NewAuthHandler(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestChatValidation(t *testing.T) {
	h := handler.NewChatHandler(nil)

	req := makeJSONRequest(http.MethodPost, "/api/v1/chat", map[string]any{
		"session_id": "anon-123",
	})
	rec := httptest.NewRecorder()

	h.Chat(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}

	response := decodeEnvelope(t, rec)
	fields, ok := response["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected field error map, got %v", response["error"])
	}
	if fields["Text"] != "field is required" {
		t.Errorf("unexpected text error: %v", fields["Text"])
	}
}

func TestListTools(t *testing.T) {
	registry := tools.NewRegistry()
	registry.Register(&tools.CalendarTool{})
	registry.Register(&tools.FertilizerTool{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tools", nil)
	rec := httptest.NewRecorder()

	handler.ListTools(registry)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	response := decodeEnvelope(t, rec)
	data, ok := response["data"].(map[string]any)
	if !ok {
		t.Fatal("expected data to be a map")
	}
	if data["count"] != float64(2) {
		t.Errorf("expected 2 tools, got %v", data["count"])
	}

	list, ok := data["tools"].([]any)
	if !ok || len(list) != 2 {
		t.Fatalf("expected a list of 2 tools, got %v", data["tools"])
	}

	first, _ := list[0].(map[string]any)
	if first["name"] != "crop_calendar" {
		t.Errorf("expected crop_calendar first, got %v", first["name"])
	}
}

func TestListLLMProviders(t *testing.T) {
	router := llm.NewRouter("gemini")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/llm-providers", nil)
	rec := httptest.NewRecorder()

	handler.ListLLMProviders(router)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	response := decodeEnvelope(t, rec)
	data, ok := response["data"].(map[string]any)
	if !ok {
		t.Fatal("expected data to be a map")
	}
	if data["default_provider"] != "gemini" {
		t.Errorf("expected default provider gemini, got %v", data["default_provider"])
	}
}
