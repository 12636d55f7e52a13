package agent

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"hris-backend/internal/config"

	"github.com/gofiber/fiber/v2"
)

// sahte OpenAI-uyumlu chat completion servisi
func newLLMServer(t *testing.T, reply string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"model":  "gpt-4o-mini",
			"choices": []map[string]interface{}{
				{
					"index":         0,
					"finish_reason": "stop",
					"message": map[string]interface{}{
						"role":    "assistant",
						"content": reply,
					},
				},
			},
		})
	}))
}

func setupAgentApp(t *testing.T, llmURL string) *fiber.App {
	t.Helper()

	cfg := &config.Config{
		AIBaseURL:   llmURL + "/v1",
		AIModelName: "gpt-4o-mini",
		AIAPIKey:    "test-key",
	}
	reg := NewRegistry(cfg)

	app := fiber.New()
	app.Post("/api/chat", ChatHandler(reg))
	app.Post("/api/search", SearchHandler(reg))
	app.Get("/api/agents/capabilities", CapabilitiesHandler(reg))
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) []byte {
	t.Helper()

	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, agent endpoint'leri her zaman 200 dönmeli", resp.StatusCode)
	}
	raw, _ := io.ReadAll(resp.Body)
	return raw
}

func TestChatHandler(t *testing.T) {
	srv := newLLMServer(t, "Merhaba, size nasıl yardımcı olabilirim?")
	defer srv.Close()
	app := setupAgentApp(t, srv.URL)

	raw := postJSON(t, app, "/api/chat", map[string]string{"message": "merhaba"})

	var cr ChatResponse
	if err := json.Unmarshal(raw, &cr); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !cr.Success {
		t.Fatalf("success = false, error = %q", cr.Error)
	}
	if cr.Response != "Merhaba, size nasıl yardımcı olabilirim?" {
		t.Errorf("response = %q", cr.Response)
	}
	if cr.AgentType != TypeChat {
		t.Errorf("agent_type = %q, varsayılan chat olmalı", cr.AgentType)
	}
	if cr.Metadata["tools_used"] != false {
		t.Errorf("metadata = %v", cr.Metadata)
	}
}

func TestChatHandlerUnknownAgentType(t *testing.T) {
	srv := newLLMServer(t, "cevap")
	defer srv.Close()
	app := setupAgentApp(t, srv.URL)

	raw := postJSON(t, app, "/api/chat", map[string]string{
		"message":    "merhaba",
		"agent_type": "translator",
	})

	var cr ChatResponse
	_ = json.Unmarshal(raw, &cr)
	if cr.Success {
		t.Error("bilinmeyen agent tipi success=false dönmeli")
	}
	if cr.Error == "" {
		t.Error("hata mesajı boş olmamalı")
	}
}

func TestChatHandlerLLMDown(t *testing.T) {
	app := setupAgentApp(t, "http://127.0.0.1:1")

	raw := postJSON(t, app, "/api/chat", map[string]string{"message": "merhaba"})

	var cr ChatResponse
	_ = json.Unmarshal(raw, &cr)
	if cr.Success {
		t.Error("LLM erişilemezken success=false dönmeli")
	}
	if cr.Error == "" {
		t.Error("hata mesajı boş olmamalı")
	}
}

func TestSearchHandler(t *testing.T) {
	srv := newLLMServer(t, "Özet: bulgular burada.")
	defer srv.Close()
	app := setupAgentApp(t, srv.URL)

	raw := postJSON(t, app, "/api/search", map[string]string{"query": "go fiber"})

	var sr SearchResponse
	if err := json.Unmarshal(raw, &sr); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !sr.Success {
		t.Fatalf("success = false, error = %q", sr.Error)
	}
	if sr.Query != "go fiber" {
		t.Errorf("query = %q", sr.Query)
	}
	if sr.Summary != "Özet: bulgular burada." {
		t.Errorf("summary = %q", sr.Summary)
	}
	// Köprü yok, araç çağrısı yok
	if sr.SourcesCount != 0 {
		t.Errorf("sources_count = %d", sr.SourcesCount)
	}
}

func TestCapabilitiesHandler(t *testing.T) {
	srv := newLLMServer(t, "cevap")
	defer srv.Close()
	app := setupAgentApp(t, srv.URL)

	req := httptest.NewRequest(http.MethodGet, "/api/agents/capabilities", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	raw, _ := io.ReadAll(resp.Body)

	var body struct {
		Success      bool `json:"success"`
		Capabilities struct {
			SearchAgent []string `json:"search_agent"`
			ChatAgent   []string `json:"chat_agent"`
		} `json:"capabilities"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !body.Success {
		t.Fatal("success = false")
	}
	if len(body.Capabilities.ChatAgent) == 0 || body.Capabilities.ChatAgent[0] != "text_generation" {
		t.Errorf("chat_agent capabilities = %v", body.Capabilities.ChatAgent)
	}
}
