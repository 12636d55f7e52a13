package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/sashabaranov/go-openai"
)

// bridgeState - araç köprüsünün yaşam döngüsü
type bridgeState int

const (
	bridgeUninitialized bridgeState = iota
	bridgeReady
)

// ToolBridge: MCP tarzı uzak araç servisine JSON-RPC köprüsü.
// Init idempotent'tir ve mutex ile korunur; token yoksa köprü hiç kurulmaz
// ve agent araçsız modda çalışır.
type ToolBridge struct {
	serviceURL string
	authToken  string
	client     *http.Client

	mu    sync.Mutex
	state bridgeState
	tools []openai.Tool
	// araç şemaları isimle bulunur
	schemas map[string]json.RawMessage
}

func NewToolBridge(serviceURL, authToken string) *ToolBridge {
	return &ToolBridge{
		serviceURL: serviceURL,
		authToken:  authToken,
		client:     &http.Client{Timeout: 60 * time.Second},
		schemas:    map[string]json.RawMessage{},
	}
}

type rpcRequest struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      int         `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

type toolInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

func (b *ToolBridge) call(ctx context.Context, method string, params interface{}) (json.RawMessage, error) {
	payload, err := json.Marshal(rpcRequest{JSONRPC: "2.0", ID: 1, Method: method, Params: params})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.serviceURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("araç servisi isteği oluşturulamadı: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-team-key", b.authToken)

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("araç servisine ulaşılamadı: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("araç servisi hatası: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(body, &rpcResp); err != nil {
		return nil, fmt.Errorf("araç servisi cevabı çözümlenemedi: %w", err)
	}
	if rpcResp.Error != nil {
		return nil, fmt.Errorf("araç servisi hatası: %s", rpcResp.Error.Message)
	}
	return rpcResp.Result, nil
}

// Init: araç listesini çeker ve köprüyü ready durumuna geçirir.
// Tekrarlanan çağrılar no-op'tur, eşzamanlı çağrılara karşı mutex korur.
func (b *ToolBridge) Init(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == bridgeReady {
		return nil
	}

	result, err := b.call(ctx, "tools/list", nil)
	if err != nil {
		return err
	}

	var listed struct {
		Tools []toolInfo `json:"tools"`
	}
	if err := json.Unmarshal(result, &listed); err != nil {
		return fmt.Errorf("araç listesi çözümlenemedi: %w", err)
	}

	tools := make([]openai.Tool, 0, len(listed.Tools))
	for _, t := range listed.Tools {
		schema := t.InputSchema
		if len(schema) == 0 {
			schema = json.RawMessage(`{"type":"object","properties":{}}`)
		}
		b.schemas[t.Name] = schema
		tools = append(tools, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  schema,
			},
		})
	}

	b.tools = tools
	b.state = bridgeReady
	return nil
}

func (b *ToolBridge) Ready() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state == bridgeReady
}

func (b *ToolBridge) Tools() []openai.Tool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tools
}

// Invoke: tek bir araç çağrısını uzak servise iletir, metin sonucu döner
func (b *ToolBridge) Invoke(ctx context.Context, name, arguments string) (string, error) {
	var args map[string]interface{}
	if arguments != "" {
		if err := json.Unmarshal([]byte(arguments), &args); err != nil {
			return "", fmt.Errorf("araç argümanları çözümlenemedi: %w", err)
		}
	}

	result, err := b.call(ctx, "tools/call", map[string]interface{}{
		"name":      name,
		"arguments": args,
	})
	if err != nil {
		return "", err
	}

	var callResult struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(result, &callResult); err != nil {
		// Yapı beklenenden farklıysa ham sonucu döndür
		return string(result), nil
	}

	var buf bytes.Buffer
	for _, c := range callResult.Content {
		if c.Type == "text" {
			buf.WriteString(c.Text)
		}
	}
	return buf.String(), nil
}
