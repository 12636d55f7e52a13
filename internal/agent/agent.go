package agent

import (
	"context"
	"errors"
	"log"

	"hris-backend/internal/config"

	"github.com/sashabaranov/go-openai"
)

// Agent döngüsünün üst sınırı; model bu kadar turda cevap üretemezse durulur
const maxToolRounds = 5

// Agent: LLM + opsiyonel uzak araç köprüsü.
// Asıl akıl yürütme dış LLM servisindedir; bu sarmalayıcı sadece istemciyi
// kurar, prompt'u iletir ve araç çağrılarını köprüye yönlendirir.
type Agent struct {
	model        string
	systemPrompt string
	client       *openai.Client
	bridge       *ToolBridge // nil ise araçsız çalışır
}

func newAgent(cfg *config.Config, systemPrompt string, bridge *ToolBridge) *Agent {
	clientCfg := openai.DefaultConfig(cfg.AIAPIKey)
	clientCfg.BaseURL = cfg.AIBaseURL

	return &Agent{
		model:        cfg.AIModelName,
		systemPrompt: systemPrompt,
		client:       openai.NewClientWithConfig(clientCfg),
		bridge:       bridge,
	}
}

// ensureBridge: köprüyü kurmayı dener; başarısızlık araçsız moda düşürür
func (a *Agent) ensureBridge(ctx context.Context) {
	if a.bridge == nil || a.bridge.Ready() {
		return
	}
	if err := a.bridge.Init(ctx); err != nil {
		log.Printf("[WARN] Araç köprüsü kurulamadı, araçsız devam ediliyor: %v", err)
	}
}

// Execute: prompt'u çalıştırır. useTools true ve köprü hazırsa modelin araç
// çağrısı döngüsü işletilir, aksi halde düz üretim yapılır.
func (a *Agent) Execute(ctx context.Context, prompt string, useTools bool) Response {
	a.ensureBridge(ctx)

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: a.systemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	}

	var tools []openai.Tool
	if useTools && a.bridge != nil && a.bridge.Ready() {
		tools = a.bridge.Tools()
	}

	if len(tools) == 0 {
		resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:    a.model,
			Messages: messages,
		})
		if err != nil {
			return failure(err)
		}
		if len(resp.Choices) == 0 {
			return failure(errors.New("model boş cevap döndü"))
		}
		return Response{
			Success: true,
			Content: resp.Choices[0].Message.Content,
			Metadata: map[string]interface{}{
				"model":           a.model,
				"tools_available": 0,
				"tools_used":      false,
			},
		}
	}

	toolCallCount := 0
	content := ""
	answered := false

	for round := 0; round < maxToolRounds; round++ {
		resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:    a.model,
			Messages: messages,
			Tools:    tools,
		})
		if err != nil {
			return failure(err)
		}
		if len(resp.Choices) == 0 {
			return failure(errors.New("model boş cevap döndü"))
		}

		msg := resp.Choices[0].Message
		messages = append(messages, msg)

		if len(msg.ToolCalls) == 0 {
			content = msg.Content
			answered = true
			break
		}

		for _, call := range msg.ToolCalls {
			toolCallCount++
			result, err := a.bridge.Invoke(ctx, call.Function.Name, call.Function.Arguments)
			if err != nil {
				// Araç hatası modele geri bildirilir, döngü kesilmez
				result = "tool error: " + err.Error()
			}
			messages = append(messages, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				Content:    result,
				ToolCallID: call.ID,
			})
		}
	}

	if !answered {
		// Tur limiti doldu, model hala araç çağırıyordu
		return Response{
			Success: false,
			Error:   "model tur limitinde cevap üretemedi",
			Metadata: map[string]interface{}{
				"model":           a.model,
				"tools_available": len(tools),
				"tools_used":      toolCallCount > 0,
				"tool_call_count": toolCallCount,
				"tools_exhausted": true,
			},
		}
	}

	return Response{
		Success: true,
		Content: content,
		Metadata: map[string]interface{}{
			"model":           a.model,
			"tools_available": len(tools),
			"tools_used":      toolCallCount > 0,
			"tool_call_count": toolCallCount,
			"message_count":   len(messages),
		},
	}
}

// Capabilities: agent'ın yetenek listesi
func (a *Agent) Capabilities() []string {
	capabilities := []string{"text_generation", "conversation"}
	if a.bridge != nil && a.bridge.Ready() {
		capabilities = append(capabilities, "mcp_enabled")
	}
	return capabilities
}
