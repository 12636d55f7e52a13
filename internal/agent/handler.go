package agent

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

type ChatRequest struct {
	Message   string                 `json:"message"`
	AgentType string                 `json:"agent_type"` // boşsa chat
	Context   map[string]interface{} `json:"context"`
}

type ChatResponse struct {
	Success      bool                   `json:"success"`
	Response     string                 `json:"response"`
	AgentType    string                 `json:"agent_type"`
	Capabilities []string               `json:"capabilities"`
	Metadata     map[string]interface{} `json:"metadata"`
	Error        string                 `json:"error,omitempty"`
}

type SearchRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

type SearchResponse struct {
	Success       bool                   `json:"success"`
	Query         string                 `json:"query"`
	Summary       string                 `json:"summary"`
	SearchResults map[string]interface{} `json:"search_results"`
	SourcesCount  int                    `json:"sources_count"`
	Error         string                 `json:"error,omitempty"`
}

// Konuşma deneyimi geçici hatalara dayanıklı olsun diye agent endpoint'leri
// hatayı HTTP hatası olarak döndürmez: her durumda 200 + success alanı.

// POST /api/chat
func ChatHandler(reg *Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ChatRequest
		if err := c.BodyParser(&body); err != nil {
			return c.JSON(ChatResponse{
				Success:      false,
				AgentType:    body.AgentType,
				Capabilities: []string{},
				Metadata:     map[string]interface{}{},
				Error:        "Geçersiz istek gövdesi",
			})
		}

		if body.AgentType == "" {
			body.AgentType = TypeChat
		}

		a, err := reg.Get(body.AgentType)
		if err != nil {
			return c.JSON(ChatResponse{
				Success:      false,
				AgentType:    body.AgentType,
				Capabilities: []string{},
				Metadata:     map[string]interface{}{},
				Error:        err.Error(),
			})
		}

		resp := a.Execute(c.Context(), body.Message, true)
		if !resp.Success {
			log.Printf("[WARN] Chat agent hatası: %s", resp.Error)
		}

		return c.JSON(ChatResponse{
			Success:      resp.Success,
			Response:     resp.Content,
			AgentType:    body.AgentType,
			Capabilities: a.Capabilities(),
			Metadata:     resp.Metadata,
			Error:        resp.Error,
		})
	}
}

// POST /api/search
func SearchHandler(reg *Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SearchRequest
		if err := c.BodyParser(&body); err != nil {
			return c.JSON(SearchResponse{Success: false, Error: "Geçersiz istek gövdesi"})
		}

		a, err := reg.Get(TypeSearch)
		if err != nil {
			return c.JSON(SearchResponse{Success: false, Query: body.Query, Error: err.Error()})
		}

		prompt := "Search for information about: " + body.Query + ". Provide a comprehensive summary with key findings."
		resp := a.Execute(c.Context(), prompt, true)

		if !resp.Success {
			log.Printf("[WARN] Search agent hatası: %s", resp.Error)
			return c.JSON(SearchResponse{Success: false, Query: body.Query, Error: resp.Error})
		}

		sourcesCount := 0
		if v, ok := resp.Metadata["tool_call_count"].(int); ok {
			sourcesCount = v
		}

		return c.JSON(SearchResponse{
			Success:       true,
			Query:         body.Query,
			Summary:       resp.Content,
			SearchResults: resp.Metadata,
			SourcesCount:  sourcesCount,
		})
	}
}

// GET /api/agents/capabilities
func CapabilitiesHandler(reg *Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		searchAgent, err := reg.Get(TypeSearch)
		if err != nil {
			return c.JSON(fiber.Map{"success": false, "error": err.Error()})
		}
		chatAgent, err := reg.Get(TypeChat)
		if err != nil {
			return c.JSON(fiber.Map{"success": false, "error": err.Error()})
		}

		return c.JSON(fiber.Map{
			"success": true,
			"capabilities": fiber.Map{
				"search_agent": searchAgent.Capabilities(),
				"chat_agent":   chatAgent.Capabilities(),
			},
		})
	}
}
