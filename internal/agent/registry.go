package agent

import (
	"fmt"
	"sync"

	"hris-backend/internal/config"
)

const (
	TypeChat   = "chat"
	TypeSearch = "search"
	TypeImage  = "image"
)

const chatSystemPrompt = "Friendly conversational AI. Natural conversations, explanations, analysis. Helpful, harmless, honest."

const searchSystemPrompt = `You are a research assistant with web search capabilities.
You MUST use the available web search tools to find current and accurate information.
NEVER rely on your training data for current events or real-time information.
ALWAYS use web search tools when asked about current information, weather, news, or recent events.
Cite sources from your search results.`

const imageSystemPrompt = `You are an AI assistant specialized in generating images from text prompts.
You MUST use the available image generation tools to create images.
NEVER fabricate or make up image URLs.
ONLY return image URLs that you receive from the image generation tool.
Provide responses in a clear, structured format.`

// Registry: servis örneğine bağlı agent kayıt defteri. Startup'ta bir kez
// kurulur ve handler'lara enjekte edilir; global process state tutulmaz.
// Agent'lar tip başına tembel oluşturulur ve process ömrü boyunca yaşar.
type Registry struct {
	cfg *config.Config

	mu     sync.Mutex
	agents map[string]*Agent
}

func NewRegistry(cfg *config.Config) *Registry {
	return &Registry{
		cfg:    cfg,
		agents: map[string]*Agent{},
	}
}

// Get: tip başına cache'lenmiş agent döner, yoksa oluşturur.
// Bilinmeyen tip hata döner; araç token'ı yoksa agent araçsız kurulur.
func (r *Registry) Get(agentType string) (*Agent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a, ok := r.agents[agentType]; ok {
		return a, nil
	}

	var a *Agent
	switch agentType {
	case TypeChat:
		a = newAgent(r.cfg, chatSystemPrompt, nil)
	case TypeSearch:
		a = newAgent(r.cfg, searchSystemPrompt, r.bridgeFor(r.cfg.MCPWebSearchURL))
	case TypeImage:
		a = newAgent(r.cfg, imageSystemPrompt, r.bridgeFor(r.cfg.MCPImageURL))
	default:
		return nil, fmt.Errorf("bilinmeyen agent tipi: %q", agentType)
	}

	r.agents[agentType] = a
	return a, nil
}

func (r *Registry) bridgeFor(serviceURL string) *ToolBridge {
	if r.cfg.MCPAuthToken == "" || serviceURL == "" {
		return nil
	}
	return NewToolBridge(serviceURL, r.cfg.MCPAuthToken)
}
