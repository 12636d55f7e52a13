package agent

import (
	"context"
	"regexp"
	"strings"
)

// ImageResult - görsel üretiminin yapılandırılmış çıktısı
type ImageResult struct {
	ImageURL    string `json:"image_url"`
	Description string `json:"description"`
	Source      string `json:"source"`
	Success     bool   `json:"success"`
}

var urlRe = regexp.MustCompile(`https?://[^\s\)]+`)

// ExtractImageResult: serbest metin LLM çıktısından URL ve açıklama çıkarır.
// Best-effort bir adaptördür: URL bulunamazsa ya da araçlar hiç
// çalıştırılmamışsa yapılandırılmış bir başarısızlık sonucu döner.
func ExtractImageResult(prompt string, resp Response) ImageResult {
	toolsUsed := false
	if v, ok := resp.Metadata["tools_used"].(bool); ok {
		toolsUsed = v
	}

	if resp.Success && toolsUsed {
		urls := urlRe.FindAllString(resp.Content, -1)
		if len(urls) > 0 && strings.Contains(urls[0], "storage.googleapis.com") {
			// Markdown alt metninden açıklama çek: ![açıklama](url)
			description := prompt
			if i := strings.Index(resp.Content, "!["); i >= 0 {
				rest := resp.Content[i+2:]
				if j := strings.Index(rest, "]"); j >= 0 {
					description = rest[:j]
				}
			}
			return ImageResult{
				ImageURL:    urls[0],
				Description: description,
				Source:      "CodexHub Image MCP (Google Cloud Storage)",
				Success:     true,
			}
		}
	}

	return ImageResult{
		Description: "Görsel üretilemedi: araç çağrısı yapılmadı veya çıktıda geçerli URL yok",
		Source:      "none",
		Success:     false,
	}
}

// GenerateImage: image agent'ı araçlarla çalıştırır ve çıktıyı yapılandırır
func (a *Agent) GenerateImage(ctx context.Context, prompt string) ImageResult {
	resp := a.Execute(ctx, prompt, true)
	return ExtractImageResult(prompt, resp)
}
