package llm

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// GeminiProvider implements the Provider interface for the Google Gemini
// generateContent API.
type GeminiProvider struct {
	apiKey string
}

// NewGeminiProvider creates a Gemini provider with the given API key.
func NewGeminiProvider(apiKey string) *GeminiProvider {
	return &GeminiProvider{apiKey: apiKey}
}

// Name returns the provider identifier.
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// BuildURL constructs the generateContent endpoint URL for a model.
func (p *GeminiProvider) BuildURL(baseURL, model string) string {
	return strings.TrimSuffix(baseURL, "/") + "/v1beta/models/" + model + ":generateContent"
}

// SetHeaders adds the API key header.
func (p *GeminiProvider) SetHeaders(req *http.Request) {
	req.Header.Set("x-goog-api-key", p.apiKey)
}

// Gemini wire format.
type geminiPart struct {
	Text string `json:"text,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     *float64 `json:"temperature,omitempty"`
	MaxOutputTokens int      `json:"maxOutputTokens,omitempty"`
}

type geminiTool struct {
	GoogleSearch struct{} `json:"google_search"`
}

type geminiRequest struct {
	Contents          []geminiContent         `json:"contents"`
	SystemInstruction *geminiContent          `json:"systemInstruction,omitempty"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
	Tools             []geminiTool            `json:"tools,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
		GroundingMetadata struct {
			GroundingChunks []struct {
				Web struct {
					URI   string `json:"uri"`
					Title string `json:"title"`
				} `json:"web"`
			} `json:"groundingChunks"`
		} `json:"groundingMetadata"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

// BuildRequestBody creates the Gemini JSON request body. System messages
// become the systemInstruction block; user messages become contents.
func (p *GeminiProvider) BuildRequestBody(req Request) ([]byte, error) {
	body := geminiRequest{}

	for _, msg := range req.Messages {
		content := geminiContent{Parts: []geminiPart{{Text: msg.Content}}}
		if msg.Role == "system" {
			// Gemini takes system prompts out of band. Multiple system
			// messages are concatenated into one instruction.
			if body.SystemInstruction == nil {
				body.SystemInstruction = &geminiContent{}
			}
			body.SystemInstruction.Parts = append(body.SystemInstruction.Parts, content.Parts...)
			continue
		}
		content.Role = "user"
		body.Contents = append(body.Contents, content)
	}

	if len(body.Contents) == 0 {
		return nil, fmt.Errorf("no user messages in request")
	}

	if req.Temperature != nil || req.MaxTokens > 0 {
		body.GenerationConfig = &geminiGenerationConfig{
			Temperature:     req.Temperature,
			MaxOutputTokens: req.MaxTokens,
		}
	}

	if req.GroundedSearch {
		body.Tools = []geminiTool{{}}
	}

	return json.Marshal(body)
}

// ParseResponse extracts the completion from the Gemini response JSON.
func (p *GeminiProvider) ParseResponse(body []byte, model string) (*Response, error) {
	var wire geminiResponse
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("parse Gemini response: %w", err)
	}

	if len(wire.Candidates) == 0 {
		return nil, fmt.Errorf("Gemini response has no candidates")
	}
	candidate := wire.Candidates[0]

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		sb.WriteString(part.Text)
	}

	resp := &Response{
		Content: sb.String(),
		Model:   model,
		Usage: TokenUsage{
			PromptTokens:     wire.UsageMetadata.PromptTokenCount,
			CompletionTokens: wire.UsageMetadata.CandidatesTokenCount,
			TotalTokens:      wire.UsageMetadata.TotalTokenCount,
		},
	}

	for _, chunk := range candidate.GroundingMetadata.GroundingChunks {
		if chunk.Web.URI == "" {
			continue
		}
		resp.Sources = append(resp.Sources, WebSource{
			Title: chunk.Web.Title,
			URI:   chunk.Web.URI,
		})
	}

	return resp, nil
}
