package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Classification is the structured result of an item-image analysis.
type Classification struct {
	Category string   `json:"category"`
	Colors   []string `json:"colors"`
	Pattern  string   `json:"pattern"`
	Style    string   `json:"style"`
}

// AnalysisResult carries either a parsed classification or, when the model
// response could not be parsed, the raw text as suggestions. Never both
// empty on success.
type AnalysisResult struct {
	Classification *Classification `json:"classification,omitempty"`
	Suggestions    string          `json:"suggestions,omitempty"`
}

// Analyzer is the generative-AI boundary the services depend on.
type Analyzer interface {
	// AnalyzeImage classifies a clothing photo. apiKey may be the caller's
	// own key; when empty the platform key is used.
	AnalyzeImage(ctx context.Context, apiKey string, imageData []byte, mimeType string) (*AnalysisResult, error)

	// Describe generates a natural-language listing description.
	Describe(ctx context.Context, apiKey, prompt string) (string, error)
}

// GeminiClient implements Analyzer over the Gemini API.
type GeminiClient struct {
	platformKey string
	modelName   string
}

func NewGeminiClient(platformKey, modelName string) *GeminiClient {
	if modelName == "" {
		modelName = "gemini-2.0-flash-001"
	}
	return &GeminiClient{
		platformKey: platformKey,
		modelName:   modelName,
	}
}

func (c *GeminiClient) keyFor(apiKey string) string {
	if apiKey != "" {
		return apiKey
	}
	return c.platformKey
}

const classifyPrompt = `You are a fashion cataloguing assistant for a clothing exchange.
Classify the garment in the image and reply with ONLY a JSON object of this shape:
{"category": "...", "colors": ["..."], "pattern": "...", "style": "..."}
Category must be one of: tops, bottoms, dresses, outerwear, shoes, accessories.`

func (c *GeminiClient) AnalyzeImage(ctx context.Context, apiKey string, imageData []byte, mimeType string) (*AnalysisResult, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(c.keyFor(apiKey)))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(c.modelName)
	model.ResponseMIMEType = "application/json"

	format := strings.TrimPrefix(mimeType, "image/")
	resp, err := model.GenerateContent(ctx,
		genai.Text(classifyPrompt),
		genai.ImageData(format, imageData),
	)
	if err != nil {
		return nil, fmt.Errorf("gemini image analysis: %w", err)
	}

	text := responseText(resp)
	if text == "" {
		return nil, fmt.Errorf("gemini returned an empty response")
	}

	// Parse defensively: a malformed classification degrades to raw-text
	// suggestions instead of failing the request.
	var classification Classification
	if err := json.Unmarshal([]byte(text), &classification); err != nil || classification.Category == "" {
		return &AnalysisResult{Suggestions: text}, nil
	}

	return &AnalysisResult{Classification: &classification}, nil
}

func (c *GeminiClient) Describe(ctx context.Context, apiKey, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(c.keyFor(apiKey)))
	if err != nil {
		return "", fmt.Errorf("creating gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(c.modelName)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini text generation: %w", err)
	}

	text := responseText(resp)
	if text == "" {
		return "", fmt.Errorf("gemini returned an empty response")
	}
	return text, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}
	return strings.TrimSpace(sb.String())
}
