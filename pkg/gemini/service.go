package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const generateURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash:generateContent?key="

type GeminiService struct {
	ApiKey string
}

func NewGeminiService(apiKey string) *GeminiService {
	return &GeminiService{ApiKey: apiKey}
}

// ChatTurn is one prior exchange in the assistant conversation. The server
// holds no conversation state; the client sends its transcript each call.
type ChatTurn struct {
	Role string `json:"role"` // "user" or "model"
	Text string `json:"text"`
}

// Chat answers a visitor question about the village. One prompt in, one
// reply out; no retries, no caching.
func (g *GeminiService) Chat(ctx context.Context, message string, history []ChatTurn) (string, error) {
	system := `You are the friendly assistant of a village community portal.
Answer questions about village life, announcements, local events and the
portal itself. Keep answers short and warm. If you do not know something
village-specific, say so instead of inventing details.`

	var contents []map[string]interface{}
	contents = append(contents, map[string]interface{}{
		"role":  "user",
		"parts": []map[string]string{{"text": system}},
	})
	for _, turn := range history {
		role := turn.Role
		if role != "model" {
			role = "user"
		}
		contents = append(contents, map[string]interface{}{
			"role":  role,
			"parts": []map[string]string{{"text": turn.Text}},
		})
	}
	contents = append(contents, map[string]interface{}{
		"role":  "user",
		"parts": []map[string]string{{"text": message}},
	})

	payload := map[string]interface{}{"contents": contents}
	return g.generate(ctx, payload)
}

// WeatherSummary is the typed output of the weather flow.
type WeatherSummary struct {
	Summary     string  `json:"summary"`
	Temperature float64 `json:"temperature"`
	Condition   string  `json:"condition"`
}

// SummarizeWeather asks the model for a short village weather blurb as
// constrained JSON and parses it into the typed schema.
func (g *GeminiService) SummarizeWeather(ctx context.Context, location string) (*WeatherSummary, error) {
	prompt := fmt.Sprintf(`Write a plausible short weather summary for %s today.
Respond with JSON only, no markdown fences, in this exact shape:
{"summary": "<one friendly sentence>", "temperature": <celsius number>, "condition": "<one of: sunny, cloudy, rainy, snowy, windy, foggy>"}`, location)

	payload := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": []map[string]string{{"text": prompt}}},
		},
		"generationConfig": map[string]string{
			"responseMimeType": "application/json",
		},
	}

	text, err := g.generate(ctx, payload)
	if err != nil {
		return nil, err
	}

	// Some models still wrap JSON in fences despite the mime type.
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var summary WeatherSummary
	if err := json.Unmarshal([]byte(text), &summary); err != nil {
		return nil, fmt.Errorf("unexpected weather response: %w", err)
	}
	return &summary, nil
}

func (g *GeminiService) generate(ctx context.Context, payload map[string]interface{}) (string, error) {
	url := generateURL + g.ApiKey

	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Gemini API error: %s", string(respBody))
	}

	var result map[string]interface{}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", err
	}

	if c, ok := result["candidates"].([]interface{}); ok && len(c) > 0 {
		if cand, ok := c[0].(map[string]interface{}); ok {
			if content, ok := cand["content"].(map[string]interface{}); ok {
				if parts, ok := content["parts"].([]interface{}); ok && len(parts) > 0 {
					if part, ok := parts[0].(map[string]interface{}); ok {
						if text, ok := part["text"].(string); ok {
							return text, nil
						}
					}
				}
			}
		}
	}
	return "", fmt.Errorf("no text returned")
}
