// Package openai implements port.ChatModel over the OpenAI Chat Completions
// API with raw HTTP, no SDK.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"cargodocs/internal/port"
)

const apiURL = "https://api.openai.com/v1/chat/completions"

// Client implements port.ChatModel using the OpenAI Chat Completions API.
type Client struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewClient creates a client against the production endpoint. The API key is
// required; everything downstream assumes a usable model.
func NewClient(apiKey string, timeout time.Duration) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai: api key is required")
	}
	return newClient(apiKey, timeout, apiURL), nil
}

// NewClientWithEndpoint creates a client pointing at a custom API endpoint (for testing).
func NewClientWithEndpoint(apiKey string, timeout time.Duration, endpoint string) *Client {
	return newClient(apiKey, timeout, endpoint)
}

func newClient(apiKey string, timeout time.Duration, endpoint string) *Client {
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		apiKey:   apiKey,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// Complete sends one chat request and returns the first choice's content.
func (c *Client) Complete(ctx context.Context, req port.ChatRequest) (string, error) {
	reqBody := map[string]interface{}{
		"model":    req.Model,
		"messages": buildMessages(req),
	}
	switch req.Contract {
	case port.ContractJSONObject:
		reqBody["response_format"] = map[string]interface{}{"type": "json_object"}
	case port.ContractSchema:
		reqBody["response_format"] = map[string]interface{}{
			"type":        "json_schema",
			"json_schema": req.Schema,
		}
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("calling openai API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai API error (status %d): %s", resp.StatusCode, truncate(string(respBody), 500))
	}

	return parseResponse(respBody)
}

func buildMessages(req port.ChatRequest) []map[string]interface{} {
	var messages []map[string]interface{}
	if req.System != "" {
		messages = append(messages, map[string]interface{}{
			"role":    "system",
			"content": req.System,
		})
	}

	prompt := req.Prompt
	if req.Text != "" {
		prompt = prompt + "\n\n" + req.Text
	}

	if req.ImageDataURL != "" {
		messages = append(messages, map[string]interface{}{
			"role": "user",
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": prompt,
				},
				{
					"type": "image_url",
					"image_url": map[string]interface{}{
						"url":    req.ImageDataURL,
						"detail": "high",
					},
				},
			},
		})
		return messages
	}

	messages = append(messages, map[string]interface{}{
		"role":    "user",
		"content": prompt,
	})
	return messages
}

// apiResponse models the OpenAI Chat Completions API response.
type apiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

func parseResponse(body []byte) (string, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("unmarshaling response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from API: no choices")
	}
	if resp.Choices[0].FinishReason == "length" {
		return "", fmt.Errorf("output truncated (finish_reason: length)")
	}
	return resp.Choices[0].Message.Content, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
