// Package llm calls the external reasoning service: an OpenAI-compatible
// chat completion endpoint that receives the full analysis record as
// structured JSON and returns free-text commentary for the final report.
// The engine's output is authoritative; the commentary is merged alongside
// it, never back into it.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/afajohn/page-keyword-analyzer-sub000/pkg/semantic"
)

// Client calls an OpenAI-compatible chat completion endpoint.
type Client struct {
	BaseURL string
	APIKey  string
	Model   string

	HTTPClient *http.Client
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Commentary asks the reasoning service for free-text commentary on one
// analysis record.
func (c *Client) Commentary(ctx context.Context, pageURL string, analysis semantic.Analysis) (string, error) {
	system := "You are an SEO analyst. Comment only on the analysis record provided; do not invent signals it does not contain."
	user, err := formatPrompt(pageURL, analysis)
	if err != nil {
		return "", err
	}
	return c.Chat(ctx, system, user)
}

func (c *Client) Chat(ctx context.Context, system, user string) (string, error) {
	if c.BaseURL == "" || c.Model == "" {
		return "", fmt.Errorf("llm: base URL and model required")
	}
	messages := []chatMessage{{Role: "system", Content: system}, {Role: "user", Content: user}}
	payload, err := c.send(ctx, messages)
	if err != nil {
		return "", err
	}
	if len(payload.Choices) == 0 {
		return "", fmt.Errorf("llm: empty response")
	}
	return payload.Choices[0].Message.Content, nil
}

func (c *Client) send(ctx context.Context, messages []chatMessage) (*chatResponse, error) {
	reqBody, err := json.Marshal(chatRequest{Model: c.Model, Messages: messages})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	var payload chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	if payload.Error != nil {
		return nil, fmt.Errorf("llm error: %s", payload.Error.Message)
	}
	return &payload, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 15 * time.Second}
}

// formatPrompt embeds the analysis record verbatim as JSON so the service
// sees exactly what the report will contain.
func formatPrompt(pageURL string, analysis semantic.Analysis) (string, error) {
	record, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Page: %s\nAnalysis record:\n%s\n", pageURL, record)
	fmt.Fprintf(&buf, "\nSummarize the page's topical focus, keyword strategy, and content quality in a short paragraph.\n")
	return buf.String(), nil
}
