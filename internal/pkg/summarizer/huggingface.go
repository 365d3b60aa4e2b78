package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
)

// DefaultHuggingFaceURL is the hosted BART summarization model
const DefaultHuggingFaceURL = "https://api-inference.huggingface.co/models/facebook/bart-large-cnn"

// HuggingFaceClient calls the Hugging Face inference API
type HuggingFaceClient struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
}

// NewHuggingFaceClient creates a client for the given model URL
func NewHuggingFaceClient(apiURL, apiKey string, timeout time.Duration) *HuggingFaceClient {
	if apiURL == "" {
		apiURL = DefaultHuggingFaceURL
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HuggingFaceClient{
		apiURL:     apiURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Summarize posts {"inputs": text} and reads [0].summary_text from the answer
func (c *HuggingFaceClient) Summarize(ctx context.Context, text string) (string, error) {
	payload, err := json.Marshal(map[string]string{"inputs": text})
	if err != nil {
		return "", fmt.Errorf("failed to encode summarization request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build summarization request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("summarization request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read summarization response: %w", err)
	}

	if apiErr := gjson.GetBytes(body, "error"); apiErr.Exists() {
		return "", fmt.Errorf("summarization api error (status %d): %s", resp.StatusCode, apiErr.String())
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("summarization api returned status %d", resp.StatusCode)
	}

	summary := gjson.GetBytes(body, "0.summary_text")
	if !summary.Exists() || summary.Type != gjson.String {
		return "", ErrInvalidResponse
	}
	return summary.String(), nil
}
