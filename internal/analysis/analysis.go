// Package analysis assesses submitted complaint media through the OpenAI
// vision API, producing the short severity description shown to admins.
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"nagarrakshak/backend/internal/routing"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	visionModel    = "gpt-4o-mini"
	maxTokens      = 150
	temperature    = 0.7
)

// ErrNotConfigured is returned when no API key was provided at boot.
var ErrNotConfigured = errors.New("media analysis is not configured")

// Analyzer calls the OpenAI chat completions API with an image attachment.
type Analyzer struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

// NewAnalyzer builds an analyzer. A nil httpClient gets a 30-second-timeout
// default; an empty key yields an analyzer that always errors, which the
// complaint service treats as analysis-disabled.
func NewAnalyzer(httpClient *http.Client, apiKey string) *Analyzer {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Analyzer{
		httpClient: httpClient,
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
	}
}

// AnalyzeMedia asks the vision model for a 2-3 sentence severity assessment
// of the media at the given URL, in the context of the reported issue type.
func (a *Analyzer) AnalyzeMedia(mediaURL, issueType string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return a.AnalyzeMediaContext(ctx, mediaURL, issueType)
}

func (a *Analyzer) AnalyzeMediaContext(ctx context.Context, mediaURL, issueType string) (string, error) {
	if a == nil || strings.TrimSpace(a.apiKey) == "" {
		return "", ErrNotConfigured
	}
	if strings.TrimSpace(mediaURL) == "" {
		return "", errors.New("media URL is empty")
	}

	label := issueType
	if it, ok := routing.Lookup(issueType); ok {
		label = it.Label
	}
	prompt := fmt.Sprintf(
		"This image was attached to a civic complaint about: %s. "+
			"Describe the visible problem and assess its severity in 2-3 sentences, "+
			"so a municipal officer can prioritize the complaint.", label)

	payload := map[string]interface{}{
		"model": visionModel,
		"messages": []map[string]interface{}{
			{
				"role": "user",
				"content": []map[string]interface{}{
					{"type": "text", "text": prompt},
					{"type": "image_url", "image_url": map[string]string{"url": mediaURL}},
				},
			},
		},
		"max_tokens":  maxTokens,
		"temperature": temperature,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/chat/completions", strings.TrimRight(a.baseURL, "/"))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+a.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("openai error: status %d: %s", resp.StatusCode, string(data))
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
