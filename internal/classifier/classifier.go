package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/moodscribe/moodscribe/internal/config"
)

// Client wraps the Gemini generateContent endpoint for journal entry
// sentiment classification.
type Client struct {
	apiKey string
	model  string
	base   string
	http   *http.Client
}

// NewClient creates a classifier client from configuration.
func NewClient(cfg *config.Config) *Client {
	timeout := cfg.ClassifierTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiKey: cfg.GeminiAPIKey,
		model:  cfg.GeminiModel,
		base:   cfg.GeminiBaseURL,
		http:   &http.Client{Timeout: timeout},
	}
}

// generateRequest is the request body for the generateContent endpoint.
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// generateResponse is the subset of the generateContent response we read.
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

const analysisPrompt = `Analyze this journal entry and provide the following:
1. A sentiment score between -10 (very negative) and 10 (very positive)
2. The overall mood (choose one: Happy, Sad, Anxious, Neutral, Excited, Angry, Peaceful)
3. A short summary of the entry (max 20 words) from the user perspective only, not third person.
4. The main subject of the entry
5. Whether there are any concerning negative thoughts (true/false)
6. A hex color code that best represents the mood of this entry

Format your response as a JSON object with keys: sentimentScore, mood, summary, subject, negative, color.

Journal entry: %q`

// Classify analyzes journal entry content and never fails outward: any
// transport, API or parse error yields a locally synthesized fallback result
// with IsFallback set, so callers always receive a usable Result.
func (c *Client) Classify(ctx context.Context, entryContent string) Result {
	text, err := c.generate(ctx, fmt.Sprintf(analysisPrompt, entryContent))
	if err != nil {
		log.Printf("Classifier request failed, using fallback: %v", err)
		return fallbackResult()
	}

	result, err := parseResult(text)
	if err != nil {
		log.Printf("Classifier returned unparseable output, using fallback: %v", err)
		return fallbackResult()
	}

	return result
}

// generate performs one generateContent call and returns the model text.
func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		c.base, url.PathEscape(c.model), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("gemini api error %d: %s", resp.StatusCode, string(respBody))
	}

	var gr generateResponse
	if err := json.Unmarshal(respBody, &gr); err != nil {
		return "", fmt.Errorf("decode response: %w, body: %s", err, string(respBody))
	}
	if gr.Error != nil {
		return "", fmt.Errorf("gemini api error: %s", gr.Error.Message)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	return gr.Candidates[0].Content.Parts[0].Text, nil
}
