package classifier

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/moodscribe/moodscribe/internal/types"
)

// Result is a normalized classification of one journal entry. IsFallback
// discriminates locally synthesized results from real model output; callers
// must not infer fallback-ness from the summary text.
type Result struct {
	SentimentScore float64 `json:"sentimentScore"`
	Mood           string  `json:"mood"`
	Summary        string  `json:"summary"`
	Subject        string  `json:"subject"`
	Negative       bool    `json:"negative"`
	Color          string  `json:"color"`
	IsFallback     bool    `json:"isFallback"`

	// Raw is the model text the result was parsed from, empty for fallbacks.
	Raw []byte `json:"-"`
}

// rawAnalysis tolerates the loose JSON the model actually emits: numbers may
// arrive quoted and the negative flag may be any truthy representation.
type rawAnalysis struct {
	SentimentScore types.FlexFloat64 `json:"sentimentScore"`
	Mood           string            `json:"mood"`
	Summary        string            `json:"summary"`
	Subject        string            `json:"subject"`
	Negative       types.FlexBool    `json:"negative"`
	Color          string            `json:"color"`
}

// parseResult parses model output text into a Result, stripping an optional
// fenced code block around the JSON payload.
func parseResult(text string) (Result, error) {
	cleaned := stripCodeFences(text)

	var raw rawAnalysis
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return Result{}, fmt.Errorf("parse analysis JSON: %w", err)
	}

	return Result{
		SentimentScore: raw.SentimentScore.Float64(),
		Mood:           raw.Mood,
		Summary:        raw.Summary,
		Subject:        raw.Subject,
		Negative:       raw.Negative.Bool(),
		Color:          raw.Color,
		Raw:            []byte(cleaned),
	}, nil
}

// stripCodeFences removes a leading ```json (or bare ```) fence and a
// trailing ``` fence when the model wraps its JSON output in a code block.
func stripCodeFences(text string) string {
	s := strings.TrimSpace(text)

	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		// Drop an optional language tag on the fence line
		if idx := strings.IndexByte(s, '\n'); idx >= 0 {
			first := strings.TrimSpace(s[:idx])
			if first == "" || strings.EqualFold(first, "json") {
				s = s[idx+1:]
			}
		} else {
			s = strings.TrimSpace(strings.TrimPrefix(s, "json"))
		}
	}

	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")

	return strings.TrimSpace(s)
}
