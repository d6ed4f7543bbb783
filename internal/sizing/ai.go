package sizing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lyvest/lyvest-backend/pkg/config"
	"github.com/lyvest/lyvest-backend/pkg/logger"
	"github.com/lyvest/lyvest-backend/pkg/metrics"
)

// AIClient asks an external advisor for a size suggestion.
type AIClient interface {
	Suggest(ctx context.Context, m Measurements, category string) (Recommendation, error)
}

// Advisor produces recommendations through the external advisor when one is
// configured, and otherwise through the offline engine. Any advisor failure
// takes the same fallback path as having no advisor at all.
type Advisor struct {
	client  AIClient
	logg    *logger.Logger
	metrics *metrics.EngineMetrics
}

// AdvisorParams groups dependencies for the advisor. A nil Client means
// offline-only.
type AdvisorParams struct {
	Client  AIClient
	Logger  *logger.Logger
	Metrics *metrics.EngineMetrics
}

func NewAdvisor(params AdvisorParams) *Advisor {
	return &Advisor{
		client:  params.Client,
		logg:    params.Logger,
		metrics: params.Metrics,
	}
}

// Recommend validates the measurements once, then tries the advisor before
// falling back to the offline engine.
func (a *Advisor) Recommend(ctx context.Context, m Measurements, category string) (Recommendation, error) {
	if err := m.Validate(); err != nil {
		return Recommendation{}, err
	}

	if a.client != nil {
		rec, err := a.client.Suggest(ctx, m, category)
		if err == nil && validReply(rec) {
			a.metrics.IncOperation("sizing", "ai")
			return rec, nil
		}
		if err != nil && a.logg != nil {
			lctx := a.logg.WithFields(ctx, map[string]any{"category": category, "error": err.Error()})
			a.logg.Warn(lctx, "size advisor failed, using offline engine")
		}
	}

	a.metrics.IncOperation("sizing", "offline")
	return Recommend(m, category)
}

// validReply rejects advisor output that falls outside the engine's domain.
func validReply(rec Recommendation) bool {
	valid := false
	for _, size := range sizeOrder {
		if rec.Size == size {
			valid = true
			break
		}
	}
	if !valid {
		return false
	}
	if rec.Confidence <= 0 || rec.Confidence > 1 {
		return false
	}
	if rec.AlternativeSize != nil {
		found := false
		for _, size := range sizeOrder {
			if *rec.AlternativeSize == size {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// HTTPClient talks to an OpenAI-style chat completions endpoint.
type HTTPClient struct {
	endpoint string
	apiKey   string
	model    string
	http     *http.Client
}

// NewHTTPClient returns nil when the advisor is not configured, which the
// Advisor treats as offline-only.
func NewHTTPClient(cfg config.SizeAIConfig) *HTTPClient {
	if !cfg.Configured() {
		return nil
	}
	return &HTTPClient{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		http:     &http.Client{Timeout: cfg.Timeout},
	}
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
}

const advisorPrompt = `You size lingerie. Sizes run PP, P, M, G, GG with score thresholds 18, 21, 24, 27.
Reply with a single JSON object: {"size","confidence","reason","alternativeSize"}.`

func (c *HTTPClient) Suggest(ctx context.Context, m Measurements, category string) (Recommendation, error) {
	profile, err := json.Marshal(struct {
		Measurements
		Category string `json:"category"`
	}{Measurements: m, Category: category})
	if err != nil {
		return Recommendation{}, fmt.Errorf("encoding profile: %w", err)
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: advisorPrompt},
			{Role: "user", Content: string(profile)},
		},
	})
	if err != nil {
		return Recommendation{}, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Recommendation{}, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return Recommendation{}, fmt.Errorf("calling size advisor: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Recommendation{}, fmt.Errorf("size advisor returned status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Recommendation{}, fmt.Errorf("decoding advisor response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return Recommendation{}, fmt.Errorf("advisor response has no choices")
	}

	var rec Recommendation
	if err := json.Unmarshal([]byte(parsed.Choices[0].Message.Content), &rec); err != nil {
		return Recommendation{}, fmt.Errorf("decoding advisor recommendation: %w", err)
	}
	return rec, nil
}
