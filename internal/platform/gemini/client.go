package gemini

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

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/yungbote/moodlog-backend/internal/observability"
	"github.com/yungbote/moodlog-backend/internal/platform/logger"
)

const (
	PlaceholderAPIKey = "your_gemini_api_key_here"
	DefaultAPIURL     = "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash:generateContent"
	DefaultTimeout    = 20 * time.Second

	pingPrompt   = "Say hello in one word."
	maxErrorBody = 2048
)

type Config struct {
	APIKey  string        `yaml:"api_key"`
	APIURL  string        `yaml:"api_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// Client sends one generateContent call per invocation. It never retries.
type Client interface {
	// GenerateContent returns the raw response body for prompt.
	GenerateContent(ctx context.Context, prompt string) (string, error)
	// Ping reports whether the endpoint answers a trivial prompt with a non-empty body.
	Ping(ctx context.Context) (bool, error)
	Model() string
}

type client struct {
	log        *logger.Logger
	apiKey     string
	apiURL     string
	timeout    time.Duration
	httpClient *http.Client
}

// NewClient does not validate credentials; that happens per call so a
// misconfigured key degrades suggestions instead of failing startup.
func NewClient(log *logger.Logger, cfg Config) Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &client{
		log:        log.With("client", "GeminiClient"),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		apiURL:     strings.TrimSpace(cfg.APIURL),
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type safetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type generateContentRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
	SafetySettings   []safetySetting  `json:"safetySettings"`
}

var defaultSafetySettings = []safetySetting{
	{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
}

func newRequest(prompt string) generateContentRequest {
	return generateContentRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     0.7,
			TopK:            1,
			TopP:            1,
			MaxOutputTokens: 2048,
		},
		SafetySettings: defaultSafetySettings,
	}
}

func (c *client) validate() error {
	if c.apiKey == "" || c.apiKey == PlaceholderAPIKey {
		return &ConfigurationError{Reason: "GEMINI_API_KEY is not configured"}
	}
	if c.apiURL == "" {
		return &ConfigurationError{Reason: "GEMINI_API_URL is not configured"}
	}
	return nil
}

// Model is the model segment of the configured endpoint, e.g. "gemini-1.5-flash".
func (c *client) Model() string {
	u := c.apiURL
	if i := strings.Index(u, "/models/"); i >= 0 {
		u = u[i+len("/models/"):]
		if j := strings.IndexAny(u, ":/?"); j >= 0 {
			u = u[:j]
		}
		return u
	}
	return ""
}

func (c *client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if err := c.validate(); err != nil {
		return "", err
	}

	ctx, span := observability.Tracer().Start(ctx, "gemini.generateContent")
	defer span.End()
	span.SetAttributes(
		attribute.String("gemini.model", c.Model()),
		attribute.Int("gemini.prompt_chars", len(prompt)),
	)

	body, err := c.post(ctx, prompt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	span.SetAttributes(attribute.Int("gemini.response_bytes", len(body)))
	return body, nil
}

func (c *client) post(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := json.Marshal(newRequest(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", &ConfigurationError{Reason: "invalid GEMINI_API_URL: " + err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("Gemini request failed", "error", err, "elapsed", time.Since(start).String())
		return "", &UpstreamError{Cause: err}
	}
	defer resp.Body.Close()

	raw, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return "", &UpstreamError{StatusCode: resp.StatusCode, Cause: readErr}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn("Gemini returned non-2xx", "status", resp.StatusCode, "elapsed", time.Since(start).String())
		return "", &UpstreamError{
			StatusCode: resp.StatusCode,
			Body:       truncate(string(raw), maxErrorBody),
			Cause:      errors.New(http.StatusText(resp.StatusCode)),
		}
	}
	c.log.Debug("Gemini call ok", "status", resp.StatusCode, "bytes", len(raw), "elapsed", time.Since(start).String())
	return string(raw), nil
}

func (c *client) Ping(ctx context.Context) (bool, error) {
	body, err := c.GenerateContent(ctx, pingPrompt)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(body) != "", nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
