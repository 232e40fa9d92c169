package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/yungbote/writemate-backend/internal/observability"
	"github.com/yungbote/writemate-backend/internal/pkg/httpx"
	"github.com/yungbote/writemate-backend/internal/platform/envutil"
	"github.com/yungbote/writemate-backend/internal/platform/logger"
)

const responsesPath = "/v1/responses"

// Client is the subset of the Responses API the backend uses: a system+user prompt answered with
// a single JSON object.
type Client interface {
	GenerateJSON(ctx context.Context, model, system, user string) (*JSONResult, error)
	DefaultModel() string
}

// JSONResult is the model's raw JSON text plus usage accounting.
type JSONResult struct {
	Text         string
	Model        string
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Timeout     time.Duration
	MaxRetries  int
	Temperature *float64
	// NoTempModels lists model ids (or "prefix*" patterns) that reject temperature.
	NoTempModels []string
}

// ConfigFromEnv reads the OPENAI_* variables. Retries default to zero: callers surface the
// first provider failure.
func ConfigFromEnv(log *logger.Logger) Config {
	cfg := Config{
		APIKey:       envutil.String("OPENAI_API_KEY", "", nil),
		BaseURL:      envutil.String("OPENAI_BASE_URL", "https://api.openai.com", log),
		Model:        envutil.String("LLM_MODEL", "gpt-5.2", log),
		Timeout:      time.Duration(envutil.Int("OPENAI_TIMEOUT_SECONDS", 180, log)) * time.Second,
		MaxRetries:   envutil.Int("OPENAI_MAX_RETRIES", 0, log),
		NoTempModels: envutil.List("OPENAI_NO_TEMPERATURE_MODELS", nil, log),
	}
	if !envutil.Bool("OPENAI_DISABLE_TEMPERATURE", false, log) {
		t := envutil.Float("OPENAI_TEMPERATURE", 0.3, log)
		cfg.Temperature = &t
	}
	return cfg
}

type client struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	maxRetries int

	temperature    *float64
	noTempModels   map[string]bool
	noTempPrefixes []string

	// Models learned at runtime to reject temperature.
	noTempMu   sync.RWMutex
	noTempSeen map[string]bool
}

func NewClient(log *logger.Logger, cfg Config) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("missing OPENAI_API_KEY")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "gpt-5.2"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 180 * time.Second
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	noTempModels, noTempPrefixes := parseNoTempModelRules(cfg.NoTempModels)

	return &client{
		log:            log.With("service", "OpenAIClient"),
		baseURL:        baseURL,
		apiKey:         strings.TrimSpace(cfg.APIKey),
		model:          model,
		httpClient:     &http.Client{Timeout: timeout},
		maxRetries:     maxRetries,
		temperature:    cfg.Temperature,
		noTempModels:   noTempModels,
		noTempPrefixes: noTempPrefixes,
		noTempSeen:     map[string]bool{},
	}, nil
}

func (c *client) DefaultModel() string { return c.model }

func parseNoTempModelRules(raw []string) (map[string]bool, []string) {
	m := map[string]bool{}
	var prefixes []string
	for _, s := range raw {
		s = normalizeModelKey(s)
		if s == "" {
			continue
		}
		if strings.HasSuffix(s, "*") {
			prefixes = append(prefixes, strings.TrimSuffix(s, "*"))
			continue
		}
		m[s] = true
	}
	return m, prefixes
}

func normalizeModelKey(m string) string {
	return strings.ToLower(strings.TrimSpace(m))
}

func (c *client) modelIsNoTemp(model string) bool {
	m := normalizeModelKey(model)
	if m == "" {
		return false
	}
	if c.noTempModels[m] {
		return true
	}
	for _, p := range c.noTempPrefixes {
		if p != "" && strings.HasPrefix(m, p) {
			return true
		}
	}
	c.noTempMu.RLock()
	defer c.noTempMu.RUnlock()
	return c.noTempSeen[m]
}

func (c *client) noteNoTempModel(model string) {
	m := normalizeModelKey(model)
	if m == "" {
		return
	}
	c.noTempMu.Lock()
	c.noTempSeen[m] = true
	c.noTempMu.Unlock()
}

type openAIHTTPError struct {
	StatusCode int
	Body       string
}

func (e *openAIHTTPError) Error() string {
	return fmt.Sprintf("openai http %d: %s", e.StatusCode, e.Body)
}

func (e *openAIHTTPError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

func isUnsupportedTemperatureParam(err error) bool {
	var httpErr *openAIHTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusBadRequest {
		return false
	}
	msg := strings.ToLower(httpErr.Body)
	if !strings.Contains(msg, "temperature") {
		return false
	}
	for _, needle := range []string{"unsupported parameter", "unknown parameter", "unrecognized parameter", "not supported", "does not support", "only the default", "unsupported_value"} {
		if strings.Contains(msg, needle) {
			return true
		}
	}
	return false
}

type inputMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responsesRequest struct {
	Model string         `json:"model"`
	Input []inputMessage `json:"input"`
	Text  struct {
		Format map[string]any `json:"format,omitempty"`
	} `json:"text"`
	Temperature *float64 `json:"temperature,omitempty"`
}

type responsesResponse struct {
	Model  string `json:"model"`
	Output []struct {
		Type    string `json:"type"`
		Role    string `json:"role,omitempty"`
		Content []struct {
			Type    string `json:"type"`
			Text    string `json:"text,omitempty"`
			Refusal string `json:"refusal,omitempty"`
		} `json:"content,omitempty"`
	} `json:"output"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
		TotalTokens  int `json:"total_tokens"`
	} `json:"usage"`
}

func extractOutputText(resp responsesResponse) (string, string) {
	var out, refusal strings.Builder
	for _, item := range resp.Output {
		if item.Type != "message" || item.Role != "assistant" {
			continue
		}
		for _, part := range item.Content {
			switch part.Type {
			case "output_text":
				out.WriteString(part.Text)
			case "refusal":
				refusal.WriteString(part.Refusal)
			}
		}
	}
	return out.String(), refusal.String()
}

// GenerateJSON asks model (or the client default) for a JSON object. The returned text is
// only checked to be valid JSON; shape validation belongs to the caller.
func (c *client) GenerateJSON(ctx context.Context, model, system, user string) (*JSONResult, error) {
	model = strings.TrimSpace(model)
	if model == "" {
		model = c.model
	}
	req := &responsesRequest{
		Model: model,
		Input: []inputMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}
	req.Text.Format = map[string]any{"type": "json_object"}
	if c.temperature != nil && !c.modelIsNoTemp(model) {
		req.Temperature = c.temperature
	}

	var resp responsesResponse
	if err := c.doWithTempFallback(ctx, req, &resp); err != nil {
		return nil, err
	}
	text, refusal := extractOutputText(resp)
	if refusal != "" {
		return nil, fmt.Errorf("model refused: %s", refusal)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("no output_text found in response")
	}
	if !json.Valid([]byte(text)) {
		return nil, fmt.Errorf("model returned invalid JSON (%d chars)", len(text))
	}
	usedModel := resp.Model
	if usedModel == "" {
		usedModel = model
	}
	total := resp.Usage.TotalTokens
	if total == 0 {
		total = resp.Usage.InputTokens + resp.Usage.OutputTokens
	}
	return &JSONResult{
		Text:         text,
		Model:        usedModel,
		InputTokens:  resp.Usage.InputTokens,
		OutputTokens: resp.Usage.OutputTokens,
		TotalTokens:  total,
	}, nil
}

// doWithTempFallback repeats the call once without temperature if the model rejects it.
func (c *client) doWithTempFallback(ctx context.Context, req *responsesRequest, out *responsesResponse) error {
	err := c.do(ctx, req, out)
	if err == nil || req.Temperature == nil || !isUnsupportedTemperatureParam(err) {
		return err
	}
	c.log.Info("Model rejected temperature, retrying without it", "model", req.Model)
	c.noteNoTempModel(req.Model)
	req.Temperature = nil
	return c.do(ctx, req, out)
}

func (c *client) do(ctx context.Context, req *responsesRequest, out *responsesResponse) error {
	backoff := 1 * time.Second
	start := time.Now()
	metrics := observability.Current()

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		resp, raw, err := c.doOnce(ctx, req)
		if err == nil {
			if uErr := json.Unmarshal(raw, out); uErr != nil {
				metrics.ObserveLLMRequest(req.Model, responsesPath, "decode_error", time.Since(start), 0, 0)
				return fmt.Errorf("openai decode error: %w", uErr)
			}
			metrics.ObserveLLMRequest(req.Model, responsesPath, strconv.Itoa(resp.StatusCode), time.Since(start), out.Usage.InputTokens, out.Usage.OutputTokens)
			return nil
		}
		if !httpx.IsRetryableError(err) || attempt == c.maxRetries {
			metrics.ObserveLLMRequest(req.Model, responsesPath, statusFromErr(resp, err), time.Since(start), 0, 0)
			return err
		}

		sleepFor := httpx.JitterSleep(httpx.RetryAfterDuration(resp, backoff, 10*time.Second))
		c.log.Warn("OpenAI request retrying",
			"attempt", attempt+1,
			"max_retries", c.maxRetries,
			"sleep", sleepFor.String(),
			"error", err.Error(),
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sleepFor):
		}
		backoff *= 2
	}
	return fmt.Errorf("unreachable retry loop")
}

func (c *client) doOnce(ctx context.Context, body *responsesRequest) (*http.Response, []byte, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+responsesPath, &buf)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return resp, nil, readErr
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, raw, &openAIHTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return resp, raw, nil
}

func statusFromErr(resp *http.Response, err error) string {
	if resp != nil {
		return strconv.Itoa(resp.StatusCode)
	}
	if errors.Is(err, context.Canceled) {
		return "canceled"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	return "error"
}
