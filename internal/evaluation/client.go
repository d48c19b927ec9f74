package evaluation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/interview-evaluator/internal/logger"
)

const (
	DefaultBaseURL = "http://localhost:8080"
	DefaultTimeout = 30 * time.Second

	EvaluateFullPath = "/api/v1/evaluate/full"
	EvaluatePath     = "/api/v1/evaluate"
	HealthPath       = "/health"

	contentType = "application/json"
	userAgent   = "spigell/interview-evaluator"

	requestIDHeader = "X-Request-ID"
)

// Client talks to the interview evaluation API.
type Client struct {
	logger     *zap.Logger
	HTTPClient *http.Client
	BaseURL    string
	UserAgent  string
	// MaxLogLength bounds payload previews in debug logs.
	MaxLogLength int
}

func New(logger *zap.Logger, baseURL string) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		logger:  logger,
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		UserAgent: userAgent,
	}
}

// EvaluateInterview submits the payload for a full evaluation and returns the
// normalized result.
func (c *Client) EvaluateInterview(ctx context.Context, payload Request) (*Result, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+EvaluateFullPath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req = c.setHeaders(req)
	req.Header.Set("Content-Type", contentType)

	log := logger.WithFields(c.logger, logger.RequestFields(req.Header.Get(requestIDHeader), EvaluateFullPath)...)
	log.Debug("sending evaluation request",
		zap.String("url", req.URL.String()),
		zap.String("seniority", string(payload.Seniority)),
		zap.Bool("evaluate_interviewer", payload.EvaluateInterviewer),
		zap.String("job_description_preview", logger.Preview(payload.JobDescription, c.MaxLogLength)),
		zap.Int("transcript_length", len([]rune(payload.InterviewTranscript))),
	)

	resp, err := c.request(req)
	if err != nil {
		log.Error("evaluating interview", zap.Error(err))
		return nil, &noResponseError{baseURL: c.BaseURL, err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("reading evaluation response", zap.Error(err))
		return nil, &noResponseError{baseURL: c.BaseURL, err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := newAPIError(resp, data)
		log.Error("evaluation api returned an error",
			zap.Int("status", apiErr.StatusCode),
			zap.String("message", apiErr.Message),
		)
		return nil, apiErr
	}

	log.Debug("evaluation response received",
		zap.Int("status", resp.StatusCode),
		zap.String("body_preview", logger.Preview(string(data), c.MaxLogLength)),
	)

	result, err := Normalize(data)
	if err != nil {
		return nil, fmt.Errorf("decode evaluation response: %w", err)
	}

	return result, nil
}

// CheckHealth returns the health object of the API. Failures are returned as is.
func (c *Client) CheckHealth(ctx context.Context) (map[string]any, error) {
	var health map[string]any
	if err := c.getJSON(ctx, HealthPath, &health); err != nil {
		c.logger.Error("health check failed", zap.Error(err))
		return nil, err
	}

	return health, nil
}

func (c *Client) request(req *http.Request) (*http.Response, error) {
	c.logger.Debug("make request", zap.String("method", req.Method), zap.String("url", req.URL.String()))
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (c *Client) setHeaders(req *http.Request) *http.Request {
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", contentType)
	req.Header.Set(requestIDHeader, uuid.NewString())

	return req
}

func (c *Client) getJSON(ctx context.Context, path string, target interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return err
	}

	req = c.setHeaders(req)

	resp, err := c.request(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	if target == nil {
		return nil
	}

	return json.Unmarshal(data, target)
}
