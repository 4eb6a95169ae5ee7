package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kapu/figures-review-go/internal/constants"
	"github.com/kapu/figures-review-go/pkg/errors"
	"go.uber.org/zap"
)

// Client talks to the figures backend. It never retries; every failure is
// handed back to the caller as an *errors.APIError or *errors.TransportError.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return NewClientWithHTTP(baseURL, &http.Client{Timeout: timeout}, logger)
}

func NewClientWithHTTP(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

type response struct {
	status int
	header http.Header
	body   []byte
}

func (c *Client) doRequest(ctx context.Context, method, path string, params url.Values, reqBody any) (*response, error) {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var bodyReader io.Reader
	if reqBody != nil {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return nil, errors.NewAppError("failed to marshal request", errors.CodeAPIError, 0, map[string]any{
				"url": reqURL,
			}).WithCause(err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return nil, errors.NewTransportError("failed to create request", reqURL, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(constants.APIConfig.RequestIDHeader, requestID)
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Backend request failed",
			zap.String("method", method),
			zap.String("url", reqURL),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return nil, errors.NewTransportError("request failed", reqURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewTransportError("failed to read response", reqURL, err)
	}

	c.logger.Debug("Backend request",
		zap.String("method", method),
		zap.String("url", reqURL),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", requestID),
		zap.Duration("elapsed", time.Since(started)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, items := parseDetail(body)
		return nil, errors.NewAPIError(
			fmt.Sprintf("backend returned %s", resp.Status),
			resp.StatusCode,
			map[string]any{
				"url":        reqURL,
				"method":     method,
				"request_id": requestID,
			},
		).WithDetail(detail, items)
	}

	return &response{status: resp.StatusCode, header: resp.Header, body: body}, nil
}

func (c *Client) decode(resp *response, path string, dest any) error {
	if err := json.Unmarshal(resp.body, dest); err != nil {
		return errors.NewDecodeError("failed to decode response", c.baseURL+path, err)
	}
	return nil
}

type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// parseDetail reads FastAPI style {detail} bodies: either a string or a list
// of validation objects carrying msg.
func parseDetail(body []byte) (string, []string) {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || len(eb.Detail) == 0 {
		return "", nil
	}

	var detail string
	if err := json.Unmarshal(eb.Detail, &detail); err == nil {
		return detail, nil
	}

	var rawItems []json.RawMessage
	if err := json.Unmarshal(eb.Detail, &rawItems); err != nil {
		return "", nil
	}
	items := make([]string, 0, len(rawItems))
	for _, raw := range rawItems {
		var item struct {
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(raw, &item); err == nil && item.Msg != "" {
			items = append(items, item.Msg)
		}
	}
	return "", items
}

func escapePath(segment string) string {
	return url.PathEscape(strings.TrimSpace(segment))
}
