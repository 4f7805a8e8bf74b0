// Package api 封装对学习助手后端的 HTTP 调用。
//
// 每个请求开始时从令牌存储读取 bearer 令牌；请求不重试、不去重，
// 取消只通过 context 传递。
package api

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

	"study_assistant/internal/config"
	"study_assistant/internal/tokenstore"
	"study_assistant/internal/util"
	"study_assistant/pkg/logger"
	"study_assistant/pkg/monitoring"
	"study_assistant/pkg/security"
	"study_assistant/pkg/tracing"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxResponseBody 生成接口返回的笔记可能较长，但不应超过该值
const maxResponseBody = 8 << 20

type Options struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64
	Burst     int
	// Transport 传输链最内层，为空时使用 http.DefaultTransport
	Transport http.RoundTripper
}

func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout(),
		RateLimit: cfg.RateLimit.RequestsPerSecond,
		Burst:     cfg.RateLimit.Burst,
	}
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  tokenstore.Store
}

// NewClient 传输链（外到内）：限流 → 追踪 → 指标 → 请求 ID
func NewClient(opts Options, tokens tokenstore.Store) *Client {
	var rt http.RoundTripper = &requestIDTransport{base: opts.Transport}
	rt = &monitoring.Transport{Base: rt}
	rt = &tracing.Transport{Base: rt}
	rt = security.NewRateLimitTransport(rt, opts.RateLimit, opts.Burst)

	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    &http.Client{Timeout: opts.Timeout, Transport: rt},
		tokens:  tokens,
	}
}

func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) Tokens() tokenstore.Store { return c.tokens }

type requestIDTransport struct {
	base http.RoundTripper
}

func (t *requestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	if req.Header.Get("X-Request-ID") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("X-Request-ID", uuid.NewString())
	}
	return base.RoundTrip(req)
}

// do 发送 JSON 请求；非 2xx 响应返回 *APIError，out 为 nil 时丢弃响应体
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// 未登录时不带 Authorization，由后端返回 401
	token, err := c.tokens.Load()
	switch {
	case err == nil:
		req.Header.Set("Authorization", "Bearer "+token)
	case !errors.Is(err, util.ErrNoToken):
		return fmt.Errorf("load token: %w", err)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.Log.Warn("API request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}

	logger.Log.Debug("API request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
		zap.String("authorization", security.RedactToken(token)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode, Message: util.ExtractErrorMessage(data)}
		logger.Log.Warn("API error response",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("error", apiErr.Message),
		)
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
