// Package compiler implements the HTTP client for the external
// compile-check service and the extraction of structured error entries
// from its output.
package compiler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sevigo/build-herald/internal/core"
)

// Client submits compile requests to the external service. It supports
// two submission modes: a POST with the raw source as the request body,
// or a GET carrying a URL-encoded reference to a fetchable copy of the
// source. Compilation options travel as query parameters in both modes.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a compile-service client with an explicit timeout.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		logger: logger,
	}
}

// Compile submits the request and decodes the service's verdict. Any
// transport problem, non-2xx status, or undecodable body is returned as
// an error; a clean response with Success=false is not an error here,
// that branch belongs to the caller.
func (c *Client) Compile(ctx context.Context, req *core.CompileRequest) (*core.CompileResult, error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("calling compile service",
		"url", c.baseURL,
		"method", httpReq.Method,
		"compilation_level", req.CompilationLevel)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("compile service request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read compile service response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("compile service returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result core.CompileResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode compile service response: %w", err)
	}
	return &result, nil
}

func (c *Client) buildRequest(ctx context.Context, req *core.CompileRequest) (*http.Request, error) {
	params := url.Values{}
	params.Set("compilation_level", req.CompilationLevel)
	params.Set("language_level", req.LanguageLevel)

	if req.CodeURL != "" {
		params.Set("code_url", req.CodeURL)
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build compile request: %w", err)
		}
		return httpReq, nil
	}

	if req.Source == "" {
		return nil, fmt.Errorf("compile request has neither source nor code URL")
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"?"+params.Encode(), strings.NewReader(req.Source))
	if err != nil {
		return nil, fmt.Errorf("failed to build compile request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "text/plain; charset=utf-8")
	return httpReq, nil
}
