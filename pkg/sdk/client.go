package slotgate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kailas-cloud/slotgate/internal/transport/api"
)

// Client is the slotgate SDK entry point.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	apiKey  string
	match   string
	obs     *observer
}

// New creates a Client for the API at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("slotgate: base URL required")
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("slotgate: parse base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("slotgate: unsupported scheme %q", u.Scheme)
	}

	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}
	if cfg.httpClient == nil {
		cfg.httpClient = &http.Client{Timeout: defaultTimeout}
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL: u,
		http:    cfg.httpClient,
		apiKey:  cfg.apiKey,
		match:   cfg.match,
		obs:     obs,
	}, nil
}

// Evaluate gates a single document.
func (c *Client) Evaluate(ctx context.Context, q Query, doc Document) (v Verdict, err error) {
	start := time.Now()
	defer func() { c.obs.observe("evaluate", start, err) }()

	var resp api.Evaluation
	req := api.EvaluateRequest{Query: q, Document: doc, Match: c.match}
	if err = c.do(ctx, http.MethodPost, "/v1/evaluate", req, &resp); err != nil {
		return Verdict{}, err
	}
	return Verdict(resp.Verdict), nil
}

// EvaluateBatch gates docs in order. Rejected documents stay in the result.
func (c *Client) EvaluateBatch(ctx context.Context, q Query, docs []Document) (res BatchResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("evaluate_batch", start, err) }()

	var resp api.BatchEvaluateResponse
	req := api.BatchEvaluateRequest{Query: q, Documents: docs, Match: c.match}
	if err = c.do(ctx, http.MethodPost, "/v1/evaluate/batch", req, &resp); err != nil {
		return BatchResult{}, err
	}
	return BatchResult{Results: resp.Results, Accepted: resp.Accepted, Rejected: resp.Rejected}, nil
}

// Compare returns the similarity-only and gated views of docs.
// Documents without a Score get the server's mock score.
func (c *Client) Compare(
	ctx context.Context, q Query, docs []Document, opts CompareOptions,
) (resp CompareResponse, err error) {
	start := time.Now()
	defer func() { c.obs.observe("compare", start, err) }()

	req := api.CompareRequest{Query: q, Documents: docs, Match: c.match, MinScore: opts.MinScore}
	if err = c.do(ctx, http.MethodPost, "/v1/compare", req, &resp); err != nil {
		return CompareResponse{}, err
	}
	return resp, nil
}

// Slots returns the slot vocabulary and match strategies.
func (c *Client) Slots(ctx context.Context) (resp SlotsResponse, err error) {
	start := time.Now()
	defer func() { c.obs.observe("slots", start, err) }()

	if err = c.do(ctx, http.MethodGet, "/v1/slots", nil, &resp); err != nil {
		return SlotsResponse{}, err
	}
	return resp, nil
}

// Health checks the server.
func (c *Client) Health(ctx context.Context) (resp HealthResponse, err error) {
	start := time.Now()
	defer func() { c.obs.observe("health", start, err) }()

	if err = c.do(ctx, http.MethodGet, "/health", nil, &resp); err != nil {
		return HealthResponse{}, err
	}
	return resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("slotgate: encode request: %w", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, rdr)
	if err != nil {
		return fmt.Errorf("slotgate: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("slotgate: %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("slotgate: decode %s response: %w", path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var body api.ErrorResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body); err == nil {
		apiErr.Code = string(body.Code)
		apiErr.Message = body.Message
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
