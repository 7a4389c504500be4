package veeamclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/GregMSThompson/backup-dashboard/internal/errs"
	"github.com/GregMSThompson/backup-dashboard/internal/metrics"
)

const serviceName = "backup-api"

var (
	// ErrNotConfigured is returned when no base URL was configured.
	ErrNotConfigured = errors.New("backup API base URL not configured")
	// ErrInvalidPath is returned for relay paths that leave /api/v1.
	ErrInvalidPath = errors.New("invalid backup API path")
)

type Config struct {
	BaseURL          string
	APIVersion       string
	Timeout          time.Duration
	FailureThreshold uint32
	OpenTimeout      time.Duration
}

// Request is one call relayed to /api/v1 of the backup server.
type Request struct {
	Method        string
	Path          string // relative to /api/v1
	RawQuery      string
	Authorization string
	Body          []byte
}

type Response struct {
	Status int
	Body   []byte
}

type Adapter struct {
	baseURL    string
	apiVersion string
	client     *http.Client
	breaker    *gobreaker.CircuitBreaker[*Response]
}

func NewAdapter(cfg Config, log *slog.Logger) *Adapter {
	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}
	settings := gobreaker.Settings{
		Name:        serviceName,
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			open := 0.0
			if to == gobreaker.StateOpen {
				open = 1
			}
			metrics.RelayBreakerState.Set(open)
			log.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	}

	return &Adapter{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiVersion: cfg.APIVersion,
		client:     &http.Client{Timeout: cfg.Timeout},
		breaker:    gobreaker.NewCircuitBreaker[*Response](settings),
	}
}

func (a *Adapter) Configured() bool {
	return a.baseURL != ""
}

// Do sends the request upstream. Transport failures trip the breaker;
// upstream HTTP errors are returned as a normal Response.
func (a *Adapter) Do(ctx context.Context, req Request) (*Response, error) {
	if !a.Configured() {
		return nil, ErrNotConfigured
	}
	p, err := CleanPath(req.Path)
	if err != nil {
		return nil, err
	}
	req.Path = p

	start := time.Now()
	resp, err := a.breaker.Execute(func() (*Response, error) {
		return a.send(ctx, req)
	})
	metrics.RelayRequestDuration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.RelayRequestsTotal.WithLabelValues(req.Method, "error").Inc()
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, errs.NewExternalServiceError(serviceName, true, err)
		}
		return nil, err
	}
	metrics.RelayRequestsTotal.WithLabelValues(req.Method, strconv.Itoa(resp.Status)).Inc()
	return resp, nil
}

// GetJSON issues a GET and decodes a 2xx body into out.
func (a *Adapter) GetJSON(ctx context.Context, authorization, path string, query url.Values, out any) error {
	resp, err := a.Do(ctx, Request{
		Method:        http.MethodGet,
		Path:          path,
		RawQuery:      query.Encode(),
		Authorization: authorization,
	})
	if err != nil {
		if errors.Is(err, ErrNotConfigured) || errors.Is(err, ErrInvalidPath) {
			return err
		}
		var ext *errs.ExternalServiceError
		if errors.As(err, &ext) {
			return err
		}
		return errs.NewExternalServiceError(serviceName, true, err)
	}
	if resp.Status < 200 || resp.Status > 299 {
		return errs.NewExternalServiceError(serviceName, resp.Status >= 500,
			fmt.Errorf("GET %s returned %d", path, resp.Status))
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return errs.NewExternalServiceError(serviceName, false, fmt.Errorf("decode %s: %w", path, err))
	}
	return nil
}

func (a *Adapter) send(ctx context.Context, req Request) (*Response, error) {
	u := a.baseURL + "/api/v1/" + (&url.URL{Path: req.Path}).EscapedPath()
	if req.RawQuery != "" {
		u += "?" + req.RawQuery
	}

	// Action endpoints (start, stop, disable...) expect a JSON body even
	// when the caller sends none.
	var body io.Reader
	if hasBody(req.Method) {
		b := req.Body
		if len(b) == 0 {
			b = []byte("{}")
		}
		body = bytes.NewReader(b)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u, body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", req.Authorization)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("x-api-version", a.apiVersion)
	httpReq.Header.Set("X-Correlation-ID", uuid.NewString())

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &Response{Status: resp.StatusCode, Body: b}, nil
}

// CleanPath unescapes and normalizes a path relative to /api/v1. Paths
// whose dot segments climb above that root are rejected.
func CleanPath(raw string) (string, error) {
	p, err := url.PathUnescape(raw)
	if err != nil {
		return "", ErrInvalidPath
	}
	p = path.Clean(strings.TrimLeft(p, "/"))
	if p == "." {
		return "", nil
	}
	if p == ".." || strings.HasPrefix(p, "../") || strings.HasPrefix(p, "/") {
		return "", ErrInvalidPath
	}
	return p, nil
}

func hasBody(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodDelete:
		return false
	}
	return true
}
