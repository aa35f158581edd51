// Package employeeapi is the HTTP client of the remote employee service.
// Each operation is exactly one request; nothing is cached or retried.
package employeeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/brunotome93/white-flywire-exercise/internal/domain"
)

// maxErrorBody caps how much of a failed response is kept for messages.
const maxErrorBody = 64 << 10

type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.SugaredLogger
}

// New returns a client rooted at baseURL, e.g. "http://localhost:8080/api".
func New(baseURL string, httpClient *http.Client, log *zap.SugaredLogger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		log:     log,
	}
}

func (c *Client) ListActive(ctx context.Context) ([]domain.Employee, error) {
	var out []domain.Employee
	if err := c.do(ctx, http.MethodGet, "/employees/active", nil, nil, &out); err != nil {
		return nil, errors.Wrap(err, "list active employees")
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, id int) (*domain.EmployeeDetail, error) {
	var out domain.EmployeeDetail
	if err := c.do(ctx, http.MethodGet, "/employees/"+strconv.Itoa(id), nil, nil, &out); err != nil {
		return nil, errors.Wrapf(err, "get employee %d", id)
	}
	if out.Employee == nil {
		return nil, errors.Wrapf(domain.ErrNotFound, "get employee %d", id)
	}
	return &out, nil
}

func (c *Client) ListByHireDateRange(ctx context.Context, start, end string) ([]domain.Employee, error) {
	q := url.Values{}
	q.Set("start", start)
	q.Set("end", end)
	var out []domain.Employee
	if err := c.do(ctx, http.MethodGet, "/employees/hired-between", q, nil, &out); err != nil {
		return nil, errors.Wrapf(err, "list employees hired between %s and %s", start, end)
	}
	return out, nil
}

func (c *Client) Create(ctx context.Context, e *domain.Employee) (*domain.Employee, error) {
	var out domain.Employee
	if err := c.do(ctx, http.MethodPost, "/employees", nil, e, &out); err != nil {
		return nil, errors.Wrapf(err, "create employee %d", e.ID)
	}
	// The service echoes the record; the identifier is always ours.
	if out.ID == 0 {
		out = *e
	}
	return &out, nil
}

func (c *Client) Deactivate(ctx context.Context, id int) error {
	if err := c.do(ctx, http.MethodPut, "/employees/"+strconv.Itoa(id)+"/deactivate", nil, nil, nil); err != nil {
		return errors.Wrapf(err, "deactivate employee %d", id)
	}
	return nil
}

// do sends one request and decodes a JSON success body into out when out is
// non-nil. Non-2xx answers become *APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return errors.Wrap(err, "encode request")
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warnw("employee service unreachable", "method", method, "path", path, "error", err)
		return errors.Wrap(err, "send request")
	}
	defer resp.Body.Close()

	c.log.Debugw("employee service call",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"latency_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newAPIError(resp)
		c.log.Warnw("employee service rejected request",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
			"message", apiErr.Text(),
		)
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return errors.Wrap(err, "decode response")
	}
	return nil
}
