package remote

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

	domain "github.com/mohammadpnp/roster-import/internal/domain/employee"
)

const maxErrorBody = 64 << 10

// Client talks to the external employee directory API. It holds no session
// state; the bearer token is passed on every call.
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	parsed, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/") + "/")
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid employees api base url %q", baseURL)
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL: parsed,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

func (c *Client) List(ctx context.Context, token string, q domain.ListQuery) (domain.Page, error) {
	var body listResponse
	if err := c.do(ctx, http.MethodGet, "employees", q.Values(), token, nil, &body); err != nil {
		return domain.Page{}, fmt.Errorf("list employees: %w", err)
	}
	return body.toDomain(), nil
}

func (c *Client) Delete(ctx context.Context, token string, employeeID string) (string, error) {
	query := url.Values{}
	query.Set("employeeId", employeeID)

	var body messageResponse
	if err := c.do(ctx, http.MethodDelete, "employees", query, token, nil, &body); err != nil {
		return "", fmt.Errorf("delete employee %s: %w", employeeID, err)
	}
	return body.Message, nil
}

func (c *Client) ResendInvite(ctx context.Context, token string, employees []domain.Record) (string, error) {
	var body messageResponse
	if err := c.do(ctx, http.MethodPost, "employees/resend-invite", nil, token, newBatchRequest(employees), &body); err != nil {
		return "", fmt.Errorf("resend invites: %w", err)
	}
	return body.Message, nil
}

func (c *Client) Onboard(ctx context.Context, token string, employees []domain.Record) (domain.OnboardResult, error) {
	var body onboardResponse
	if err := c.do(ctx, http.MethodPost, "employees/onboard", nil, token, newBatchRequest(employees), &body); err != nil {
		return domain.OnboardResult{}, fmt.Errorf("onboard employees: %w", err)
	}

	result := domain.OnboardResult{Message: body.Message}
	if body.OnboardedResult != nil {
		result.TotalProcessed = body.OnboardedResult.TotalProcessed
	}
	return result, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, token string, in, out any) error {
	endpoint := c.baseURL.ResolveReference(&url.URL{Path: path})
	if len(query) > 0 {
		endpoint.RawQuery = query.Encode()
	}

	var reqBody io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return domain.ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// statusError keeps the server's message when it sent one.
func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var body messageResponse
	message := ""
	if err := json.Unmarshal(raw, &body); err == nil {
		message = strings.TrimSpace(body.Message)
	}
	if message == "" {
		message = fmt.Sprintf("request failed with status %d", resp.StatusCode)
	}

	return &domain.RemoteError{StatusCode: resp.StatusCode, Message: message}
}
