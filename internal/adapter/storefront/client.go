package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	domainErrors "github.com/polkiloo/storefront-checkout/internal/domain/errors"
	"github.com/polkiloo/storefront-checkout/internal/domain/model"
)

const (
	defaultTimeout    = 5 * time.Second
	defaultRetryAfter = 5 * time.Second
	maxErrorBody      = 4 << 10
)

// TooManyRequestsError represents rate limiting signal from the storefront API.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// Unwrap classifies rate limiting as an unavailable upstream.
func (e TooManyRequestsError) Unwrap() error {
	return domainErrors.ErrUpstreamUnavailable
}

// Client talks to the storefront cart, shipping and order endpoints.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a storefront client. A non-positive timeout selects the default.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse storefront url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("storefront url must be absolute")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    parsed,
		logger:     logger,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Cart fetches the cart snapshot of userID. An unknown cart is an empty one.
func (c *Client) Cart(ctx context.Context, userID int64) (*model.CartSnapshot, error) {
	resp, err := c.send(ctx, http.MethodGet, c.endpoint("api", "users", strconv.FormatInt(userID, 10), "cart"), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("cart request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var data cartResponse
		if err := decode(resp.Body, &data); err != nil {
			return nil, fmt.Errorf("decode cart: %w", err)
		}
		return data.toModel(), nil
	case http.StatusNotFound, http.StatusNoContent:
		return &model.CartSnapshot{}, nil
	default:
		return nil, c.failure("cart", resp)
	}
}

// ShippingMethods lists the shipping options in display order.
func (c *Client) ShippingMethods(ctx context.Context) ([]model.ShippingMethod, error) {
	resp, err := c.send(ctx, http.MethodGet, c.endpoint("api", "shipping-methods"), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("shipping methods request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.failure("shipping methods", resp)
	}
	var data []shippingMethodDTO
	if err := decode(resp.Body, &data); err != nil {
		return nil, fmt.Errorf("decode shipping methods: %w", err)
	}
	methods := make([]model.ShippingMethod, 0, len(data))
	for _, m := range data {
		methods = append(methods, m.toModel())
	}
	return methods, nil
}

// SubmitOrder creates the order. Client errors from the order service are
// returned as *domainErrors.OrderRejectedError carrying its message.
func (c *Client) SubmitOrder(ctx context.Context, req model.OrderRequest) (*model.OrderConfirmation, error) {
	header := http.Header{}
	if req.IdempotencyKey != "" {
		header.Set("Idempotency-Key", req.IdempotencyKey)
	}
	resp, err := c.send(ctx, http.MethodPost, c.endpoint("api", "orders"), newOrderRequestDTO(req), header)
	if err != nil {
		return nil, fmt.Errorf("order request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		var data orderResponse
		if err := decode(resp.Body, &data); err != nil {
			return nil, fmt.Errorf("decode order: %w: %w", domainErrors.ErrUpstreamUnavailable, err)
		}
		if data.OrderID == "" {
			return nil, fmt.Errorf("order response without id: %w", domainErrors.ErrUpstreamUnavailable)
		}
		confirmation := &model.OrderConfirmation{OrderID: data.OrderID, Status: data.Status, Total: req.TotalAmount}
		if data.TotalAmount != nil {
			confirmation.Total = data.TotalAmount.Decimal()
		}
		return confirmation, nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests:
		message := readMessage(resp.Body)
		c.logger.Warn("order rejected", slog.Int("status", resp.StatusCode), slog.String("message", message))
		return nil, &domainErrors.OrderRejectedError{Message: message}
	default:
		return nil, c.failure("order", resp)
	}
}

func (c *Client) endpoint(elems ...string) string {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(append([]string{"/", endpoint.Path}, elems...)...)
	return endpoint.String()
}

// send performs the request. Transport failures are reported as an unavailable upstream.
func (c *Client) send(ctx context.Context, method, endpoint string, payload any, header http.Header) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode payload: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, err
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("storefront request failed", slog.String("method", method), slog.String("url", endpoint), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", domainErrors.ErrUpstreamUnavailable, err)
	}
	return resp, nil
}

func (c *Client) failure(op string, resp *http.Response) error {
	if resp.StatusCode == http.StatusTooManyRequests {
		return TooManyRequestsError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	}
	message := readMessage(resp.Body)
	c.logger.Error("storefront request failed", slog.String("op", op), slog.Int("status", resp.StatusCode), slog.String("body", message))
	return fmt.Errorf("%s: %s: %w", op, resp.Status, domainErrors.ErrUpstreamUnavailable)
}

func decode(r io.Reader, out any) error {
	return json.NewDecoder(r).Decode(out)
}

// readMessage extracts a user-facing message from an error body.
func readMessage(r io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	var body errorResponse
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return string(bytes.TrimSpace(raw))
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return defaultRetryAfter
	}
	if seconds, err := strconv.Atoi(header); err == nil && seconds >= 0 {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
		return 0
	}
	return defaultRetryAfter
}
