// Package client talks to the storefront REST API on behalf of a cart session.
package client

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

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/api"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"golang.org/x/text/currency"
)

const (
	defaultTimeout      = 30 * time.Second
	maxResponseBodySize = 1 << 20
)

// APIError is a response with a status the caller did not expect.
type APIError struct {
	StatusCode int
	// Message is the server's "message" field, or the raw body or status text when there is none.
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	currency   currency.Unit
}

var (
	_ port.CartAPI  = (*Client)(nil)
	_ port.OrderAPI = (*Client)(nil)
)

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout bounds every request, including detached order placements.
// A client passed via WithHTTPClient is copied, not modified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithCurrency sets the currency assumed for prices the server sends without one. Defaults to INR.
func WithCurrency(unit currency.Unit) Option {
	return func(c *Client) {
		c.currency = unit
	}
}

func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url[%s] is not valid", baseURL)
	}

	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		currency: currency.INR,
	}

	for _, opt := range opts {
		opt(c)
	}

	switch {
	case c.httpClient == nil:
		c.httpClient = &http.Client{
			Timeout: defaultTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
		if c.timeout > 0 {
			c.httpClient.Timeout = c.timeout
		}
	case c.timeout > 0:
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}

	return c, nil
}

// FetchCart returns the user's cart entries. Anything but 200 is an *APIError.
func (c *Client) FetchCart(ctx context.Context, userID string) ([]domain.CartEntry, error) {
	if userID == "" {
		return nil, fmt.Errorf("userID is empty")
	}

	resp, err := c.do(ctx, http.MethodGet, "/api/user/cartitems/"+url.PathEscape(userID), nil)
	if err != nil {
		return nil, fmt.Errorf("c.do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var wire []api.CartEntry
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBodySize)).Decode(&wire); err != nil {
		return nil, fmt.Errorf("json.Decode: %w", err)
	}

	entries := make([]domain.CartEntry, 0, len(wire))
	for _, w := range wire {
		entry, err := w.ToDomain(c.currency)
		if err != nil {
			return nil, fmt.Errorf("entry[%s]: %w", w.ID, err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// RemoveFromCart deletes one product from the user's cart. Anything but 200 is an *APIError.
func (c *Client) RemoveFromCart(ctx context.Context, userID string, productID uuid.UUID) error {
	if userID == "" {
		return fmt.Errorf("userID is empty")
	}

	resp, err := c.do(ctx, http.MethodPost, "/api/user/deletecart/"+productID.String(), api.CartRequest{UserID: userID})
	if err != nil {
		return fmt.Errorf("c.do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}

	return nil
}

// PlaceOrder orders one product. A 2xx status is returned as is, with the order decoded on 201;
// any other status comes back as an *APIError alongside the status code.
func (c *Client) PlaceOrder(ctx context.Context, req domain.OrderRequest) (port.PlacedOrder, error) {
	body := api.PlaceOrderRequest{
		UserID:   req.UserID,
		Username: req.Username,
		Email:    req.Email,
	}

	resp, err := c.do(ctx, http.MethodPost, "/api/order/placeorder/"+req.ProductID.String(), body)
	if err != nil {
		return port.PlacedOrder{}, fmt.Errorf("c.do: %w", err)
	}
	defer resp.Body.Close()

	placed := port.PlacedOrder{StatusCode: resp.StatusCode}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return placed, apiError(resp)
	}

	if resp.StatusCode == http.StatusCreated {
		var wire api.Order
		if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBodySize)).Decode(&wire); err != nil {
			return placed, fmt.Errorf("json.Decode: %w", err)
		}

		order, err := wire.ToDomain(c.currency)
		if err != nil {
			return placed, fmt.Errorf("order[%s]: %w", wire.ID, err)
		}
		placed.Order = order
	}

	return placed, nil
}

func (c *Client) CancelOrder(ctx context.Context, orderID uuid.UUID) error {
	resp, err := c.do(ctx, http.MethodDelete, "/api/order/cancelorder/"+orderID.String(), nil)
	if err != nil {
		return fmt.Errorf("c.do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}

	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("json.Marshal: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpClient.Do: %w", err)
	}

	return resp, nil
}

func apiError(resp *http.Response) *APIError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))

	var msg api.Message
	if err := json.Unmarshal(raw, &msg); err == nil && msg.Message != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: msg.Message}
	}

	text := strings.TrimSpace(string(raw))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}

	return &APIError{StatusCode: resp.StatusCode, Message: text}
}

// Message returns what a user should see for err: the server's message for an *APIError,
// otherwise the error text.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
