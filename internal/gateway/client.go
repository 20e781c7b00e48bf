package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"studio-booking/pkg/utils"

	"go.uber.org/zap"
)

// Client talks to the payment provider's Orders API. All writes carry an
// idempotency header; status must be reconciled by polling GetOrder.
type Client struct {
	baseURL     string
	accessToken string
	http        *http.Client
	log         *zap.Logger
}

func NewClient(cfg utils.GatewayConfig, log *zap.Logger) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL:     cfg.BaseURL,
		accessToken: cfg.AccessToken,
		log:         log.With(zap.String("component", "gateway")),
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   10 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
	}
}

// do sends one request and hands back the decoded order on success. A
// transport failure and an HTTP-level rejection come back as distinct error
// classes; they must never be conflated for the caller.
func (c *Client) do(ctx context.Context, method, path, idempotencyKey string, body any) (*Order, error) {
	if c.accessToken == "" {
		return nil, newConfigError("gateway access token is not configured")
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, newConfigError(fmt.Sprintf("encode request body: %v", err))
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, newConfigError(fmt.Sprintf("build request: %v", err))
	}

	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")
	if idempotencyKey != "" {
		req.Header.Set("X-Idempotency-Key", idempotencyKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("Gateway request failed at transport level",
			zap.Error(err),
			zap.String("method", method),
			zap.String("path", path),
		)
		return nil, newNetworkError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newNetworkError(err)
	}

	if resp.StatusCode >= 400 {
		code, message := decodeProviderError(respBody)
		c.log.Warn("Gateway rejected request",
			zap.Int("http_status", resp.StatusCode),
			zap.String("code", code),
			zap.String("message", message),
			zap.String("path", path),
		)
		return nil, newProviderError(resp.StatusCode, code, message)
	}

	order, err := decodeOrder(respBody)
	if err != nil {
		// The gateway accepted the request but we could not read the result;
		// the next status poll resolves it.
		return nil, newNetworkError(err)
	}

	c.log.Info("Gateway call succeeded",
		zap.String("path", path),
		zap.String("order_id", order.OrderID),
		zap.String("provider_status", order.ProviderStatus),
	)

	return order, nil
}

// decodeProviderError pulls the first code/message pair out of the
// provider's error body, tolerating both flat and list shapes.
func decodeProviderError(body []byte) (code, message string) {
	var payload struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Errors  []struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"errors"`
	}

	if err := json.Unmarshal(body, &payload); err != nil {
		return "", string(body)
	}

	if len(payload.Errors) > 0 {
		return payload.Errors[0].Code, payload.Errors[0].Message
	}

	return payload.Code, payload.Message
}
