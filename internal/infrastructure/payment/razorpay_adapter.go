package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/dressshop/backend/internal/domain/order"
)

const razorpayCreateOrderPath = "/v1/orders"

// RazorpayAdapter implements order.GatewayClient and order.SignatureVerifier for Razorpay
type RazorpayAdapter struct {
	config     *RazorpayConfig
	httpClient *http.Client
	signer     *HMACSigner
	logger     *zap.Logger
}

// NewRazorpayAdapter creates a new Razorpay adapter
func NewRazorpayAdapter(config *RazorpayConfig, logger *zap.Logger) (*RazorpayAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &RazorpayAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: config.timeout(),
		},
		signer: NewHMACSigner(config.KeySecret),
		logger: logger,
	}, nil
}

// CreateOrder opens an order on Razorpay and returns its id.
// Transport errors, timeouts and non-2xx answers all map to order.ErrGatewayUnavailable.
func (a *RazorpayAdapter) CreateOrder(ctx context.Context, req order.GatewayOrderRequest) (string, error) {
	body, err := json.Marshal(razorpayCreateOrderRequest{
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
	})
	if err != nil {
		return "", fmt.Errorf("razorpay: failed to marshal request: %w", err)
	}

	respBody, err := a.doRequest(ctx, http.MethodPost, razorpayCreateOrderPath, body)
	if err != nil {
		a.logger.Warn("gateway order creation failed",
			zap.String("receipt", req.Receipt),
			zap.Error(err),
		)
		return "", err
	}

	var resp razorpayOrderResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("%w: malformed order response: %v", order.ErrGatewayUnavailable, err)
	}
	if resp.ID == "" {
		return "", fmt.Errorf("%w: order response carries no id", order.ErrGatewayUnavailable)
	}

	a.logger.Debug("gateway order created",
		zap.String("gateway_order_id", resp.ID),
		zap.String("receipt", req.Receipt),
		zap.Int64("amount", req.Amount),
	)
	return resp.ID, nil
}

// VerifyPaymentSignature checks the HMAC the client received from checkout
func (a *RazorpayAdapter) VerifyPaymentSignature(gatewayOrderID, gatewayPaymentID, signature string) bool {
	return a.signer.Verify(gatewayOrderID, gatewayPaymentID, signature)
}

// doRequest makes an authenticated request to the Razorpay API
func (a *RazorpayAdapter) doRequest(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.config.baseURL()+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("razorpay: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(a.config.KeyID, a.config.KeySecret)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", order.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", order.ErrGatewayUnavailable, err)
	}

	if resp.StatusCode >= 400 {
		var errResp razorpayErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error.Code != "" {
			return nil, fmt.Errorf("%w: %s - %s", order.ErrGatewayUnavailable, errResp.Error.Code, errResp.Error.Description)
		}
		return nil, fmt.Errorf("%w: HTTP %d", order.ErrGatewayUnavailable, resp.StatusCode)
	}

	return respBody, nil
}

var (
	_ order.GatewayClient     = (*RazorpayAdapter)(nil)
	_ order.SignatureVerifier = (*RazorpayAdapter)(nil)
)
