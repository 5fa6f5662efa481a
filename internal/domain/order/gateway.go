package order

import "context"

// GatewayOrderRequest is what the payment provider needs to open an order.
type GatewayOrderRequest struct {
	Amount   int64 // sub-units
	Currency string
	Receipt  string // unique per attempt
}

// GatewayClient opens orders on the external payment provider.
// Implementations wrap transport failures and timeouts in ErrGatewayUnavailable.
type GatewayClient interface {
	CreateOrder(ctx context.Context, req GatewayOrderRequest) (gatewayOrderID string, err error)
}

// SignatureVerifier authenticates payment confirmations with the gateway shared secret.
type SignatureVerifier interface {
	VerifyPaymentSignature(gatewayOrderID, gatewayPaymentID, signature string) bool
}
