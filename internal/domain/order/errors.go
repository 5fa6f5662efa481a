package order

import "github.com/dressshop/backend/internal/domain/shared"

// Errors surfaced by the checkout and payment reconciliation flow.
var (
	ErrAmountMismatch      = shared.NewDomainError("AMOUNT_MISMATCH", "Declared amount does not match the catalog total")
	ErrItemNotFound        = shared.NewDomainErrorOfKind(shared.KindNotFound, "ITEM_NOT_FOUND", "Catalog item not found")
	ErrUserNotFound        = shared.NewDomainErrorOfKind(shared.KindNotFound, "USER_NOT_FOUND", "User not found")
	ErrOrderNotFound       = shared.NewDomainErrorOfKind(shared.KindNotFound, "ORDER_NOT_FOUND", "Order not found")
	ErrGatewayUnavailable  = shared.NewDomainErrorOfKind(shared.KindUpstream, "GATEWAY_UNAVAILABLE", "Payment gateway is unavailable, please resubmit")
	ErrOrderNotPayable     = shared.NewDomainErrorOfKind(shared.KindConflict, "ORDER_NOT_PAYABLE", "Order has not been paid")
	ErrUnsupportedCurrency = shared.NewDomainError("UNSUPPORTED_CURRENCY", "Currency is not supported")
	ErrEmptyCart           = shared.NewDomainError("EMPTY_CART", "Cart must contain at least one item")
)
