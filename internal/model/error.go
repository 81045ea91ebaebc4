package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeMissingField     = "MISSING_FIELD"
	ErrCodeUnauthorised     = "UNAUTHORIZED"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeMenuItemNotFound = "MENU_ITEM_NOT_FOUND"
	ErrCodeCartItemNotFound = "CART_ITEM_NOT_FOUND"
	ErrCodeEmptySelection   = "EMPTY_CART_SELECTION"
	ErrCodeAmountMismatch   = "AMOUNT_MISMATCH"
	ErrCodePaymentGateway   = "PAYMENT_GATEWAY_ERROR"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrUnauthenticated  = NewDomainError(ErrCodeUnauthorised, "Missing or invalid credentials")
	ErrForbidden        = NewDomainError(ErrCodeForbidden, "Insufficient permissions for this resource")
	ErrMenuItemNotFound = NewDomainError(ErrCodeMenuItemNotFound, "Menu item not found")
	ErrCartItemNotFound = NewDomainError(ErrCodeCartItemNotFound, "One or more cart items not found")
	ErrEmptySelection   = NewDomainError(ErrCodeEmptySelection, "Checkout must reference at least one cart item")
	ErrAmountMismatch   = NewDomainError(ErrCodeAmountMismatch, "Amount does not match the total of the selected cart items")
	ErrPaymentGateway   = NewDomainError(ErrCodePaymentGateway, "Payment gateway rejected the charge")
)
