package errors

import (
	"fmt"
	"net/http"
)

// Error codes
const (
	// 4xx Client Errors
	CodeMissingField          = "MISSING_FIELD"
	CodeInvalidInput          = "INVALID_INPUT"
	CodeInvalidAssetClass     = "INVALID_NFT_TYPE"
	CodeInvalidOrExpiredNonce = "INVALID_OR_EXPIRED_NONCE"
	CodeNonceMismatch         = "NONCE_MISMATCH"
	CodeNonceExpired          = "NONCE_EXPIRED"
	CodeIdentityNotLinked     = "X_NOT_LINKED"
	CodeAlreadyClaimed        = "ALREADY_CLAIMED"
	CodeInvalidSignature      = "INVALID_SIGNATURE"
	CodeContractNotFound      = "CONTRACT_NOT_FOUND"

	// 5xx Server Errors
	CodeInternal        = "INTERNAL_ERROR"
	CodeStoreError      = "STORE_ERROR"
	CodeExternalService = "EXTERNAL_SERVICE_ERROR"
	CodeConfiguration   = "CONFIGURATION_ERROR"
)

// AppError represents a structured application error
type AppError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	StatusCode int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
}

// Is matches on Code so callers can compare against a fresh constructor
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// Error constructors

func badRequest(code, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func MissingField(message string) *AppError {
	return badRequest(CodeMissingField, message)
}

func InvalidInput(message string) *AppError {
	return badRequest(CodeInvalidInput, message)
}

func InvalidAssetClass() *AppError {
	return badRequest(CodeInvalidAssetClass, "Invalid NFT type")
}

func InvalidOrExpiredNonce() *AppError {
	return badRequest(CodeInvalidOrExpiredNonce, "Invalid or expired nonce")
}

func NonceMismatch() *AppError {
	return badRequest(CodeNonceMismatch, "Nonce mismatch")
}

func NonceExpired() *AppError {
	return badRequest(CodeNonceExpired, "Nonce expired")
}

func IdentityNotLinked() *AppError {
	return badRequest(CodeIdentityNotLinked, "X account not linked. Please connect your X account first.")
}

func AlreadyClaimed() *AppError {
	return badRequest(CodeAlreadyClaimed, "Already claimed")
}

func InvalidSignature() *AppError {
	return badRequest(CodeInvalidSignature, "Invalid signature")
}

func ContractNotFound(contractAddress string) *AppError {
	return &AppError{
		Code:       CodeContractNotFound,
		Message:    "Contract not found",
		StatusCode: http.StatusNotFound,
		Details:    map[string]any{"contract": contractAddress},
	}
}

func Internal(message string) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
	}
}

func StoreError(err error) *AppError {
	return &AppError{
		Code:       CodeStoreError,
		Message:    "Storage error occurred",
		StatusCode: http.StatusInternalServerError,
		Err:        err,
	}
}

func ExternalService(message string, err error) *AppError {
	return &AppError{
		Code:       CodeExternalService,
		Message:    message,
		StatusCode: http.StatusServiceUnavailable,
		Err:        err,
	}
}

func Configuration(message string) *AppError {
	return &AppError{
		Code:       CodeConfiguration,
		Message:    message,
		StatusCode: http.StatusServiceUnavailable,
	}
}
