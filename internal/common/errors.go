// Package common provides shared utilities used across all features
package common

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/hxuan190/vault-engine/internal/services/fees"
	"github.com/hxuan190/vault-engine/internal/services/fixedpoint"
	"github.com/hxuan190/vault-engine/internal/services/ledger"
	"github.com/hxuan190/vault-engine/internal/services/notional"
	"github.com/hxuan190/vault-engine/internal/services/oracle"
	"github.com/hxuan190/vault-engine/internal/services/rebalance"
)

// HttpError represents an HTTP error with status code and message
type HttpError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *HttpError) Error() string {
	return fmt.Sprintf("HTTP error: %d %s %s", e.StatusCode, e.Code, e.Message)
}

func messageOrDefault(msg string, defaultMsg string) string {
	if msg != "" {
		return msg
	}
	return defaultMsg
}

// HTTP Error constructors

func HTTPErrorBadRequest(msg string) *HttpError {
	return &HttpError{
		StatusCode: http.StatusBadRequest,
		Code:       "BAD_REQUEST",
		Message:    messageOrDefault(msg, "Bad request"),
	}
}

func HTTPErrorNotFound(msg string) *HttpError {
	return &HttpError{
		StatusCode: http.StatusNotFound,
		Code:       "NOT_FOUND",
		Message:    messageOrDefault(msg, "Not found"),
	}
}

func HTTPErrorInternalError(msg string) *HttpError {
	return &HttpError{
		StatusCode: http.StatusInternalServerError,
		Code:       "INTERNAL_SERVER_ERROR",
		Message:    messageOrDefault(msg, "Internal server error"),
	}
}

func HTTPErrorUnauthorized(msg string) *HttpError {
	return &HttpError{
		StatusCode: http.StatusUnauthorized,
		Code:       "UNAUTHORIZED",
		Message:    messageOrDefault(msg, "Unauthorized"),
	}
}

func HTTPErrorUnprocessable(code, msg string) *HttpError {
	return &HttpError{
		StatusCode: http.StatusUnprocessableEntity,
		Code:       code,
		Message:    msg,
	}
}

func HTTPErrorResourceConflict(msg string) *HttpError {
	return &HttpError{
		StatusCode: http.StatusConflict,
		Code:       "RESOURCE_CONFLICT",
		Message:    messageOrDefault(msg, "Resource conflict"),
	}
}

// coreErrorCodes maps the accounting error taxonomy onto stable API codes.
// Every core error is terminal for its operation; the code tells the caller
// which predicate rejected it.
var coreErrorCodes = []struct {
	err  error
	code string
}{
	{fixedpoint.ErrInvalidScale, "INVALID_SCALE"},
	{fixedpoint.ErrOverflow, "AMOUNT_OVERFLOW"},
	{oracle.ErrUnknownAsset, "UNKNOWN_ASSET"},
	{oracle.ErrStalePrice, "STALE_PRICE"},
	{notional.ErrBelowMinNotional, "BELOW_MIN_NOTIONAL"},
	{notional.ErrPriceDeviationExceeded, "PRICE_DEVIATION_EXCEEDED"},
	{rebalance.ErrEpochLimitExceeded, "EPOCH_LIMIT_EXCEEDED"},
	{ledger.ErrInsufficientBalance, "INSUFFICIENT_BALANCE"},
	{ledger.ErrInsufficientAllowance, "INSUFFICIENT_ALLOWANCE"},
	{ledger.ErrUnsafeApprove, "UNSAFE_APPROVE"},
	{ledger.ErrZeroAmount, "ZERO_AMOUNT"},
	{ledger.ErrZeroAddress, "ZERO_ADDRESS"},
	{ledger.ErrPaused, "PAUSED"},
	{fees.ErrInvalidFeeBps, "INVALID_FEE_BPS"},
}

// FromCoreError converts a core accounting error into its HTTP shape.
// Validation failures map to 422 with a typed code; unknown errors stay 500.
func FromCoreError(err error) *HttpError {
	for _, m := range coreErrorCodes {
		if errors.Is(err, m.err) {
			return HTTPErrorUnprocessable(m.code, err.Error())
		}
	}
	return HTTPErrorInternalError(err.Error())
}
