package leaveerrors

import (
	"fmt"
	"net/http"

	"lemonpay/internal/shared/apperror"
)

var (
	ErrEmptyIdentifier = apperror.New(
		apperror.CodeInvalidInput,
		"identifier must not be empty",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrInvalidDays = apperror.New(
		apperror.CodeInvalidInput,
		"days must be greater than zero",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"leave_type must be one of sick, casual, planned, unplanned",
		http.StatusBadRequest,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrNotPending = apperror.New(
		apperror.CodeInvalidTransition,
		"leave request is not pending",
		http.StatusBadRequest,
	)
	ErrInvalidTargetStatus = apperror.New(
		apperror.CodeInvalidTransition,
		"status can only change to approved or rejected",
		http.StatusBadRequest,
	)
)

// InsufficientBalance reports the exact remaining count and the annual
// limit so callers can explain the rejection without a second round-trip.
func InsufficientBalance(remaining, limit int) *apperror.AppError {
	return apperror.New(
		apperror.CodeInsufficientBalance,
		fmt.Sprintf("Only %d day(s) remaining for the year (Limit: %d)", remaining, limit),
		http.StatusBadRequest,
	)
}
