package expenseerrors

import (
	"net/http"

	"lemonpay/internal/shared/apperror"
)

var (
	ErrExpenseNotFound = apperror.New(
		apperror.CodeNotFound,
		"expense claim not found",
		http.StatusNotFound,
	)

	ErrInvalidIncurredDate = apperror.New(
		apperror.CodeInvalidInput,
		"incurred_date must be in YYYY-MM-DD format",
		http.StatusBadRequest,
	)

	ErrIncurredInFuture = apperror.New(
		apperror.CodeInvalidInput,
		"incurred_date cannot be in the future",
		http.StatusBadRequest,
	)

	ErrNotPending = apperror.New(
		apperror.CodeInvalidTransition,
		"expense claim has already been decided",
		http.StatusConflict,
	)

	ErrInvalidTargetStatus = apperror.New(
		apperror.CodeInvalidTransition,
		"status must be either approved or rejected",
		http.StatusBadRequest,
	)
)
