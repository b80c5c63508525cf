package taskerrors

import (
	"net/http"

	"lemonpay/internal/shared/apperror"
)

var (
	ErrTaskNotFound = apperror.New(
		apperror.CodeNotFound,
		"task not found",
		http.StatusNotFound,
	)

	ErrUnknownStatus = apperror.New(
		apperror.CodeInvalidInput,
		"status must be one of: todo, in-progress, done",
		http.StatusBadRequest,
	)

	ErrBackwardTransition = apperror.New(
		apperror.CodeInvalidTransition,
		"task status can only move forward",
		http.StatusConflict,
	)

	ErrInvalidDueDate = apperror.New(
		apperror.CodeInvalidInput,
		"due_date must be in YYYY-MM-DD format",
		http.StatusBadRequest,
	)
)
