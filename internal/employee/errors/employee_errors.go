package employeeerrors

import (
	"net/http"

	"lemonpay/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrEmptyIdentifier = apperror.New(
		apperror.CodeInvalidInput,
		"identifier must not be empty",
		http.StatusBadRequest,
	)
	ErrDuplicateEmployee = apperror.New(
		apperror.CodeConflict,
		"employee number or email already exists",
		http.StatusConflict,
	)
	ErrInvalidHireDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid hire_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
