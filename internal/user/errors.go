package user

import (
	"net/http"

	"kudos_web/internal/common"
)

var (
	ErrUserExists   = common.NewAPIError(http.StatusBadRequest, "USER_EXISTS", "User already exists with that email")
	ErrInvalidLogin = common.NewAPIError(http.StatusBadRequest, "INVALID_LOGIN", "Incorrect login")
	ErrUserNotFound = common.NewAPIError(http.StatusNotFound, "USER_NOT_FOUND", "User not found")
)
