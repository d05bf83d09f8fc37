package kudo

import (
	"net/http"

	"kudos_web/internal/common"
)

var (
	ErrEmptyMessage      = common.NewAPIError(http.StatusBadRequest, "EMPTY_MESSAGE", "Please provide a message")
	ErrInvalidStyle      = common.NewAPIError(http.StatusBadRequest, "INVALID_STYLE", "Please choose a valid color and emoji")
	ErrRecipientNotFound = common.NewAPIError(http.StatusNotFound, "RECIPIENT_NOT_FOUND", "That user does not exist")
	ErrSelfKudo          = common.NewAPIError(http.StatusBadRequest, "SELF_KUDO", "You cannot send a kudo to yourself")
)
