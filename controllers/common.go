package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hotel-core/services"
	"hotel-core/utils"
)

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Unknown errors stay opaque to the client.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.JSONError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrConflict), errors.Is(err, services.ErrRoomUnavailable):
		utils.JSONError(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidTransition), errors.Is(err, services.ErrInvalidState):
		utils.JSONError(c, http.StatusUnprocessableEntity, err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "internal error")
	}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}
