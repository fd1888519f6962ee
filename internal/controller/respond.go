package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/surveyportal/surveyportal/internal/apperror"
	"github.com/surveyportal/surveyportal/internal/dto"
)

// RespondError maps service errors to HTTP responses. Anything not covered by
// a sentinel or validation error is a 500 with a generic message.
func RespondError(ctx *gin.Context, err error) {
	var ve *apperror.ValidationError
	switch {
	case errors.As(err, &ve):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    "validation_failed",
			Message: "Invalid request",
			Details: []string{ve.Error()},
		})
	case errors.Is(err, apperror.ErrNoChange):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{
			Code:    "no_change",
			Message: "Submitted answers are identical to the stored ones",
		})
	case errors.Is(err, apperror.ErrNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Code: "not_found", Message: "Resource not found"})
	case errors.Is(err, apperror.ErrForbidden):
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Code: "forbidden", Message: "Insufficient permissions"})
	case errors.Is(err, apperror.ErrUnauthorized):
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Code: "unauthorized", Message: "Invalid credentials"})
	default:
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal server error"})
	}
}

// UintParam parses a positive integer path parameter, writing the 400
// response itself on failure.
func UintParam(ctx *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil || value == 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    "invalid_param",
			Message: "Invalid " + name + " parameter",
		})
		return 0, false
	}
	return uint(value), true
}
