package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/honorsociety/internal/app/models/dto"
	"github.com/yigit/honorsociety/internal/pkg/apperrors"
	"github.com/yigit/honorsociety/internal/pkg/logger"
)

// errorKind pairs a base error with its HTTP status and default code
type errorKind struct {
	target error
	status int
	code   dto.ErrorCode
}

// Checked in order; the first match wins.
var errorKinds = []errorKind{
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
	{apperrors.ErrBadRequest, http.StatusBadRequest, dto.ErrorCodeBadRequest},
	{apperrors.ErrConflict, http.StatusBadRequest, dto.ErrorCodeResourceAlreadyExists},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken},
	{apperrors.ErrTokenRevoked, http.StatusUnauthorized, dto.ErrorCodeInvalidToken},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized, dto.ErrorCodeUnauthorized},
	{apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden},
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
}

// HandleAPIError writes the error body and status for err and aborts the chain
func HandleAPIError(c *gin.Context, err error) {
	status, body := errorResponse(err)
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Unhandled error")
	}
	c.AbortWithStatusJSON(status, body)
}

func errorResponse(err error) (int, *dto.ErrorResponse) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		err = validationError(verrs)
	}

	ce, isCustom := apperrors.AsCustomError(err)
	message := err.Error()
	if isCustom && ce.Message != "" {
		message = ce.Message
	}

	for _, kind := range errorKinds {
		if !errors.Is(err, kind.target) {
			continue
		}
		resp := dto.NewErrorResponse(kind.code, message)
		if isCustom {
			if ce.Code != "" {
				resp.Code = dto.ErrorCode(ce.Code)
			}
			resp.WithField(ce.Field)
			if ce.Details != nil {
				resp.WithDetails(ce.Details)
			}
		}
		return kind.status, resp
	}

	// Internal errors only expose a message when the service chose one
	resp := dto.NewErrorResponse(dto.ErrorCodeInternalServer, "Internal server error.")
	if isCustom && errors.Is(err, apperrors.ErrInternal) {
		resp.Error = message
		if ce.Code != "" {
			resp.Code = dto.ErrorCode(ce.Code)
		}
	}
	return http.StatusInternalServerError, resp
}

// NotFoundHandler answers unknown routes with the standard error body
func NotFoundHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, dto.NewErrorResponse(dto.ErrorCodeResourceNotFound, "Not found."))
}
