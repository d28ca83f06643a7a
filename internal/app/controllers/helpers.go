package controllers

import (
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/yigit/honorsociety/internal/middleware"
	"github.com/yigit/honorsociety/internal/pkg/apperrors"
)

// parseID reads the :id path parameter. A non-numeric id matches no
// resource, so it is reported as not found.
func parseID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		middleware.HandleAPIError(ctx, apperrors.NewNotFoundError("Not found."))
		return 0, false
	}
	return id, true
}

// bindJSON decodes and validates the request body, writing the error
// response itself on failure. An empty body is validated as a zero value.
func bindJSON(ctx *gin.Context, obj interface{}) bool {
	err := ctx.ShouldBindJSON(obj)
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(obj)
	}
	if err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return false
	}
	return true
}
