package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/honorsociety/internal/app/models"
	"github.com/yigit/honorsociety/internal/app/models/dto"
	"github.com/yigit/honorsociety/internal/app/services"
	"github.com/yigit/honorsociety/internal/middleware"
	"github.com/yigit/honorsociety/internal/pkg/helpers"
)

// OfficerController handles officer endpoints
type OfficerController struct {
	officerService services.OfficerService
}

// NewOfficerController creates a new OfficerController
func NewOfficerController(officerService services.OfficerService) *OfficerController {
	return &OfficerController{officerService: officerService}
}

// ListOfficers lists officers
// @Summary List officers
// @Description Paginated officer list with filters, search and ordering
// @Tags officers
// @Produce json
// @Security BearerAuth
// @Param campus query int false "Filter by campus ID"
// @Param is_active query bool false "Filter by active flag"
// @Param search query string false "Search username, user names, position and campus name"
// @Param ordering query string false "Ordering fields: position, campus__name, is_active (prefix - for descending)"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(10)
// @Success 200 {object} dto.ListResponse[dto.OfficerResponse]
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not an active, verified officer"
// @Router /officers [get]
func (c *OfficerController) ListOfficers(ctx *gin.Context) {
	opts, err := helpers.ParseListOptions(ctx, models.OfficerOrderingFields, models.OfficerDefaultOrdering)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	filter, err := parseOfficerFilter(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.officerService.List(ctx.Request.Context(), filter, opts)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetOfficer returns one officer
// @Summary Get officer by ID
// @Tags officers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Officer ID"
// @Success 200 {object} dto.OfficerResponse
// @Failure 404 {object} dto.ErrorResponse "Officer not found"
// @Router /officers/{id} [get]
func (c *OfficerController) GetOfficer(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	resp, err := c.officerService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// CreateOfficer creates an officer
// @Summary Create officer
// @Tags officers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.OfficerRequest true "Officer"
// @Success 201 {object} dto.OfficerResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid data or user already an officer"
// @Router /officers [post]
func (c *OfficerController) CreateOfficer(ctx *gin.Context) {
	var req dto.OfficerRequest
	if !bindJSON(ctx, &req) {
		return
	}
	resp, err := c.officerService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// UpdateOfficer replaces an officer
// @Summary Update officer
// @Tags officers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Officer ID"
// @Param request body dto.OfficerRequest true "Officer"
// @Success 200 {object} dto.OfficerResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid data"
// @Failure 404 {object} dto.ErrorResponse "Officer not found"
// @Router /officers/{id} [put]
func (c *OfficerController) UpdateOfficer(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	var req dto.OfficerRequest
	if !bindJSON(ctx, &req) {
		return
	}
	resp, err := c.officerService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// PatchOfficer partially updates an officer
// @Summary Partially update officer
// @Tags officers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Officer ID"
// @Param request body dto.PatchOfficerRequest true "Fields to change"
// @Success 200 {object} dto.OfficerResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid data"
// @Failure 404 {object} dto.ErrorResponse "Officer not found"
// @Router /officers/{id} [patch]
func (c *OfficerController) PatchOfficer(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	var req dto.PatchOfficerRequest
	if !bindJSON(ctx, &req) {
		return
	}
	resp, err := c.officerService.Patch(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteOfficer deletes an officer
// @Summary Delete officer
// @Tags officers
// @Security BearerAuth
// @Param id path int true "Officer ID"
// @Success 204 "Deleted"
// @Failure 404 {object} dto.ErrorResponse "Officer not found"
// @Router /officers/{id} [delete]
func (c *OfficerController) DeleteOfficer(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	if err := c.officerService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
