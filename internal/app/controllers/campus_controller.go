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

// CampusController handles campus endpoints
type CampusController struct {
	campusService services.CampusService
}

// NewCampusController creates a new CampusController
func NewCampusController(campusService services.CampusService) *CampusController {
	return &CampusController{campusService: campusService}
}

// ListCampuses lists campuses
// @Summary List campuses
// @Description Paginated campus list with search and ordering
// @Tags campuses
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search name and code"
// @Param ordering query string false "Ordering fields: name, code (prefix - for descending)"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(10)
// @Success 200 {object} dto.ListResponse[dto.CampusResponse]
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not an active, verified officer"
// @Router /campuses [get]
func (c *CampusController) ListCampuses(ctx *gin.Context) {
	opts, err := helpers.ParseListOptions(ctx, models.CampusOrderingFields, models.CampusDefaultOrdering)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.campusService.List(ctx.Request.Context(), models.CampusFilter{}, opts)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetCampus returns one campus
// @Summary Get campus by ID
// @Tags campuses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Campus ID"
// @Success 200 {object} dto.CampusResponse
// @Failure 404 {object} dto.ErrorResponse "Campus not found"
// @Router /campuses/{id} [get]
func (c *CampusController) GetCampus(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	resp, err := c.campusService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// CreateCampus creates a campus
// @Summary Create campus
// @Tags campuses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CampusRequest true "Campus"
// @Success 201 {object} dto.CampusResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid data or duplicate name/code"
// @Router /campuses [post]
func (c *CampusController) CreateCampus(ctx *gin.Context) {
	var req dto.CampusRequest
	if !bindJSON(ctx, &req) {
		return
	}
	resp, err := c.campusService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// UpdateCampus replaces a campus
// @Summary Update campus
// @Tags campuses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Campus ID"
// @Param request body dto.CampusRequest true "Campus"
// @Success 200 {object} dto.CampusResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid data"
// @Failure 404 {object} dto.ErrorResponse "Campus not found"
// @Router /campuses/{id} [put]
func (c *CampusController) UpdateCampus(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	var req dto.CampusRequest
	if !bindJSON(ctx, &req) {
		return
	}
	resp, err := c.campusService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// PatchCampus partially updates a campus
// @Summary Partially update campus
// @Tags campuses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Campus ID"
// @Param request body dto.PatchCampusRequest true "Fields to change"
// @Success 200 {object} dto.CampusResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid data"
// @Failure 404 {object} dto.ErrorResponse "Campus not found"
// @Router /campuses/{id} [patch]
func (c *CampusController) PatchCampus(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	var req dto.PatchCampusRequest
	if !bindJSON(ctx, &req) {
		return
	}
	resp, err := c.campusService.Patch(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteCampus deletes a campus and everything under it
// @Summary Delete campus
// @Tags campuses
// @Security BearerAuth
// @Param id path int true "Campus ID"
// @Success 204 "Deleted"
// @Failure 404 {object} dto.ErrorResponse "Campus not found"
// @Router /campuses/{id} [delete]
func (c *CampusController) DeleteCampus(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	if err := c.campusService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
