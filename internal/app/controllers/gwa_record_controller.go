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

// GWARecordController handles GWA record endpoints
type GWARecordController struct {
	recordService services.GWARecordService
}

// NewGWARecordController creates a new GWARecordController
func NewGWARecordController(recordService services.GWARecordService) *GWARecordController {
	return &GWARecordController{recordService: recordService}
}

// ListGWARecords lists GWA records
// @Summary List GWA records
// @Description Paginated GWA record list with filters, search and ordering
// @Tags gwa-records
// @Produce json
// @Security BearerAuth
// @Param student query int false "Filter by student ID"
// @Param semester query string false "Filter by semester"
// @Param academic_year query string false "Filter by academic year"
// @Param min_gwa query number false "Only records with gwa >= min_gwa"
// @Param max_gwa query number false "Only records with gwa <= max_gwa"
// @Param search query string false "Search student number, student names, semester and academic year"
// @Param ordering query string false "Ordering fields: academic_year, semester, gwa, created_at (prefix - for descending)"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(10)
// @Success 200 {object} dto.ListResponse[dto.GWARecordResponse]
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not an active, verified officer"
// @Router /gwa-records [get]
func (c *GWARecordController) ListGWARecords(ctx *gin.Context) {
	opts, err := helpers.ParseListOptions(ctx, models.GWARecordOrderingFields, models.GWARecordDefaultOrdering)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	filter, err := parseGWARecordFilter(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.recordService.List(ctx.Request.Context(), filter, opts)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// HonorEligible lists records at or under the honor threshold
// @Summary List honor-eligible GWA records
// @Description Every record with gwa <= threshold (default 1.75). min_gwa, when given, replaces the threshold. Not paginated.
// @Tags gwa-records
// @Produce json
// @Security BearerAuth
// @Param min_gwa query number false "Threshold" default(1.75)
// @Param student query int false "Filter by student ID"
// @Param semester query string false "Filter by semester"
// @Param academic_year query string false "Filter by academic year"
// @Param ordering query string false "Ordering fields: academic_year, semester, gwa, created_at"
// @Success 200 {array} dto.GWARecordResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameter"
// @Router /gwa-records/honor_eligible [get]
func (c *GWARecordController) HonorEligible(ctx *gin.Context) {
	filter, err := parseGWARecordFilter(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	threshold := filter.MinGWA
	filter.MinGWA = nil
	ordering := helpers.ParseOrdering(ctx.Query("ordering"), models.GWARecordOrderingFields, models.GWARecordDefaultOrdering)

	records, err := c.recordService.HonorEligible(ctx.Request.Context(), filter, threshold, ordering)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, records)
}

// Statistics aggregates the filtered records
// @Summary GWA statistics
// @Description Count, average, best (lowest) and worst (highest) GWA, and the number of records at or under 1.75
// @Tags gwa-records
// @Produce json
// @Security BearerAuth
// @Param student query int false "Filter by student ID"
// @Param semester query string false "Filter by semester"
// @Param academic_year query string false "Filter by academic year"
// @Success 200 {object} dto.GWAStatisticsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameter"
// @Router /gwa-records/statistics [get]
func (c *GWARecordController) Statistics(ctx *gin.Context) {
	filter, err := parseGWARecordFilter(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	stats, err := c.recordService.Statistics(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stats)
}

// GetGWARecord returns one record
// @Summary Get GWA record by ID
// @Tags gwa-records
// @Produce json
// @Security BearerAuth
// @Param id path int true "GWA record ID"
// @Success 200 {object} dto.GWARecordResponse
// @Failure 404 {object} dto.ErrorResponse "GWA record not found"
// @Router /gwa-records/{id} [get]
func (c *GWARecordController) GetGWARecord(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	resp, err := c.recordService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// CreateGWARecord creates a record encoded by the caller
// @Summary Create GWA record
// @Tags gwa-records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.GWARecordRequest true "GWA record"
// @Success 201 {object} dto.GWARecordResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid data or duplicate student/semester/academic year"
// @Router /gwa-records [post]
func (c *GWARecordController) CreateGWARecord(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	var req dto.GWARecordRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.recordService.Create(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// UpdateGWARecord replaces a record; encoded_by becomes the caller
// @Summary Update GWA record
// @Tags gwa-records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "GWA record ID"
// @Param request body dto.GWARecordRequest true "GWA record"
// @Success 200 {object} dto.GWARecordResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid data"
// @Failure 404 {object} dto.ErrorResponse "GWA record not found"
// @Router /gwa-records/{id} [put]
func (c *GWARecordController) UpdateGWARecord(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	var req dto.GWARecordRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.recordService.Update(ctx.Request.Context(), id, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// PatchGWARecord partially updates a record
// @Summary Partially update GWA record
// @Tags gwa-records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "GWA record ID"
// @Param request body dto.PatchGWARecordRequest true "Fields to change"
// @Success 200 {object} dto.GWARecordResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid data"
// @Failure 404 {object} dto.ErrorResponse "GWA record not found"
// @Router /gwa-records/{id} [patch]
func (c *GWARecordController) PatchGWARecord(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	var req dto.PatchGWARecordRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.recordService.Patch(ctx.Request.Context(), id, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteGWARecord deletes a record
// @Summary Delete GWA record
// @Tags gwa-records
// @Security BearerAuth
// @Param id path int true "GWA record ID"
// @Success 204 "Deleted"
// @Failure 404 {object} dto.ErrorResponse "GWA record not found"
// @Router /gwa-records/{id} [delete]
func (c *GWARecordController) DeleteGWARecord(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	if err := c.recordService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
