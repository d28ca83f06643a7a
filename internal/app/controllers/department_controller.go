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

// DepartmentController handles department endpoints
type DepartmentController struct {
	departmentService services.DepartmentService
}

// NewDepartmentController creates a new DepartmentController
func NewDepartmentController(departmentService services.DepartmentService) *DepartmentController {
	return &DepartmentController{departmentService: departmentService}
}

// ListDepartments lists departments
// @Summary List departments
// @Description Paginated department list with filters, search and ordering
// @Tags departments
// @Produce json
// @Security BearerAuth
// @Param campus query int false "Filter by campus ID"
// @Param search query string false "Search name, code and campus name"
// @Param ordering query string false "Ordering fields: name, code, campus__name (prefix - for descending)"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(10)
// @Success 200 {object} dto.ListResponse[dto.DepartmentResponse]
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not an active, verified officer"
// @Router /departments [get]
func (c *DepartmentController) ListDepartments(ctx *gin.Context) {
	opts, err := helpers.ParseListOptions(ctx, models.DepartmentOrderingFields, models.DepartmentDefaultOrdering)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	filter, err := parseDepartmentFilter(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.departmentService.List(ctx.Request.Context(), filter, opts)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetDepartment returns one department
// @Summary Get department by ID
// @Tags departments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Department ID"
// @Success 200 {object} dto.DepartmentResponse
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Router /departments/{id} [get]
func (c *DepartmentController) GetDepartment(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	resp, err := c.departmentService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// CreateDepartment creates a department
// @Summary Create department
// @Tags departments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.DepartmentRequest true "Department"
// @Success 201 {object} dto.DepartmentResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid data or duplicate name/code"
// @Router /departments [post]
func (c *DepartmentController) CreateDepartment(ctx *gin.Context) {
	var req dto.DepartmentRequest
	if !bindJSON(ctx, &req) {
		return
	}
	resp, err := c.departmentService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// UpdateDepartment replaces a department
// @Summary Update department
// @Tags departments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Department ID"
// @Param request body dto.DepartmentRequest true "Department"
// @Success 200 {object} dto.DepartmentResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid data"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Router /departments/{id} [put]
func (c *DepartmentController) UpdateDepartment(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	var req dto.DepartmentRequest
	if !bindJSON(ctx, &req) {
		return
	}
	resp, err := c.departmentService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// PatchDepartment partially updates a department
// @Summary Partially update department
// @Tags departments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Department ID"
// @Param request body dto.PatchDepartmentRequest true "Fields to change"
// @Success 200 {object} dto.DepartmentResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid data"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Router /departments/{id} [patch]
func (c *DepartmentController) PatchDepartment(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	var req dto.PatchDepartmentRequest
	if !bindJSON(ctx, &req) {
		return
	}
	resp, err := c.departmentService.Patch(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteDepartment deletes a department and its courses and students
// @Summary Delete department
// @Tags departments
// @Security BearerAuth
// @Param id path int true "Department ID"
// @Success 204 "Deleted"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Router /departments/{id} [delete]
func (c *DepartmentController) DeleteDepartment(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	if err := c.departmentService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
