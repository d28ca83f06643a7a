// Package services holds the business rules that sit between the HTTP
// controllers and the repositories.
//
// Services defined in this package:
//   - AuthService: login, refresh, logout, registration and profile
//   - CampusService, DepartmentService, CourseService, StudentService
//   - GWARecordService: records plus honor_eligible and statistics
//   - OfficerService: officer records (approval flags stay read-only)
package services

import (
	"errors"
	"fmt"

	"github.com/yigit/honorsociety/internal/app/models"
	"github.com/yigit/honorsociety/internal/app/models/dto"
	"github.com/yigit/honorsociety/internal/pkg/apperrors"
)

// referenceError reports a foreign key that points at nothing
func referenceError(field string) error {
	return apperrors.NewValidationError(field, fmt.Sprintf("Invalid %s - object does not exist.", field))
}

// checkReference converts a not-found lookup of a referenced row into a
// validation error on field. Other errors pass through.
func checkReference(field string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, apperrors.ErrResourceNotFound) {
		return referenceError(field)
	}
	return err
}

// positiveID rejects ids that can never exist
func positiveID(field string, id int64) error {
	if id <= 0 {
		return referenceError(field)
	}
	return nil
}

// newPage builds the paginated envelope for one page of models
func newPage[M any, R any](items []M, total int64, opts models.ListOptions, fn func(M) R) *dto.ListResponse[R] {
	page := dto.NewListResponse(dto.NewPaginationInfo(total, opts.Page, opts.PageSize), dto.MapSlice(items, fn))
	return &page
}
