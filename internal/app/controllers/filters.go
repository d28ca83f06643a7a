package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/honorsociety/internal/app/models"
	"github.com/yigit/honorsociety/internal/pkg/helpers"
)

// Query parameter => typed filter mappings, one per resource.

func parseDepartmentFilter(ctx *gin.Context) (f models.DepartmentFilter, err error) {
	f.CampusID, err = helpers.QueryInt64(ctx, "campus")
	return f, err
}

func parseCourseFilter(ctx *gin.Context) (f models.CourseFilter, err error) {
	f.DepartmentID, err = helpers.QueryInt64(ctx, "department")
	return f, err
}

func parseStudentFilter(ctx *gin.Context) (f models.StudentFilter, err error) {
	if f.CampusID, err = helpers.QueryInt64(ctx, "campus"); err != nil {
		return f, err
	}
	if f.DepartmentID, err = helpers.QueryInt64(ctx, "department"); err != nil {
		return f, err
	}
	f.YearLevel, err = helpers.QueryInt(ctx, "year_level")
	return f, err
}

func parseGWARecordFilter(ctx *gin.Context) (f models.GWARecordFilter, err error) {
	if f.StudentID, err = helpers.QueryInt64(ctx, "student"); err != nil {
		return f, err
	}
	f.Semester = helpers.QueryString(ctx, "semester")
	f.AcademicYear = helpers.QueryString(ctx, "academic_year")
	if f.MinGWA, err = helpers.QueryFloat(ctx, "min_gwa"); err != nil {
		return f, err
	}
	f.MaxGWA, err = helpers.QueryFloat(ctx, "max_gwa")
	return f, err
}

func parseOfficerFilter(ctx *gin.Context) (f models.OfficerFilter, err error) {
	if f.CampusID, err = helpers.QueryInt64(ctx, "campus"); err != nil {
		return f, err
	}
	f.IsActive, err = helpers.QueryBool(ctx, "is_active")
	return f, err
}
