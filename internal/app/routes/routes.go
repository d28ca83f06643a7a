package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/honorsociety/internal/app/controllers"
	"github.com/yigit/honorsociety/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	campusController *controllers.CampusController,
	departmentController *controllers.DepartmentController,
	courseController *controllers.CourseController,
	studentController *controllers.StudentController,
	gwaRecordController *controllers.GWARecordController,
	officerController *controllers.OfficerController,
	healthController *controllers.HealthController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/health", healthController.Health)

	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.GET("/auth/profile", authController.Profile)
	}

	// Every resource requires an active, verified officer
	officers := authenticated.Group("")
	officers.Use(authMiddleware.OfficerRequired())

	campuses := officers.Group("/campuses")
	{
		campuses.GET("", campusController.ListCampuses)
		campuses.POST("", campusController.CreateCampus)
		campuses.GET("/:id", campusController.GetCampus)
		campuses.PUT("/:id", campusController.UpdateCampus)
		campuses.PATCH("/:id", campusController.PatchCampus)
		campuses.DELETE("/:id", campusController.DeleteCampus)
	}

	departments := officers.Group("/departments")
	{
		departments.GET("", departmentController.ListDepartments)
		departments.POST("", departmentController.CreateDepartment)
		departments.GET("/:id", departmentController.GetDepartment)
		departments.PUT("/:id", departmentController.UpdateDepartment)
		departments.PATCH("/:id", departmentController.PatchDepartment)
		departments.DELETE("/:id", departmentController.DeleteDepartment)
	}

	courses := officers.Group("/courses")
	{
		courses.GET("", courseController.ListCourses)
		courses.POST("", courseController.CreateCourse)
		courses.GET("/:id", courseController.GetCourse)
		courses.PUT("/:id", courseController.UpdateCourse)
		courses.PATCH("/:id", courseController.PatchCourse)
		courses.DELETE("/:id", courseController.DeleteCourse)
	}

	students := officers.Group("/students")
	{
		students.GET("", studentController.ListStudents)
		students.POST("", studentController.CreateStudent)
		students.GET("/:id", studentController.GetStudent)
		students.PUT("/:id", studentController.UpdateStudent)
		students.PATCH("/:id", studentController.PatchStudent)
		students.DELETE("/:id", studentController.DeleteStudent)
	}

	records := officers.Group("/gwa-records")
	{
		records.GET("", gwaRecordController.ListGWARecords)
		records.POST("", gwaRecordController.CreateGWARecord)
		records.GET("/honor_eligible", gwaRecordController.HonorEligible)
		records.GET("/statistics", gwaRecordController.Statistics)
		records.GET("/:id", gwaRecordController.GetGWARecord)
		records.PUT("/:id", gwaRecordController.UpdateGWARecord)
		records.PATCH("/:id", gwaRecordController.PatchGWARecord)
		records.DELETE("/:id", gwaRecordController.DeleteGWARecord)
	}

	officerRoutes := officers.Group("/officers")
	{
		officerRoutes.GET("", officerController.ListOfficers)
		officerRoutes.POST("", officerController.CreateOfficer)
		officerRoutes.GET("/:id", officerController.GetOfficer)
		officerRoutes.PUT("/:id", officerController.UpdateOfficer)
		officerRoutes.PATCH("/:id", officerController.PatchOfficer)
		officerRoutes.DELETE("/:id", officerController.DeleteOfficer)
	}

	router.NoRoute(middleware.NotFoundHandler)
}
