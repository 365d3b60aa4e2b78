package routes

import (
	"net/http"

	"github.com/ASahithi2005/NoteNexus-backend/internal/app/controllers"
	"github.com/ASahithi2005/NoteNexus-backend/internal/app/models"
	"github.com/ASahithi2005/NoteNexus-backend/internal/middleware"
	"github.com/ASahithi2005/NoteNexus-backend/internal/pkg/logger"
	"github.com/ASahithi2005/NoteNexus-backend/internal/pkg/validation"
	"github.com/gin-gonic/gin"
)

// Controllers groups the handlers mounted by SetupRouter
type Controllers struct {
	Auth         *controllers.AuthController
	Course       *controllers.CourseController
	CourseDetail *controllers.CourseDetailController
	Note         *controllers.NoteController
	User         *controllers.UserController
}

// SetupRouter configures all application routes under /api.
// authLimit guards the public auth routes and may be nil.
func SetupRouter(
	router *gin.Engine,
	ctrl Controllers,
	authMiddleware *middleware.AuthMiddleware,
	authLimit gin.HandlerFunc,
) {
	if err := validation.RegisterBindingRules(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to register binding rules")
	}

	api := router.Group("/api")

	api.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Public Auth routes ---
	auth := api.Group("/auth")
	if authLimit != nil {
		auth.Use(authLimit)
	}
	{
		auth.POST("/signin", ctrl.Auth.Signup)
		auth.POST("/login", ctrl.Auth.Login)
	}

	// --- Authenticated Routes Group ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	mentorOnly := authMiddleware.RoleRequired(models.RoleMentor)
	studentOnly := authMiddleware.RoleRequired(models.RoleStudent)

	courses := authenticated.Group("/courses")
	{
		courses.GET("", ctrl.Course.ListCourses)
		courses.POST("", mentorOnly, ctrl.Course.CreateCourse)
		courses.POST("/create", mentorOnly, ctrl.Course.CreateCourse)
		courses.DELETE("/:id", mentorOnly, ctrl.Course.DeleteCourse)
		courses.POST("/join/:id", studentOnly, ctrl.Course.JoinCourse)
		courses.GET("/:id/students", mentorOnly, ctrl.Course.CourseStudents)
	}

	courseDetail := authenticated.Group("/courseDetail")
	{
		courseDetail.GET("/:id", ctrl.CourseDetail.GetCourseDetail)
		courseDetail.POST("/:id/:section", ctrl.CourseDetail.UploadFile)
		courseDetail.PUT("/:id/description", ctrl.CourseDetail.UpdateDescription)
		courseDetail.DELETE("/:id/:section/:index", ctrl.CourseDetail.DeleteFile)
		courseDetail.POST("/:id/:section/:index/summarize", ctrl.CourseDetail.Summarize)
	}

	aggregates := authenticated.Group("/courseAggregates")
	{
		aggregates.GET("/assignments", ctrl.Course.AssignmentQuestions)
		aggregates.GET("/notes", ctrl.Course.NoteFiles)
	}

	notes := authenticated.Group("/notes")
	{
		notes.GET("", ctrl.Note.ListNotes)
		notes.POST("", ctrl.Note.CreateNote)
		notes.POST("/add", ctrl.Note.CreateNote)
		notes.PUT("/:id", ctrl.Note.UpdateNote)
		notes.DELETE("/:id", ctrl.Note.DeleteNote)
	}

	users := authenticated.Group("/users")
	{
		users.GET("/me", ctrl.User.GetProfile)
		users.PUT("/me", ctrl.User.UpdateProfile)
		users.PUT("/change-password", ctrl.User.ChangePassword)
		users.DELETE("/me", ctrl.User.DeleteAccount)
	}

	authenticated.GET("/students", ctrl.User.ListStudents)
}
