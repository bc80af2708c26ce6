// Package server contain implementation of go-gin-server and each route handlers
package server

import (
	"net/http"
	"os"
	"strings"

	"straterra-backend/internal/auth"
	"straterra-backend/internal/controller/application"
	"straterra-backend/internal/controller/career"
	"straterra-backend/internal/controller/contact"
	"straterra-backend/internal/controller/project"
	"straterra-backend/internal/controller/service"
	"straterra-backend/internal/controller/setting"
	"straterra-backend/internal/controller/upload"
	"straterra-backend/internal/middleware"
	"straterra-backend/internal/model"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	// Init swagger doc
	_ "straterra-backend/docs"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes will register each http endpoint routes to bound Server instance
func (s *MyServer) RegisterRoutes() http.Handler {
	r := gin.Default()

	allowOrginsStr := os.Getenv("ALLOW_ORIGIN")
	allowOrgins := strings.Split(allowOrginsStr, ",")

	lAuth := auth.NewLocalAuthHandler(s.DB)
	careers := career.NewCareerController(s.DB)
	applications := application.NewApplicationController(s.DB)
	contacts := contact.NewContactController(s.DB, s.Mailer)
	services := service.NewServiceController(s.DB)
	projects := project.NewProjectController(s.DB)
	settings := setting.NewSettingController(s.DB)
	uploads := upload.NewUploadController(s.Storage)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrgins, // Add your frontend URL
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true, // Enable cookies/auth
	}))
	r.Use(middleware.SafeHeader())

	r.GET("/", s.HelloWorldHandler)
	r.GET("/health", s.healthHandler)
	v1 := r.Group("/api/v1")
	{
		authRoute := v1.Group("/auth")
		{
			authRoute.POST("login", middleware.EnvRateLimitMiddleware(), lAuth.LocalLoginHandler)
		}

		// Public routes: everything the marketing site reads plus the two
		// public form submissions
		jobRoute := v1.Group("/jobs")
		{
			jobRoute.GET("", careers.GetCareers)
			jobRoute.GET("by-slug/:slug", careers.GetCareerBySlug)
		}

		serviceRoute := v1.Group("/services")
		{
			serviceRoute.GET("", services.GetServices)
			serviceRoute.GET("by-slug/:slug", services.GetServiceBySlug)
		}

		projectRoute := v1.Group("/projects")
		{
			projectRoute.GET("", projects.GetProjects)
			projectRoute.GET("by-slug/:slug", projects.GetProjectBySlug)
		}

		v1.GET("/settings", settings.GetSettings)

		publicForms := v1.Group("")
		{
			publicForms.Use(middleware.EnvRateLimitMiddleware())
			publicForms.POST("/applications", applications.SubmitApplicationHandler)
			publicForms.POST("/contact", contacts.SubmitContactHandler)
			publicForms.POST("/upload/resume", middleware.SizeLimit(5<<20), uploads.UploadResume)
		}

		// Admin routes: every mutation on site content plus the inbox views
		needAdmin := v1.Group("")
		{
			needAdmin.Use(middleware.RequireAuth(s.DB), middleware.CheckRole(model.RoleAdmin))

			needAdmin.GET("/jobs/:id", careers.GetCareerByID)
			needAdmin.POST("/jobs", careers.CreateCareerHandler)
			needAdmin.PUT("/jobs/:id", careers.EditCareer)
			needAdmin.DELETE("/jobs/:id", careers.DeleteCareer)

			needAdmin.GET("/applications", applications.GetApplications)
			needAdmin.PATCH("/applications/:id", applications.UpdateApplicationStatus)
			needAdmin.DELETE("/applications/:id", applications.DeleteApplication)

			needAdmin.GET("/contact", contacts.GetSubmissions)
			needAdmin.PATCH("/contact", contacts.UpdateSubmissionStatus)
			needAdmin.DELETE("/contact", contacts.DeleteSubmission)

			needAdmin.POST("/services", services.CreateServiceHandler)
			needAdmin.PUT("/services/:id", services.EditService)
			needAdmin.DELETE("/services/:id", services.DeleteService)

			needAdmin.POST("/projects", projects.CreateProjectHandler)
			needAdmin.PUT("/projects/:id", projects.EditProject)
			needAdmin.DELETE("/projects/:id", projects.DeleteProject)

			needAdmin.PUT("/settings", settings.UpsertSettings)
			needAdmin.DELETE("/settings/:key", settings.DeleteSetting)

			needAdmin.POST("/upload/image", middleware.SizeLimit(10<<20), uploads.UploadImage)
		}
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// HelloWorldHandler handle request by return message "Hello World"
func (s *MyServer) HelloWorldHandler(c *gin.Context) {
	resp := make(map[string]string)
	resp["message"] = "Hello World"

	c.JSON(http.StatusOK, resp)
}

func (s *MyServer) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.DB.Health())
}
