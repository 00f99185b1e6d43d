package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/siddharth180703/NextHire/internal/cache"
	"github.com/siddharth180703/NextHire/pkg/model"
	"go.uber.org/zap"
)

func (app *application) routes() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(app.requestLogger())
	r.Use(app.corsMiddleware())
	r.Use(app.rateLimit())

	r.GET("/health", app.health)

	h := app.Handler
	recruiter := app.RequireRole(model.UserRoleRecruiter)
	student := app.RequireRole(model.UserRoleStudent)

	v1 := r.Group("/api/v1")

	user := v1.Group("/user")
	{
		user.POST("/register", h.Register)
		user.POST("/login", h.Login)
	}
	authedUser := user.Group("/", app.AuthMiddleware())
	{
		authedUser.GET("/logout", h.Logout)
		authedUser.GET("/me", h.Me)
		authedUser.POST("/profile/update", h.UpdateProfile)
	}

	company := v1.Group("/company", app.AuthMiddleware(), recruiter)
	{
		company.POST("/register", h.RegisterCompany)
		company.GET("/get", h.GetCompanies)
		company.GET("/get/:id", h.GetCompanyByID)
		company.PUT("/update/:id", h.UpdateCompany)
	}

	job := v1.Group("/job", app.AuthMiddleware())
	{
		job.POST("/post", recruiter, h.PostJob)
		job.PUT("/update/:id", recruiter, h.UpdateJob)
		job.GET("/get", h.GetAllJobs)
		job.GET("/getadminjobs", recruiter, h.GetAdminJobs)
		job.GET("/get/:id", h.GetJobByID)
	}

	applications := v1.Group("/application", app.AuthMiddleware())
	{
		applications.POST("/apply/:id", student, h.Apply)
		applications.GET("/get", student, h.GetAppliedJobs)
		applications.GET("/:id/applicants", recruiter, h.GetApplicants)
		applications.POST("/status/:id/update", recruiter, h.UpdateStatus)
	}

	return r
}

// health reports whether Postgres and Redis answer within two seconds.
func (app *application) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := gin.H{"database": "up", "redis": "up"}
	status := http.StatusOK
	if app.DB != nil {
		if err := app.DB.Ping(ctx); err != nil {
			app.Logger.Warn("health: database ping", zap.Error(err))
			checks["database"] = "down"
			status = http.StatusServiceUnavailable
		}
	}
	if app.Redis != nil {
		if err := cache.Ping(ctx, app.Redis); err != nil {
			app.Logger.Warn("health: redis ping", zap.Error(err))
			checks["redis"] = "down"
			status = http.StatusServiceUnavailable
		}
	}

	c.JSON(status, gin.H{"success": status == http.StatusOK, "env": app.Config.Env, "checks": checks})
}
