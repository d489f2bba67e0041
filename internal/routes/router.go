// internal/routes/router.go
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/chandra122/facialtimesheet-final/internal/attendance"
	"github.com/chandra122/facialtimesheet-final/internal/handlers"
	"github.com/chandra122/facialtimesheet-final/internal/middleware"
	"github.com/chandra122/facialtimesheet-final/internal/storage"
)

func NewRouter(store *storage.Store, service *attendance.Service, jwtSecret string) *gin.Engine {
	r := gin.Default()

	authH := handlers.NewAuthHandler(store, jwtSecret)
	empH := handlers.NewEmployeeHandler(store)
	tsH := handlers.NewTimesheetHandler(service, store)

	r.GET("/health", handlers.Health)

	api := r.Group("/api/v1")
	{
		api.POST("/auth/signup", authH.SignUp)
		api.POST("/auth/signin", authH.SignIn)

		api.POST("/timesheet/check-in", tsH.CheckIn)
		api.POST("/timesheet/check-out", tsH.CheckOut)
		api.GET("/timesheet", tsH.List)
	}

	employees := r.Group("/api/v1/employees")
	employees.Use(middleware.AuthRequired(jwtSecret))
	{
		employees.POST("", empH.Create)
		employees.GET("", empH.List)
	}

	return r
}
