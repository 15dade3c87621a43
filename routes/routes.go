package routes

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/attendly/attendance-api/config"
	"github.com/attendly/attendance-api/handlers"
	"github.com/attendly/attendance-api/middlewares"
)

// Register wires all HTTP routes.
func Register(e *echo.Echo, db *gorm.DB, cfg *config.Config) {
	auth := handlers.NewAuthHandler(db, cfg)
	std := handlers.NewStudentHandler(db)
	att := handlers.NewAttendanceHandler(db)
	dash := handlers.NewDashboardHandler(db)
	exp := handlers.NewExportHandler(db)

	e.GET("/health", handlers.Health)

	api := e.Group("/api")
	api.POST("/login", auth.Login)
	api.POST("/logout", auth.Logout)

	priv := api.Group("", middlewares.RequireAuth(cfg.JWTSecret))
	priv.GET("/dashboard", dash.Snapshot)

	priv.GET("/students", std.List)
	priv.POST("/students", std.Create)

	priv.POST("/attendance", att.Record)
	priv.GET("/attendance", att.List)

	priv.GET("/export/excel", exp.Excel)
	priv.GET("/export/pdf", exp.PDF)
}
