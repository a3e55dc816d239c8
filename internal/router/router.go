package router

import (
	"github.com/gin-gonic/gin"
	prom "github.com/prometheus/client_golang/prometheus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "docgen/docs"
	"docgen/internal/config"
	"docgen/internal/handler"
	"docgen/internal/metrics"
	"docgen/internal/middleware"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Health   *handler.HealthHandler
	Entity   *handler.EntityHandler
	Client   *handler.ClientHandler
	Value    *handler.ValueHandler
	Template *handler.TemplateHandler
	Generate *handler.GenerateHandler
	History  *handler.HistoryHandler
}

// Setup configures the Gin engine with all routes and middleware. A nil
// registry disables the metrics endpoint.
func Setup(cfg *config.Config, h Handlers, recorder metrics.Recorder, reg *prom.Registry) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	if recorder != nil {
		r.Use(middleware.Metrics(recorder))
	}

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	if reg != nil {
		r.GET(cfg.Metrics.Path, gin.WrapH(metrics.HTTPHandler(reg)))
	}
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	entities := v1.Group("/entities")
	entities.POST("", h.Entity.Create)
	entities.GET("", h.Entity.List)
	entities.GET("/:id", h.Entity.GetByID)
	entities.PUT("/:id", h.Entity.Update)
	entities.DELETE("/:id", h.Entity.Delete)

	clients := v1.Group("/clients")
	clients.POST("", h.Client.Create)
	clients.GET("", h.Client.List)
	clients.GET("/:id", h.Client.GetByID)
	clients.PUT("/:id", h.Client.Update)
	clients.DELETE("/:id", h.Client.Delete)

	values := v1.Group("/values")
	values.POST("", h.Value.Set)
	values.GET("", h.Value.List)
	values.POST("/import", h.Value.Import)
	values.PUT("/:id", h.Value.Update)
	values.DELETE("/:id", h.Value.Delete)

	templates := v1.Group("/templates")
	templates.POST("/upload", h.Template.Upload)
	templates.GET("", h.Template.List)
	templates.GET("/:id", h.Template.GetByID)
	templates.GET("/:id/placeholders", h.Template.Placeholders)
	templates.DELETE("/:id", h.Template.Delete)

	v1.POST("/generate", h.Generate.Generate)

	history := v1.Group("/history")
	history.GET("", h.History.List)
	history.GET("/export", h.History.Export)
	history.GET("/:id", h.History.GetByID)

	return r
}
