package handlers

import (
	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/apfdpotter-ops/dryer-dashboard/internal/logger"
	"github.com/apfdpotter-ops/dryer-dashboard/internal/service"
)

// Handler wires the HTTP layer to services and logging.
type Handler struct {
	services  *service.Service
	log       *logger.Logger
	staticDir string
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// SetStaticDir points the kiosk routes at the directory holding index.html.
func (h *Handler) SetStaticDir(dir string) {
	h.staticDir = dir
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Kiosk endpoints: open, read-only
	router.GET("/status", h.health)
	router.GET("/data", h.getData)
	router.GET("/api/sensors", h.getSensors)
	if h.staticDir != "" {
		router.StaticFile("/", h.staticDir+"/index.html")
	}

	// Live readings over the same port
	router.GET("/ws", h.wsConnect)

	h.registerAuthRoutes(router)
	h.registerAPIRoutes(router)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

// Operator endpoints: everything that mutates logging state or reads history.
func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		h.registerLoggerRoutes(api)
		h.registerAugerRoutes(api)
		h.registerEventRoutes(api)
	}
}

func (h *Handler) registerLoggerRoutes(api *gin.RouterGroup) {
	lg := api.Group("/logger")
	{
		lg.POST("/start", h.startLogger)
		lg.POST("/stop", h.stopLogger)
		lg.GET("/status", h.loggerStatus)
		lg.POST("/sample", h.sampleOnce)
		lg.GET("/logs", h.listLogs)
		lg.GET("/logs/latest", h.latestRow)
		lg.GET("/logs/:name/rows", h.logRows)
	}
}

func (h *Handler) registerAugerRoutes(api *gin.RouterGroup) {
	auger := api.Group("/auger")
	{
		auger.GET("", h.getAuger)
		auger.POST("", h.setAuger)
	}
}

func (h *Handler) registerEventRoutes(api *gin.RouterGroup) {
	logs := api.Group("/logs")
	{
		logs.GET("/", h.getEvents)
	}
}
