package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"event-bookings/internal/domain/user"
	"event-bookings/internal/handler/api"
	"event-bookings/internal/handler/middleware"
	"event-bookings/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, bookingHandler *api.BookingHandler, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, cfg, bookingHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, cfg config.Config, h *api.BookingHandler, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck(cfg.Store.Driver))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	member := authMiddleware.RequireRoleAtLeast(user.RoleMember)
	admin := authMiddleware.RequireRoleAtLeast(user.RoleAdmin)

	apiGroup := engine.Group("/api")
	{
		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		addRoutes(bookings, []route{
			{Method: http.MethodGet, Path: "/admin-bookings", Handler: h.ListAll, Mw: []gin.HandlerFunc{admin}},
			{Method: http.MethodGet, Path: "/user-bookings", Handler: h.ListMine, Mw: []gin.HandlerFunc{member}},
			{Method: http.MethodGet, Path: "/stats", Handler: h.Stats, Mw: []gin.HandlerFunc{admin}},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Get},
			{Method: http.MethodPost, Path: "", Handler: h.Create, Mw: []gin.HandlerFunc{member}},
			{Method: http.MethodPut, Path: "/:id", Handler: h.Update},
			{Method: http.MethodPatch, Path: "/:id/cancel", Handler: h.Cancel, Mw: []gin.HandlerFunc{member}},
			{Method: http.MethodDelete, Path: "/:id", Handler: h.Delete, Mw: []gin.HandlerFunc{admin}},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(storeDriver string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Service is healthy",
			"store":   storeDriver,
		})
	}
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		handlers := make([]gin.HandlerFunc, 0, len(r.Mw)+1)
		handlers = append(handlers, r.Mw...)
		handlers = append(handlers, r.Handler)
		g.Handle(r.Method, r.Path, handlers...)
	}
}
