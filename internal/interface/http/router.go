package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/smart-wardrobe/internal/infra/config"
)

// NewRouter wires up the console routes and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	// Item and outfit ids are service-minted and may contain reserved characters.
	router.UseRawPath = true
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger),
		errorHandlingMiddleware(handler.logger),
	)

	router.GET("/", handler.Index)
	router.GET("/lookbook", handler.Lookbook)
	router.GET("/export/lookbook.pdf", handler.LookbookPDF)
	router.GET("/api/state", handler.State)
	router.GET("/healthz", handler.Health)

	actions := router.Group("/actions")
	{
		actions.POST("/upload", handler.Upload)
		actions.POST("/filter", handler.Filter)
		actions.POST("/refresh", handler.Refresh)
		actions.POST("/items/:id/edit", handler.EditItem)
		actions.POST("/items/:id/delete", handler.DeleteItem)
		actions.POST("/outfits/suggest", handler.SuggestOutfits)
		actions.POST("/outfits/:id/save", handler.SaveOutfit)
		actions.POST("/chat", handler.Chat)
		actions.POST("/chat/toggle", handler.ToggleChat)
		actions.POST("/organize", handler.Organize)
		actions.POST("/import/drive", handler.ImportDrive)
		actions.POST("/alerts/dismiss", handler.DismissAlerts)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("http request", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "latency_ms", latency.Milliseconds())
	}
}
