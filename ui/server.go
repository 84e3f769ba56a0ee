package ui

import (
	"log"
	"net/http"

	"eantienda/app"
	"eantienda/internal/session"
	"eantienda/ui/middleware"

	"github.com/gin-gonic/gin"
)

// Dependencies are the services the web interface drives
type Dependencies struct {
	Inventory      *app.InventoryService
	Codes          *app.CodesService
	Sessions       *session.Manager
	MaxUploadBytes int64
}

// Server represents the web server for the inventory and code tools
type Server struct {
	router    *gin.Engine
	inventory *app.InventoryService
	codes     *app.CodesService
	sessions  *session.Manager
	maxUpload int64
}

// NewServer creates a new web server instance with its routes registered
func NewServer(deps Dependencies) *Server {
	s := &Server{
		router:    gin.New(),
		inventory: deps.Inventory,
		codes:     deps.Codes,
		sessions:  deps.Sessions,
		maxUpload: deps.MaxUploadBytes,
	}
	if s.maxUpload <= 0 {
		s.maxUpload = 10 << 20
	}
	s.router.Use(gin.Logger(), gin.Recovery())
	s.setupRoutes()
	return s
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	withSession := s.router.Group("/", middleware.Session(s.sessions))
	withSession.GET("/", s.handleIndex)

	api := withSession.Group("/api")
	api.GET("/inventory", s.handleInventory)
	api.POST("/inventory/upload", s.handleInventoryUpload)
	api.GET("/inventory/suggestion", s.handleSuggestion)
	api.POST("/inventory/products", s.handleAddProduct)
	api.GET("/inventory/export", s.handleInventoryExport)
	api.POST("/labels", s.handleLabels)

	api.GET("/codes", s.handleCodes)
	api.POST("/codes/history/upload", s.handleHistoryUpload)
	api.POST("/codes/generate", s.handleGenerate)
	api.GET("/codes/history/export", s.handleHistoryExport)
	api.GET("/codes/pdf", s.handleCodesPDF)
}

// Handler exposes the router for tests and custom listeners
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	log.Printf("[Server] Starting eantienda on http://%s", addr)
	return s.router.Run(addr)
}
