package ui

import (
	_ "embed"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed templates/index.html
var indexPage []byte

// handleIndex serves the single-page interface
func (s *Server) handleIndex(c *gin.Context) {
	if len(indexPage) == 0 {
		log.Printf("[Server] Embedded index page is empty")
		c.String(http.StatusInternalServerError, "page not available")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexPage)
}
