package ui

import (
	"log"
	"net/http"

	"eantienda/internal/errors"
	"eantienda/ui/middleware"

	"github.com/gin-gonic/gin"
)

type generateRequest struct {
	Count  int    `json:"count"`
	Prefix string `json:"prefix"`
}

func (s *Server) handleCodes(c *gin.Context) {
	book := middleware.Workspace(c).Codes
	response := gin.H{
		"loaded":        book.Loaded(),
		"source":        book.Source,
		"last_batch":    book.LastBatch,
		"max_per_batch": s.codes.MaxPerBatch(),
		"history":       0,
	}
	if book.Loaded() {
		response["history"] = book.History.Len()
	}
	c.JSON(http.StatusOK, response)
}

func (s *Server) handleHistoryUpload(c *gin.Context) {
	file, header, err := s.uploadedFile(c)
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	log.Printf("[Server] History upload %s (%d bytes)", header.Filename, header.Size)
	n, err := s.codes.ImportHistory(middleware.Workspace(c).Codes, file, header.Filename)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"source": header.Filename, "codes": n})
}

func (s *Server) handleGenerate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidInput("invalid request body"))
		return
	}
	book := middleware.Workspace(c).Codes
	batch, err := s.codes.Generate(book, req.Count, req.Prefix)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"codes": batch, "history": book.History.Len()})
}

func (s *Server) handleHistoryExport(c *gin.Context) {
	file, err := s.codes.ExportHistory(middleware.Workspace(c).Codes)
	if err != nil {
		respondError(c, err)
		return
	}
	sendFile(c, file)
}

func (s *Server) handleCodesPDF(c *gin.Context) {
	file, err := s.codes.RenderLastBatch(middleware.Workspace(c).Codes)
	if err != nil {
		respondError(c, err)
		return
	}
	sendFile(c, file)
}
