package ui

import (
	"encoding/json"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"

	"eantienda/internal/errors"
	"eantienda/ui/middleware"

	"github.com/gin-gonic/gin"
)

type addProductRequest struct {
	Name string `json:"name"`
	EAN  string `json:"ean"`
}

type labelsRequest struct {
	Products []string `json:"products"`
}

// uploadedFile opens the multipart field "file" within the upload limit
func (s *Server) uploadedFile(c *gin.Context) (multipart.File, *multipart.FileHeader, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUpload)
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		return nil, nil, errors.InvalidInput(fmt.Sprintf("no file uploaded (the limit is %.0f MB)", float64(s.maxUpload)/(1<<20)))
	}
	if header.Size > s.maxUpload {
		file.Close()
		return nil, nil, errors.InvalidInput(fmt.Sprintf("file size (%.1f MB) exceeds the limit", float64(header.Size)/(1<<20)))
	}
	return file, header, nil
}

func (s *Server) handleInventory(c *gin.Context) {
	table := middleware.Workspace(c).Inventory
	rows := table.Rows()
	response := gin.H{
		"loaded":        table.Loaded(),
		"source":        table.SourceName(),
		"prefix":        s.inventory.Prefix(),
		"max_selection": s.inventory.MaxSelection(),
		"rows":          rows,
	}
	if suggestion, err := s.inventory.Suggest(table); err == nil {
		response["suggestion"] = suggestion
	}
	c.JSON(http.StatusOK, response)
}

func (s *Server) handleInventoryUpload(c *gin.Context) {
	file, header, err := s.uploadedFile(c)
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	log.Printf("[Server] Inventory upload %s (%d bytes)", header.Filename, header.Size)
	result, err := s.inventory.Import(middleware.Workspace(c).Inventory, file, header.Filename)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleSuggestion(c *gin.Context) {
	suggestion, err := s.inventory.Suggest(middleware.Workspace(c).Inventory)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ean": suggestion})
}

func (s *Server) handleAddProduct(c *gin.Context) {
	var req addProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidInput("invalid request body"))
		return
	}
	row, err := s.inventory.AddProduct(middleware.Workspace(c).Inventory, req.Name, req.EAN)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product": row})
}

func (s *Server) handleInventoryExport(c *gin.Context) {
	file, err := s.inventory.Export(middleware.Workspace(c).Inventory)
	if err != nil {
		respondError(c, err)
		return
	}
	sendFile(c, file)
}

// handleLabels returns the label PDF; skipped products are listed as JSON in X-Label-Failures
func (s *Server) handleLabels(c *gin.Context) {
	var req labelsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidInput("invalid request body"))
		return
	}
	file, failures, err := s.inventory.RenderLabels(middleware.Workspace(c).Inventory, req.Products)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(failures) > 0 {
		encoded, err := json.Marshal(failures)
		if err == nil {
			c.Header("X-Label-Failures", string(encoded))
		}
	}
	sendFile(c, file)
}
