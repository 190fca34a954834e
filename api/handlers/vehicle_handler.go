package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/rohingrover/absuma/api/middleware"
	"github.com/rohingrover/absuma/config"
	"github.com/rohingrover/absuma/internal/models"
	"github.com/rohingrover/absuma/internal/repository"
	"github.com/rohingrover/absuma/internal/service"
)

var allowedDocumentExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".pdf":  true,
}

// VehicleHandler handles vehicle CRUD, search and document endpoints
type VehicleHandler struct {
	vehicles service.VehicleService
	uploads  config.UploadConfig
	log      *logrus.Logger
}

// NewVehicleHandler creates a new VehicleHandler instance
func NewVehicleHandler(vehicles service.VehicleService, uploads config.UploadConfig, log *logrus.Logger) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles, uploads: uploads, log: log}
}

// Create registers a new vehicle with optional financing and driver details
func (h *VehicleHandler) Create(c *gin.Context) {
	var in service.VehicleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	vehicle, err := h.vehicles.Create(c.Request.Context(), &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, vehicle)
}

// Update modifies an existing vehicle and its associated rows
func (h *VehicleHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var in service.VehicleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	vehicle, err := h.vehicles.Update(c.Request.Context(), id, &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

// Get returns a single vehicle with financing and documents preloaded
func (h *VehicleHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	vehicle, err := h.vehicles.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

// List returns a filtered, paginated page of vehicles
func (h *VehicleHandler) List(c *gin.Context) {
	filter := repository.VehicleFilter{
		Status: c.Query("status"),
		Owner:  c.Query("owner"),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 20),
	}
	if year := c.Query("year"); year != "" {
		filter.Year, _ = strconv.Atoi(year)
	}
	if financed := c.Query("is_financed"); financed != "" {
		v := financed == "true" || financed == "1"
		filter.IsFinanced = &v
	}

	vehicles, total, err := h.vehicles.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  vehicles,
		"total": total,
		"page":  filter.Page,
		"limit": filter.Limit,
	})
}

// Delete removes a vehicle together with its financing, driver and documents
func (h *VehicleHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.vehicles.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Vehicle deleted successfully"})
}

// Search returns ranked vehicle matches for a partial registration number
func (h *VehicleHandler) Search(c *gin.Context) {
	results, err := h.vehicles.Search(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// UploadDocument stores an uploaded file on disk and records its metadata
func (h *VehicleHandler) UploadDocument(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	maxBytes := h.uploads.MaxSizeMB << 20
	if err := c.Request.ParseMultipartForm(maxBytes); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse upload"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	if file.Size > maxBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("File exceeds the %dMB limit", h.uploads.MaxSizeMB)})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedDocumentExts[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File type not allowed, expected jpg, jpeg, png or pdf"})
		return
	}

	if err := os.MkdirAll(h.uploads.Dir, 0o755); err != nil {
		h.log.WithError(err).Error("Failed to create upload directory")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	storedName := fmt.Sprintf("%s_%s", uuid.New().String(), filepath.Base(file.Filename))
	storedPath := filepath.Join(h.uploads.Dir, storedName)
	if err := c.SaveUploadedFile(file, storedPath); err != nil {
		h.log.WithError(err).Error("Failed to save uploaded file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	doc := &models.VehicleDocument{
		VehicleID:    id,
		DocumentType: c.PostForm("document_type"),
		FileName:     storedName,
		OriginalName: file.Filename,
		FilePath:     storedPath,
	}
	if identity := middleware.CurrentIdentity(c); identity != nil {
		doc.UploadedBy = identity.UserID
	}

	if err := h.vehicles.AddDocument(c.Request.Context(), doc); err != nil {
		// keep disk and DB consistent when the insert fails
		_ = os.Remove(storedPath)
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, doc)
}

// ListDocuments returns document metadata for a vehicle
func (h *VehicleHandler) ListDocuments(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	docs, err := h.vehicles.ListDocuments(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"documents": docs})
}
