package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/rohingrover/absuma/api/middleware"
	"github.com/rohingrover/absuma/internal/repository"
	"github.com/rohingrover/absuma/internal/service"
)

// VendorHandler handles vendor onboarding, approval and vehicle endpoints
type VendorHandler struct {
	vendors service.VendorService
	log     *logrus.Logger
}

// NewVendorHandler creates a new VendorHandler instance
func NewVendorHandler(vendors service.VendorService, log *logrus.Logger) *VendorHandler {
	return &VendorHandler{vendors: vendors, log: log}
}

// Create registers a new vendor in pending status
func (h *VendorHandler) Create(c *gin.Context) {
	var in service.VendorInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	vendor, err := h.vendors.Create(c.Request.Context(), &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, vendor)
}

// Update modifies an existing vendor's details
func (h *VendorHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var in service.VendorInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	vendor, err := h.vendors.Update(c.Request.Context(), id, &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, vendor)
}

// Get returns a single vendor with its vehicles preloaded
func (h *VendorHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	vendor, err := h.vendors.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, vendor)
}

// List returns a filtered, paginated page of vendors
func (h *VendorHandler) List(c *gin.Context) {
	filter := repository.VendorFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 20),
	}

	vendors, total, err := h.vendors.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  vendors,
		"total": total,
		"page":  filter.Page,
		"limit": filter.Limit,
	})
}

// Decide approves or rejects a pending vendor
func (h *VendorHandler) Decide(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var in service.ApprovalInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	vendor, err := h.vendors.Decide(c.Request.Context(), id, middleware.CurrentIdentity(c), &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, vendor)
}

// AddVehicle registers a vehicle under an active vendor
func (h *VendorHandler) AddVehicle(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var in service.VendorVehicleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	vehicle, err := h.vendors.AddVehicle(c.Request.Context(), id, &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, vehicle)
}

// SearchVehicles returns ranked vendor vehicle matches for a partial
// registration number. Only vehicles of active vendors are searched.
func (h *VendorHandler) SearchVehicles(c *gin.Context) {
	results, err := h.vendors.SearchVehicles(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}
