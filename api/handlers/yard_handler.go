package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/rohingrover/absuma/internal/repository"
	"github.com/rohingrover/absuma/internal/service"
)

// YardHandler handles yard location endpoints
type YardHandler struct {
	yards service.YardService
	log   *logrus.Logger
}

// NewYardHandler creates a new YardHandler instance
func NewYardHandler(yards service.YardService, log *logrus.Logger) *YardHandler {
	return &YardHandler{yards: yards, log: log}
}

// Create registers a new yard location
func (h *YardHandler) Create(c *gin.Context) {
	var in service.YardInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	yard, err := h.yards.Create(c.Request.Context(), &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, yard)
}

// Update modifies an existing yard location
func (h *YardHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var in service.YardInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	yard, err := h.yards.Update(c.Request.Context(), id, &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, yard)
}

// Get returns a single yard location
func (h *YardHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	yard, err := h.yards.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, yard)
}

// List returns a filtered, paginated page of yard locations
func (h *YardHandler) List(c *gin.Context) {
	filter := repository.YardFilter{
		YardType: c.Query("yard_type"),
		Search:   c.Query("search"),
		Page:     queryInt(c, "page", 1),
		Limit:    queryInt(c, "limit", 20),
	}
	if loc := c.Query("location_id"); loc != "" {
		if v, err := strconv.ParseUint(loc, 10, 32); err == nil {
			filter.LocationID = uint(v)
		}
	}
	if active := c.Query("is_active"); active != "" {
		v := active == "true" || active == "1"
		filter.IsActive = &v
	}

	yards, total, err := h.yards.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  yards,
		"total": total,
		"page":  filter.Page,
		"limit": filter.Limit,
	})
}

// Delete soft-deletes a yard location
func (h *YardHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.yards.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Yard deleted successfully"})
}

// ListLocations returns the cities yards can belong to
func (h *YardHandler) ListLocations(c *gin.Context) {
	locations, err := h.yards.ListLocations(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"locations": locations})
}
