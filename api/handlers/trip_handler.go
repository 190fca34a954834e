package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/rohingrover/absuma/internal/repository"
	"github.com/rohingrover/absuma/internal/service"
)

// TripHandler handles trip reporting, export and dashboard endpoints
type TripHandler struct {
	trips service.TripService
	log   *logrus.Logger
}

// NewTripHandler creates a new TripHandler instance
func NewTripHandler(trips service.TripService, log *logrus.Logger) *TripHandler {
	return &TripHandler{trips: trips, log: log}
}

// Get returns a single trip
func (h *TripHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	trip, err := h.trips.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// List returns a filtered page of trips. When the export query parameter is
// csv or xlsx the full filtered result set is streamed as a file instead.
func (h *TripHandler) List(c *gin.Context) {
	filter := repository.TripFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 20),
	}
	if clientID := c.Query("client_id"); clientID != "" {
		if v, err := strconv.ParseUint(clientID, 10, 32); err == nil {
			filter.ClientID = uint(v)
		}
	}
	if from := c.Query("date_from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date_from must be in YYYY-MM-DD format"})
			return
		}
		filter.DateFrom = &t
	}
	if to := c.Query("date_to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date_to must be in YYYY-MM-DD format"})
			return
		}
		filter.DateTo = &t
	}

	switch c.Query("export") {
	case "csv":
		h.exportCSV(c, filter)
		return
	case "xlsx":
		h.exportXLSX(c, filter)
		return
	}

	trips, total, err := h.trips.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  trips,
		"total": total,
		"page":  filter.Page,
		"limit": filter.Limit,
	})
}

func (h *TripHandler) exportCSV(c *gin.Context, filter repository.TripFilter) {
	data, err := h.trips.ExportCSV(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	writeAttachment(c, "text/csv", "csv", data)
}

func (h *TripHandler) exportXLSX(c *gin.Context, filter repository.TripFilter) {
	data, err := h.trips.ExportXLSX(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	writeAttachment(c, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx", data)
}

func writeAttachment(c *gin.Context, contentType, ext string, data []byte) {
	filename := fmt.Sprintf("trip-report-%s.%s", time.Now().Format("20060102-150405"), ext)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}

// Dashboard returns aggregate counts for the landing page
func (h *TripHandler) Dashboard(c *gin.Context) {
	summary, err := h.trips.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
