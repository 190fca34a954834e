package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/rohingrover/absuma/internal/models"
	"github.com/rohingrover/absuma/internal/repository"
	"github.com/rohingrover/absuma/internal/service"
)

// ClientHandler handles client, rate and contact endpoints
type ClientHandler struct {
	clients service.ClientService
	log     *logrus.Logger
}

// NewClientHandler creates a new ClientHandler instance
func NewClientHandler(clients service.ClientService, log *logrus.Logger) *ClientHandler {
	return &ClientHandler{clients: clients, log: log}
}

// Create registers a new client
func (h *ClientHandler) Create(c *gin.Context) {
	var in service.ClientInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	client, err := h.clients.Create(c.Request.Context(), &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

// Update modifies an existing client
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var in service.ClientInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	client, err := h.clients.Update(c.Request.Context(), id, &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// Get returns a single client with its child rows preloaded
func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	client, err := h.clients.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// List returns a filtered, paginated page of clients
func (h *ClientHandler) List(c *gin.Context) {
	filter := repository.ClientFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 20),
	}

	clients, total, err := h.clients.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  clients,
		"total": total,
		"page":  filter.Page,
		"limit": filter.Limit,
	})
}

// Delete removes a client together with its rates, documents and contacts
func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.clients.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
}

// Rates returns a client's rate card
func (h *ClientHandler) Rates(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	resp, err := h.clients.Rates(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AddRate appends a rate row to a client's rate card
func (h *ClientHandler) AddRate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var in service.ClientRateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	rate, err := h.clients.AddRate(c.Request.Context(), id, &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, rate)
}

// AddContact appends a contact person to a client
func (h *ClientHandler) AddContact(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var contact models.ClientContact
	if err := c.ShouldBindJSON(&contact); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.clients.AddContact(c.Request.Context(), id, &contact); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, contact)
}
