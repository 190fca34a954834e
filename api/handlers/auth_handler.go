package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/rohingrover/absuma/api/middleware"
	"github.com/rohingrover/absuma/internal/service"
)

// AuthHandler handles login and identity requests
type AuthHandler struct {
	auth service.AuthService
	log  *logrus.Logger
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(auth service.AuthService, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log}
}

// Login verifies credentials and returns a session token
func (h *AuthHandler) Login(c *gin.Context) {
	var in service.LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	token, identity, err := h.auth.Login(c.Request.Context(), &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  identity,
	})
}

// Me returns the authenticated identity from the request context
func (h *AuthHandler) Me(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	c.JSON(http.StatusOK, identity)
}

// CreateUser registers a new back-office user (admin only)
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var in service.CreateUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	user, err := h.auth.CreateUser(c.Request.Context(), &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}
