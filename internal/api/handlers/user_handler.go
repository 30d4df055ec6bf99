// internal/api/handlers/user_handler.go
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"freightflow-api-server/internal/auth"
	"freightflow-api-server/internal/models"
	"freightflow-api-server/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserHandler struct {
	Store store.Store
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a customer account and returns a token for it.
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.Store.GetUserByEmail(c.Request.Context(), req.Email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email is already registered"})
		return
	} else if err != store.ErrNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing user", "details": err.Error()})
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password", "details": err.Error()})
		return
	}

	role := models.RoleCustomer
	externalID := fmt.Sprintf("%s-%s", role, uuid.New().String()[:8])

	user := models.User{
		ExternalID: externalID,
		Email:      req.Email,
		Name:       req.Name,
		Password:   hashed,
		Role:       role,
		CreatedAt:  time.Now(),
	}
	if err := h.Store.InsertUser(c.Request.Context(), user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user", "details": err.Error()})
		return
	}

	token, err := auth.GenerateJWT(user.Email, user.Name, user.Role, user.ExternalID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":     "success",
		"token":      token,
		"externalId": user.ExternalID,
		"email":      user.Email,
		"name":       user.Name,
		"role":       user.Role,
	})
}

// Login checks credentials and returns a signed token.
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Store.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil || !auth.CheckPasswordHash(req.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := auth.GenerateJWT(user.Email, user.Name, user.Role, user.ExternalID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "success",
		"token":      token,
		"externalId": user.ExternalID,
		"email":      user.Email,
		"name":       user.Name,
		"role":       user.Role,
	})
}
