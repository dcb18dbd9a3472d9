package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/formforge/formforge/internal/api/middleware"
	"github.com/formforge/formforge/pkg/response"
)

type LoginDTO struct {
	Password string `json:"password" binding:"required"`
}

type AuthHandler struct {
	passwordHash []byte
}

// NewAuthHandler hashes the configured admin password once at startup so
// login compares against a bcrypt hash, never the plaintext.
func NewAuthHandler(adminPassword string) *AuthHandler {
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return &AuthHandler{passwordHash: hash}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input LoginDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	if err := bcrypt.CompareHashAndPassword(h.passwordHash, []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Invalid password"})
		return
	}

	token, err := middleware.GenerateToken("admin", 24*time.Hour)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.TokenResponse{Token: token})
}

// AuthStatusHandler reports whether the presented token is valid; the JWT
// middleware has already rejected the request otherwise.
func AuthStatusHandler(c *gin.Context) {
	c.JSON(http.StatusOK, response.MessageResponse{Message: "ok"})
}
