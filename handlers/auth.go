package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"relocation-admin-api/config"
	"relocation-admin-api/middleware"
)

// demoPasswordHash holds the bcrypt hash of the configured demo password.
var demoPasswordHash []byte

// InitAuth hashes the demo credential once at startup.
func InitAuth() error {
	hash, err := bcrypt.GenerateFromPassword([]byte(config.App.DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	demoPasswordHash = hash
	return nil
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login checks credentials and issues a session token. The configured demo
// consultant is accepted locally; anything else is tried against the
// backend's login endpoint.
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Email == config.App.DemoEmail &&
		bcrypt.CompareHashAndPassword(demoPasswordHash, []byte(req.Password)) == nil {
		issueSession(c, 0, config.App.DemoName, req.Email)
		return
	}

	person, err := config.Backend.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	issueSession(c, person.ID, person.FullName(), person.Email)
}

func issueSession(c *gin.Context, consultantID int, name, email string) {
	token, err := middleware.GenerateToken(consultantID, name, email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate session token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome back, " + name + "!",
		"token":   token,
		"consultant": gin.H{
			"id":    consultantID,
			"name":  name,
			"email": email,
		},
	})
}
