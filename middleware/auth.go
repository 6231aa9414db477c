package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"relocation-admin-api/config"
)

// Session identifies the logged-in consultant for the lifetime of a token.
// Every guarded handler gets the session explicitly from its request
// context; there is no ambient logged-in state.
type Session struct {
	ConsultantID int    `json:"consultantId"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	jwt.RegisteredClaims
}

const sessionKey = "session"

// GenerateToken creates a signed session token for a consultant.
func GenerateToken(consultantID int, name, email string) (string, error) {
	session := Session{
		ConsultantID: consultantID,
		Email:        email,
		Name:         name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, session)
	return token.SignedString(config.JWTSecret)
}

// AuthRequired validates the session token and injects the session into the
// request context.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required (Bearer <token>)"})
			c.Abort()
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		session := &Session{}
		token, err := jwt.ParseWithClaims(tokenStr, session, func(t *jwt.Token) (interface{}, error) {
			return config.JWTSecret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			c.Abort()
			return
		}
		c.Set(sessionKey, session)
		c.Next()
	}
}

// GetSession extracts the caller's session from the request context.
func GetSession(c *gin.Context) *Session {
	val, _ := c.Get(sessionKey)
	session, _ := val.(*Session)
	return session
}
